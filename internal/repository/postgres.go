package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPostgresSet wires every repository to one PostgreSQL pool.
func NewPostgresSet(pool *pgxpool.Pool, logger zerolog.Logger) *Set {
	return &Set{
		Users:        NewUserRepository(pool, logger),
		Products:     NewProductRepository(pool, logger),
		Transactions: NewTransactionRepository(pool, logger),
		Store:        pool,
	}
}
