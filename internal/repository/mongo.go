package repository

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// NewMongoSet wires every repository to one MongoDB database.
func NewMongoSet(db *mongo.Database, logger zerolog.Logger) *Set {
	return &Set{
		Users:        NewMongoUserRepository(db, logger),
		Products:     NewMongoProductRepository(db, logger),
		Transactions: NewMongoTransactionRepository(db, logger),
		Store:        mongoPinger{client: db.Client()},
	}
}
