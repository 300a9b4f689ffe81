package repository

import (
	"context"
	"fmt"
	"time"

	"gellies-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// transactionRepository implements the TransactionRepository interface using PostgreSQL.
type transactionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTransactionRepository creates a new PostgreSQL-backed transaction repository.
func NewTransactionRepository(pool *pgxpool.Pool, logger zerolog.Logger) TransactionRepository {
	return &transactionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "transaction").Logger(),
	}
}

// Create persists the transaction header and its items in one database transaction.
func (r *transactionRepository) Create(ctx context.Context, txn *model.Transaction) (err error) {
	id := uuid.NewString()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	_, err = tx.Exec(ctx,
		"INSERT INTO transactions (id, created_at) VALUES ($1, $2)",
		id, txn.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("transaction_id", id).Msg("failed to create transaction")
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if err = r.createItems(ctx, tx, id, txn.Items); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("transaction_id", id).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	txn.ID = id

	r.logger.Debug().
		Str("transaction_id", id).
		Int("item_count", len(txn.Items)).
		Msg("transaction created successfully")

	return nil
}

func (r *transactionRepository) createItems(ctx context.Context, tx pgx.Tx, id string, items []model.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (transaction_id, position, product_id, quantity)
		VALUES ($1, $2, $3, $4)
	`

	batch := &pgx.Batch{}
	for i, item := range items {
		batch.Queue(query, id, i, item.ProductID, item.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range items {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("transaction_id", id).
				Str("product_id", items[i].ProductID).
				Msg("failed to create transaction item")
			return fmt.Errorf("failed to create transaction item: %w", err)
		}
	}

	return nil
}

// GetAll retrieves every transaction, newest first, with its items in order.
func (r *transactionRepository) GetAll(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, created_at FROM transactions ORDER BY created_at DESC")
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query transactions")
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	txns := []model.Transaction{}
	index := make(map[string]int)
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.CreatedAt); err != nil {
			rows.Close()
			r.logger.Error().Err(err).Msg("failed to scan transaction row")
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Items = []model.TransactionItem{}
		index[t.ID] = len(txns)
		txns = append(txns, t)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating transaction rows")
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	if len(txns) == 0 {
		return txns, nil
	}

	ids := make([]string, len(txns))
	for i, t := range txns {
		ids[i] = t.ID
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT transaction_id, product_id, quantity
		FROM transaction_items
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, position
	`, ids)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query transaction items")
		return nil, fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			txnID string
			item  model.TransactionItem
		)
		if err := itemRows.Scan(&txnID, &item.ProductID, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan transaction item row")
			return nil, fmt.Errorf("failed to scan transaction item: %w", err)
		}
		if i, ok := index[txnID]; ok {
			txns[i].Items = append(txns[i].Items, item)
		}
	}

	if err := itemRows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating transaction item rows")
		return nil, fmt.Errorf("error iterating transaction items: %w", err)
	}

	return txns, nil
}

// Delete removes a transaction; its items go with it.
func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("transaction_id", id).Msg("failed to delete transaction")
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
