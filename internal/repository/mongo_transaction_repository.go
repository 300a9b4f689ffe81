package repository

import (
	"context"
	"fmt"
	"time"

	"gellies-store/internal/database"
	"gellies-store/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type transactionDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Items     []itemDocument     `bson:"items"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// itemDocument keeps the product reference as the caller sent it; it is never
// checked against the products collection.
type itemDocument struct {
	Product  string  `bson:"product"`
	Quantity float64 `bson:"quantity"`
}

// mongoTransactionRepository implements the TransactionRepository interface using MongoDB.
type mongoTransactionRepository struct {
	col    *mongo.Collection
	logger zerolog.Logger
}

// NewMongoTransactionRepository creates a new MongoDB-backed transaction repository.
func NewMongoTransactionRepository(db *mongo.Database, logger zerolog.Logger) TransactionRepository {
	return &mongoTransactionRepository{
		col:    db.Collection(database.TransactionsCollection),
		logger: logger.With().Str("repository", "transaction").Str("store", "mongo").Logger(),
	}
}

// Create persists a transaction as a single document.
func (r *mongoTransactionRepository) Create(ctx context.Context, txn *model.Transaction) error {
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	doc := transactionDocument{
		ID:        primitive.NewObjectID(),
		Items:     make([]itemDocument, len(txn.Items)),
		CreatedAt: txn.CreatedAt,
	}
	for i, item := range txn.Items {
		doc.Items[i] = itemDocument{Product: item.ProductID, Quantity: item.Quantity}
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		r.logger.Error().Err(err).Msg("failed to create transaction")
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	txn.ID = doc.ID.Hex()

	r.logger.Debug().
		Str("transaction_id", txn.ID).
		Int("item_count", len(txn.Items)).
		Msg("transaction created successfully")

	return nil
}

// GetAll retrieves every transaction, newest first.
func (r *mongoTransactionRepository) GetAll(ctx context.Context) ([]model.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query transactions")
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer cur.Close(ctx)

	txns := []model.Transaction{}
	for cur.Next(ctx) {
		var doc transactionDocument
		if err := cur.Decode(&doc); err != nil {
			r.logger.Error().Err(err).Msg("failed to decode transaction document")
			return nil, fmt.Errorf("failed to decode transaction: %w", err)
		}

		t := model.Transaction{
			ID:        doc.ID.Hex(),
			Items:     make([]model.TransactionItem, len(doc.Items)),
			CreatedAt: doc.CreatedAt,
		}
		for i, item := range doc.Items {
			t.Items[i] = model.TransactionItem{ProductID: item.Product, Quantity: item.Quantity}
		}
		txns = append(txns, t)
	}

	if err := cur.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating transaction cursor")
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}

// Delete removes a transaction.
func (r *mongoTransactionRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, r.logger, "transaction")
}
