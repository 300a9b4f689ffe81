package repository

import (
	"context"

	"gellies-store/internal/model"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user and assigns its ID.
	// Returns model.ErrUserExists if the email is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email. Returns nil, nil if none exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves every product.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil, nil if none exists.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves the products that exist among ids.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Create inserts a new product and assigns its ID.
	Create(ctx context.Context, product *model.Product) error

	// Update writes the present fields of update.
	// Returns model.ErrNotFound if no product has the ID.
	Update(ctx context.Context, id string, update *model.ProductUpdate) error

	// Delete removes a product. Returns model.ErrNotFound if no product has the ID.
	Delete(ctx context.Context, id string) error
}

// TransactionRepository defines the interface for transaction data access operations.
type TransactionRepository interface {
	// Create persists a transaction with its items and assigns its ID.
	Create(ctx context.Context, txn *model.Transaction) error

	// GetAll retrieves every transaction, newest first.
	GetAll(ctx context.Context) ([]model.Transaction, error)

	// Delete removes a transaction. Returns model.ErrNotFound if no transaction has the ID.
	Delete(ctx context.Context, id string) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Set bundles the repositories of one backend.
type Set struct {
	Users        UserRepository
	Products     ProductRepository
	Transactions TransactionRepository
	Store        Pinger
}
