package service

import (
	"context"
	"io"

	"gellies-store/internal/model"
)

// Photo is an uploaded file attached to a product request.
type Photo struct {
	Filename string
	Content  io.Reader
}

// AuthService defines operations for account registration and login.
type AuthService interface {
	// Register creates a user with a hashed password.
	Register(ctx context.Context, req *model.CredentialsRequest) error

	// Login checks the credentials and returns the matching user.
	Login(ctx context.Context, req *model.CredentialsRequest) (*model.User, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves every product.
	List(ctx context.Context) ([]model.Product, error)

	// Create stores a product and its optional photo.
	Create(ctx context.Context, fields model.ProductFields, photo *Photo) error

	// Update overwrites the present fields and, when given, the photo.
	// Updating an unknown product is not an error.
	Update(ctx context.Context, id string, fields model.ProductFields, photo *Photo) error

	// Delete removes a product and its photo. Deleting an unknown product is not an error.
	Delete(ctx context.Context, id string) error
}

// TransactionService defines operations for recorded checkouts.
type TransactionService interface {
	// Create records the cart lines of req.
	Create(ctx context.Context, req *model.TransactionRequest) error

	// List retrieves every transaction, newest first, with products resolved.
	List(ctx context.Context) ([]model.TransactionResponse, error)

	// Delete removes a transaction. Deleting an unknown transaction is not an error.
	Delete(ctx context.Context, id string) error
}
