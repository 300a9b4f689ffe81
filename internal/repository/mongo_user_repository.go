package repository

import (
	"context"
	"errors"
	"fmt"

	"gellies-store/internal/database"
	"gellies-store/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	Photo    string             `bson:"photo,omitempty"`
	Role     string             `bson:"role"`
}

// mongoUserRepository implements the UserRepository interface using MongoDB.
type mongoUserRepository struct {
	col    *mongo.Collection
	logger zerolog.Logger
}

// NewMongoUserRepository creates a new MongoDB-backed user repository.
func NewMongoUserRepository(db *mongo.Database, logger zerolog.Logger) UserRepository {
	return &mongoUserRepository{
		col:    db.Collection(database.UsersCollection),
		logger: logger.With().Str("repository", "user").Str("store", "mongo").Logger(),
	}
}

// Create inserts a new user. The unique email index turns a concurrent
// duplicate registration into model.ErrUserExists.
func (r *mongoUserRepository) Create(ctx context.Context, u *model.User) error {
	if u.Role == "" {
		u.Role = model.RoleUser
	}

	doc := userDocument{
		ID:       primitive.NewObjectID(),
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		Photo:    u.Photo,
		Role:     u.Role,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Debug().Str("email", u.Email).Msg("email already registered")
			return model.ErrUserExists
		}
		r.logger.Error().Err(err).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.ID = doc.ID.Hex()

	return nil
}

// GetByEmail retrieves a user by email.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &model.User{
		ID:       doc.ID.Hex(),
		Name:     doc.Name,
		Email:    doc.Email,
		Password: doc.Password,
		Photo:    doc.Photo,
		Role:     doc.Role,
	}, nil
}
