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

// productDocument is the stored shape of a product.
type productDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Category string             `bson:"category"`
	Size     string             `bson:"size"`
	Barcode  string             `bson:"barcode"`
	Price    string             `bson:"price"`
	Photo    string             `bson:"photo"`
}

func (d productDocument) toModel() model.Product {
	return model.Product{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Category: d.Category,
		Size:     d.Size,
		Barcode:  d.Barcode,
		Price:    d.Price,
		Photo:    d.Photo,
	}
}

// mongoProductRepository implements the ProductRepository interface using MongoDB.
type mongoProductRepository struct {
	col    *mongo.Collection
	logger zerolog.Logger
}

// NewMongoProductRepository creates a new MongoDB-backed product repository.
func NewMongoProductRepository(db *mongo.Database, logger zerolog.Logger) ProductRepository {
	return &mongoProductRepository{
		col:    db.Collection(database.ProductsCollection),
		logger: logger.With().Str("repository", "product").Str("store", "mongo").Logger(),
	}
}

func (r *mongoProductRepository) find(ctx context.Context, filter any) ([]model.Product, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cur.Close(ctx)

	products := []model.Product{}
	for cur.Next(ctx) {
		var doc productDocument
		if err := cur.Decode(&doc); err != nil {
			r.logger.Error().Err(err).Msg("failed to decode product document")
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product cursor")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves every product.
func (r *mongoProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	return r.find(ctx, bson.D{})
}

// GetByID retrieves a single product by its ID. Malformed IDs match nothing.
func (r *mongoProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		r.logger.Debug().Str("product_id", id).Msg("malformed product id")
		return nil, nil
	}

	var doc productDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	p := doc.toModel()
	return &p, nil
}

// GetByIDs retrieves the products that exist among ids.
func (r *mongoProductRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []model.Product{}, nil
	}

	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

// Create inserts a new product and assigns its ID.
func (r *mongoProductRepository) Create(ctx context.Context, p *model.Product) error {
	doc := productDocument{
		ID:       primitive.NewObjectID(),
		Name:     p.Name,
		Category: p.Category,
		Size:     p.Size,
		Barcode:  p.Barcode,
		Price:    p.Price,
		Photo:    p.Photo,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		r.logger.Error().Err(err).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}
	p.ID = doc.ID.Hex()

	r.logger.Debug().Str("product_id", p.ID).Msg("product created")

	return nil
}

// Update writes the present fields of update with $set.
func (r *mongoProductRepository) Update(ctx context.Context, id string, update *model.ProductUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrNotFound
	}

	set := bson.D{}
	add := func(key string, value *string) {
		if value != nil {
			set = append(set, bson.E{Key: key, Value: *value})
		}
	}
	add("name", update.Name)
	add("category", update.Category)
	add("size", update.Size)
	add("barcode", update.Barcode)
	add("price", update.Price)
	add("photo", update.Photo)

	if len(set) == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			r.logger.Error().Err(err).Str("product_id", id).Msg("failed to check product")
			return fmt.Errorf("failed to update product: %w", err)
		}
		if n == 0 {
			return model.ErrNotFound
		}
		return nil
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Delete removes a product.
func (r *mongoProductRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, r.logger, "product")
}

// objectIDs converts the well-formed hex ids and drops the rest.
func objectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string, logger zerolog.Logger, kind string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrNotFound
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.Error().Err(err).Str(kind+"_id", id).Msgf("failed to delete %s", kind)
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}

	return nil
}
