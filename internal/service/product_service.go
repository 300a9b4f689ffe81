package service

import (
	"context"
	"errors"
	"fmt"

	"gellies-store/internal/model"
	"gellies-store/internal/repository"
	"gellies-store/internal/upload"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	uploads     upload.Store
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, uploads upload.Store, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		uploads:     uploads,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves every product.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// Create stores the photo, if any, then the product. Absent fields are stored empty.
func (s *productService) Create(ctx context.Context, fields model.ProductFields, photo *Photo) error {
	var p model.Product
	fields.Apply(&p)

	if photo != nil {
		ref, err := s.uploads.Save(ctx, photo.Filename, photo.Content)
		if err != nil {
			return fmt.Errorf("failed to store product photo: %w", err)
		}
		p.Photo = ref
	}

	if err := s.productRepo.Create(ctx, &p); err != nil {
		s.discard(ctx, p.Photo)
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID).Msg("product created")

	return nil
}

// Update writes the present fields. A new photo replaces the stored one and
// the previous file is removed once the update succeeded.
func (s *productService) Update(ctx context.Context, id string, fields model.ProductFields, photo *Photo) error {
	update := &model.ProductUpdate{ProductFields: fields}

	var previous string
	if photo != nil {
		current, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if current == nil {
			s.logger.Debug().Str("product_id", id).Msg("update of unknown product ignored")
			return nil
		}
		previous = current.Photo

		ref, err := s.uploads.Save(ctx, photo.Filename, photo.Content)
		if err != nil {
			return fmt.Errorf("failed to store product photo: %w", err)
		}
		update.Photo = &ref
	}

	if err := s.productRepo.Update(ctx, id, update); err != nil {
		if update.Photo != nil {
			s.discard(ctx, *update.Photo)
		}
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debug().Str("product_id", id).Msg("update of unknown product ignored")
			return nil
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	if update.Photo != nil && previous != *update.Photo {
		s.discard(ctx, previous)
	}

	s.logger.Info().Str("product_id", id).Bool("photo_replaced", update.Photo != nil).Msg("product updated")

	return nil
}

// Delete removes the product and then its photo.
func (s *productService) Delete(ctx context.Context, id string) error {
	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debug().Str("product_id", id).Msg("delete of unknown product ignored")
			return nil
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if current != nil {
		s.discard(ctx, current.Photo)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return nil
}

// discard removes a stored photo. Failures are logged only; the record
// operation they follow has already been decided.
func (s *productService) discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.uploads.Delete(ctx, ref); err != nil {
		s.logger.Warn().Err(err).Str("photo", ref).Msg("failed to remove stored photo")
	}
}
