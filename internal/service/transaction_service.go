package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gellies-store/internal/model"
	"gellies-store/internal/repository"

	"github.com/rs/zerolog"
)

// transactionService implements TransactionService.
type transactionService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	now             func() time.Time
	logger          zerolog.Logger
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		now:             time.Now,
		logger:          logger.With().Str("service", "transaction").Logger(),
	}
}

// Create records the cart lines as given. Products are not checked for
// existence and quantities are taken verbatim.
func (s *transactionService) Create(ctx context.Context, req *model.TransactionRequest) error {
	if req == nil || len(req.Items) == 0 {
		return model.ErrNoItems
	}

	items := make([]model.TransactionItem, len(req.Items))
	for i, item := range req.Items {
		if item.Product == nil || item.Product.ID == "" {
			s.logger.Warn().Int("item_index", i).Msg("item without product id")
			return model.ErrItemWithoutProduct
		}
		items[i] = model.TransactionItem{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		}
	}

	txn := &model.Transaction{
		Items:     items,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	s.logger.Info().
		Str("transaction_id", txn.ID).
		Int("item_count", len(items)).
		Msg("transaction created successfully")

	return nil
}

// List returns every transaction newest first. Each item carries the current
// product, or nil when the product no longer exists.
func (s *transactionService) List(ctx context.Context) ([]model.TransactionResponse, error) {
	txns, err := s.transactionRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get transactions")
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	products, err := s.resolveProducts(ctx, txns)
	if err != nil {
		return nil, err
	}

	resp := make([]model.TransactionResponse, len(txns))
	for i, t := range txns {
		items := make([]model.ResolvedItem, len(t.Items))
		for j, item := range t.Items {
			items[j] = model.ResolvedItem{
				Product:  products[item.ProductID],
				Quantity: item.Quantity,
			}
		}
		resp[i] = model.TransactionResponse{
			ID:        t.ID,
			Items:     items,
			CreatedAt: t.CreatedAt,
		}
	}

	s.logger.Debug().
		Int("count", len(resp)).
		Int("products_resolved", len(products)).
		Msg("retrieved transactions")

	return resp, nil
}

// resolveProducts loads every product referenced by txns in one query.
func (s *transactionService) resolveProducts(ctx context.Context, txns []model.Transaction) (map[string]*model.Product, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, t := range txns {
		for _, item := range t.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	byID := make(map[string]*model.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}

	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	return byID, nil
}

// Delete removes a transaction.
func (s *transactionService) Delete(ctx context.Context, id string) error {
	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debug().Str("transaction_id", id).Msg("delete of unknown transaction ignored")
			return nil
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.Info().Str("transaction_id", id).Msg("transaction deleted")

	return nil
}
