package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"gellies-store/internal/model"
	"gellies-store/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	service service.TransactionService
	opts    Options
	logger  zerolog.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(service service.TransactionService, opts Options, logger zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		opts:    opts,
		logger:  logger.With().Str("handler", "transaction").Logger(),
	}
}

// Create handles POST /api/transactions requests.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTransaction(r)
	if err != nil {
		failure(w, r, err, "Failed to save transaction", h.opts, h.logger)
		return
	}

	if err := h.service.Create(r.Context(), req); err != nil {
		failure(w, r, err, "Failed to save transaction", h.opts, h.logger)
		return
	}

	writeMessage(w, "Transaction saved!")
}

// List handles GET /api/transactions requests.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	txns, err := h.service.List(r.Context())
	if err != nil {
		failure(w, r, err, "Failed to fetch transactions", h.opts, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, txns)
}

// Delete handles DELETE /api/transactions/{id} requests.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		failure(w, r, err, "Failed to delete transaction", h.opts, h.logger)
		return
	}

	writeMessage(w, "Transaction deleted")
}

// decodeTransaction reads the checkout body. A missing, non-array or empty
// items field is reported as ErrNoItems before the lines are decoded.
func decodeTransaction(r *http.Request) (*model.TransactionRequest, error) {
	var body struct {
		Items json.RawMessage `json:"items"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(body.Items)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, model.ErrNoItems
	}

	var req model.TransactionRequest
	if err := json.Unmarshal(raw, &req.Items); err != nil {
		return nil, model.WrapDomainError(model.ErrCodeInvalidJSON, model.ErrInvalidBody.Message, err)
	}
	if len(req.Items) == 0 {
		return nil, model.ErrNoItems
	}

	if err := validate.Struct(&req); err != nil {
		return nil, model.ErrItemWithoutProduct
	}

	return &req, nil
}
