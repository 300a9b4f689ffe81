package model

import "time"

// Transaction is a completed checkout.
type Transaction struct {
	ID        string            `json:"_id"`
	Items     []TransactionItem `json:"items"`
	CreatedAt time.Time         `json:"createdAt"`
}

// TransactionItem is a line of a transaction. ProductID is a weak reference:
// the product may have been edited or deleted since. Quantity is stored as
// sent, fractions and negatives included.
type TransactionItem struct {
	ProductID string  `json:"product"`
	Quantity  float64 `json:"quantity"`
}

// TransactionRequest represents the request payload for recording a checkout.
type TransactionRequest struct {
	Items []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// TransactionItemRequest is one cart line as the client sends it.
type TransactionItemRequest struct {
	Product  *ProductRef `json:"product" validate:"required"`
	Quantity float64     `json:"quantity"`
}

// ProductRef identifies a product inside a cart line.
type ProductRef struct {
	ID string `json:"_id" validate:"required"`
}

// TransactionResponse is a transaction with its products resolved.
type TransactionResponse struct {
	ID        string         `json:"_id"`
	Items     []ResolvedItem `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ResolvedItem carries the current product document, or nil when the
// referenced product no longer exists.
type ResolvedItem struct {
	Product  *Product `json:"product"`
	Quantity float64  `json:"quantity"`
}
