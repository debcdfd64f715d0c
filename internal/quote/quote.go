package quote

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("quote not found")
	ErrItemNotFound = errors.New("quote item not found")
)

// Status represents the lifecycle state of a quote or a quote item.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Quote is a proposal to a customer built from line items. TotalAmount is
// always the sum of the current items' TotalPrice; the VAT pair is derived
// from it. IsApproved mirrors Status == approved, and both must be set in the
// same update for a task to be derived.
type Quote struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	Title        string
	Description  string
	TotalAmount  decimal.Decimal
	HasVAT       bool
	VATRate      decimal.Decimal
	VATAmount    decimal.Decimal
	TotalWithVAT decimal.Decimal
	Status       Status
	IsApproved   bool
	QuoteDate    time.Time
	ValidUntil   *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Item is a single line of a quote. TotalPrice arrives from the client and is
// trusted as-is; only the quote-level totals are recomputed server-side.
// Item-level approval is cosmetic: it changes nothing on the quote or its
// derived task.
type Item struct {
	ID          uuid.UUID
	QuoteID     uuid.UUID
	Title       string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Status      Status
	IsApproved  bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
