package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the direction of a ledger entry (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction is a single ledger entry. Entries created as the mirror of a
// payment carry the originating payment's id in SourcePaymentID.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Type            Type
	Amount          decimal.Decimal
	Description     string
	Category        string
	Date            time.Time
	SourcePaymentID *uuid.UUID
	CreatedAt       time.Time
	DeletedAt       *time.Time
}
