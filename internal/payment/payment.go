package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("payment not found")

// Kind tells who the payment settles with, which decides the direction and
// labeling of its mirrored ledger entry.
type Kind string

const (
	KindCustomer   Kind = "customer"
	KindContractor Kind = "contractor"
	KindPersonnel  Kind = "personnel"
)

// Payment is money received from or paid to a party. Every payment is
// mirrored into the ledger; the mirror carries this payment's id so deleting
// the payment can reverse it.
type Payment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Kind          Kind
	PartyID       uuid.UUID
	Amount        decimal.Decimal
	Description   string
	PaymentDate   time.Time
	PaymentMethod string
	CreatedAt     time.Time
}
