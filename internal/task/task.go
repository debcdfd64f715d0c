package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("task not found")

// Status represents the lifecycle state of a customer task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Task is a billable unit of work for a customer. Tasks derived from an
// approved quote carry the quote's id in SourceQuoteID; that key is what makes
// repeated approvals idempotent.
//
// VATAmount and TotalWithVAT are derived: VATAmount is zero unless HasVAT,
// otherwise Amount * VATRate / 100 at currency precision, and TotalWithVAT is
// always Amount + VATAmount.
type Task struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	SourceQuoteID *uuid.UUID
	Title         string
	Description   string
	Quantity      decimal.Decimal
	Unit          string
	UnitPrice     decimal.Decimal
	Amount        decimal.Decimal
	HasVAT        bool
	VATRate       decimal.Decimal
	VATAmount     decimal.Decimal
	TotalWithVAT  decimal.Decimal
	Status        Status
	DueDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
