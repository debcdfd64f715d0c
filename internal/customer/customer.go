package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("customer not found")

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer owns tasks, quotes and payments. Deleting a customer does not
// cascade; referencing rows keep their customer_id.
type Customer struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Company   string
	Email     string
	Phone     string
	Address   string
	Status    Status
	CreatedAt time.Time
	UpdatedAt *time.Time
}
