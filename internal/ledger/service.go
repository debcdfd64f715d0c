package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	DeleteBySourcePayment(ctx context.Context, paymentID uuid.UUID) (int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID          uuid.UUID
	Type            Type
	Amount          decimal.Decimal
	Description     string
	Category        string
	Date            time.Time
	SourcePaymentID *uuid.UUID
}

type ListFilter struct {
	UserID    *uuid.UUID
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		UserID:          params.UserID,
		Type:            params.Type,
		Amount:          params.Amount,
		Description:     params.Description,
		Category:        params.Category,
		Date:            params.Date,
		SourcePaymentID: params.SourcePaymentID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// DeleteBySourcePayment removes the ledger entries mirrored from the given
// payment and reports how many rows were affected.
func (s *Service) DeleteBySourcePayment(ctx context.Context, paymentID uuid.UUID) (int64, error) {
	return s.repo.DeleteBySourcePayment(ctx, paymentID)
}
