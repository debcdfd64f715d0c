package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=task
type Repository interface {
	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter ListFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, t *Task) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteTask(ctx context.Context, id uuid.UUID) error
	FindBySourceQuote(ctx context.Context, quoteID uuid.UUID) (*Task, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
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
	Status        Status
	DueDate       *time.Time
}

type UpdateParams struct {
	Title       *string
	Description *string
	Quantity    *decimal.Decimal
	Unit        *string
	UnitPrice   *decimal.Decimal
	Amount      *decimal.Decimal
	HasVAT      *bool
	VATRate     *decimal.Decimal
	Status      *Status
	DueDate     *time.Time
}

type ListFilter struct {
	CustomerID *uuid.UUID
	UserID     *uuid.UUID
	Status     *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Task, error) {
	rate := params.VATRate
	if params.HasVAT && rate.IsZero() {
		rate = money.DefaultVATRate
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}

	t := &Task{
		CustomerID:    params.CustomerID,
		SourceQuoteID: params.SourceQuoteID,
		Title:         params.Title,
		Description:   params.Description,
		Quantity:      params.Quantity,
		Unit:          params.Unit,
		UnitPrice:     params.UnitPrice,
		Amount:        params.Amount,
		HasVAT:        params.HasVAT,
		VATRate:       rate,
		Status:        status,
		DueDate:       params.DueDate,
	}
	t.VATAmount, t.TotalWithVAT = money.Derive(t.Amount, t.HasVAT, t.VATRate)

	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.GetTask(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Task, error) {
	return s.repo.ListTasks(ctx, filter)
}

// Update applies the given field changes. The amount is stored independently
// of quantity and unit price, so it only moves when the caller sends it; the
// VAT pair is re-derived whenever amount, hasVAT or vatRate changed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Task, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		t.Title = *params.Title
	}

	if params.Description != nil {
		t.Description = *params.Description
	}

	if params.Quantity != nil {
		t.Quantity = *params.Quantity
	}

	if params.Unit != nil {
		t.Unit = *params.Unit
	}

	if params.UnitPrice != nil {
		t.UnitPrice = *params.UnitPrice
	}

	if params.Status != nil {
		t.Status = *params.Status
	}

	if params.DueDate != nil {
		t.DueDate = params.DueDate
	}

	if params.Amount != nil || params.HasVAT != nil || params.VATRate != nil {
		if params.Amount != nil {
			t.Amount = *params.Amount
		}

		if params.HasVAT != nil {
			t.HasVAT = *params.HasVAT
		}

		if params.VATRate != nil {
			t.VATRate = *params.VATRate
		}

		t.VATAmount, t.TotalWithVAT = money.Derive(t.Amount, t.HasVAT, t.VATRate)
	}

	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTask(ctx, id)
}

// FindBySourceQuote returns the task derived from the given quote, or
// ErrNotFound when the quote never produced one.
func (s *Service) FindBySourceQuote(ctx context.Context, quoteID uuid.UUID) (*Task, error) {
	return s.repo.FindBySourceQuote(ctx, quoteID)
}
