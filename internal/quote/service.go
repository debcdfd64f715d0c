package quote

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/money"
	"github.com/emrekole/takip/internal/task"
)

// ApprovedTitleSuffix marks tasks derived from an approved quote.
const ApprovedTitleSuffix = " (Onaylanan Teklif)"

// DefaultUnit is used when a quote has no items to take a unit from.
const DefaultUnit = "adet"

//go:generate mockgen -source=service.go -destination=service_mock.go -package=quote
type Repository interface {
	CreateQuote(ctx context.Context, q *Quote) error
	GetQuote(ctx context.Context, id uuid.UUID) (*Quote, error)
	ListQuotes(ctx context.Context, filter ListFilter) ([]*Quote, error)
	UpdateQuote(ctx context.Context, q *Quote) error
	DeleteQuote(ctx context.Context, id uuid.UUID) error

	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context, quoteID uuid.UUID) ([]*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// Tasks is the slice of the task service the approval pipeline depends on.
type Tasks interface {
	FindBySourceQuote(ctx context.Context, quoteID uuid.UUID) (*task.Task, error)
	Create(ctx context.Context, params task.CreateParams) (*task.Task, error)
}

type Service struct {
	repo  Repository
	tasks Tasks
}

func NewService(repo Repository, tasks Tasks) *Service {
	return &Service{repo: repo, tasks: tasks}
}

type CreateParams struct {
	CustomerID  uuid.UUID
	Title       string
	Description string
	HasVAT      bool
	VATRate     decimal.Decimal
	QuoteDate   time.Time
	ValidUntil  *time.Time
}

type UpdateParams struct {
	Title       *string
	Description *string
	HasVAT      *bool
	VATRate     *decimal.Decimal
	Status      *Status
	IsApproved  *bool
	QuoteDate   *time.Time
	ValidUntil  *time.Time
}

type ListFilter struct {
	CustomerID *uuid.UUID
	UserID     *uuid.UUID
	Status     *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Quote, error) {
	rate := params.VATRate
	if params.HasVAT && rate.IsZero() {
		rate = money.DefaultVATRate
	}

	quoteDate := params.QuoteDate
	if quoteDate.IsZero() {
		quoteDate = time.Now()
	}

	q := &Quote{
		CustomerID:   params.CustomerID,
		Title:        params.Title,
		Description:  params.Description,
		TotalAmount:  decimal.Zero,
		HasVAT:       params.HasVAT,
		VATRate:      rate,
		VATAmount:    decimal.Zero,
		TotalWithVAT: decimal.Zero,
		Status:       StatusPending,
		QuoteDate:    quoteDate,
		ValidUntil:   params.ValidUntil,
	}
	if err := s.repo.CreateQuote(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Quote, error) {
	return s.repo.GetQuote(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Quote, error) {
	return s.repo.ListQuotes(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteQuote(ctx, id)
}

// Update applies the requested field changes unconditionally, then runs the
// approval pipeline when this update sets both IsApproved=true and
// Status=approved. Setting only one of the two never derives a task.
//
// Task derivation is best-effort: a failure there is logged and the updated
// quote is still returned, because the quote update itself is the primary
// operation.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Quote, error) {
	q, err := s.repo.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		q.Title = *params.Title
	}

	if params.Description != nil {
		q.Description = *params.Description
	}

	if params.QuoteDate != nil {
		q.QuoteDate = *params.QuoteDate
	}

	if params.ValidUntil != nil {
		q.ValidUntil = params.ValidUntil
	}

	if params.Status != nil {
		q.Status = *params.Status
	}

	if params.IsApproved != nil {
		q.IsApproved = *params.IsApproved
	}

	if params.HasVAT != nil || params.VATRate != nil {
		if params.HasVAT != nil {
			q.HasVAT = *params.HasVAT
		}

		if params.VATRate != nil {
			q.VATRate = *params.VATRate
		}

		q.VATAmount, q.TotalWithVAT = money.Derive(q.TotalAmount, q.HasVAT, q.VATRate)
	}

	if err := s.repo.UpdateQuote(ctx, q); err != nil {
		return nil, err
	}

	approving := params.IsApproved != nil && *params.IsApproved &&
		params.Status != nil && *params.Status == StatusApproved
	if approving {
		s.deriveTask(ctx, q)
	}

	return q, nil
}

// deriveTask turns an approved quote into a pending customer task, exactly
// once per quote: the task's source_quote_id is the idempotency key, so
// repeated approval calls and retries find the existing task and stop.
func (s *Service) deriveTask(ctx context.Context, q *Quote) {
	_, err := s.tasks.FindBySourceQuote(ctx, q.ID)
	if err == nil {
		return
	}

	if !errors.Is(err, task.ErrNotFound) {
		slog.Warn("quote approval: derived-task lookup failed", "quote_id", q.ID, "error", err)
		return
	}

	finalAmount := q.TotalAmount
	if q.HasVAT && q.TotalWithVAT.IsPositive() {
		finalAmount = q.TotalWithVAT
	}

	items, err := s.repo.ListItems(ctx, q.ID)
	if err != nil {
		slog.Warn("quote approval: listing items failed", "quote_id", q.ID, "error", err)
		return
	}

	totalQuantity := decimal.Zero
	for _, item := range items {
		totalQuantity = totalQuantity.Add(item.Quantity)
	}

	if totalQuantity.IsZero() {
		totalQuantity = decimal.NewFromInt(1)
	}

	unit := DefaultUnit
	if len(items) > 0 && items[0].Unit != "" {
		unit = items[0].Unit
	}

	// finalAmount is already VAT-inclusive when the quote has VAT, so the
	// derived task carries it as a plain amount.
	_, err = s.tasks.Create(ctx, task.CreateParams{
		CustomerID:    q.CustomerID,
		SourceQuoteID: &q.ID,
		Title:         q.Title + ApprovedTitleSuffix,
		Quantity:      totalQuantity,
		Unit:          unit,
		UnitPrice:     finalAmount.Div(totalQuantity).Round(2),
		Amount:        finalAmount,
		Status:        task.StatusPending,
	})
	if err != nil {
		slog.Warn("quote approval: task creation failed", "quote_id", q.ID, "error", err)
	}
}

type ItemCreateParams struct {
	QuoteID     uuid.UUID
	Title       string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

type ItemUpdateParams struct {
	Title       *string
	Description *string
	Quantity    *decimal.Decimal
	Unit        *string
	UnitPrice   *decimal.Decimal
	TotalPrice  *decimal.Decimal
	Status      *Status
	IsApproved  *bool
}

func (s *Service) CreateItem(ctx context.Context, params ItemCreateParams) (*Item, error) {
	item := &Item{
		QuoteID:     params.QuoteID,
		Title:       params.Title,
		Description: params.Description,
		Quantity:    params.Quantity,
		Unit:        params.Unit,
		UnitPrice:   params.UnitPrice,
		TotalPrice:  params.TotalPrice,
		Status:      StatusPending,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	if err := s.recomputeTotals(ctx, params.QuoteID); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, quoteID uuid.UUID) ([]*Item, error) {
	return s.repo.ListItems(ctx, quoteID)
}

func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, params ItemUpdateParams) (*Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		item.Title = *params.Title
	}

	if params.Description != nil {
		item.Description = *params.Description
	}

	if params.Quantity != nil {
		item.Quantity = *params.Quantity
	}

	if params.Unit != nil {
		item.Unit = *params.Unit
	}

	if params.UnitPrice != nil {
		item.UnitPrice = *params.UnitPrice
	}

	if params.TotalPrice != nil {
		item.TotalPrice = *params.TotalPrice
	}

	if params.Status != nil {
		item.Status = *params.Status
	}

	if params.IsApproved != nil {
		item.IsApproved = *params.IsApproved
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	if err := s.recomputeTotals(ctx, item.QuoteID); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}

	return s.recomputeTotals(ctx, item.QuoteID)
}

// recomputeTotals rewrites the quote's totalAmount/vatAmount/totalWithVAT from
// the sum of its current items, synchronously with the item mutation that
// triggered it. A quote deleted concurrently is not an error for the item
// mutation's caller.
func (s *Service) recomputeTotals(ctx context.Context, quoteID uuid.UUID) error {
	q, err := s.repo.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Warn("quote totals: quote gone, skipping recompute", "quote_id", quoteID)
			return nil
		}

		return err
	}

	items, err := s.repo.ListItems(ctx, quoteID)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}

	q.TotalAmount = total
	q.VATAmount, q.TotalWithVAT = money.Derive(total, q.HasVAT, q.VATRate)

	return s.repo.UpdateQuote(ctx, q)
}
