package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/ledger"
)

// amountTolerance bounds the amount difference accepted by the legacy mirror
// matcher, which predates the source_payment_id column.
var amountTolerance = decimal.New(1, -2)

type mirrorSpec struct {
	txType       ledger.Type
	category     string
	unknownParty string
}

var mirrorSpecs = map[Kind]mirrorSpec{
	KindCustomer:   {txType: ledger.TypeIncome, category: "Müşteri Ödemesi", unknownParty: "Bilinmeyen Müşteri"},
	KindContractor: {txType: ledger.TypeExpense, category: "Yüklenici Ödemesi", unknownParty: "Bilinmeyen Yüklenici"},
	KindPersonnel:  {txType: ledger.TypeExpense, category: "Maaş Ödemesi", unknownParty: "Bilinmeyen Personel"},
}

//go:generate mockgen -source=service.go -destination=service_mock.go -package=payment
type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, filter ListFilter) ([]*Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
	PartyName(ctx context.Context, kind Kind, id uuid.UUID) (string, error)
}

// Ledger is the slice of the ledger service payments need for mirroring.
type Ledger interface {
	Create(ctx context.Context, params ledger.CreateParams) (*ledger.Transaction, error)
	DeleteBySourcePayment(ctx context.Context, paymentID uuid.UUID) (int64, error)
	List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo   Repository
	ledger Ledger
}

func NewService(repo Repository, l Ledger) *Service {
	return &Service{repo: repo, ledger: l}
}

type CreateParams struct {
	UserID        uuid.UUID
	Kind          Kind
	PartyID       uuid.UUID
	Amount        decimal.Decimal
	Description   string
	PaymentDate   time.Time
	PaymentMethod string
}

type ListFilter struct {
	UserID  *uuid.UUID
	Kind    *Kind
	PartyID *uuid.UUID
}

// Record inserts the payment and mirrors it into the ledger: income for
// customer payments, expense for contractor and personnel payments. The
// payment is the primary record; a mirror failure is logged and the payment
// stands.
func (s *Service) Record(ctx context.Context, params CreateParams) (*Payment, error) {
	p := &Payment{
		UserID:        params.UserID,
		Kind:          params.Kind,
		PartyID:       params.PartyID,
		Amount:        params.Amount,
		Description:   params.Description,
		PaymentDate:   params.PaymentDate,
		PaymentMethod: params.PaymentMethod,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	spec := mirrorSpecs[p.Kind]

	_, err := s.ledger.Create(ctx, ledger.CreateParams{
		UserID:          p.UserID,
		Type:            spec.txType,
		Amount:          p.Amount,
		Description:     fmt.Sprintf("%s - %s: %s", s.partyName(ctx, p), spec.category, p.Description),
		Category:        spec.category,
		Date:            p.PaymentDate,
		SourcePaymentID: &p.ID,
	})
	if err != nil {
		slog.Warn("payment recorded but ledger mirror failed", "payment_id", p.ID, "error", err)
	}

	return p, nil
}

// partyName resolves the payee's display name. Lookup failures never abort
// the payment; the kind's placeholder name is used instead.
func (s *Service) partyName(ctx context.Context, p *Payment) string {
	name, err := s.repo.PartyName(ctx, p.Kind, p.PartyID)
	if err != nil || name == "" {
		if err != nil {
			slog.Warn("party lookup failed", "payment_id", p.ID, "kind", p.Kind, "error", err)
		}

		return mirrorSpecs[p.Kind].unknownParty
	}

	return name
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}

// Delete removes the payment and reverses its ledger mirror. Ledger cleanup
// is best-effort: deleting a payment whose mirror is already gone still
// succeeds.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reverseMirror(ctx, p); err != nil {
		slog.Warn("ledger cleanup failed; deleting payment anyway", "payment_id", p.ID, "error", err)
	}

	return s.repo.DeletePayment(ctx, id)
}

// reverseMirror deletes the ledger entry the payment produced. Rows written
// since the source_payment_id column exist are found by that key; older rows
// fall back to the legacy match on party name, category marker, amount within
// tolerance and the same calendar day.
func (s *Service) reverseMirror(ctx context.Context, p *Payment) error {
	affected, err := s.ledger.DeleteBySourcePayment(ctx, p.ID)
	if err != nil {
		return err
	}

	if affected > 0 {
		return nil
	}

	spec := mirrorSpecs[p.Kind]
	name := s.partyName(ctx, p)

	y, m, d := p.PaymentDate.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, p.PaymentDate.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	txs, err := s.ledger.List(ctx, ledger.ListFilter{
		Type:      &spec.txType,
		StartDate: &dayStart,
		EndDate:   &dayEnd,
	})
	if err != nil {
		return err
	}

	for _, tx := range txs {
		if !strings.Contains(tx.Description, name) || !strings.Contains(tx.Description, spec.category) {
			continue
		}

		if tx.Amount.Sub(p.Amount).Abs().GreaterThanOrEqual(amountTolerance) {
			continue
		}

		return s.ledger.Delete(ctx, tx.ID)
	}

	slog.Warn("no ledger mirror found for payment; nothing to reverse", "payment_id", p.ID)

	return nil
}
