package summary

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/ledger"
	"github.com/emrekole/takip/internal/payment"
	"github.com/emrekole/takip/internal/quote"
	"github.com/emrekole/takip/internal/task"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=summary
type TransactionSource interface {
	List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error)
}

type TaskSource interface {
	List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error)
}

type QuoteSource interface {
	List(ctx context.Context, filter quote.ListFilter) ([]*quote.Quote, error)
}

type PaymentSource interface {
	List(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error)
}

type Service struct {
	transactions TransactionSource
	tasks        TaskSource
	quotes       QuoteSource
	payments     PaymentSource
	now          func() time.Time
}

// NewService wires the four read sources. now decides which calendar month
// counts as "this month" and defaults to the server clock.
func NewService(transactions TransactionSource, tasks TaskSource, quotes QuoteSource, payments PaymentSource, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		transactions: transactions,
		tasks:        tasks,
		quotes:       quotes,
		payments:     payments,
		now:          now,
	}
}

// Compute builds the financial summary for a user. It is a pure read: every
// figure is summed from the stores on each call.
func (s *Service) Compute(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	sum := &Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		NetBalance:    decimal.Zero,
		CustomerTasks: TaskSummary{Total: decimal.Zero},
		CustomerQuotes: QuoteSummary{
			PendingTotal:  decimal.Zero,
			ApprovedTotal: decimal.Zero,
		},
		CustomerPayments: PaymentSummary{
			Total:     decimal.Zero,
			ThisMonth: decimal.Zero,
		},
	}

	txs, err := s.transactions.List(ctx, ledger.ListFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	for _, tx := range txs {
		switch tx.Type {
		case ledger.TypeIncome:
			sum.TotalIncome = sum.TotalIncome.Add(tx.Amount)
		case ledger.TypeExpense:
			sum.TotalExpenses = sum.TotalExpenses.Add(tx.Amount)
		}
	}

	sum.NetBalance = sum.TotalIncome.Sub(sum.TotalExpenses)

	tasks, err := s.tasks.List(ctx, task.ListFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	for _, t := range tasks {
		sum.CustomerTasks.Total = sum.CustomerTasks.Total.Add(t.Amount)

		if t.Status == task.StatusCompleted {
			sum.CustomerTasks.Completed++
		} else {
			sum.CustomerTasks.Pending++
		}
	}

	quotes, err := s.quotes.List(ctx, quote.ListFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	for _, q := range quotes {
		if q.IsApproved {
			sum.CustomerQuotes.ApprovedTotal = sum.CustomerQuotes.ApprovedTotal.Add(q.TotalAmount)
			sum.CustomerQuotes.ApprovedCount++
		} else {
			sum.CustomerQuotes.PendingTotal = sum.CustomerQuotes.PendingTotal.Add(q.TotalAmount)
			sum.CustomerQuotes.PendingCount++
		}
	}

	payments, err := s.payments.List(ctx, payment.ListFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	nowYear, nowMonth, _ := s.now().Date()

	for _, p := range payments {
		sum.CustomerPayments.Total = sum.CustomerPayments.Total.Add(p.Amount)

		y, m, _ := p.PaymentDate.Date()
		if y == nowYear && m == nowMonth {
			sum.CustomerPayments.ThisMonth = sum.CustomerPayments.ThisMonth.Add(p.Amount)
		}
	}

	return sum, nil
}
