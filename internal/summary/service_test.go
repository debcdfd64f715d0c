package summary_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/emrekole/takip/internal/ledger"
	"github.com/emrekole/takip/internal/payment"
	"github.com/emrekole/takip/internal/quote"
	"github.com/emrekole/takip/internal/summary"
	"github.com/emrekole/takip/internal/task"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type sources struct {
	transactions *summary.MockTransactionSource
	tasks        *summary.MockTaskSource
	quotes       *summary.MockQuoteSource
	payments     *summary.MockPaymentSource
}

func newSources(ctrl *gomock.Controller) sources {
	return sources{
		transactions: summary.NewMockTransactionSource(ctrl),
		tasks:        summary.NewMockTaskSource(ctrl),
		quotes:       summary.NewMockQuoteSource(ctrl),
		payments:     summary.NewMockPaymentSource(ctrl),
	}
}

func (s sources) service(now func() time.Time) *summary.Service {
	return summary.NewService(s.transactions, s.tasks, s.quotes, s.payments, now)
}

func TestService_Compute_EmptyStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newSources(ctrl)
	src.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	src.tasks.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	src.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	src.payments.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	got, err := src.service(nil).Compute(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.True(t, got.TotalIncome.IsZero())
	assert.True(t, got.TotalExpenses.IsZero())
	assert.True(t, got.NetBalance.IsZero())
	assert.True(t, got.CustomerPayments.ThisMonth.IsZero())
}

func TestService_Compute_NetBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newSources(ctrl)
	src.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*ledger.Transaction{
		{Type: ledger.TypeIncome, Amount: d("1000.50")},
		{Type: ledger.TypeIncome, Amount: d("250.25")},
		{Type: ledger.TypeExpense, Amount: d("400.00")},
	}, nil)
	src.tasks.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	src.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	src.payments.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	got, err := src.service(nil).Compute(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.True(t, d("1250.75").Equal(got.TotalIncome), "income %s", got.TotalIncome)
	assert.True(t, d("400.00").Equal(got.TotalExpenses), "expenses %s", got.TotalExpenses)
	assert.True(t, got.TotalIncome.Sub(got.TotalExpenses).Equal(got.NetBalance), "net %s", got.NetBalance)
}

func TestService_Compute_TaskAndQuoteBreakdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newSources(ctrl)
	src.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	src.tasks.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*task.Task{
		{Amount: d("100"), Status: task.StatusPending},
		{Amount: d("200"), Status: task.StatusInProgress},
		{Amount: d("300"), Status: task.StatusCompleted},
	}, nil)
	src.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*quote.Quote{
		{TotalAmount: d("500"), IsApproved: true},
		{TotalAmount: d("700"), IsApproved: false},
		{TotalAmount: d("300"), IsApproved: false},
	}, nil)
	src.payments.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	got, err := src.service(nil).Compute(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.True(t, d("600").Equal(got.CustomerTasks.Total), "task total %s", got.CustomerTasks.Total)
	assert.Equal(t, 2, got.CustomerTasks.Pending)
	assert.Equal(t, 1, got.CustomerTasks.Completed)

	assert.True(t, d("500").Equal(got.CustomerQuotes.ApprovedTotal))
	assert.True(t, d("1000").Equal(got.CustomerQuotes.PendingTotal))
	assert.Equal(t, 1, got.CustomerQuotes.ApprovedCount)
	assert.Equal(t, 2, got.CustomerQuotes.PendingCount)
}

func TestService_Compute_PaymentsThisMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}

	src := newSources(ctrl)
	src.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	src.tasks.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	src.quotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	src.payments.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*payment.Payment{
		{Amount: d("100"), PaymentDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Amount: d("200"), PaymentDate: time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)},
		{Amount: d("400"), PaymentDate: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
		{Amount: d("800"), PaymentDate: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)},
	}, nil)

	got, err := src.service(now).Compute(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.True(t, d("1500").Equal(got.CustomerPayments.Total), "total %s", got.CustomerPayments.Total)
	assert.True(t, d("300").Equal(got.CustomerPayments.ThisMonth), "this month %s", got.CustomerPayments.ThisMonth)
}
