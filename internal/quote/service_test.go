package quote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/emrekole/takip/internal/quote"
	"github.com/emrekole/takip/internal/task"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(quoteID uuid.UUID, qty, unitPrice, totalPrice string) *quote.Item {
	return &quote.Item{
		ID:         uuid.New(),
		QuoteID:    quoteID,
		Quantity:   d(qty),
		Unit:       "adet",
		UnitPrice:  d(unitPrice),
		TotalPrice: d(totalPrice),
		Status:     quote.StatusPending,
	}
}

func TestService_CreateItem_RecomputesTotals(t *testing.T) {
	type testCase struct {
		name       string
		hasVAT     bool
		vatRate    string
		itemTotals []string
		wantTotal  string
		wantVAT    string
		wantGross  string
	}

	tests := []testCase{
		{
			name:       "NoVAT",
			hasVAT:     false,
			vatRate:    "20",
			itemTotals: []string{"200", "50"},
			wantTotal:  "250",
			wantVAT:    "0",
			wantGross:  "250",
		},
		{
			name:       "WithVAT",
			hasVAT:     true,
			vatRate:    "20",
			itemTotals: []string{"600", "400"},
			wantTotal:  "1000",
			wantVAT:    "200",
			wantGross:  "1200",
		},
		{
			name:       "SingleItemFractional",
			hasVAT:     true,
			vatRate:    "18",
			itemTotals: []string{"33.33"},
			wantTotal:  "33.33",
			wantVAT:    "6",
			wantGross:  "39.33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			quoteID := uuid.New()
			q := &quote.Quote{
				ID:      quoteID,
				HasVAT:  tt.hasVAT,
				VATRate: d(tt.vatRate),
				Status:  quote.StatusPending,
			}

			items := make([]*quote.Item, len(tt.itemTotals))
			for i, total := range tt.itemTotals {
				items[i] = item(quoteID, "1", total, total)
			}

			repo := quote.NewMockRepository(ctrl)
			repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil)
			repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(q, nil)
			repo.EXPECT().ListItems(gomock.Any(), quoteID).Return(items, nil)
			repo.EXPECT().
				UpdateQuote(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, updated *quote.Quote) error {
					assert.True(t, d(tt.wantTotal).Equal(updated.TotalAmount), "total %s", updated.TotalAmount)
					assert.True(t, d(tt.wantVAT).Equal(updated.VATAmount), "vat %s", updated.VATAmount)
					assert.True(t, d(tt.wantGross).Equal(updated.TotalWithVAT), "gross %s", updated.TotalWithVAT)
					return nil
				})

			svc := quote.NewService(repo, quote.NewMockTasks(ctrl))

			_, err := svc.CreateItem(context.Background(), quote.ItemCreateParams{
				QuoteID:    quoteID,
				Title:      "Kalem",
				Quantity:   d("1"),
				Unit:       "adet",
				UnitPrice:  d(tt.itemTotals[0]),
				TotalPrice: d(tt.itemTotals[0]),
			})
			require.NoError(t, err)
		})
	}
}

func TestService_DeleteItem_RecomputesTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoteID := uuid.New()
	victim := item(quoteID, "1", "100", "100")
	remaining := item(quoteID, "2", "50", "100")

	repo := quote.NewMockRepository(ctrl)
	repo.EXPECT().GetItem(gomock.Any(), victim.ID).Return(victim, nil)
	repo.EXPECT().DeleteItem(gomock.Any(), victim.ID).Return(nil)
	repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(&quote.Quote{ID: quoteID, VATRate: d("20")}, nil)
	repo.EXPECT().ListItems(gomock.Any(), quoteID).Return([]*quote.Item{remaining}, nil)
	repo.EXPECT().
		UpdateQuote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *quote.Quote) error {
			assert.True(t, d("100").Equal(updated.TotalAmount), "total %s", updated.TotalAmount)
			return nil
		})

	svc := quote.NewService(repo, quote.NewMockTasks(ctrl))
	require.NoError(t, svc.DeleteItem(context.Background(), victim.ID))
}

func TestService_CreateItem_QuoteGoneIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoteID := uuid.New()

	repo := quote.NewMockRepository(ctrl)
	repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(nil, quote.ErrNotFound)

	svc := quote.NewService(repo, quote.NewMockTasks(ctrl))

	_, err := svc.CreateItem(context.Background(), quote.ItemCreateParams{
		QuoteID:    quoteID,
		Title:      "Kalem",
		Quantity:   d("1"),
		UnitPrice:  d("10"),
		TotalPrice: d("10"),
	})
	assert.NoError(t, err)
}

func approvalParams() quote.UpdateParams {
	approved := true
	status := quote.StatusApproved

	return quote.UpdateParams{IsApproved: &approved, Status: &status}
}

func TestService_Update_ApprovalDerivesTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoteID := uuid.New()
	customerID := uuid.New()
	q := &quote.Quote{
		ID:          quoteID,
		CustomerID:  customerID,
		Title:       "Çatı Onarımı",
		TotalAmount: d("250"),
		VATRate:     d("20"),
		Status:      quote.StatusPending,
	}

	// Two items: (qty=2, unitPrice=100) and (qty=1, unitPrice=50).
	items := []*quote.Item{
		item(quoteID, "2", "100", "200"),
		item(quoteID, "1", "50", "50"),
	}

	repo := quote.NewMockRepository(ctrl)
	repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(q, nil)
	repo.EXPECT().UpdateQuote(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().ListItems(gomock.Any(), quoteID).Return(items, nil)

	tasks := quote.NewMockTasks(ctrl)
	tasks.EXPECT().FindBySourceQuote(gomock.Any(), quoteID).Return(nil, task.ErrNotFound)
	tasks.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params task.CreateParams) (*task.Task, error) {
			assert.Equal(t, customerID, params.CustomerID)
			require.NotNil(t, params.SourceQuoteID)
			assert.Equal(t, quoteID, *params.SourceQuoteID)
			assert.Equal(t, "Çatı Onarımı (Onaylanan Teklif)", params.Title)
			assert.True(t, d("250").Equal(params.Amount), "amount %s", params.Amount)
			assert.True(t, d("3").Equal(params.Quantity), "quantity %s", params.Quantity)
			assert.True(t, d("83.33").Equal(params.UnitPrice), "unit price %s", params.UnitPrice)
			assert.Equal(t, "adet", params.Unit)
			assert.Equal(t, task.StatusPending, params.Status)
			assert.Nil(t, params.DueDate)
			return &task.Task{ID: uuid.New()}, nil
		})

	svc := quote.NewService(repo, tasks)

	got, err := svc.Update(context.Background(), quoteID, approvalParams())
	require.NoError(t, err)
	assert.Equal(t, quote.StatusApproved, got.Status)
	assert.True(t, got.IsApproved)
}

func TestService_Update_ApprovalIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoteID := uuid.New()
	q := &quote.Quote{
		ID:          quoteID,
		CustomerID:  uuid.New(),
		Title:       "Boya",
		TotalAmount: d("500"),
		VATRate:     d("20"),
		Status:      quote.StatusApproved,
		IsApproved:  true,
	}

	repo := quote.NewMockRepository(ctrl)
	repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(q, nil)
	repo.EXPECT().UpdateQuote(gomock.Any(), gomock.Any()).Return(nil)

	tasks := quote.NewMockTasks(ctrl)
	// The derived task already exists, so no second one may be created.
	tasks.EXPECT().
		FindBySourceQuote(gomock.Any(), quoteID).
		Return(&task.Task{ID: uuid.New()}, nil)

	svc := quote.NewService(repo, tasks)

	_, err := svc.Update(context.Background(), quoteID, approvalParams())
	require.NoError(t, err)
}

func TestService_Update_ApprovalRequiresBothFlags(t *testing.T) {
	approved := true
	statusApproved := quote.StatusApproved

	type testCase struct {
		name   string
		params quote.UpdateParams
	}

	tests := []testCase{
		{name: "StatusOnly", params: quote.UpdateParams{Status: &statusApproved}},
		{name: "IsApprovedOnly", params: quote.UpdateParams{IsApproved: &approved}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			quoteID := uuid.New()

			repo := quote.NewMockRepository(ctrl)
			repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(&quote.Quote{
				ID:      quoteID,
				VATRate: d("20"),
				Status:  quote.StatusPending,
			}, nil)
			repo.EXPECT().UpdateQuote(gomock.Any(), gomock.Any()).Return(nil)

			// No task lookup or creation may happen.
			tasks := quote.NewMockTasks(ctrl)

			svc := quote.NewService(repo, tasks)

			_, err := svc.Update(context.Background(), quoteID, tt.params)
			require.NoError(t, err)
		})
	}
}

func TestService_Update_ApprovalUsesVATInclusiveAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoteID := uuid.New()
	q := &quote.Quote{
		ID:           quoteID,
		CustomerID:   uuid.New(),
		Title:        "Tesisat",
		TotalAmount:  d("1000"),
		HasVAT:       true,
		VATRate:      d("20"),
		VATAmount:    d("200"),
		TotalWithVAT: d("1200"),
		Status:       quote.StatusPending,
	}

	repo := quote.NewMockRepository(ctrl)
	repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(q, nil)
	repo.EXPECT().UpdateQuote(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().ListItems(gomock.Any(), quoteID).Return([]*quote.Item{
		item(quoteID, "4", "250", "1000"),
	}, nil)

	tasks := quote.NewMockTasks(ctrl)
	tasks.EXPECT().FindBySourceQuote(gomock.Any(), quoteID).Return(nil, task.ErrNotFound)
	tasks.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params task.CreateParams) (*task.Task, error) {
			assert.True(t, d("1200").Equal(params.Amount), "amount %s", params.Amount)
			assert.True(t, d("300").Equal(params.UnitPrice), "unit price %s", params.UnitPrice)
			return &task.Task{ID: uuid.New()}, nil
		})

	svc := quote.NewService(repo, tasks)

	_, err := svc.Update(context.Background(), quoteID, approvalParams())
	require.NoError(t, err)
}

func TestService_Update_ApprovalWithoutItemsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoteID := uuid.New()
	q := &quote.Quote{
		ID:          quoteID,
		CustomerID:  uuid.New(),
		Title:       "Götürü İş",
		TotalAmount: d("750"),
		VATRate:     d("20"),
		Status:      quote.StatusPending,
	}

	repo := quote.NewMockRepository(ctrl)
	repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(q, nil)
	repo.EXPECT().UpdateQuote(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().ListItems(gomock.Any(), quoteID).Return(nil, nil)

	tasks := quote.NewMockTasks(ctrl)
	tasks.EXPECT().FindBySourceQuote(gomock.Any(), quoteID).Return(nil, task.ErrNotFound)
	tasks.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params task.CreateParams) (*task.Task, error) {
			assert.True(t, d("1").Equal(params.Quantity), "quantity %s", params.Quantity)
			assert.Equal(t, "adet", params.Unit)
			assert.True(t, d("750").Equal(params.UnitPrice), "unit price %s", params.UnitPrice)
			return &task.Task{ID: uuid.New()}, nil
		})

	svc := quote.NewService(repo, tasks)

	_, err := svc.Update(context.Background(), quoteID, approvalParams())
	require.NoError(t, err)
}

func TestService_Update_TaskFailureDoesNotFailApproval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoteID := uuid.New()
	q := &quote.Quote{
		ID:          quoteID,
		CustomerID:  uuid.New(),
		Title:       "Zemin",
		TotalAmount: d("100"),
		VATRate:     d("20"),
		Status:      quote.StatusPending,
	}

	repo := quote.NewMockRepository(ctrl)
	repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(q, nil)
	repo.EXPECT().UpdateQuote(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().ListItems(gomock.Any(), quoteID).Return(nil, nil)

	tasks := quote.NewMockTasks(ctrl)
	tasks.EXPECT().FindBySourceQuote(gomock.Any(), quoteID).Return(nil, task.ErrNotFound)
	tasks.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	svc := quote.NewService(repo, tasks)

	got, err := svc.Update(context.Background(), quoteID, approvalParams())
	require.NoError(t, err)
	assert.Equal(t, quote.StatusApproved, got.Status)
}

func TestService_Update_VATChangeRecomputesFromTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoteID := uuid.New()
	hasVAT := true

	repo := quote.NewMockRepository(ctrl)
	repo.EXPECT().GetQuote(gomock.Any(), quoteID).Return(&quote.Quote{
		ID:          quoteID,
		TotalAmount: d("1000"),
		VATRate:     d("20"),
		Status:      quote.StatusPending,
	}, nil)
	repo.EXPECT().
		UpdateQuote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *quote.Quote) error {
			assert.True(t, d("200").Equal(updated.VATAmount), "vat %s", updated.VATAmount)
			assert.True(t, d("1200").Equal(updated.TotalWithVAT), "gross %s", updated.TotalWithVAT)
			return nil
		})

	svc := quote.NewService(repo, quote.NewMockTasks(ctrl))

	_, err := svc.Update(context.Background(), quoteID, quote.UpdateParams{HasVAT: &hasVAT})
	require.NoError(t, err)
}
