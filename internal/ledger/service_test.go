package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/emrekole/takip/internal/ledger"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    ledger.CreateParams
		setupMock func(m *ledger.MockRepository)
		wantErr   bool
	}

	userID := uuid.New()

	tests := []testCase{
		{
			name: "Success",
			params: ledger.CreateParams{
				UserID:      userID,
				Type:        ledger.TypeIncome,
				Amount:      decimal.RequireFromString("1500.00"),
				Description: "Danışmanlık",
				Category:    "Hizmet",
				Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "RepoError",
			params: ledger.CreateParams{
				UserID: userID,
				Type:   ledger.TypeExpense,
				Amount: decimal.RequireFromString("42"),
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.params.Type, got.Type)
		})
	}
}

func TestService_DeleteBySourcePayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	paymentID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteBySourcePayment(gomock.Any(), paymentID).
		Return(int64(1), nil)

	svc := ledger.NewService(repo)
	affected, err := svc.DeleteBySourcePayment(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}
