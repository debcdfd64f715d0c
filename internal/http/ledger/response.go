package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/ledger"
)

type transactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	Type            ledger.Type     `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category,omitempty"`
	Date            time.Time       `json:"date"`
	SourcePaymentID *uuid.UUID      `json:"source_payment_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		Type:            tx.Type,
		Amount:          tx.Amount,
		Description:     tx.Description,
		Category:        tx.Category,
		Date:            tx.Date,
		SourcePaymentID: tx.SourcePaymentID,
		CreatedAt:       tx.CreatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
