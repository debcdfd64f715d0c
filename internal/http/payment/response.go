package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/payment"
)

type paymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Kind          payment.Kind    `json:"kind"`
	PartyID       uuid.UUID       `json:"party_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		Kind:          p.Kind,
		PartyID:       p.PartyID,
		Amount:        p.Amount,
		Description:   p.Description,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		CreatedAt:     p.CreatedAt,
	}
}

func toResponseList(payments []*payment.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toResponse(p)
	}

	return resp
}
