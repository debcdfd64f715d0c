package task

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/task"
)

type taskResponse struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	SourceQuoteID *uuid.UUID      `json:"source_quote_id,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Amount        decimal.Decimal `json:"amount"`
	HasVAT        bool            `json:"has_vat"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	TotalWithVAT  decimal.Decimal `json:"total_with_vat"`
	Status        task.Status     `json:"status"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(t *task.Task) taskResponse {
	return taskResponse{
		ID:            t.ID,
		CustomerID:    t.CustomerID,
		SourceQuoteID: t.SourceQuoteID,
		Title:         t.Title,
		Description:   t.Description,
		Quantity:      t.Quantity,
		Unit:          t.Unit,
		UnitPrice:     t.UnitPrice,
		Amount:        t.Amount,
		HasVAT:        t.HasVAT,
		VATRate:       t.VATRate,
		VATAmount:     t.VATAmount,
		TotalWithVAT:  t.TotalWithVAT,
		Status:        t.Status,
		DueDate:       t.DueDate,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toResponseList(tasks []*task.Task) []taskResponse {
	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toResponse(t)
	}

	return resp
}
