package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/quote"
)

type quoteResponse struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	HasVAT       bool            `json:"has_vat"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	VATAmount    decimal.Decimal `json:"vat_amount"`
	TotalWithVAT decimal.Decimal `json:"total_with_vat"`
	Status       quote.Status    `json:"status"`
	IsApproved   bool            `json:"is_approved"`
	QuoteDate    time.Time       `json:"quote_date"`
	ValidUntil   *time.Time      `json:"valid_until,omitempty"`
	Items        []itemResponse  `json:"items,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

type itemResponse struct {
	ID          uuid.UUID       `json:"id"`
	QuoteID     uuid.UUID       `json:"quote_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Status      quote.Status    `json:"status"`
	IsApproved  bool            `json:"is_approved"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(q *quote.Quote, items []*quote.Item) quoteResponse {
	resp := quoteResponse{
		ID:           q.ID,
		CustomerID:   q.CustomerID,
		Title:        q.Title,
		Description:  q.Description,
		TotalAmount:  q.TotalAmount,
		HasVAT:       q.HasVAT,
		VATRate:      q.VATRate,
		VATAmount:    q.VATAmount,
		TotalWithVAT: q.TotalWithVAT,
		Status:       q.Status,
		IsApproved:   q.IsApproved,
		QuoteDate:    q.QuoteDate,
		ValidUntil:   q.ValidUntil,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}

	if len(items) > 0 {
		resp.Items = toItemResponseList(items)
	}

	return resp
}

func toResponseList(quotes []*quote.Quote) []quoteResponse {
	resp := make([]quoteResponse, len(quotes))
	for i, q := range quotes {
		resp[i] = toResponse(q, nil)
	}

	return resp
}

func toItemResponse(item *quote.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		QuoteID:     item.QuoteID,
		Title:       item.Title,
		Description: item.Description,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
		Status:      item.Status,
		IsApproved:  item.IsApproved,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItemResponseList(items []*quote.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toItemResponse(item)
	}

	return resp
}
