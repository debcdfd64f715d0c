package quote

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/http/middleware"
	"github.com/emrekole/takip/internal/http/request"
	"github.com/emrekole/takip/internal/http/respond"
	"github.com/emrekole/takip/internal/quote"
)

type Handler struct {
	svc *quote.Service
}

func NewHandler(svc *quote.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)

	r.Route("/{id}/items", func(r chi.Router) {
		r.Post("/", h.createItem)
		r.Get("/", h.listItems)
		r.Patch("/{itemID}", h.updateItem)
		r.Delete("/{itemID}", h.deleteItem)
	})
}

type createQuoteRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	HasVAT      bool            `json:"has_vat"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	QuoteDate   time.Time       `json:"quote_date"`
	ValidUntil  *time.Time      `json:"valid_until,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	q, err := h.svc.Create(r.Context(), quote.CreateParams{
		CustomerID:  req.CustomerID,
		Title:       req.Title,
		Description: req.Description,
		HasVAT:      req.HasVAT,
		VATRate:     req.VATRate,
		QuoteDate:   req.QuoteDate,
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(q, nil))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	filter := quote.ListFilter{UserID: &u.ID}

	if s := r.URL.Query().Get("customer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid customer_id")
			return
		}

		filter.CustomerID = &id
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := quote.Status(s)
		filter.Status = &status
	}

	quotes, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(quotes))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	q, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, quote.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "quote not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	items, err := h.svc.ListItems(r.Context(), id)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(q, items))
}

type updateQuoteRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	HasVAT      *bool            `json:"has_vat,omitempty"`
	VATRate     *decimal.Decimal `json:"vat_rate,omitempty"`
	Status      *quote.Status    `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	IsApproved  *bool            `json:"is_approved,omitempty"`
	QuoteDate   *time.Time       `json:"quote_date,omitempty"`
	ValidUntil  *time.Time       `json:"valid_until,omitempty"`
}

// update applies quote field changes. Setting is_approved=true together with
// status=approved runs the approval pipeline that derives a customer task.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateQuoteRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	q, err := h.svc.Update(r.Context(), id, quote.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		HasVAT:      req.HasVAT,
		VATRate:     req.VATRate,
		Status:      req.Status,
		IsApproved:  req.IsApproved,
		QuoteDate:   req.QuoteDate,
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		if errors.Is(err, quote.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "quote not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(q, nil))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createItemRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price" validate:"required"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	quoteID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req createItemRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	if req.Quantity.Sign() <= 0 {
		respond.Error(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	if req.TotalPrice.Sign() <= 0 {
		respond.Error(w, http.StatusBadRequest, "total_price must be positive")
		return
	}

	item, err := h.svc.CreateItem(r.Context(), quote.ItemCreateParams{
		QuoteID:     quoteID,
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		TotalPrice:  req.TotalPrice,
	})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	quoteID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	items, err := h.svc.ListItems(r.Context(), quoteID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, toItemResponseList(items))
}

type updateItemRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice  *decimal.Decimal `json:"total_price,omitempty"`
	Status      *quote.Status    `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	IsApproved  *bool            `json:"is_approved,omitempty"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := request.ID(r, "itemID")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	if req.Quantity != nil && req.Quantity.Sign() <= 0 {
		respond.Error(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	if req.TotalPrice != nil && req.TotalPrice.Sign() <= 0 {
		respond.Error(w, http.StatusBadRequest, "total_price must be positive")
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), itemID, quote.ItemUpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		TotalPrice:  req.TotalPrice,
		Status:      req.Status,
		IsApproved:  req.IsApproved,
	})
	if err != nil {
		if errors.Is(err, quote.ErrItemNotFound) {
			respond.Error(w, http.StatusNotFound, "quote item not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := request.ID(r, "itemID")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.svc.DeleteItem(r.Context(), itemID); err != nil {
		if errors.Is(err, quote.ErrItemNotFound) {
			respond.Error(w, http.StatusNotFound, "quote item not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
