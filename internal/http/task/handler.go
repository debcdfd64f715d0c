package task

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
	"github.com/emrekole/takip/internal/task"
)

type Handler struct {
	svc *task.Service
}

func NewHandler(svc *task.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTaskRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	HasVAT      bool            `json:"has_vat"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	if req.Quantity.Sign() <= 0 {
		respond.Error(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	if req.Amount.Sign() <= 0 {
		respond.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	t, err := h.svc.Create(r.Context(), task.CreateParams{
		CustomerID:  req.CustomerID,
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		Amount:      req.Amount,
		HasVAT:      req.HasVAT,
		VATRate:     req.VATRate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(t))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	filter := task.ListFilter{UserID: &u.ID}

	if s := r.URL.Query().Get("customer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid customer_id")
			return
		}

		filter.CustomerID = &id
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := task.Status(s)
		filter.Status = &status
	}

	tasks, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(tasks))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "task not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(t))
}

type updateTaskRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	HasVAT      *bool            `json:"has_vat,omitempty"`
	VATRate     *decimal.Decimal `json:"vat_rate,omitempty"`
	Status      *task.Status     `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateTaskRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	if req.Quantity != nil && req.Quantity.Sign() <= 0 {
		respond.Error(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	if req.Amount != nil && req.Amount.Sign() <= 0 {
		respond.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	t, err := h.svc.Update(r.Context(), id, task.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		Amount:      req.Amount,
		HasVAT:      req.HasVAT,
		VATRate:     req.VATRate,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "task not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(t))
}

type updateStatusRequest struct {
	Status task.Status `json:"status" validate:"required,oneof=pending in_progress completed"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateStatusRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "task not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusNoContent)
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
