package payment

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
	"github.com/emrekole/takip/internal/payment"
)

type Handler struct {
	svc *payment.Service
}

func NewHandler(svc *payment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createPaymentRequest struct {
	Kind          payment.Kind    `json:"kind" validate:"required,oneof=customer contractor personnel"`
	PartyID       uuid.UUID       `json:"party_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	PaymentDate   time.Time       `json:"payment_date" validate:"required"`
	PaymentMethod string          `json:"payment_method"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	if req.Amount.Sign() <= 0 {
		respond.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	u := middleware.UserFrom(r.Context())

	p, err := h.svc.Record(r.Context(), payment.CreateParams{
		UserID:        u.ID,
		Kind:          req.Kind,
		PartyID:       req.PartyID,
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	filter := payment.ListFilter{UserID: &u.ID}

	if s := r.URL.Query().Get("kind"); s != "" {
		kind := payment.Kind(s)
		filter.Kind = &kind
	}

	if s := r.URL.Query().Get("party_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid party_id")
			return
		}

		filter.PartyID = &id
	}

	payments, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(payments))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "payment not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "payment not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
