package customer

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emrekole/takip/internal/customer"
	"github.com/emrekole/takip/internal/http/middleware"
	"github.com/emrekole/takip/internal/http/request"
	"github.com/emrekole/takip/internal/http/respond"
)

type Handler struct {
	svc *customer.Service
}

func NewHandler(svc *customer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	u := middleware.UserFrom(r.Context())

	c, err := h.svc.Create(r.Context(), customer.CreateParams{
		UserID:  u.ID,
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	filter := customer.ListFilter{UserID: &u.ID}

	if s := r.URL.Query().Get("status"); s != "" {
		status := customer.Status(s)
		filter.Status = &status
	}

	customers, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(customers))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "customer not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type updateCustomerRequest struct {
	Name    *string          `json:"name,omitempty"`
	Company *string          `json:"company,omitempty"`
	Email   *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string          `json:"phone,omitempty"`
	Address *string          `json:"address,omitempty"`
	Status  *customer.Status `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateCustomerRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, customer.UpdateParams{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  req.Status,
	})
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "customer not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
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
