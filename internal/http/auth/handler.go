package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emrekole/takip/internal/auth"
	"github.com/emrekole/takip/internal/http/middleware"
	"github.com/emrekole/takip/internal/http/request"
	"github.com/emrekole/takip/internal/http/respond"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

func (h *Handler) SessionRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Post("/logout", h.logout)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Patch("/{id}/suspend", h.suspend)
	r.Patch("/{id}/reactivate", h.reactivate)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	u, err := h.svc.Register(r.Context(), auth.RegisterParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respond.Error(w, http.StatusConflict, "email already registered")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusCreated, toUserResponse(u))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := request.Decode(r, &req); err != nil {
		respond.DecodeError(w, err)
		return
	}

	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, auth.ErrSuspended):
			respond.Error(w, http.StatusForbidden, "account suspended")
		default:
			respond.Error(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond.JSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(u)})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	respond.JSON(w, http.StatusOK, toUserResponse(u))
}

// logout closes the session named by the request's token, read with the same
// header-over-cookie precedence the authenticator uses.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.Token(r); token != "" {
		if err := h.svc.Logout(r.Context(), token); err != nil {
			respond.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) suspend(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Suspend(r.Context(), id); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Reactivate(r.Context(), id); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
