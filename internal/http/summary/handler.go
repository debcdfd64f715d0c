package summary

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/emrekole/takip/internal/http/middleware"
	"github.com/emrekole/takip/internal/http/respond"
	"github.com/emrekole/takip/internal/summary"
)

type Handler struct {
	svc *summary.Service
}

func NewHandler(svc *summary.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type summaryResponse struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetBalance    decimal.Decimal `json:"net_balance"`

	CustomerTasks    taskSummaryResponse    `json:"customer_tasks"`
	CustomerQuotes   quoteSummaryResponse   `json:"customer_quotes"`
	CustomerPayments paymentSummaryResponse `json:"customer_payments"`
}

type taskSummaryResponse struct {
	Total     decimal.Decimal `json:"total"`
	Pending   int             `json:"pending"`
	Completed int             `json:"completed"`
}

type quoteSummaryResponse struct {
	PendingTotal  decimal.Decimal `json:"pending_total"`
	ApprovedTotal decimal.Decimal `json:"approved_total"`
	PendingCount  int             `json:"pending_count"`
	ApprovedCount int             `json:"approved_count"`
}

type paymentSummaryResponse struct {
	Total     decimal.Decimal `json:"total"`
	ThisMonth decimal.Decimal `json:"this_month"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	s, err := h.svc.Compute(r.Context(), u.ID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		TotalIncome:   s.TotalIncome,
		TotalExpenses: s.TotalExpenses,
		NetBalance:    s.NetBalance,
		CustomerTasks: taskSummaryResponse{
			Total:     s.CustomerTasks.Total,
			Pending:   s.CustomerTasks.Pending,
			Completed: s.CustomerTasks.Completed,
		},
		CustomerQuotes: quoteSummaryResponse{
			PendingTotal:  s.CustomerQuotes.PendingTotal,
			ApprovedTotal: s.CustomerQuotes.ApprovedTotal,
			PendingCount:  s.CustomerQuotes.PendingCount,
			ApprovedCount: s.CustomerQuotes.ApprovedCount,
		},
		CustomerPayments: paymentSummaryResponse{
			Total:     s.CustomerPayments.Total,
			ThisMonth: s.CustomerPayments.ThisMonth,
		},
	})
}
