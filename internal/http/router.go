package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/emrekole/takip/internal/http/auth"
	customerHandler "github.com/emrekole/takip/internal/http/customer"
	ledgerHandler "github.com/emrekole/takip/internal/http/ledger"
	"github.com/emrekole/takip/internal/http/middleware"
	paymentHandler "github.com/emrekole/takip/internal/http/payment"
	quoteHandler "github.com/emrekole/takip/internal/http/quote"
	summaryHandler "github.com/emrekole/takip/internal/http/summary"
	taskHandler "github.com/emrekole/takip/internal/http/task"
)

func New(
	authn *middleware.Authenticator,
	limiter *middleware.RateLimiter,
	authV1 *authHandler.Handler,
	customersV1 *customerHandler.Handler,
	tasksV1 *taskHandler.Handler,
	quotesV1 *quoteHandler.Handler,
	paymentsV1 *paymentHandler.Handler,
	transactionsV1 *ledgerHandler.Handler,
	summaryV1 *summaryHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(chimiddleware.AllowContentType("application/json"))

		r.Route("/auth", func(r chi.Router) {
			authV1.PublicRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(authn.RequireUser)
				authV1.SessionRoutes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authn.RequireUser)

			r.Route("/customers", customersV1.Routes)
			r.Route("/customer-tasks", tasksV1.Routes)
			r.Route("/customer-quotes", quotesV1.Routes)
			r.Route("/payments", paymentsV1.Routes)
			r.Route("/transactions", transactionsV1.Routes)
			r.Route("/financial-summary", summaryV1.Routes)

			r.Route("/admin/users", func(r chi.Router) {
				r.Use(authn.RequireAdmin)
				authV1.AdminRoutes(r)
			})
		})
	})

	return router
}
