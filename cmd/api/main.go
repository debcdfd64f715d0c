package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/emrekole/takip/internal/auth"
	authStore "github.com/emrekole/takip/internal/auth/store"
	"github.com/emrekole/takip/internal/config"
	"github.com/emrekole/takip/internal/customer"
	customerStore "github.com/emrekole/takip/internal/customer/store"
	"github.com/emrekole/takip/internal/database"
	takipHttp "github.com/emrekole/takip/internal/http"
	authHandler "github.com/emrekole/takip/internal/http/auth"
	customerHandler "github.com/emrekole/takip/internal/http/customer"
	ledgerHandler "github.com/emrekole/takip/internal/http/ledger"
	"github.com/emrekole/takip/internal/http/middleware"
	paymentHandler "github.com/emrekole/takip/internal/http/payment"
	quoteHandler "github.com/emrekole/takip/internal/http/quote"
	summaryHandler "github.com/emrekole/takip/internal/http/summary"
	taskHandler "github.com/emrekole/takip/internal/http/task"
	"github.com/emrekole/takip/internal/ledger"
	ledgerStore "github.com/emrekole/takip/internal/ledger/store"
	"github.com/emrekole/takip/internal/payment"
	paymentStore "github.com/emrekole/takip/internal/payment/store"
	"github.com/emrekole/takip/internal/quote"
	quoteStore "github.com/emrekole/takip/internal/quote/store"
	"github.com/emrekole/takip/internal/summary"
	"github.com/emrekole/takip/internal/task"
	taskStore "github.com/emrekole/takip/internal/task/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg.ConnectionString(), cfg.Migrations.Path); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		authService     = auth.NewService(authStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
		customerService = customer.NewService(customerStore.New(db))
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		taskService     = task.NewService(taskStore.New(db))
		quoteService    = quote.NewService(quoteStore.New(db), taskService)
		paymentService  = payment.NewService(paymentStore.New(db), ledgerService)
		summaryService  = summary.NewService(ledgerService, taskService, quoteService, paymentService, nil)
	)

	var (
		authH     = authHandler.NewHandler(authService)
		customerH = customerHandler.NewHandler(customerService)
		taskH     = taskHandler.NewHandler(taskService)
		quoteH    = quoteHandler.NewHandler(quoteService)
		paymentH  = paymentHandler.NewHandler(paymentService)
		ledgerH   = ledgerHandler.NewHandler(ledgerService)
		summaryH  = summaryHandler.NewHandler(summaryService)
	)

	sweeper := auth.NewSweeper(authService, cfg.Auth.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	router := takipHttp.New(
		middleware.NewAuthenticator(authService),
		middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
		authH, customerH, taskH, quoteH, paymentH, ledgerH, summaryH,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
