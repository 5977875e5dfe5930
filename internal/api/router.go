/**
 * @description
 * This file sets up the HTTP router for the finance-service. It defines the
 * API endpoints, associates them with their corresponding handlers, and
 * applies middleware for logging, panic recovery, CORS and authentication.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware.
 * - github.com/prometheus/client_golang: The /metrics endpoint.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/financeflow/finance-service/internal/app"
)

// Handlers holds the application services that handlers will use.
type Handlers struct {
	auth         *app.AuthService
	accounts     *app.AccountService
	transactions *app.TransactionService
	goals        *app.GoalService
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(auth *app.AuthService, accounts *app.AccountService, transactions *app.TransactionService, goals *app.GoalService) *Handlers {
	return &Handlers{auth: auth, accounts: accounts, transactions: transactions, goals: goals}
}

// Routes creates and returns the service router.
func Routes(h *Handlers, jwtSecret string, corsAllowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Add standard middleware for logging, panic recovery, and timeouts.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public auth endpoints.
		r.Post("/auth/register", h.RegisterHandler)
		r.Post("/auth/login", h.LoginHandler)

		// Group routes that require authentication.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtSecret))

			r.Get("/auth/me", h.CurrentUserHandler)

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", h.CreateAccountHandler)
				r.Get("/", h.ListAccountsHandler)
				r.Get("/summary", h.AccountsSummaryHandler)
				r.Get("/{id}", h.GetAccountHandler)
				r.Patch("/{id}", h.UpdateAccountHandler)
				r.Delete("/{id}", h.DeleteAccountHandler)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", h.CreateTransactionHandler)
				r.Get("/", h.ListTransactionsHandler)
				r.Get("/stats", h.TransactionStatsHandler)
				r.Get("/anomalies", h.TransactionAnomaliesHandler)
				r.Get("/forecast", h.SavingsForecastHandler)
				r.Post("/import", h.ImportStatementHandler)
				r.Get("/{id}", h.GetTransactionHandler)
				r.Patch("/{id}", h.UpdateTransactionHandler)
				r.Delete("/{id}", h.DeleteTransactionHandler)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Post("/", h.CreateGoalHandler)
				r.Get("/", h.ListGoalsHandler)
				r.Get("/summary", h.GoalsSummaryHandler)
				r.Get("/{id}", h.GetGoalHandler)
				r.Patch("/{id}", h.UpdateGoalHandler)
				r.Delete("/{id}", h.DeleteGoalHandler)
				r.Post("/{id}/contribute", h.ContributeGoalHandler)
			})
		})
	})

	return r
}
