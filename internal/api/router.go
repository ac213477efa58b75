package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tlecomte/finance-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/tlecomte/finance-tracker-backend/internal/api/middleware"
	"github.com/tlecomte/finance-tracker-backend/internal/config"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System      *service.SystemService
	User        *service.UserService
	Position    *service.PositionService
	Transaction *service.TransactionService
	Expense     *service.ExpenseService
	Recap       *service.RecapService
	Settings    *service.SettingsService
	Dashboard   *service.DashboardService
	Projection  *service.ProjectionService
	Quote       *service.QuoteService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		userHandler := handlers.NewUserHandler(svcs.User)
		r.Post("/user", userHandler.CreateUser)

		// Everything below requires the forwarded identity header.
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireUser)

			r.Get("/user/me", userHandler.GetCurrentUser)

			r.Route("/position", func(r chi.Router) {
				positionHandler := handlers.NewPositionHandler(svcs.Position)
				r.Get("/", positionHandler.ListPositions)
				r.Put("/{symbol}/price", positionHandler.UpdateMarkPrice)
			})

			r.Route("/transaction", func(r chi.Router) {
				transactionHandler := handlers.NewTransactionHandler(svcs.Transaction)
				r.Get("/", transactionHandler.ListTransactions)
				r.Post("/", transactionHandler.CreateTransaction)
				r.Post("/rebuild/{symbol}", transactionHandler.RebuildPosition)
			})

			r.Route("/expense", func(r chi.Router) {
				expenseHandler := handlers.NewExpenseHandler(svcs.Expense)
				r.Get("/", expenseHandler.ListExpenses)
				r.Post("/", expenseHandler.CreateExpense)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Put("/", expenseHandler.UpdateExpense)
					r.Delete("/", expenseHandler.DeleteExpense)
				})
			})

			r.Route("/recap", func(r chi.Router) {
				recapHandler := handlers.NewRecapHandler(svcs.Recap)
				r.Get("/", recapHandler.ListRecaps)
				r.Put("/", recapHandler.UpsertRecap)
				r.Post("/compute", recapHandler.ComputeRecap)
			})

			r.Route("/settings", func(r chi.Router) {
				settingsHandler := handlers.NewSettingsHandler(svcs.Settings)
				r.Get("/", settingsHandler.GetSettings)
				r.Put("/", settingsHandler.UpdateSettings)
			})

			dashboardHandler := handlers.NewDashboardHandler(svcs.Dashboard)
			r.Get("/dashboard", dashboardHandler.GetDashboard)

			projectionHandler := handlers.NewProjectionHandler(svcs.Projection)
			r.Get("/projection", projectionHandler.GetProjection)

			r.Route("/quote", func(r chi.Router) {
				quoteHandler := handlers.NewQuoteHandler(svcs.Quote)
				r.Put("/config", quoteHandler.UpdateConfig)
				r.Post("/refresh", quoteHandler.RefreshQuotes)
			})
		})
	})

	return r
}
