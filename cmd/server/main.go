package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/api"
	"github.com/tlecomte/finance-tracker-backend/internal/config"
	"github.com/tlecomte/finance-tracker-backend/internal/database"
	"github.com/tlecomte/finance-tracker-backend/internal/quote"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
	"github.com/tlecomte/finance-tracker-backend/internal/scheduler"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	recapRepo := repository.NewRecapRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	quoteConfigRepo := repository.NewQuoteConfigRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	userService := service.NewUserService(userRepo)
	positionService := service.NewPositionService(positionRepo)
	transactionService := service.NewTransactionService(db, transactionRepo, positionRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	recapService := service.NewRecapService(recapRepo, expenseService, settingsService)
	dashboardService := service.NewDashboardService(positionRepo, recapRepo, expenseService, settingsService)
	projectionService := service.NewProjectionService(positionService, settingsService)
	quoteService := service.NewQuoteService(quoteConfigRepo, positionRepo, quote.NewFinanceClient(), cfg.Quote.EncryptionKey)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		User:        userService,
		Position:    positionService,
		Transaction: transactionService,
		Expense:     expenseService,
		Recap:       recapService,
		Settings:    settingsService,
		Dashboard:   dashboardService,
		Projection:  projectionService,
		Quote:       quoteService,
	}, cfg)

	// Start the background jobs
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs, err = scheduler.New(cfg.Scheduler, quoteService, recapService, userRepo)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		jobs.Start()
		log.Printf("Scheduler started (quotes %q, month close %q)", cfg.Scheduler.QuoteSpec, cfg.Scheduler.MonthCloseSpec)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if jobs != nil {
		jobs.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
