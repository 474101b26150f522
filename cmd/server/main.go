package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quipufin/factoring-backend/internal/api"
	"github.com/quipufin/factoring-backend/internal/auth"
	"github.com/quipufin/factoring-backend/internal/config"
	"github.com/quipufin/factoring-backend/internal/database"
	"github.com/quipufin/factoring-backend/internal/repository"
	"github.com/quipufin/factoring-backend/internal/service"
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

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Session token signing
	sessions, err := auth.NewSessions(cfg.Session.Key, auth.DefaultTTL)
	if err != nil {
		log.Fatalf("Failed to initialize sessions: %v", err)
	}

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	userRepo := repository.NewUserRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	authService := service.NewAuthService(userRepo, sessions)
	portfolioService := service.NewPortfolioService(
		db,
		portfolioRepo,
		invoiceRepo,
		userRepo,
		settlementRepo,
	)
	invoiceService := service.NewInvoiceService(invoiceRepo, portfolioRepo)
	snapshotService := service.NewSnapshotService(
		portfolioRepo,
		invoiceRepo,
		snapshotRepo,
		cfg.Snapshot,
	)
	reportService := service.NewReportService(portfolioService)

	// Daily valuation snapshots
	if err := snapshotService.Start(); err != nil {
		log.Fatalf("Failed to start snapshot job: %v", err)
	}
	defer snapshotService.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Auth:      authService,
		Portfolio: portfolioService,
		Invoice:   invoiceService,
		Snapshot:  snapshotService,
		Report:    reportService,
	}, sessions, cfg)

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

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
