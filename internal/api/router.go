package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quipufin/factoring-backend/internal/api/handlers"
	custommiddleware "github.com/quipufin/factoring-backend/internal/api/middleware"
	"github.com/quipufin/factoring-backend/internal/auth"
	"github.com/quipufin/factoring-backend/internal/config"
	"github.com/quipufin/factoring-backend/internal/service"
)

// Services bundles the service layer for router construction.
type Services struct {
	System    *service.SystemService
	Auth      *service.AuthService
	Portfolio *service.PortfolioService
	Invoice   *service.InvoiceService
	Snapshot  *service.SnapshotService
	Report    *service.ReportService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, sessions *auth.Sessions, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	requireSession := custommiddleware.RequireSession(sessions)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svc.Auth)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio, svc.Snapshot)
			reportHandler := handlers.NewReportHandler(svc.Report)

			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Get("/totals", portfolioHandler.PortfolioTotals)
			r.Get("/by-month", portfolioHandler.MonthlyTotals)
			r.Get("/history", portfolioHandler.PortfolioHistory)
			r.Get("/export/pdf", reportHandler.ExportPDF)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDMiddleware)
				r.Get("/", portfolioHandler.Portfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/advance", portfolioHandler.Advance)

				// Settlement moves money and requires a session.
				r.With(requireSession).Post("/settle", portfolioHandler.Settle)
			})
		})

		r.Route("/invoice", func(r chi.Router) {
			invoiceHandler := handlers.NewInvoiceHandler(svc.Invoice)

			r.Get("/", invoiceHandler.Invoices)
			r.Post("/", invoiceHandler.CreateInvoice)
			r.Get("/by-month", invoiceHandler.MonthlyTotals)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDMiddleware)
				r.Get("/", invoiceHandler.Invoice)
				r.Delete("/", invoiceHandler.DeleteInvoice)
			})
		})
	})

	return r
}
