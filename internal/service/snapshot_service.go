package service

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/quipufin/factoring-backend/internal/config"
	"github.com/quipufin/factoring-backend/internal/model"
	"github.com/quipufin/factoring-backend/internal/repository"
	"github.com/quipufin/factoring-backend/internal/valuation"
)

// SnapshotService maintains the daily portfolio valuation snapshots behind
// the history endpoint. A cron job refreshes every active portfolio shortly
// after midnight; RefreshAll can also be invoked directly.
type SnapshotService struct {
	portfolioRepo *repository.PortfolioRepository
	invoiceRepo   *repository.InvoiceRepository
	snapshotRepo  *repository.SnapshotRepository
	cronSpec      string
	scheduler     *cron.Cron
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(
	portfolioRepo *repository.PortfolioRepository,
	invoiceRepo *repository.InvoiceRepository,
	snapshotRepo *repository.SnapshotRepository,
	cfg config.SnapshotConfig,
) *SnapshotService {
	return &SnapshotService{
		portfolioRepo: portfolioRepo,
		invoiceRepo:   invoiceRepo,
		snapshotRepo:  snapshotRepo,
		cronSpec:      cfg.CronSpec,
	}
}

// Start schedules the daily refresh job. It returns an error when the cron
// expression cannot be parsed.
func (s *SnapshotService) Start() error {
	s.scheduler = cron.New()

	_, err := s.scheduler.AddFunc(s.cronSpec, func() {
		if err := s.RefreshAll(time.Now()); err != nil {
			log.Printf("Snapshot refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule snapshot job: %w", err)
	}

	s.scheduler.Start()
	log.Printf("Snapshot job scheduled (%s)", s.cronSpec)
	return nil
}

// Stop halts the scheduler. Safe to call when Start was never run.
func (s *SnapshotService) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// RefreshAll computes and stores a valuation snapshot for every active
// portfolio as of the given date. Valuations run in parallel; the writes
// happen sequentially afterwards so a slow portfolio cannot hold a
// transaction open. A portfolio that fails to value is logged and skipped so
// one bad row cannot starve every other portfolio of its nightly snapshot.
func (s *SnapshotService) RefreshAll(date time.Time) error {
	portfolios, err := s.portfolioRepo.GetPortfoliosByStatus(model.PortfolioActive)
	if err != nil {
		return err
	}

	snapshots := make([]model.PortfolioValueSnapshot, len(portfolios))
	calculatedAt := time.Now().UTC()

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, p := range portfolios {
		i, p := i, p
		g.Go(func() error {
			invoices, err := s.invoiceRepo.GetInvoicesOnPortfolioID(p.ID)
			if err != nil {
				log.Printf("Snapshot skipped for portfolio %s: %v", p.ID, err)
				return nil
			}
			p.Invoices = invoices

			summary, err := valuation.Aggregate(p, date)
			if err != nil {
				log.Printf("Snapshot skipped for portfolio %s: %v", p.ID, err)
				return nil
			}

			var face float64
			for _, inv := range invoices {
				face += inv.FaceAmount
			}

			snapshots[i] = model.PortfolioValueSnapshot{
				PortfolioID:           p.ID,
				PortfolioName:         p.Name,
				Date:                  date,
				TotalFaceAmount:       round(face),
				TotalDiscountedAmount: round(summary.TotalDiscountedAmount),
				CalculatedAt:          calculatedAt,
			}
			return nil
		})
	}

	//nolint:errcheck // workers log and skip instead of failing the group
	g.Wait()

	refreshed := 0
	for _, snap := range snapshots {
		if snap.PortfolioID == "" {
			continue
		}
		if err := s.snapshotRepo.Upsert(snap); err != nil {
			return err
		}
		refreshed++
	}

	log.Printf("Refreshed %d of %d portfolio snapshots for %s", refreshed, len(portfolios), date.Format("2006-01-02"))
	return nil
}

// GetHistory retrieves stored snapshots within [startDate, endDate].
// An empty portfolioID returns every portfolio.
func (s *SnapshotService) GetHistory(startDate, endDate time.Time, portfolioID string) ([]model.PortfolioValueSnapshot, error) {
	return s.snapshotRepo.GetRange(startDate, endDate, portfolioID)
}
