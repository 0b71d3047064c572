// internal/service/report_service.go
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yuchialin/pharmapos-backend/internal/cache"
	"github.com/yuchialin/pharmapos-backend/internal/domain"
	"github.com/yuchialin/pharmapos-backend/internal/ledger"
	"github.com/yuchialin/pharmapos-backend/internal/repository"
)

// ReportService assembles the ledger-derived reports. Every report follows
// the same cache-aside path: cache lookup, movement fetch, ledger run,
// cache fill. Cache failures degrade to recomputation, never to an error.
type ReportService struct {
	repo  repository.MovementRepository
	cache cache.ReportCache
}

func NewReportService(repo repository.MovementRepository, reportCache cache.ReportCache) *ReportService {
	return &ReportService{repo: repo, cache: reportCache}
}

// GetInventoryReport builds the grouped per-product report. When the filter
// requests the sequential profit/loss, rows without any order number are
// excluded at the fetch so every surviving row can be sequenced.
func (s *ReportService) GetInventoryReport(ctx context.Context, filter *domain.ReportFilter) (*domain.InventoryReport, error) {
	if cached, found, err := s.cache.GetReport(ctx, filter); err != nil {
		log.Warn().Err(err).Msg("report cache lookup failed")
	} else if found {
		return cached, nil
	}

	movements, err := s.fetchMovements(ctx, filter)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load filter options: %w", err)
	}

	includeHistory := filter != nil && filter.IncludeTransactionHistory
	report := &domain.InventoryReport{
		Data:    ledger.BuildGroupedProducts(movements, includeHistory),
		Filters: domain.ReportFilters{Categories: categories},
	}

	if err := s.cache.SetReport(ctx, filter, report); err != nil {
		log.Warn().Err(err).Msg("report cache fill failed")
	}

	return report, nil
}

// GetChartData builds the per-transaction chart series.
func (s *ReportService) GetChartData(ctx context.Context, filter *domain.ReportFilter) ([]domain.ChartDataItem, error) {
	if cached, found, err := s.cache.GetChart(ctx, filter); err != nil {
		log.Warn().Err(err).Msg("chart cache lookup failed")
	} else if found {
		return cached, nil
	}

	movements, err := s.fetchMovements(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := ledger.BuildChartData(movements)

	if err := s.cache.SetChart(ctx, filter, items); err != nil {
		log.Warn().Err(err).Msg("chart cache fill failed")
	}

	return items, nil
}

// GetProfitLossSummary builds the summary cards.
func (s *ReportService) GetProfitLossSummary(ctx context.Context, filter *domain.ReportFilter) (*domain.ProfitLossSummary, error) {
	if cached, found, err := s.cache.GetSummary(ctx, filter); err != nil {
		log.Warn().Err(err).Msg("summary cache lookup failed")
	} else if found {
		return cached, nil
	}

	movements, err := s.fetchMovements(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := ledger.BuildSummary(movements)

	if err := s.cache.SetSummary(ctx, filter, &summary); err != nil {
		log.Warn().Err(err).Msg("summary cache fill failed")
	}

	return &summary, nil
}

func (s *ReportService) fetchMovements(ctx context.Context, filter *domain.ReportFilter) ([]domain.RawMovement, error) {
	orderedOnly := filter != nil && filter.UseSequentialProfitLoss

	movements, err := s.repo.GetMovements(ctx, filter, orderedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}

	// The repository already filters when orderedOnly is set; this guards
	// callers wired to a repository that does not.
	if orderedOnly {
		movements = ledger.DropUnordered(movements)
	}

	return movements, nil
}
