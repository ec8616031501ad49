package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/psb-properties/property-report-api/internal/dto"
	"github.com/psb-properties/property-report-api/internal/models"
	appErrors "github.com/psb-properties/property-report-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:summary"

type dashboardStatsRepository interface {
	CountReports(ctx context.Context) (int, error)
	LatestReport(ctx context.Context) (*models.Report, error)
	MonthCostTotals(ctx context.Context, monthStart string) (map[models.CostCategory]decimal.Decimal, error)
}

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DashboardServiceConfig tunes dashboard caching.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the headline rollup: report count, latest
// submission, current-month spend by category.
type DashboardService struct {
	repo    dashboardStatsRepository
	cache   dashboardCache
	metrics *MetricsService
	logger  *zap.Logger
	cfg     DashboardServiceConfig
	now     func() time.Time
}

// NewDashboardService wires the dashboard rollup service.
func NewDashboardService(repo dashboardStatsRepository, cache dashboardCache, metrics *MetricsService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &DashboardService{repo: repo, cache: cache, metrics: metrics, logger: logger, cfg: cfg, now: time.Now}
}

// Summary returns the dashboard rollup, serving from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.cache != nil {
		var cached dto.DashboardResponse
		start := time.Now()
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		s.metrics.RecordCacheOperation(err == nil, time.Since(start))
		if err == nil {
			return &cached, nil
		}
	}

	count, err := s.repo.CountReports(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard stats")
	}

	latest, err := s.repo.LatestReport(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load latest report")
	}

	monthStart := s.currentMonthStart()
	totals, err := s.repo.MonthCostTotals(ctx, monthStart)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load month cost totals")
	}

	resp := &dto.DashboardResponse{
		TotalReports: count,
		LatestReport: latest,
		MonthCosts: dto.MonthCosts{
			Maintenance: totals[models.CostMaintenance],
			Operational: totals[models.CostOperational],
		},
	}

	if s.cache != nil {
		start := time.Now()
		if err := s.cache.Set(ctx, dashboardCacheKey, resp, s.cfg.CacheTTL); err != nil {
			s.logger.Sugar().Warnw("failed to cache dashboard summary", "error", err)
		}
		s.metrics.ObserveCacheWrite(time.Since(start))
	}

	return resp, nil
}

func (s *DashboardService) currentMonthStart() string {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
