package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/psb-properties/property-report-api/internal/models"
)

// DashboardRepository aggregates headline stats across reports and costs.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountReports returns the total number of stored reports.
func (r *DashboardRepository) CountReports(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reports`); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return count, nil
}

// LatestReport fetches the newest report header, or nil when none exist.
func (r *DashboardRepository) LatestReport(ctx context.Context) (*models.Report, error) {
	query := fmt.Sprintf("SELECT %s FROM reports ORDER BY week_ending DESC, created_at DESC LIMIT 1", reportColumns)
	var report models.Report
	if err := r.db.GetContext(ctx, &report, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest report: %w", err)
	}
	return &report, nil
}

// MonthCostTotals sums cost amounts on or after the given date, grouped by category.
func (r *DashboardRepository) MonthCostTotals(ctx context.Context, monthStart string) (map[models.CostCategory]decimal.Decimal, error) {
	const query = `SELECT category, COALESCE(SUM(amount), 0) AS total
FROM costs WHERE date >= $1 GROUP BY category`
	rows := []struct {
		Category models.CostCategory `db:"category"`
		Total    decimal.Decimal     `db:"total"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, monthStart); err != nil {
		return nil, fmt.Errorf("month cost totals: %w", err)
	}
	totals := map[models.CostCategory]decimal.Decimal{
		models.CostMaintenance: decimal.Zero,
		models.CostOperational: decimal.Zero,
	}
	for _, row := range rows {
		totals[row.Category] = row.Total
	}
	return totals, nil
}
