package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psb-properties/property-report-api/internal/models"
)

func TestDashboardRepositoryCountReports(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountReports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestDashboardRepositoryLatestReportEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM reports ORDER BY").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	report, err := repo.LatestReport(context.Background())
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestDashboardRepositoryLatestReport(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	rows := sqlmock.NewRows([]string{"id", "week_ending", "submitted_by", "submitted_at", "is_monthly", "status_52", "status_ffr", "status_cash", "total_maintenance", "total_operational", "created_at"}).
		AddRow("rep-3", "2025-03-28", "Hannah", time.Now(), true, "green", "green", "red", "150.00", "75.50", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM reports ORDER BY").WillReturnRows(rows)

	report, err := repo.LatestReport(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, "rep-3", report.ID)
	assert.True(t, report.IsMonthly)
}

func TestDashboardRepositoryMonthCostTotals(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	rows := sqlmock.NewRows([]string{"category", "total"}).
		AddRow("maintenance", "150.00").
		AddRow("operational", "75.50")
	mock.ExpectQuery("SELECT category, COALESCE").
		WithArgs("2025-03-01").
		WillReturnRows(rows)

	totals, err := repo.MonthCostTotals(context.Background(), "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "150.00", totals[models.CostMaintenance].StringFixed(2))
	assert.Equal(t, "75.50", totals[models.CostOperational].StringFixed(2))
}

func TestDashboardRepositoryMonthCostTotalsEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery("SELECT category, COALESCE").
		WithArgs("2025-04-01").
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}))

	totals, err := repo.MonthCostTotals(context.Background(), "2025-04-01")
	require.NoError(t, err)
	assert.True(t, totals[models.CostMaintenance].IsZero())
	assert.True(t, totals[models.CostOperational].IsZero())
}
