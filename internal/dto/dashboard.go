package dto

import (
	"github.com/shopspring/decimal"

	"github.com/psb-properties/property-report-api/internal/models"
)

// DashboardResponse aggregates headline stats for the landing view.
type DashboardResponse struct {
	TotalReports int            `json:"total_reports"`
	LatestReport *models.Report `json:"latest_report"`
	MonthCosts   MonthCosts     `json:"month_costs"`
}

// MonthCosts holds current-month spend grouped by category.
type MonthCosts struct {
	Maintenance decimal.Decimal `json:"maintenance"`
	Operational decimal.Decimal `json:"operational"`
}
