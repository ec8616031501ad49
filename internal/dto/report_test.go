package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psb-properties/property-report-api/internal/models"
)

func TestDefaultsFillEnumZeroValues(t *testing.T) {
	req := &SubmitReportRequest{
		WeekEnding:  "2025-03-28",
		SubmittedBy: "Andy",
		Costs:       []CostInput{{Description: "Boiler repair"}},
		Issues:      []MaintenanceInput{{Property: "The Villiers", Issue: "Leaking tap"}},
	}

	req.Defaults()

	assert.Equal(t, string(models.TrafficGreen), req.StatusOldElvet)
	assert.Equal(t, string(models.TrafficGreen), req.StatusFFR)
	assert.Equal(t, string(models.TrafficGreen), req.StatusCash)
	assert.Equal(t, string(models.CostMaintenance), req.Costs[0].Category)
	assert.Equal(t, string(models.PortfolioOldElvet), req.Costs[0].Portfolio)
	assert.Equal(t, string(models.IssueAwaitingQuote), req.Issues[0].Status)
}

func TestDefaultsPreserveExplicitValues(t *testing.T) {
	req := &SubmitReportRequest{
		WeekEnding:     "2025-03-28",
		SubmittedBy:    "Andy",
		StatusOldElvet: string(models.TrafficRed),
		Costs:          []CostInput{{Description: "Cleaning", Category: string(models.CostOperational)}},
	}

	req.Defaults()

	assert.Equal(t, string(models.TrafficRed), req.StatusOldElvet)
	assert.Equal(t, string(models.CostOperational), req.Costs[0].Category)
}
