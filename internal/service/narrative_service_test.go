package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psb-properties/property-report-api/internal/models"
)

type generatorStub struct {
	text     string
	failures int
	calls    int
}

func (g *generatorStub) Generate(ctx context.Context, system, prompt string) (string, error) {
	g.calls++
	if g.calls <= g.failures {
		return "", errors.New("model unavailable")
	}
	return g.text, nil
}

func testBundle() *models.ReportBundle {
	return &models.ReportBundle{
		Report: models.Report{
			ID:             "rep-1",
			WeekEnding:     "2025-03-28",
			SubmittedBy:    "Andy",
			StatusOldElvet: models.TrafficGreen,
			StatusFFR:      models.TrafficAmber,
			StatusCash:     models.TrafficGreen,
		},
		Costs: []models.Cost{
			{Category: models.CostMaintenance, Description: "Boiler repair", Amount: decimal.RequireFromString("150.00")},
			{Category: models.CostOperational, Description: "Cleaning", Amount: decimal.RequireFromString("75.50")},
		},
		Issues: []models.MaintenanceIssue{
			{Property: "The Villiers", Issue: "Leaking tap", Status: models.IssueInProgress},
			{Property: "The Barrington", Issue: "Broken latch", Status: models.IssueCompleted, Completed: true},
		},
		Arrears: []models.ArrearsCase{
			{TenantName: "J Smith", Property: "The Gray", AmountOwed: decimal.RequireFromString("420.00"), DaysOverdue: 14},
		},
	}
}

func TestGenerateWeeklyUsesModelText(t *testing.T) {
	gen := &generatorStub{text: "All quiet on the portfolio front."}
	svc := NewNarrativeService(gen, nil, nil, NarrativeServiceConfig{Timeout: time.Second, MaxAttempts: 2})

	got := svc.GenerateWeekly(context.Background(), testBundle())
	assert.Equal(t, "All quiet on the portfolio front.", got)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateWeeklyRetriesOnce(t *testing.T) {
	gen := &generatorStub{text: "Recovered on retry.", failures: 1}
	svc := NewNarrativeService(gen, nil, nil, NarrativeServiceConfig{Timeout: time.Second, MaxAttempts: 2})

	got := svc.GenerateWeekly(context.Background(), testBundle())
	assert.Equal(t, "Recovered on retry.", got)
	assert.Equal(t, 2, gen.calls)
}

func TestGenerateWeeklyFallbackIsDeterministic(t *testing.T) {
	gen := &generatorStub{failures: 10}
	svc := NewNarrativeService(gen, nil, nil, NarrativeServiceConfig{Timeout: time.Second, MaxAttempts: 2})

	got := svc.GenerateWeekly(context.Background(), testBundle())
	require.NotEmpty(t, got)
	assert.Equal(t, 2, gen.calls)
	assert.Contains(t, got, "225.50")
	assert.Contains(t, got, "150.00")
	assert.Contains(t, got, "75.50")
	assert.Contains(t, got, "2 cost items")
	assert.Contains(t, got, "1 open maintenance issues")
	assert.Contains(t, got, "1 arrears cases")
}

func TestGenerateWeeklyNilGeneratorFallsBack(t *testing.T) {
	svc := NewNarrativeService(nil, nil, nil, NarrativeServiceConfig{})

	got := svc.GenerateWeekly(context.Background(), testBundle())
	require.NotEmpty(t, got)
	assert.Contains(t, got, "2025-03-28")
}

func TestGenerateMonthlySplitsSections(t *testing.T) {
	gen := &generatorStub{text: "P&L SUMMARY\nSpend was stable.\n\nOCCUPANCY TRENDS\nVoids are falling.\n\nFORWARD LOOK\nRenewals season ahead."}
	svc := NewNarrativeService(gen, nil, nil, NarrativeServiceConfig{Timeout: time.Second, MaxAttempts: 1})

	bundle := testBundle()
	got := svc.GenerateMonthly(context.Background(), &bundle.Report, bundle.Costs, nil)
	assert.Equal(t, "Spend was stable.", got.PnLSummary)
	assert.Equal(t, "Voids are falling.", got.OccupancyTrends)
	assert.Equal(t, "Renewals season ahead.", got.ForwardLook)
}

func TestGenerateMonthlyUndelimitedTextGoesToPnL(t *testing.T) {
	gen := &generatorStub{text: "A single block of commentary without headings."}
	svc := NewNarrativeService(gen, nil, nil, NarrativeServiceConfig{Timeout: time.Second, MaxAttempts: 1})

	bundle := testBundle()
	got := svc.GenerateMonthly(context.Background(), &bundle.Report, bundle.Costs, nil)
	assert.Equal(t, "A single block of commentary without headings.", got.PnLSummary)
	assert.Contains(t, got.OccupancyTrends, "unavailable")
	assert.Contains(t, got.ForwardLook, "unavailable")
}

func TestGenerateMonthlyHeadingsAreCaseInsensitive(t *testing.T) {
	gen := &generatorStub{text: "P&l Summary\nSpend was stable.\n\nOccupancy Trends\nVoids are falling.\n\nForward Look\nRenewals season ahead."}
	svc := NewNarrativeService(gen, nil, nil, NarrativeServiceConfig{Timeout: time.Second, MaxAttempts: 1})

	bundle := testBundle()
	got := svc.GenerateMonthly(context.Background(), &bundle.Report, bundle.Costs, nil)
	assert.Equal(t, "Spend was stable.", got.PnLSummary)
	assert.Equal(t, "Voids are falling.", got.OccupancyTrends)
	assert.Equal(t, "Renewals season ahead.", got.ForwardLook)
}

func TestGenerateMonthlySplitsAfterMultiByteText(t *testing.T) {
	// Runes like ɐ grow from two to three bytes when upper-cased, so heading
	// offsets must be located in the original text, not a case-folded copy.
	gen := &generatorStub{text: strings.Repeat("ɐ", 20) + "FORWARD LOOK renewals season ahead"}
	svc := NewNarrativeService(gen, nil, nil, NarrativeServiceConfig{Timeout: time.Second, MaxAttempts: 1})

	bundle := testBundle()
	got := svc.GenerateMonthly(context.Background(), &bundle.Report, bundle.Costs, nil)
	assert.Equal(t, "renewals season ahead", got.ForwardLook)
	assert.Contains(t, got.PnLSummary, "unavailable")
	assert.Contains(t, got.OccupancyTrends, "unavailable")
}

func TestNarrativeOutcomesAreCounted(t *testing.T) {
	metrics := NewMetricsService()

	gen := &generatorStub{text: "All quiet on the portfolio front."}
	svc := NewNarrativeService(gen, nil, metrics, NarrativeServiceConfig{Timeout: time.Second, MaxAttempts: 1})
	svc.GenerateWeekly(context.Background(), testBundle())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.narrativeCalls.WithLabelValues("generated")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.narrativeCalls.WithLabelValues("fallback")))

	fallback := NewNarrativeService(nil, nil, metrics, NarrativeServiceConfig{})
	fallback.GenerateWeekly(context.Background(), testBundle())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.narrativeCalls.WithLabelValues("fallback")))
}

func TestGenerateMonthlyFallbackPopulatesAllSections(t *testing.T) {
	svc := NewNarrativeService(nil, nil, nil, NarrativeServiceConfig{})

	bundle := testBundle()
	got := svc.GenerateMonthly(context.Background(), &bundle.Report, bundle.Costs, nil)
	require.NotEmpty(t, got.PnLSummary)
	require.NotEmpty(t, got.OccupancyTrends)
	require.NotEmpty(t, got.ForwardLook)
	assert.Contains(t, got.PnLSummary, "225.50")
}
