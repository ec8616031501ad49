package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psb-properties/property-report-api/internal/dto"
	"github.com/psb-properties/property-report-api/internal/models"
	"github.com/psb-properties/property-report-api/internal/repository"
	appErrors "github.com/psb-properties/property-report-api/pkg/errors"
)

type reportStoreStub struct {
	bundle         *models.ReportBundle
	createErr      error
	getErr         error
	narrative      string
	monthlySet     bool
	monthlyPnL     string
	documentPath   string
	latestGoals    *repository.LatestGoals
	latestGoalsErr error
}

func (s *reportStoreStub) Create(ctx context.Context, bundle *models.ReportBundle) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	bundle.Report.ID = "rep-1"
	s.bundle = bundle
	return "rep-1", nil
}

func (s *reportStoreStub) GetByID(ctx context.Context, id string) (*models.ReportBundle, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.bundle == nil {
		return nil, fmt.Errorf("get report: %w", sql.ErrNoRows)
	}
	return s.bundle, nil
}

func (s *reportStoreStub) List(ctx context.Context) ([]models.Report, error) {
	if s.bundle == nil {
		return nil, nil
	}
	return []models.Report{s.bundle.Report}, nil
}

func (s *reportStoreStub) SetNarrative(ctx context.Context, id, narrative string) error {
	s.narrative = narrative
	return nil
}

func (s *reportStoreStub) SetMonthlyNarratives(ctx context.Context, id, pnl, trends, forward string) error {
	s.monthlySet = true
	s.monthlyPnL = pnl
	return nil
}

func (s *reportStoreStub) SetDocumentPath(ctx context.Context, id, path string) error {
	s.documentPath = path
	return nil
}

func (s *reportStoreStub) GetLatestGoals(ctx context.Context) (*repository.LatestGoals, error) {
	if s.latestGoalsErr != nil {
		return nil, s.latestGoalsErr
	}
	if s.latestGoals == nil {
		return nil, fmt.Errorf("get latest goals: %w", sql.ErrNoRows)
	}
	return s.latestGoals, nil
}

type narrativeStub struct {
	weeklyCalls  int
	monthlyCalls int
}

func (n *narrativeStub) GenerateWeekly(ctx context.Context, bundle *models.ReportBundle) string {
	n.weeklyCalls++
	return "Weekly summary text."
}

func (n *narrativeStub) GenerateMonthly(ctx context.Context, report *models.Report, costs []models.Cost, occ []models.Occupancy) MonthlyNarrative {
	n.monthlyCalls++
	return MonthlyNarrative{PnLSummary: "PnL", OccupancyTrends: "Trends", ForwardLook: "Forward"}
}

type rendererStub struct {
	calls int
	err   error
}

func (r *rendererStub) Render(bundle *models.ReportBundle) ([]byte, string, error) {
	r.calls++
	if r.err != nil {
		return nil, "", r.err
	}
	return []byte("%PDF-fake"), "Report_2025-03-28_1.pdf", nil
}

type documentsStub struct {
	files map[string][]byte
}

func (d *documentsStub) Save(filename string, data []byte) (string, error) {
	if d.files == nil {
		d.files = map[string][]byte{}
	}
	d.files[filename] = data
	return filename, nil
}

func (d *documentsStub) Exists(filename string) bool {
	_, ok := d.files[filename]
	return ok
}

func (d *documentsStub) Path(filename string) string {
	return "/tmp/documents/" + filename
}

type notifierStub struct {
	calls      int
	attachment string
	result     DeliveryResult
}

func (n *notifierStub) Notify(bundle *models.ReportBundle, attachmentPath string) DeliveryResult {
	n.calls++
	n.attachment = attachmentPath
	return n.result
}

func submission(isMonthly bool) *dto.SubmitReportRequest {
	return &dto.SubmitReportRequest{
		WeekEnding:  "2025-03-28",
		SubmittedBy: "Andy",
		IsMonthly:   isMonthly,
		Costs: []dto.CostInput{
			{Category: "maintenance", Description: "Boiler repair", Amount: decimal.RequireFromString("150.00")},
			{Category: "operational", Description: "Cleaning", Amount: decimal.RequireFromString("75.50")},
		},
	}
}

func newTestReportService(store *reportStoreStub, renderer *rendererStub, notifier *notifierStub) (*ReportService, *narrativeStub) {
	narrative := &narrativeStub{}
	svc := NewReportService(store, narrative, renderer, &documentsStub{}, notifier, nil, nil)
	return svc, narrative
}

func TestSubmitWeekly(t *testing.T) {
	store := &reportStoreStub{}
	renderer := &rendererStub{}
	notifier := &notifierStub{result: DeliveryResult{Delivered: true, MessageID: "msg-1"}}
	svc, narrative := newTestReportService(store, renderer, notifier)

	result, err := svc.Submit(context.Background(), submission(false))
	require.NoError(t, err)

	assert.Equal(t, "rep-1", result.ReportID)
	assert.Equal(t, "Weekly summary text.", result.AISummary)
	require.NotNil(t, result.DocumentPath)
	assert.Equal(t, "Report_2025-03-28_1.pdf", *result.DocumentPath)
	assert.True(t, result.EmailSent)
	assert.Nil(t, result.EmailError)

	assert.Equal(t, 1, narrative.weeklyCalls)
	assert.Equal(t, 0, narrative.monthlyCalls)
	assert.False(t, store.monthlySet)
	assert.Len(t, store.bundle.Costs, 2)
	assert.Equal(t, 1, notifier.calls)
	assert.Contains(t, notifier.attachment, "Report_2025-03-28_1.pdf")
}

func TestSubmitMonthlyPopulatesMonthlyNarratives(t *testing.T) {
	store := &reportStoreStub{}
	svc, narrative := newTestReportService(store, &rendererStub{}, &notifierStub{result: DeliveryResult{Delivered: true}})

	result, err := svc.Submit(context.Background(), submission(true))
	require.NoError(t, err)

	assert.Equal(t, 1, narrative.monthlyCalls)
	assert.True(t, store.monthlySet)
	assert.Equal(t, "PnL", store.monthlyPnL)
	require.NotNil(t, store.bundle.Report.MonthlyPnLSummary)
	require.NotNil(t, store.bundle.Report.MonthlyOccupancyTrends)
	require.NotNil(t, store.bundle.Report.MonthlyForwardLook)
	assert.True(t, result.EmailSent)
}

func TestSubmitSucceedsWhenEmailFails(t *testing.T) {
	store := &reportStoreStub{}
	notifier := &notifierStub{result: DeliveryResult{Delivered: false, Error: errors.New("smtp refused")}}
	svc, _ := newTestReportService(store, &rendererStub{}, notifier)

	result, err := svc.Submit(context.Background(), submission(false))
	require.NoError(t, err)

	assert.False(t, result.EmailSent)
	require.NotNil(t, result.EmailError)
	assert.Contains(t, *result.EmailError, "smtp refused")
}

func TestSubmitSucceedsWhenRenderFails(t *testing.T) {
	store := &reportStoreStub{}
	renderer := &rendererStub{err: errors.New("render blew up")}
	svc, _ := newTestReportService(store, renderer, &notifierStub{result: DeliveryResult{Delivered: true}})

	result, err := svc.Submit(context.Background(), submission(false))
	require.NoError(t, err)
	assert.Nil(t, result.DocumentPath)
	assert.Equal(t, "rep-1", result.ReportID)
}

func TestSubmitFailsWhenPersistenceFails(t *testing.T) {
	store := &reportStoreStub{createErr: errors.New("db down")}
	svc, _ := newTestReportService(store, &rendererStub{}, &notifierStub{})

	_, err := svc.Submit(context.Background(), submission(false))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestSubmitObservesRenderDuration(t *testing.T) {
	store := &reportStoreStub{}
	metrics := NewMetricsService()
	svc := NewReportService(store, &narrativeStub{}, &rendererStub{}, &documentsStub{}, &notifierStub{result: DeliveryResult{Delivered: true}}, metrics, nil)

	_, err := svc.Submit(context.Background(), submission(false))
	require.NoError(t, err)

	families, err := metrics.registry.Gather()
	require.NoError(t, err)
	var samples uint64
	for _, mf := range families {
		if mf.GetName() == "document_render_seconds" {
			samples = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(1), samples)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestReportService(&reportStoreStub{}, &rendererStub{}, &notifierStub{})

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestDocumentIsIdempotent(t *testing.T) {
	store := &reportStoreStub{}
	renderer := &rendererStub{}
	notifier := &notifierStub{result: DeliveryResult{Delivered: true}}
	svc, _ := newTestReportService(store, renderer, notifier)

	_, err := svc.Submit(context.Background(), submission(false))
	require.NoError(t, err)
	require.Equal(t, 1, renderer.calls)

	path, err := svc.Document(context.Background(), "rep-1")
	require.NoError(t, err)
	assert.Contains(t, path, "Report_2025-03-28_1.pdf")
	assert.Equal(t, 1, renderer.calls)

	path2, err := svc.Document(context.Background(), "rep-1")
	require.NoError(t, err)
	assert.Equal(t, path, path2)
	assert.Equal(t, 1, renderer.calls)
}

func TestDocumentRendersOnceWhenFileMissing(t *testing.T) {
	store := &reportStoreStub{bundle: &models.ReportBundle{Report: models.Report{ID: "rep-1", WeekEnding: "2025-03-28"}}}
	renderer := &rendererStub{}
	svc, _ := newTestReportService(store, renderer, &notifierStub{})

	path, err := svc.Document(context.Background(), "rep-1")
	require.NoError(t, err)
	assert.Contains(t, path, ".pdf")
	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, "Report_2025-03-28_1.pdf", store.documentPath)
}

func TestRegenerateNarrative(t *testing.T) {
	store := &reportStoreStub{bundle: &models.ReportBundle{Report: models.Report{ID: "rep-1", WeekEnding: "2025-03-28"}}}
	svc, narrative := newTestReportService(store, &rendererStub{}, &notifierStub{})

	result, err := svc.RegenerateNarrative(context.Background(), "rep-1")
	require.NoError(t, err)
	assert.Equal(t, "rep-1", result.ReportID)
	assert.Equal(t, "Weekly summary text.", result.AISummary)
	assert.Equal(t, 1, narrative.weeklyCalls)
	assert.Equal(t, "Weekly summary text.", store.narrative)
}

func TestPreviousGoalsEmptyWhenNoReports(t *testing.T) {
	svc, _ := newTestReportService(&reportStoreStub{}, &rendererStub{}, &notifierStub{})

	goals, err := svc.PreviousGoals(context.Background())
	require.NoError(t, err)
	assert.Nil(t, goals.PrimaryGoal)
	assert.Nil(t, goals.WeekEnding)
}

func TestPreviousGoals(t *testing.T) {
	primary := "Fill the Talbot Penthouse"
	store := &reportStoreStub{latestGoals: &repository.LatestGoals{PrimaryGoal: &primary, WeekEnding: "2025-03-21"}}
	svc, _ := newTestReportService(store, &rendererStub{}, &notifierStub{})

	goals, err := svc.PreviousGoals(context.Background())
	require.NoError(t, err)
	require.NotNil(t, goals.PrimaryGoal)
	assert.Equal(t, primary, *goals.PrimaryGoal)
	require.NotNil(t, goals.WeekEnding)
	assert.Equal(t, "2025-03-21", *goals.WeekEnding)
}

func TestSubmitAppliesDefaults(t *testing.T) {
	store := &reportStoreStub{}
	svc, _ := newTestReportService(store, &rendererStub{}, &notifierStub{result: DeliveryResult{Delivered: true}})

	req := submission(false)
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	report := store.bundle.Report
	assert.Equal(t, models.TrafficGreen, report.StatusOldElvet)
	assert.Equal(t, models.TrafficGreen, report.StatusFFR)
	assert.Equal(t, models.TrafficGreen, report.StatusCash)
	assert.True(t, report.ComplianceGas)
	assert.True(t, report.ComplianceRightToRent)
	assert.Equal(t, models.PortfolioOldElvet, store.bundle.Costs[0].Portfolio)
}
