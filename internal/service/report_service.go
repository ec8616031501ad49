package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/psb-properties/property-report-api/internal/dto"
	"github.com/psb-properties/property-report-api/internal/models"
	"github.com/psb-properties/property-report-api/internal/repository"
	appErrors "github.com/psb-properties/property-report-api/pkg/errors"
)

// ReportStore is the persistence surface the orchestrator depends on.
type ReportStore interface {
	Create(ctx context.Context, bundle *models.ReportBundle) (string, error)
	GetByID(ctx context.Context, id string) (*models.ReportBundle, error)
	List(ctx context.Context) ([]models.Report, error)
	SetNarrative(ctx context.Context, id, narrative string) error
	SetMonthlyNarratives(ctx context.Context, id, pnl, trends, forward string) error
	SetDocumentPath(ctx context.Context, id, path string) error
	GetLatestGoals(ctx context.Context) (*repository.LatestGoals, error)
}

// NarrativeGenerator produces analyst prose for a persisted report.
type NarrativeGenerator interface {
	GenerateWeekly(ctx context.Context, bundle *models.ReportBundle) string
	GenerateMonthly(ctx context.Context, report *models.Report, monthCosts []models.Cost, monthOccupancy []models.Occupancy) MonthlyNarrative
}

// DocumentRenderer produces the PDF bytes plus a unique filename for a bundle.
type DocumentRenderer interface {
	Render(bundle *models.ReportBundle) ([]byte, string, error)
}

// DocumentStorage persists and locates rendered documents.
type DocumentStorage interface {
	Save(filename string, data []byte) (string, error)
	Exists(filename string) bool
	Path(filename string) string
}

// Notifier delivers the report digest to the owner.
type Notifier interface {
	Notify(bundle *models.ReportBundle, attachmentPath string) DeliveryResult
}

// ReportService orchestrates the submission pipeline: persist, narrate,
// render, deliver. Once the bundle is committed, downstream stage failures
// degrade the result instead of failing the submission.
type ReportService struct {
	store     ReportStore
	narrative NarrativeGenerator
	renderer  DocumentRenderer
	documents DocumentStorage
	notifier  Notifier
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService wires the orchestrator.
func NewReportService(store ReportStore, narrative NarrativeGenerator, renderer DocumentRenderer, documents DocumentStorage, notifier Notifier, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:     store,
		narrative: narrative,
		renderer:  renderer,
		documents: documents,
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit runs the full pipeline for one submission and reports per-stage
// outcomes so callers can present partial success.
func (s *ReportService) Submit(ctx context.Context, req *dto.SubmitReportRequest) (*dto.SubmissionResult, error) {
	req.Defaults()
	bundle := mapSubmission(req)

	id, err := s.store.Create(ctx, bundle)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save report")
	}
	s.logger.Sugar().Infow("report persisted", "report_id", id, "week_ending", bundle.Report.WeekEnding, "is_monthly", bundle.Report.IsMonthly)

	summary := s.narrative.GenerateWeekly(ctx, bundle)
	bundle.Report.AISummary = &summary
	if err := s.store.SetNarrative(ctx, id, summary); err != nil {
		s.logger.Sugar().Warnw("failed to store narrative", "report_id", id, "error", err)
	}

	if bundle.Report.IsMonthly {
		monthly := s.narrative.GenerateMonthly(ctx, &bundle.Report, bundle.Costs, bundle.Occupancy)
		bundle.Report.MonthlyPnLSummary = &monthly.PnLSummary
		bundle.Report.MonthlyOccupancyTrends = &monthly.OccupancyTrends
		bundle.Report.MonthlyForwardLook = &monthly.ForwardLook
		if err := s.store.SetMonthlyNarratives(ctx, id, monthly.PnLSummary, monthly.OccupancyTrends, monthly.ForwardLook); err != nil {
			s.logger.Sugar().Warnw("failed to store monthly narratives", "report_id", id, "error", err)
		}
	}

	result := &dto.SubmissionResult{ReportID: id, AISummary: summary}

	documentPath, err := s.renderAndStore(ctx, bundle)
	if err != nil {
		s.logger.Sugar().Warnw("document rendering failed", "report_id", id, "error", err)
	} else {
		result.DocumentPath = &documentPath
	}

	var attachment string
	if result.DocumentPath != nil {
		attachment = s.documents.Path(*result.DocumentPath)
	}
	delivery := s.notifier.Notify(bundle, attachment)
	result.EmailSent = delivery.Delivered
	if delivery.Error != nil {
		msg := delivery.Error.Error()
		result.EmailError = &msg
	}

	return result, nil
}

// List returns all report headers, newest period first.
func (s *ReportService) List(ctx context.Context) ([]models.Report, error) {
	reports, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}
	return reports, nil
}

// Get loads one report with all child collections.
func (s *ReportService) Get(ctx context.Context, id string) (*models.ReportBundle, error) {
	bundle, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	return bundle, nil
}

// Document returns the absolute path of the report's rendered document,
// rendering it at most once: a stored path whose file still exists is reused.
func (s *ReportService) Document(ctx context.Context, id string) (string, error) {
	bundle, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	report := &bundle.Report
	if report.DocumentPath != nil && s.documents.Exists(*report.DocumentPath) {
		return s.documents.Path(*report.DocumentPath), nil
	}

	filename, err := s.renderAndStore(ctx, bundle)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report document")
	}
	return s.documents.Path(filename), nil
}

// RegenerateNarrative rebuilds and stores the weekly narrative for an
// existing report.
func (s *ReportService) RegenerateNarrative(ctx context.Context, id string) (*dto.NarrativeResponse, error) {
	bundle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := s.narrative.GenerateWeekly(ctx, bundle)
	if err := s.store.SetNarrative(ctx, id, summary); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store narrative")
	}
	return &dto.NarrativeResponse{ReportID: id, AISummary: summary}, nil
}

// PreviousGoals returns the latest submitted goal pair, or an empty response
// when no reports exist yet.
func (s *ReportService) PreviousGoals(ctx context.Context) (*dto.PreviousGoalsResponse, error) {
	goals, err := s.store.GetLatestGoals(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dto.PreviousGoalsResponse{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load previous goals")
	}
	return &dto.PreviousGoalsResponse{
		PrimaryGoal:   goals.PrimaryGoal,
		SecondaryGoal: goals.SecondaryGoal,
		WeekEnding:    &goals.WeekEnding,
	}, nil
}

// CurrentPeriod describes the upcoming period end and whether it closes the
// calendar month.
func (s *ReportService) CurrentPeriod() *dto.CurrentPeriodResponse {
	now := s.now()
	return &dto.CurrentPeriodResponse{
		WeekEnding: NextPeriodEnd(now),
		IsMonthEnd: IsMonthEnd(now),
	}
}

func (s *ReportService) renderAndStore(ctx context.Context, bundle *models.ReportBundle) (string, error) {
	start := time.Now()
	data, filename, err := s.renderer.Render(bundle)
	if err != nil {
		return "", err
	}
	s.metrics.ObserveRender(time.Since(start))
	stored, err := s.documents.Save(filename, data)
	if err != nil {
		return "", err
	}
	if err := s.store.SetDocumentPath(ctx, bundle.Report.ID, stored); err != nil {
		s.logger.Sugar().Warnw("failed to store document path", "report_id", bundle.Report.ID, "error", err)
	}
	bundle.Report.DocumentPath = &stored
	return stored, nil
}

func mapSubmission(req *dto.SubmitReportRequest) *models.ReportBundle {
	compliance := func(flag *bool) bool {
		if flag == nil {
			return true
		}
		return *flag
	}

	bundle := &models.ReportBundle{
		Report: models.Report{
			WeekEnding:  req.WeekEnding,
			SubmittedBy: req.SubmittedBy,
			IsMonthly:   req.IsMonthly,

			StatusOldElvet: models.TrafficLight(req.StatusOldElvet),
			StatusFFR:      models.TrafficLight(req.StatusFFR),
			StatusCash:     models.TrafficLight(req.StatusCash),

			PrimaryGoal:           req.PrimaryGoal,
			SecondaryGoal:         req.SecondaryGoal,
			PrevPrimaryGoal:       req.PrevPrimaryGoal,
			PrevPrimaryAchieved:   req.PrevPrimaryAchieved,
			PrevPrimaryNote:       req.PrevPrimaryNote,
			PrevSecondaryGoal:     req.PrevSecondaryGoal,
			PrevSecondaryAchieved: req.PrevSecondaryAchieved,
			PrevSecondaryNote:     req.PrevSecondaryNote,

			TenantComplaints:        req.TenantComplaints,
			TenantComplaintsSummary: req.TenantComplaintsSummary,
			TenantCompliments:       req.TenantCompliments,
			InspectionsDone:         req.InspectionsDone,
			InspectionsScheduled:    req.InspectionsScheduled,
			SafeguardingConcerns:    req.SafeguardingConcerns,
			SafeguardingDetail:      req.SafeguardingDetail,

			ComplianceGas:         compliance(req.ComplianceGas),
			ComplianceElectrical:  compliance(req.ComplianceElectrical),
			ComplianceEPC:         compliance(req.ComplianceEPC),
			ComplianceSmokeCO:     compliance(req.ComplianceSmokeCO),
			ComplianceHMO:         compliance(req.ComplianceHMO),
			ComplianceInsurance:   compliance(req.ComplianceInsurance),
			ComplianceDeposit:     compliance(req.ComplianceDeposit),
			ComplianceRightToRent: compliance(req.ComplianceRightToRent),
			ComplianceExceptions:  req.ComplianceExceptions,

			FutureIssues: req.FutureIssues,
			AOB:          req.AOB,
		},
	}

	for _, c := range req.Costs {
		bundle.Costs = append(bundle.Costs, models.Cost{
			Category:           models.CostCategory(c.Category),
			Date:               c.Date,
			Property:           c.Property,
			Description:        c.Description,
			ContractorSupplier: c.ContractorSupplier,
			Amount:             c.Amount,
			IsBudgeted:         c.IsBudgeted,
			IsRecurring:        c.IsRecurring,
			ApprovedBy:         c.ApprovedBy,
			Notes:              c.Notes,
			Portfolio:          models.Portfolio(c.Portfolio),
		})
	}
	for _, o := range req.Occupancy {
		bundle.Occupancy = append(bundle.Occupancy, models.Occupancy{
			Portfolio:        models.Portfolio(o.Portfolio),
			TotalUnits:       o.TotalUnits,
			Occupied:         o.Occupied,
			Vacant:           o.Vacant,
			Ending30Days:     o.Ending30Days,
			Ending60Days:     o.Ending60Days,
			ViewingsBooked:   o.ViewingsBooked,
			OffersInProgress: o.OffersInProgress,
		})
	}
	for _, i := range req.Issues {
		bundle.Issues = append(bundle.Issues, models.MaintenanceIssue{
			Property:     i.Property,
			Issue:        i.Issue,
			ReportedDate: i.ReportedDate,
			Contractor:   i.Contractor,
			Status:       models.IssueStatus(i.Status),
			ETA:          i.ETA,
			EstCost:      i.EstCost,
			ActualCost:   i.ActualCost,
			Completed:    i.Completed,
			Notes:        i.Notes,
		})
	}
	for _, a := range req.Arrears {
		bundle.Arrears = append(bundle.Arrears, models.ArrearsCase{
			TenantName:       a.TenantName,
			Property:         a.Property,
			AmountOwed:       a.AmountOwed,
			DaysOverdue:      a.DaysOverdue,
			ActionTaken:      a.ActionTaken,
			EscalationNeeded: a.EscalationNeeded,
		})
	}
	for _, line := range req.Income {
		bundle.Income = append(bundle.Income, models.IncomeLine{
			Portfolio:   models.Portfolio(line.Portfolio),
			Source:      line.Source,
			Expected:    line.Expected,
			Received:    line.Received,
			Outstanding: line.Outstanding,
			Notes:       line.Notes,
		})
	}

	return bundle
}
