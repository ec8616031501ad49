package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/psb-properties/property-report-api/internal/models"
)

// ReportRepository persists report headers and their five child collections.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const insertReportQuery = `INSERT INTO reports (
	id, week_ending, submitted_by, submitted_at, is_monthly,
	status_52, status_ffr, status_cash,
	primary_goal, secondary_goal,
	prev_primary_goal, prev_primary_achieved, prev_primary_note,
	prev_secondary_goal, prev_secondary_achieved, prev_secondary_note,
	tenant_complaints, tenant_complaints_summary, tenant_compliments,
	inspections_done, inspections_scheduled, safeguarding_concerns, safeguarding_detail,
	compliance_gas, compliance_electrical, compliance_epc, compliance_smoke_co,
	compliance_hmo, compliance_insurance, compliance_deposit, compliance_right_to_rent,
	compliance_exceptions, future_issues, aob,
	total_maintenance, total_operational,
	ai_summary, monthly_pnl_summary, monthly_occupancy_trends, monthly_forward_look,
	pdf_path, created_at
) VALUES (
	:id, :week_ending, :submitted_by, :submitted_at, :is_monthly,
	:status_52, :status_ffr, :status_cash,
	:primary_goal, :secondary_goal,
	:prev_primary_goal, :prev_primary_achieved, :prev_primary_note,
	:prev_secondary_goal, :prev_secondary_achieved, :prev_secondary_note,
	:tenant_complaints, :tenant_complaints_summary, :tenant_compliments,
	:inspections_done, :inspections_scheduled, :safeguarding_concerns, :safeguarding_detail,
	:compliance_gas, :compliance_electrical, :compliance_epc, :compliance_smoke_co,
	:compliance_hmo, :compliance_insurance, :compliance_deposit, :compliance_right_to_rent,
	:compliance_exceptions, :future_issues, :aob,
	:total_maintenance, :total_operational,
	:ai_summary, :monthly_pnl_summary, :monthly_occupancy_trends, :monthly_forward_look,
	:pdf_path, :created_at
)`

const reportColumns = `id, week_ending, submitted_by, submitted_at, is_monthly,
status_52, status_ffr, status_cash,
primary_goal, secondary_goal,
prev_primary_goal, prev_primary_achieved, prev_primary_note,
prev_secondary_goal, prev_secondary_achieved, prev_secondary_note,
tenant_complaints, tenant_complaints_summary, tenant_compliments,
inspections_done, inspections_scheduled, safeguarding_concerns, safeguarding_detail,
compliance_gas, compliance_electrical, compliance_epc, compliance_smoke_co,
compliance_hmo, compliance_insurance, compliance_deposit, compliance_right_to_rent,
compliance_exceptions, future_issues, aob,
total_maintenance, total_operational,
ai_summary, monthly_pnl_summary, monthly_occupancy_trends, monthly_forward_look,
pdf_path, created_at`

// Create inserts the header and all child rows inside a single transaction.
// A failure at any point rolls everything back; a submission is never left
// partially persisted. Header cost totals are recomputed here from the child
// rows so they always match to the cent.
func (r *ReportRepository) Create(ctx context.Context, bundle *models.ReportBundle) (string, error) {
	report := &bundle.Report
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if report.SubmittedAt.IsZero() {
		report.SubmittedAt = now
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}

	maintenance, operational := models.SplitCosts(bundle.Costs)
	report.TotalMaintenance = models.SumCosts(maintenance)
	report.TotalOperational = models.SumCosts(operational)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin submission tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.NamedExecContext(ctx, insertReportQuery, report); err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}

	for i := range bundle.Costs {
		cost := &bundle.Costs[i]
		cost.ID = uuid.NewString()
		cost.ReportID = report.ID
		const query = `INSERT INTO costs (id, report_id, category, date, property, description, contractor_supplier, amount, is_budgeted, is_recurring, approved_by, notes, portfolio)
VALUES (:id, :report_id, :category, :date, :property, :description, :contractor_supplier, :amount, :is_budgeted, :is_recurring, :approved_by, :notes, :portfolio)`
		if _, err := tx.NamedExecContext(ctx, query, cost); err != nil {
			return "", fmt.Errorf("insert cost: %w", err)
		}
	}

	for i := range bundle.Occupancy {
		occ := &bundle.Occupancy[i]
		occ.ID = uuid.NewString()
		occ.ReportID = report.ID
		const query = `INSERT INTO occupancy (id, report_id, portfolio, total_units, occupied, vacant, ending_30_days, ending_60_days, viewings_booked, offers_in_progress)
VALUES (:id, :report_id, :portfolio, :total_units, :occupied, :vacant, :ending_30_days, :ending_60_days, :viewings_booked, :offers_in_progress)`
		if _, err := tx.NamedExecContext(ctx, query, occ); err != nil {
			return "", fmt.Errorf("insert occupancy: %w", err)
		}
	}

	for i := range bundle.Issues {
		issue := &bundle.Issues[i]
		issue.ID = uuid.NewString()
		issue.ReportID = report.ID
		const query = `INSERT INTO maintenance_issues (id, report_id, property, issue, reported_date, contractor, status, eta, est_cost, actual_cost, completed, notes)
VALUES (:id, :report_id, :property, :issue, :reported_date, :contractor, :status, :eta, :est_cost, :actual_cost, :completed, :notes)`
		if _, err := tx.NamedExecContext(ctx, query, issue); err != nil {
			return "", fmt.Errorf("insert maintenance issue: %w", err)
		}
	}

	for i := range bundle.Arrears {
		arrears := &bundle.Arrears[i]
		arrears.ID = uuid.NewString()
		arrears.ReportID = report.ID
		const query = `INSERT INTO arrears (id, report_id, tenant_name, property, amount_owed, days_overdue, action_taken, escalation_needed)
VALUES (:id, :report_id, :tenant_name, :property, :amount_owed, :days_overdue, :action_taken, :escalation_needed)`
		if _, err := tx.NamedExecContext(ctx, query, arrears); err != nil {
			return "", fmt.Errorf("insert arrears case: %w", err)
		}
	}

	for i := range bundle.Income {
		line := &bundle.Income[i]
		line.ID = uuid.NewString()
		line.ReportID = report.ID
		const query = `INSERT INTO income (id, report_id, portfolio, source, expected, received, outstanding, notes)
VALUES (:id, :report_id, :portfolio, :source, :expected, :received, :outstanding, :notes)`
		if _, err := tx.NamedExecContext(ctx, query, line); err != nil {
			return "", fmt.Errorf("insert income line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit submission tx: %w", err)
	}
	return report.ID, nil
}

// GetByID loads the header and all five child collections.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.ReportBundle, error) {
	bundle := &models.ReportBundle{}

	query := fmt.Sprintf("SELECT %s FROM reports WHERE id = $1", reportColumns)
	if err := r.db.GetContext(ctx, &bundle.Report, query, id); err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	if err := r.db.SelectContext(ctx, &bundle.Costs,
		`SELECT id, report_id, category, date, property, description, contractor_supplier, amount, is_budgeted, is_recurring, approved_by, notes, portfolio
FROM costs WHERE report_id = $1`, id); err != nil {
		return nil, fmt.Errorf("list costs: %w", err)
	}

	if err := r.db.SelectContext(ctx, &bundle.Occupancy,
		`SELECT id, report_id, portfolio, total_units, occupied, vacant, ending_30_days, ending_60_days, viewings_booked, offers_in_progress
FROM occupancy WHERE report_id = $1`, id); err != nil {
		return nil, fmt.Errorf("list occupancy: %w", err)
	}

	if err := r.db.SelectContext(ctx, &bundle.Issues,
		`SELECT id, report_id, property, issue, reported_date, contractor, status, eta, est_cost, actual_cost, completed, notes
FROM maintenance_issues WHERE report_id = $1`, id); err != nil {
		return nil, fmt.Errorf("list maintenance issues: %w", err)
	}

	if err := r.db.SelectContext(ctx, &bundle.Arrears,
		`SELECT id, report_id, tenant_name, property, amount_owed, days_overdue, action_taken, escalation_needed
FROM arrears WHERE report_id = $1`, id); err != nil {
		return nil, fmt.Errorf("list arrears: %w", err)
	}

	if err := r.db.SelectContext(ctx, &bundle.Income,
		`SELECT id, report_id, portfolio, source, expected, received, outstanding, notes
FROM income WHERE report_id = $1`, id); err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}

	return bundle, nil
}

// List returns all report headers, newest period first, most recent
// submission breaking ties.
func (r *ReportRepository) List(ctx context.Context) ([]models.Report, error) {
	query := fmt.Sprintf("SELECT %s FROM reports ORDER BY week_ending DESC, created_at DESC", reportColumns)
	var reports []models.Report
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// SetNarrative attaches generated weekly narrative text to a report.
func (r *ReportRepository) SetNarrative(ctx context.Context, id, narrative string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE reports SET ai_summary = $1 WHERE id = $2`, narrative, id); err != nil {
		return fmt.Errorf("set narrative: %w", err)
	}
	return nil
}

// SetMonthlyNarratives attaches the three month-end narrative sections.
func (r *ReportRepository) SetMonthlyNarratives(ctx context.Context, id, pnl, trends, forward string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE reports SET monthly_pnl_summary = $1, monthly_occupancy_trends = $2, monthly_forward_look = $3 WHERE id = $4`,
		pnl, trends, forward, id); err != nil {
		return fmt.Errorf("set monthly narratives: %w", err)
	}
	return nil
}

// SetDocumentPath records the rendered document location for a report.
func (r *ReportRepository) SetDocumentPath(ctx context.Context, id, path string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE reports SET pdf_path = $1 WHERE id = $2`, path, id); err != nil {
		return fmt.Errorf("set document path: %w", err)
	}
	return nil
}

// LatestGoals returns the goal pair from the most recently submitted report.
type LatestGoals struct {
	PrimaryGoal   *string `db:"primary_goal"`
	SecondaryGoal *string `db:"secondary_goal"`
	WeekEnding    string  `db:"week_ending"`
}

// GetLatestGoals fetches the newest report's goals for form auto-population.
func (r *ReportRepository) GetLatestGoals(ctx context.Context) (*LatestGoals, error) {
	const query = `SELECT primary_goal, secondary_goal, week_ending
FROM reports ORDER BY week_ending DESC, created_at DESC LIMIT 1`
	var goals LatestGoals
	if err := r.db.GetContext(ctx, &goals, query); err != nil {
		return nil, fmt.Errorf("get latest goals: %w", err)
	}
	return &goals, nil
}
