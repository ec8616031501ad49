package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements creates the report tables on first start. Statements are
// idempotent so they run unconditionally on every boot.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	week_ending TEXT NOT NULL,
	submitted_by TEXT NOT NULL,
	submitted_at TIMESTAMPTZ NOT NULL,
	is_monthly BOOLEAN NOT NULL DEFAULT FALSE,
	status_52 TEXT NOT NULL DEFAULT 'green',
	status_ffr TEXT NOT NULL DEFAULT 'green',
	status_cash TEXT NOT NULL DEFAULT 'green',
	primary_goal TEXT,
	secondary_goal TEXT,
	prev_primary_goal TEXT,
	prev_primary_achieved BOOLEAN NOT NULL DEFAULT FALSE,
	prev_primary_note TEXT,
	prev_secondary_goal TEXT,
	prev_secondary_achieved BOOLEAN NOT NULL DEFAULT FALSE,
	prev_secondary_note TEXT,
	tenant_complaints INTEGER NOT NULL DEFAULT 0,
	tenant_complaints_summary TEXT,
	tenant_compliments INTEGER NOT NULL DEFAULT 0,
	inspections_done INTEGER NOT NULL DEFAULT 0,
	inspections_scheduled INTEGER NOT NULL DEFAULT 0,
	safeguarding_concerns BOOLEAN NOT NULL DEFAULT FALSE,
	safeguarding_detail TEXT,
	compliance_gas BOOLEAN NOT NULL DEFAULT TRUE,
	compliance_electrical BOOLEAN NOT NULL DEFAULT TRUE,
	compliance_epc BOOLEAN NOT NULL DEFAULT TRUE,
	compliance_smoke_co BOOLEAN NOT NULL DEFAULT TRUE,
	compliance_hmo BOOLEAN NOT NULL DEFAULT TRUE,
	compliance_insurance BOOLEAN NOT NULL DEFAULT TRUE,
	compliance_deposit BOOLEAN NOT NULL DEFAULT TRUE,
	compliance_right_to_rent BOOLEAN NOT NULL DEFAULT TRUE,
	compliance_exceptions TEXT,
	future_issues TEXT,
	aob TEXT,
	total_maintenance NUMERIC(12,2) NOT NULL DEFAULT 0,
	total_operational NUMERIC(12,2) NOT NULL DEFAULT 0,
	ai_summary TEXT,
	monthly_pnl_summary TEXT,
	monthly_occupancy_trends TEXT,
	monthly_forward_look TEXT,
	pdf_path TEXT,
	created_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS costs (
	id TEXT PRIMARY KEY,
	report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	category TEXT NOT NULL,
	date TEXT NOT NULL DEFAULT '',
	property TEXT,
	description TEXT NOT NULL,
	contractor_supplier TEXT,
	amount NUMERIC(12,2) NOT NULL DEFAULT 0,
	is_budgeted BOOLEAN NOT NULL DEFAULT FALSE,
	is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
	approved_by TEXT,
	notes TEXT,
	portfolio TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS occupancy (
	id TEXT PRIMARY KEY,
	report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	portfolio TEXT NOT NULL,
	total_units INTEGER NOT NULL DEFAULT 0,
	occupied INTEGER NOT NULL DEFAULT 0,
	vacant INTEGER NOT NULL DEFAULT 0,
	ending_30_days INTEGER NOT NULL DEFAULT 0,
	ending_60_days INTEGER NOT NULL DEFAULT 0,
	viewings_booked INTEGER NOT NULL DEFAULT 0,
	offers_in_progress INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS maintenance_issues (
	id TEXT PRIMARY KEY,
	report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	property TEXT NOT NULL,
	issue TEXT NOT NULL,
	reported_date TEXT,
	contractor TEXT,
	status TEXT NOT NULL DEFAULT 'awaiting_quote',
	eta TEXT,
	est_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
	actual_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	notes TEXT
)`,
	`CREATE TABLE IF NOT EXISTS arrears (
	id TEXT PRIMARY KEY,
	report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	tenant_name TEXT NOT NULL,
	property TEXT NOT NULL,
	amount_owed NUMERIC(12,2) NOT NULL DEFAULT 0,
	days_overdue INTEGER NOT NULL DEFAULT 0,
	action_taken TEXT,
	escalation_needed BOOLEAN NOT NULL DEFAULT FALSE
)`,
	`CREATE TABLE IF NOT EXISTS income (
	id TEXT PRIMARY KEY,
	report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	portfolio TEXT NOT NULL,
	source TEXT NOT NULL,
	expected NUMERIC(12,2) NOT NULL DEFAULT 0,
	received NUMERIC(12,2) NOT NULL DEFAULT 0,
	outstanding NUMERIC(12,2) NOT NULL DEFAULT 0,
	notes TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_week_ending ON reports (week_ending DESC, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_costs_report_id ON costs (report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_occupancy_report_id ON occupancy (report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_issues_report_id ON maintenance_issues (report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_arrears_report_id ON arrears (report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_income_report_id ON income (report_id)`,
}

// EnsureSchema brings the database up to the expected table layout.
func EnsureSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
