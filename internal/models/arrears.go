package models

import "github.com/shopspring/decimal"

// ArrearsCase is one overdue tenant balance belonging to one report.
type ArrearsCase struct {
	ID               string          `db:"id" json:"id"`
	ReportID         string          `db:"report_id" json:"report_id"`
	TenantName       string          `db:"tenant_name" json:"tenant_name"`
	Property         string          `db:"property" json:"property"`
	AmountOwed       decimal.Decimal `db:"amount_owed" json:"amount_owed"`
	DaysOverdue      int             `db:"days_overdue" json:"days_overdue"`
	ActionTaken      *string         `db:"action_taken" json:"action_taken,omitempty"`
	EscalationNeeded bool            `db:"escalation_needed" json:"escalation_needed"`
}
