package dto

import (
	"github.com/shopspring/decimal"

	"github.com/psb-properties/property-report-api/internal/models"
)

// SubmitReportRequest captures the POST /reports payload. Every recognized
// field is enumerated here; absent optionals take the documented defaults
// and enum fields are validated against their closed sets at binding time.
type SubmitReportRequest struct {
	WeekEnding  string `json:"week_ending" binding:"required,datetime=2006-01-02"`
	SubmittedBy string `json:"submitted_by" binding:"required"`
	IsMonthly   bool   `json:"is_monthly"`

	StatusOldElvet string `json:"status_52" binding:"omitempty,oneof=green amber red"`
	StatusFFR      string `json:"status_ffr" binding:"omitempty,oneof=green amber red"`
	StatusCash     string `json:"status_cash" binding:"omitempty,oneof=green amber red"`

	PrimaryGoal           *string `json:"primary_goal"`
	SecondaryGoal         *string `json:"secondary_goal"`
	PrevPrimaryGoal       *string `json:"prev_primary_goal"`
	PrevPrimaryAchieved   bool    `json:"prev_primary_achieved"`
	PrevPrimaryNote       *string `json:"prev_primary_note"`
	PrevSecondaryGoal     *string `json:"prev_secondary_goal"`
	PrevSecondaryAchieved bool    `json:"prev_secondary_achieved"`
	PrevSecondaryNote     *string `json:"prev_secondary_note"`

	TenantComplaints        int     `json:"tenant_complaints" binding:"omitempty,min=0"`
	TenantComplaintsSummary *string `json:"tenant_complaints_summary"`
	TenantCompliments       int     `json:"tenant_compliments" binding:"omitempty,min=0"`
	InspectionsDone         int     `json:"inspections_done" binding:"omitempty,min=0"`
	InspectionsScheduled    int     `json:"inspections_scheduled" binding:"omitempty,min=0"`
	SafeguardingConcerns    bool    `json:"safeguarding_concerns"`
	SafeguardingDetail      *string `json:"safeguarding_detail"`

	// Compliance flags default to compliant when omitted, matching the
	// submission form which pre-ticks every box.
	ComplianceGas         *bool   `json:"compliance_gas"`
	ComplianceElectrical  *bool   `json:"compliance_electrical"`
	ComplianceEPC         *bool   `json:"compliance_epc"`
	ComplianceSmokeCO     *bool   `json:"compliance_smoke_co"`
	ComplianceHMO         *bool   `json:"compliance_hmo"`
	ComplianceInsurance   *bool   `json:"compliance_insurance"`
	ComplianceDeposit     *bool   `json:"compliance_deposit"`
	ComplianceRightToRent *bool   `json:"compliance_right_to_rent"`
	ComplianceExceptions  *string `json:"compliance_exceptions"`

	FutureIssues *string `json:"future_issues"`
	AOB          *string `json:"aob"`

	Costs     []CostInput        `json:"costs" binding:"omitempty,dive"`
	Occupancy []OccupancyInput   `json:"occupancy" binding:"omitempty,dive"`
	Issues    []MaintenanceInput `json:"issues" binding:"omitempty,dive"`
	Arrears   []ArrearsInput     `json:"arrears" binding:"omitempty,dive"`
	Income    []IncomeInput      `json:"income" binding:"omitempty,dive"`
}

// CostInput is one submitted spend line.
type CostInput struct {
	Category           string          `json:"category" binding:"omitempty,oneof=maintenance operational"`
	Date               string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Property           *string         `json:"property"`
	Description        string          `json:"description" binding:"required"`
	ContractorSupplier *string         `json:"contractor_supplier"`
	Amount             decimal.Decimal `json:"amount"`
	IsBudgeted         bool            `json:"is_budgeted"`
	IsRecurring        bool            `json:"is_recurring"`
	ApprovedBy         *string         `json:"approved_by"`
	Notes              *string         `json:"notes"`
	Portfolio          string          `json:"portfolio" binding:"omitempty,oneof=52_old_elvet ffr_group"`
}

// OccupancyInput is one submitted per-portfolio snapshot.
type OccupancyInput struct {
	Portfolio        string `json:"portfolio" binding:"required,oneof=52_old_elvet ffr_group"`
	TotalUnits       int    `json:"total_units" binding:"omitempty,min=0"`
	Occupied         int    `json:"occupied" binding:"omitempty,min=0"`
	Vacant           int    `json:"vacant" binding:"omitempty,min=0"`
	Ending30Days     int    `json:"ending_30_days" binding:"omitempty,min=0"`
	Ending60Days     int    `json:"ending_60_days" binding:"omitempty,min=0"`
	ViewingsBooked   int    `json:"viewings_booked" binding:"omitempty,min=0"`
	OffersInProgress int    `json:"offers_in_progress" binding:"omitempty,min=0"`
}

// MaintenanceInput is one submitted repair item.
type MaintenanceInput struct {
	Property     string          `json:"property" binding:"required"`
	Issue        string          `json:"issue" binding:"required"`
	ReportedDate *string         `json:"reported_date"`
	Contractor   *string         `json:"contractor"`
	Status       string          `json:"status" binding:"omitempty,oneof=awaiting_quote quoted scheduled in_progress completed"`
	ETA          *string         `json:"eta"`
	EstCost      decimal.Decimal `json:"est_cost"`
	ActualCost   decimal.Decimal `json:"actual_cost"`
	Completed    bool            `json:"completed"`
	Notes        *string         `json:"notes"`
}

// ArrearsInput is one submitted overdue balance.
type ArrearsInput struct {
	TenantName       string          `json:"tenant_name" binding:"required"`
	Property         string          `json:"property" binding:"required"`
	AmountOwed       decimal.Decimal `json:"amount_owed"`
	DaysOverdue      int             `json:"days_overdue" binding:"omitempty,min=0"`
	ActionTaken      *string         `json:"action_taken"`
	EscalationNeeded bool            `json:"escalation_needed"`
}

// IncomeInput is one submitted income row.
type IncomeInput struct {
	Portfolio   string          `json:"portfolio" binding:"required,oneof=52_old_elvet ffr_group"`
	Source      string          `json:"source" binding:"required"`
	Expected    decimal.Decimal `json:"expected"`
	Received    decimal.Decimal `json:"received"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Notes       *string         `json:"notes"`
}

// SubmissionResult reports the per-stage outcome of a submission so callers
// can present partial success.
type SubmissionResult struct {
	ReportID     string  `json:"report_id"`
	AISummary    string  `json:"ai_summary"`
	DocumentPath *string `json:"pdf_path,omitempty"`
	EmailSent    bool    `json:"email_sent"`
	EmailError   *string `json:"email_error,omitempty"`
}

// PreviousGoalsResponse carries the latest goal pair for form auto-population.
type PreviousGoalsResponse struct {
	PrimaryGoal   *string `json:"primary_goal"`
	SecondaryGoal *string `json:"secondary_goal"`
	WeekEnding    *string `json:"week_ending"`
}

// CurrentPeriodResponse describes the upcoming period end.
type CurrentPeriodResponse struct {
	WeekEnding string `json:"week_ending"`
	IsMonthEnd bool   `json:"is_month_end"`
}

// NarrativeResponse is returned after regenerating a report narrative.
type NarrativeResponse struct {
	ReportID  string `json:"report_id"`
	AISummary string `json:"ai_summary"`
}

// Defaults fills zero-value enum fields with their documented defaults.
func (r *SubmitReportRequest) Defaults() {
	if r.StatusOldElvet == "" {
		r.StatusOldElvet = string(models.TrafficGreen)
	}
	if r.StatusFFR == "" {
		r.StatusFFR = string(models.TrafficGreen)
	}
	if r.StatusCash == "" {
		r.StatusCash = string(models.TrafficGreen)
	}
	for i := range r.Costs {
		if r.Costs[i].Category == "" {
			r.Costs[i].Category = string(models.CostMaintenance)
		}
		if r.Costs[i].Portfolio == "" {
			r.Costs[i].Portfolio = string(models.PortfolioOldElvet)
		}
	}
	for i := range r.Issues {
		if r.Issues[i].Status == "" {
			r.Issues[i].Status = string(models.IssueAwaitingQuote)
		}
	}
}
