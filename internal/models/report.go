package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrafficLight is the three-value health indicator tracked per portfolio
// and for the cash position.
type TrafficLight string

const (
	TrafficGreen TrafficLight = "green"
	TrafficAmber TrafficLight = "amber"
	TrafficRed   TrafficLight = "red"
)

// Valid reports whether the value belongs to the closed set.
func (t TrafficLight) Valid() bool {
	switch t {
	case TrafficGreen, TrafficAmber, TrafficRed:
		return true
	default:
		return false
	}
}

// Report is one weekly or monthly submission covering a fixed period.
// Created once at submission time; mutated only to attach generated
// narrative text and a rendered document path.
type Report struct {
	ID          string    `db:"id" json:"id"`
	WeekEnding  string    `db:"week_ending" json:"week_ending"`
	SubmittedBy string    `db:"submitted_by" json:"submitted_by"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
	IsMonthly   bool      `db:"is_monthly" json:"is_monthly"`

	StatusOldElvet TrafficLight `db:"status_52" json:"status_52"`
	StatusFFR      TrafficLight `db:"status_ffr" json:"status_ffr"`
	StatusCash     TrafficLight `db:"status_cash" json:"status_cash"`

	PrimaryGoal           *string `db:"primary_goal" json:"primary_goal,omitempty"`
	SecondaryGoal         *string `db:"secondary_goal" json:"secondary_goal,omitempty"`
	PrevPrimaryGoal       *string `db:"prev_primary_goal" json:"prev_primary_goal,omitempty"`
	PrevPrimaryAchieved   bool    `db:"prev_primary_achieved" json:"prev_primary_achieved"`
	PrevPrimaryNote       *string `db:"prev_primary_note" json:"prev_primary_note,omitempty"`
	PrevSecondaryGoal     *string `db:"prev_secondary_goal" json:"prev_secondary_goal,omitempty"`
	PrevSecondaryAchieved bool    `db:"prev_secondary_achieved" json:"prev_secondary_achieved"`
	PrevSecondaryNote     *string `db:"prev_secondary_note" json:"prev_secondary_note,omitempty"`

	TenantComplaints        int     `db:"tenant_complaints" json:"tenant_complaints"`
	TenantComplaintsSummary *string `db:"tenant_complaints_summary" json:"tenant_complaints_summary,omitempty"`
	TenantCompliments       int     `db:"tenant_compliments" json:"tenant_compliments"`
	InspectionsDone         int     `db:"inspections_done" json:"inspections_done"`
	InspectionsScheduled    int     `db:"inspections_scheduled" json:"inspections_scheduled"`
	SafeguardingConcerns    bool    `db:"safeguarding_concerns" json:"safeguarding_concerns"`
	SafeguardingDetail      *string `db:"safeguarding_detail" json:"safeguarding_detail,omitempty"`

	ComplianceGas         bool    `db:"compliance_gas" json:"compliance_gas"`
	ComplianceElectrical  bool    `db:"compliance_electrical" json:"compliance_electrical"`
	ComplianceEPC         bool    `db:"compliance_epc" json:"compliance_epc"`
	ComplianceSmokeCO     bool    `db:"compliance_smoke_co" json:"compliance_smoke_co"`
	ComplianceHMO         bool    `db:"compliance_hmo" json:"compliance_hmo"`
	ComplianceInsurance   bool    `db:"compliance_insurance" json:"compliance_insurance"`
	ComplianceDeposit     bool    `db:"compliance_deposit" json:"compliance_deposit"`
	ComplianceRightToRent bool    `db:"compliance_right_to_rent" json:"compliance_right_to_rent"`
	ComplianceExceptions  *string `db:"compliance_exceptions" json:"compliance_exceptions,omitempty"`

	FutureIssues *string `db:"future_issues" json:"future_issues,omitempty"`
	AOB          *string `db:"aob" json:"aob,omitempty"`

	// Cost-derived totals recomputed from the child rows inside the
	// submission transaction; always equal to the child sums to the cent.
	TotalMaintenance decimal.Decimal `db:"total_maintenance" json:"total_maintenance"`
	TotalOperational decimal.Decimal `db:"total_operational" json:"total_operational"`

	AISummary              *string `db:"ai_summary" json:"ai_summary,omitempty"`
	MonthlyPnLSummary      *string `db:"monthly_pnl_summary" json:"monthly_pnl_summary,omitempty"`
	MonthlyOccupancyTrends *string `db:"monthly_occupancy_trends" json:"monthly_occupancy_trends,omitempty"`
	MonthlyForwardLook     *string `db:"monthly_forward_look" json:"monthly_forward_look,omitempty"`
	DocumentPath           *string `db:"pdf_path" json:"pdf_path,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ComplianceItems expands the eight compliance flags in display order.
func (r *Report) ComplianceItems() []ComplianceItem {
	return []ComplianceItem{
		{Label: "Gas Safety", OK: r.ComplianceGas},
		{Label: "Electrical", OK: r.ComplianceElectrical},
		{Label: "EPC Ratings", OK: r.ComplianceEPC},
		{Label: "Smoke/CO Detectors", OK: r.ComplianceSmokeCO},
		{Label: "HMO Licence", OK: r.ComplianceHMO},
		{Label: "Insurance", OK: r.ComplianceInsurance},
		{Label: "Deposit Protection", OK: r.ComplianceDeposit},
		{Label: "Right to Rent", OK: r.ComplianceRightToRent},
	}
}

// ComplianceItem pairs a compliance label with its pass flag.
type ComplianceItem struct {
	Label string
	OK    bool
}

// ReportBundle aggregates a report header with its five child collections.
type ReportBundle struct {
	Report    Report             `json:"report"`
	Costs     []Cost             `json:"costs"`
	Occupancy []Occupancy        `json:"occupancy"`
	Issues    []MaintenanceIssue `json:"issues"`
	Arrears   []ArrearsCase      `json:"arrears"`
	Income    []IncomeLine       `json:"income"`
}
