package models

import "github.com/shopspring/decimal"

// IssueStatus is the closed set of maintenance issue states.
type IssueStatus string

const (
	IssueAwaitingQuote IssueStatus = "awaiting_quote"
	IssueQuoted        IssueStatus = "quoted"
	IssueScheduled     IssueStatus = "scheduled"
	IssueInProgress    IssueStatus = "in_progress"
	IssueCompleted     IssueStatus = "completed"
)

// Valid reports whether the status belongs to the closed set.
func (s IssueStatus) Valid() bool {
	switch s {
	case IssueAwaitingQuote, IssueQuoted, IssueScheduled, IssueInProgress, IssueCompleted:
		return true
	default:
		return false
	}
}

// MaintenanceIssue is an open or resolved repair item belonging to one report.
type MaintenanceIssue struct {
	ID           string          `db:"id" json:"id"`
	ReportID     string          `db:"report_id" json:"report_id"`
	Property     string          `db:"property" json:"property"`
	Issue        string          `db:"issue" json:"issue"`
	ReportedDate *string         `db:"reported_date" json:"reported_date,omitempty"`
	Contractor   *string         `db:"contractor" json:"contractor,omitempty"`
	Status       IssueStatus     `db:"status" json:"status"`
	ETA          *string         `db:"eta" json:"eta,omitempty"`
	EstCost      decimal.Decimal `db:"est_cost" json:"est_cost"`
	ActualCost   decimal.Decimal `db:"actual_cost" json:"actual_cost"`
	Completed    bool            `db:"completed" json:"completed"`
	Notes        *string         `db:"notes" json:"notes,omitempty"`
}

// OpenIssues filters out completed issues.
func OpenIssues(issues []MaintenanceIssue) []MaintenanceIssue {
	open := make([]MaintenanceIssue, 0, len(issues))
	for _, i := range issues {
		if !i.Completed {
			open = append(open, i)
		}
	}
	return open
}
