package models

import "github.com/shopspring/decimal"

// IncomeLine is one expected/received income row belonging to one report.
type IncomeLine struct {
	ID          string          `db:"id" json:"id"`
	ReportID    string          `db:"report_id" json:"report_id"`
	Portfolio   Portfolio       `db:"portfolio" json:"portfolio"`
	Source      string          `db:"source" json:"source"`
	Expected    decimal.Decimal `db:"expected" json:"expected"`
	Received    decimal.Decimal `db:"received" json:"received"`
	Outstanding decimal.Decimal `db:"outstanding" json:"outstanding"`
	Notes       *string         `db:"notes" json:"notes,omitempty"`
}
