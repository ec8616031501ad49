package models

import "github.com/shopspring/decimal"

// CostCategory is the closed set of cost groupings.
type CostCategory string

const (
	CostMaintenance CostCategory = "maintenance"
	CostOperational CostCategory = "operational"
)

// Valid reports whether the category belongs to the closed set.
func (c CostCategory) Valid() bool {
	return c == CostMaintenance || c == CostOperational
}

// Cost is a single immutable spend line belonging to one report.
type Cost struct {
	ID                 string          `db:"id" json:"id"`
	ReportID           string          `db:"report_id" json:"report_id"`
	Category           CostCategory    `db:"category" json:"category"`
	Date               string          `db:"date" json:"date"`
	Property           *string         `db:"property" json:"property,omitempty"`
	Description        string          `db:"description" json:"description"`
	ContractorSupplier *string         `db:"contractor_supplier" json:"contractor_supplier,omitempty"`
	Amount             decimal.Decimal `db:"amount" json:"amount"`
	IsBudgeted         bool            `db:"is_budgeted" json:"is_budgeted"`
	IsRecurring        bool            `db:"is_recurring" json:"is_recurring"`
	ApprovedBy         *string         `db:"approved_by" json:"approved_by,omitempty"`
	Notes              *string         `db:"notes" json:"notes,omitempty"`
	Portfolio          Portfolio       `db:"portfolio" json:"portfolio"`
}

// SplitCosts partitions cost lines into maintenance and operational groups.
func SplitCosts(costs []Cost) (maintenance, operational []Cost) {
	for _, c := range costs {
		if c.Category == CostOperational {
			operational = append(operational, c)
		} else {
			maintenance = append(maintenance, c)
		}
	}
	return maintenance, operational
}

// SumCosts totals the amounts of the provided cost lines.
func SumCosts(costs []Cost) decimal.Decimal {
	total := decimal.Zero
	for _, c := range costs {
		total = total.Add(c.Amount)
	}
	return total
}
