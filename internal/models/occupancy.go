package models

// Occupancy is a per-portfolio snapshot attached to one report.
type Occupancy struct {
	ID               string    `db:"id" json:"id"`
	ReportID         string    `db:"report_id" json:"report_id"`
	Portfolio        Portfolio `db:"portfolio" json:"portfolio"`
	TotalUnits       int       `db:"total_units" json:"total_units"`
	Occupied         int       `db:"occupied" json:"occupied"`
	Vacant           int       `db:"vacant" json:"vacant"`
	Ending30Days     int       `db:"ending_30_days" json:"ending_30_days"`
	Ending60Days     int       `db:"ending_60_days" json:"ending_60_days"`
	ViewingsBooked   int       `db:"viewings_booked" json:"viewings_booked"`
	OffersInProgress int       `db:"offers_in_progress" json:"offers_in_progress"`
}
