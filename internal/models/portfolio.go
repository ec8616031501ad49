package models

// Portfolio identifies one of the two managed property groups.
type Portfolio string

const (
	PortfolioOldElvet Portfolio = "52_old_elvet"
	PortfolioFFR      Portfolio = "ffr_group"
)

// Valid reports whether the portfolio belongs to the closed set.
func (p Portfolio) Valid() bool {
	return p == PortfolioOldElvet || p == PortfolioFFR
}

// DisplayName returns the human-readable portfolio label.
func (p Portfolio) DisplayName() string {
	switch p {
	case PortfolioOldElvet:
		return "52 Old Elvet"
	case PortfolioFFR:
		return "FFR Group"
	default:
		return string(p)
	}
}

// Properties lists the managed units per portfolio.
var Properties = map[Portfolio][]string{
	PortfolioOldElvet: {
		"The Villiers", "The Barrington", "The Egerton", "The Wolsey",
		"The Tunstall", "The Montague", "The Morton", "The Gray",
		"The Langley", "The Kirkham", "The Fordham", "The Talbot Penthouse", "Communal Areas",
	},
	PortfolioFFR: {
		"33 Old Elvet", "Claypath House Flat 1", "Claypath House Flat 2",
		"Claypath House Flat 3", "Claypath House Flat 4", "Flass Court Lower",
		"Flass Court 2A", "Flass Court 2B", "Flass House Lower",
		"Flass House Upper", "35 St Andrews Court", "7 The Cathedrals",
	},
}

// TeamMember is one submitting staff member.
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Team lists the staff who may submit reports.
var Team = []TeamMember{
	{Name: "Andy", Email: "andy@psb.properties"},
	{Name: "Akiel", Email: "akiel@psb.properties"},
	{Name: "Hannah", Email: "hannah.winn@psb.properties"},
}
