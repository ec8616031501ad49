package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/psb-properties/property-report-api/internal/models"
)

type rgb struct{ r, g, b int }

var (
	colorPrimary   = rgb{15, 23, 42}
	colorSecondary = rgb{51, 65, 85}
	colorAccent    = rgb{59, 130, 246}
	colorSuccess   = rgb{16, 185, 129}
	colorWarning   = rgb{245, 158, 11}
	colorDanger    = rgb{239, 68, 68}
	colorLight     = rgb{248, 250, 252}
	colorMuted     = rgb{148, 163, 184}
	colorWhite     = rgb{255, 255, 255}
)

const (
	pageMargin   = 12.0
	contentWidth = 186.0
	footerHeight = 14.0
)

func statusColor(status models.TrafficLight) rgb {
	switch status {
	case models.TrafficGreen:
		return colorSuccess
	case models.TrafficAmber:
		return colorWarning
	default:
		return colorDanger
	}
}

func statusLabel(status models.TrafficLight) string {
	switch status {
	case models.TrafficGreen:
		return "ON TRACK"
	case models.TrafficAmber:
		return "ATTENTION"
	default:
		return "ACTION NEEDED"
	}
}

// Renderer lays report bundles out into paginated PDF documents.
type Renderer struct {
	now func() time.Time
}

// NewRenderer constructs a renderer using the wall clock for filenames.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Filename derives the unique output name for a report document. The
// generation timestamp ensures regeneration never overwrites a prior version.
func (r *Renderer) Filename(report *models.Report) string {
	return fmt.Sprintf("Report_%s_%d.pdf", report.WeekEnding, r.now().UnixMilli())
}

// Render produces the document bytes plus the unique filename for the bundle.
func (r *Renderer) Render(bundle *models.ReportBundle) ([]byte, string, error) {
	pdf := r.Build(bundle)
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, "", fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), r.Filename(&bundle.Report), nil
}

// Build assembles the paginated document without serialising it, so tests
// can assert on page counts.
func (r *Renderer) Build(bundle *models.ReportBundle) *gofpdf.Fpdf {
	report := &bundle.Report

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Weekly Property Report - %s", report.WeekEnding), false)
	pdf.SetAuthor("FFR & 52 Property Management", false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, footerHeight+6)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		_, pageHeight := pdf.GetPageSize()
		fill(pdf, colorLight)
		pdf.Rect(0, pageHeight-footerHeight, 210, footerHeight, "F")
		pdf.SetY(pageHeight - footerHeight + 4)
		pdf.SetFont("Helvetica", "", 7)
		text(pdf, colorMuted)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("FFR & 52 Property Management  |  Confidential  |  Page %d of {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	r.headerBand(pdf, tr, report)
	r.trafficPanel(pdf, tr, report)
	r.goalsReview(pdf, tr, report)
	r.costTables(pdf, tr, bundle.Costs)
	r.pulseStrip(pdf, tr, report)
	r.narrativeBlock(pdf, tr, report)
	r.complianceGrid(pdf, tr, report)
	if report.IsMonthly {
		r.monthlyPage(pdf, tr, report)
	}

	return pdf
}

func (r *Renderer) headerBand(pdf *gofpdf.Fpdf, tr func(string) string, report *models.Report) {
	fill(pdf, colorPrimary)
	pdf.Rect(0, 0, 210, 40, "F")
	fill(pdf, colorAccent)
	pdf.Rect(0, 40, 210, 1.5, "F")

	pdf.SetXY(pageMargin, 9)
	pdf.SetFont("Helvetica", "B", 22)
	text(pdf, colorWhite)
	pdf.CellFormat(0, 9, "WEEKLY PROPERTY REPORT", "", 1, "L", false, 0, "")

	pdf.SetX(pageMargin)
	pdf.SetFont("Helvetica", "", 11)
	text(pdf, colorMuted)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Week Ending: %s", report.WeekEnding)), "", 1, "L", false, 0, "")
	pdf.SetX(pageMargin)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Submitted by: %s  |  %s", report.SubmittedBy, report.SubmittedAt.Format("Monday, 2 January 2006"))), "", 1, "L", false, 0, "")

	if report.IsMonthly {
		fill(pdf, colorAccent)
		pdf.RoundedRect(pageMargin, 32, 40, 6, 1.5, "1234", "F")
		pdf.SetXY(pageMargin, 32.8)
		pdf.SetFont("Helvetica", "B", 8)
		text(pdf, colorWhite)
		pdf.CellFormat(40, 4.5, "MONTHLY REPORT", "", 0, "C", false, 0, "")
	}

	pdf.SetY(48)
}

func (r *Renderer) trafficPanel(pdf *gofpdf.Fpdf, tr func(string) string, report *models.Report) {
	r.sectionTitle(pdf, "Traffic Light Summary")

	items := []struct {
		label  string
		status models.TrafficLight
	}{
		{"52 Old Elvet", report.StatusOldElvet},
		{"FFR Group", report.StatusFFR},
		{"Cash Position", report.StatusCash},
	}

	y := pdf.GetY()
	for i, item := range items {
		x := pageMargin + float64(i)*63
		fill(pdf, colorLight)
		pdf.RoundedRect(x, y, 59, 16, 2, "1234", "F")
		fill(pdf, statusColor(item.status))
		pdf.Circle(x+8, y+8, 3, "F")
		pdf.SetXY(x+14, y+3)
		pdf.SetFont("Helvetica", "B", 9)
		text(pdf, colorPrimary)
		pdf.CellFormat(43, 5, tr(item.label), "", 0, "L", false, 0, "")
		pdf.SetXY(x+14, y+8.5)
		pdf.SetFont("Helvetica", "", 7)
		text(pdf, colorSecondary)
		pdf.CellFormat(43, 4, statusLabel(item.status), "", 0, "L", false, 0, "")
	}
	pdf.SetY(y + 22)
}

func (r *Renderer) goalsReview(pdf *gofpdf.Fpdf, tr func(string) string, report *models.Report) {
	r.sectionTitle(pdf, "Goals Review")

	r.prevGoalBox(pdf, tr, "LAST WEEK PRIMARY GOAL", report.PrevPrimaryGoal, report.PrevPrimaryAchieved)
	r.prevGoalBox(pdf, tr, "LAST WEEK SECONDARY GOAL", report.PrevSecondaryGoal, report.PrevSecondaryAchieved)
	r.currentGoalBox(pdf, tr, "THIS WEEK PRIMARY GOAL", report.PrimaryGoal)
	r.currentGoalBox(pdf, tr, "THIS WEEK SECONDARY GOAL", report.SecondaryGoal)
	pdf.Ln(2)
}

func (r *Renderer) prevGoalBox(pdf *gofpdf.Fpdf, tr func(string) string, label string, goal *string, achieved bool) {
	if goal == nil || *goal == "" {
		return
	}
	r.ensureSpace(pdf, 20)
	y := pdf.GetY()
	fill(pdf, colorLight)
	pdf.RoundedRect(pageMargin, y, contentWidth, 16, 1.5, "1234", "F")

	pdf.SetXY(pageMargin+4, y+2.5)
	pdf.SetFont("Helvetica", "", 7)
	text(pdf, colorMuted)
	pdf.CellFormat(130, 4, label, "", 0, "L", false, 0, "")

	verdict := "ACHIEVED"
	verdictColor := colorSuccess
	if !achieved {
		verdict = "NOT ACHIEVED"
		verdictColor = colorDanger
	}
	pdf.SetFont("Helvetica", "B", 8)
	text(pdf, verdictColor)
	pdf.CellFormat(48, 4, verdict, "", 1, "R", false, 0, "")

	pdf.SetXY(pageMargin+4, y+7.5)
	pdf.SetFont("Helvetica", "B", 9)
	text(pdf, colorPrimary)
	pdf.CellFormat(178, 5, tr(*goal), "", 1, "L", false, 0, "")
	pdf.SetY(y + 19)
}

func (r *Renderer) currentGoalBox(pdf *gofpdf.Fpdf, tr func(string) string, label string, goal *string) {
	if goal == nil || *goal == "" {
		return
	}
	r.ensureSpace(pdf, 18)
	y := pdf.GetY()
	draw(pdf, colorAccent)
	pdf.SetLineWidth(0.3)
	pdf.RoundedRect(pageMargin, y, contentWidth, 14, 1.5, "1234", "D")

	pdf.SetXY(pageMargin+4, y+2.5)
	pdf.SetFont("Helvetica", "B", 7)
	text(pdf, colorAccent)
	pdf.CellFormat(178, 4, label, "", 1, "L", false, 0, "")

	pdf.SetXY(pageMargin+4, y+7)
	pdf.SetFont("Helvetica", "", 9)
	text(pdf, colorPrimary)
	pdf.CellFormat(178, 5, tr(*goal), "", 1, "L", false, 0, "")
	pdf.SetY(y + 17)
}

func (r *Renderer) costTables(pdf *gofpdf.Fpdf, tr func(string) string, costs []models.Cost) {
	r.ensureSpace(pdf, 40)
	r.sectionTitle(pdf, "Costs Breakdown")

	maintenance, operational := models.SplitCosts(costs)
	r.costTable(pdf, tr, "Maintenance Costs", maintenance, true)
	r.costTable(pdf, tr, "Operational Costs", operational, false)
}

func (r *Renderer) costTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, costs []models.Cost, withProperty bool) {
	r.ensureSpace(pdf, 30)

	pdf.SetFont("Helvetica", "B", 10)
	text(pdf, colorSecondary)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")

	if len(costs) == 0 {
		pdf.SetFont("Helvetica", "", 8)
		text(pdf, colorMuted)
		pdf.CellFormat(0, 5, "No costs recorded this week.", "", 1, "L", false, 0, "")
		pdf.Ln(3)
		return
	}

	type column struct {
		label string
		width float64
		align string
	}
	var columns []column
	if withProperty {
		columns = []column{
			{"Date", 24, "L"}, {"Property", 40, "L"}, {"Description", 54, "L"}, {"Contractor", 40, "L"}, {"Amount", 28, "R"},
		}
	} else {
		columns = []column{
			{"Date", 24, "L"}, {"Description", 64, "L"}, {"Supplier", 46, "L"}, {"Recurring", 24, "L"}, {"Amount", 28, "R"},
		}
	}

	fill(pdf, colorPrimary)
	text(pdf, colorWhite)
	pdf.SetFont("Helvetica", "B", 7.5)
	for _, col := range columns {
		pdf.CellFormat(col.width, 6, col.label, "", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	total := models.SumCosts(costs)
	for i, cost := range costs {
		r.ensureSpace(pdf, 12)
		shaded := i%2 == 1
		if shaded {
			fill(pdf, colorLight)
		} else {
			fill(pdf, colorWhite)
		}
		pdf.SetFont("Helvetica", "", 7.5)
		text(pdf, colorSecondary)

		var cells []string
		if withProperty {
			cells = []string{cost.Date, textOrDash(cost.Property), cost.Description, textOrDash(cost.ContractorSupplier)}
		} else {
			recurring := "No"
			if cost.IsRecurring {
				recurring = "Yes"
			}
			cells = []string{cost.Date, cost.Description, textOrDash(cost.ContractorSupplier), recurring}
		}
		for j, cell := range cells {
			pdf.CellFormat(columns[j].width, 5.5, tr(cell), "", 0, columns[j].align, shaded, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 7.5)
		text(pdf, colorPrimary)
		pdf.CellFormat(columns[len(columns)-1].width, 5.5, tr("£"+cost.Amount.StringFixed(2)), "", 0, "R", shaded, 0, "")
		pdf.Ln(-1)
	}

	fill(pdf, colorLight)
	text(pdf, colorPrimary)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentWidth-28, 7, "Total "+title, "", 0, "L", true, 0, "")
	pdf.CellFormat(28, 7, tr("£"+total.StringFixed(2)), "", 1, "R", true, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) pulseStrip(pdf *gofpdf.Fpdf, tr func(string) string, report *models.Report) {
	r.ensureSpace(pdf, 32)
	r.sectionTitle(pdf, "Tenant Pulse")

	safeguarding := "None"
	if report.SafeguardingConcerns {
		safeguarding = "YES"
	}
	items := []struct {
		label string
		value string
	}{
		{"Complaints", fmt.Sprintf("%d", report.TenantComplaints)},
		{"Compliments", fmt.Sprintf("%d", report.TenantCompliments)},
		{"Inspections", fmt.Sprintf("%d/%d", report.InspectionsDone, report.InspectionsScheduled)},
		{"Safeguarding", safeguarding},
	}

	y := pdf.GetY()
	for i, item := range items {
		x := pageMargin + float64(i)*47
		fill(pdf, colorLight)
		pdf.RoundedRect(x, y, 43, 16, 1.5, "1234", "F")
		pdf.SetXY(x, y+2)
		pdf.SetFont("Helvetica", "B", 14)
		text(pdf, colorPrimary)
		pdf.CellFormat(43, 7, item.value, "", 0, "C", false, 0, "")
		pdf.SetXY(x, y+10)
		pdf.SetFont("Helvetica", "", 7)
		text(pdf, colorMuted)
		pdf.CellFormat(43, 4, item.label, "", 0, "C", false, 0, "")
	}
	pdf.SetY(y + 20)

	if report.TenantComplaintsSummary != nil && *report.TenantComplaintsSummary != "" {
		pdf.SetFont("Helvetica", "", 8)
		text(pdf, colorSecondary)
		pdf.MultiCell(contentWidth, 4.5, tr(*report.TenantComplaintsSummary), "", "L", false)
		pdf.Ln(2)
	}
}

func (r *Renderer) narrativeBlock(pdf *gofpdf.Fpdf, tr func(string) string, report *models.Report) {
	if report.AISummary == nil || *report.AISummary == "" {
		return
	}
	r.ensureSpace(pdf, 40)
	r.sectionTitle(pdf, "Summary & Analysis")

	fill(pdf, colorAccent)
	pdf.Rect(pageMargin, pdf.GetY(), contentWidth, 0.8, "F")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 8.5)
	text(pdf, colorSecondary)
	pdf.MultiCell(contentWidth, 4.5, tr(*report.AISummary), "", "J", false)
	pdf.Ln(4)
}

func (r *Renderer) complianceGrid(pdf *gofpdf.Fpdf, tr func(string) string, report *models.Report) {
	r.ensureSpace(pdf, 48)
	r.sectionTitle(pdf, "Compliance & Risk")

	items := report.ComplianceItems()
	startY := pdf.GetY()
	for i, item := range items {
		col := i % 2
		row := i / 2
		x := pageMargin + float64(col)*93
		y := startY + float64(row)*8

		status := "COMPLIANT"
		color := colorSuccess
		if !item.OK {
			status = "NON-COMPLIANT"
			color = colorDanger
		}
		fill(pdf, color)
		pdf.Circle(x+3, y+3, 1.8, "F")
		pdf.SetXY(x+7, y+0.5)
		pdf.SetFont("Helvetica", "", 8.5)
		text(pdf, colorPrimary)
		pdf.CellFormat(52, 5, tr(item.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 7)
		text(pdf, color)
		pdf.CellFormat(30, 5, status, "", 0, "L", false, 0, "")
	}
	pdf.SetY(startY + float64((len(items)+1)/2)*8 + 3)

	if report.ComplianceExceptions != nil && *report.ComplianceExceptions != "" {
		pdf.SetFont("Helvetica", "B", 8)
		text(pdf, colorDanger)
		pdf.CellFormat(24, 5, "Exceptions:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		text(pdf, colorSecondary)
		pdf.MultiCell(contentWidth-24, 5, tr(*report.ComplianceExceptions), "", "L", false)
		pdf.Ln(2)
	}
}

func (r *Renderer) monthlyPage(pdf *gofpdf.Fpdf, tr func(string) string, report *models.Report) {
	pdf.AddPage()

	fill(pdf, colorAccent)
	pdf.Rect(0, 0, 210, 16, "F")
	pdf.SetXY(pageMargin, 4)
	pdf.SetFont("Helvetica", "B", 15)
	text(pdf, colorWhite)
	pdf.CellFormat(0, 8, "MONTHLY SUMMARY", "", 1, "L", false, 0, "")
	pdf.SetY(22)

	r.monthlySection(pdf, tr, "P&L Summary", report.MonthlyPnLSummary)
	r.monthlySection(pdf, tr, "Occupancy Trends", report.MonthlyOccupancyTrends)
	r.monthlySection(pdf, tr, "3-Month Forward Look", report.MonthlyForwardLook)
}

func (r *Renderer) monthlySection(pdf *gofpdf.Fpdf, tr func(string) string, title string, body *string) {
	if body == nil || *body == "" {
		return
	}
	r.ensureSpace(pdf, 24)
	pdf.SetFont("Helvetica", "B", 11)
	text(pdf, colorPrimary)
	pdf.CellFormat(0, 7, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8.5)
	text(pdf, colorSecondary)
	pdf.MultiCell(contentWidth, 4.5, tr(*body), "", "L", false)
	pdf.Ln(4)
}

func (r *Renderer) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	text(pdf, colorPrimary)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

// ensureSpace starts a new page when fewer than need millimetres remain
// above the footer band.
func (r *Renderer) ensureSpace(pdf *gofpdf.Fpdf, need float64) {
	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+need > pageHeight-footerHeight-6 {
		pdf.AddPage()
	}
}

func fill(pdf *gofpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func text(pdf *gofpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func draw(pdf *gofpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }

func textOrDash(s *string) string {
	if s != nil && *s != "" {
		return *s
	}
	return "-"
}
