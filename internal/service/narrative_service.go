package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/psb-properties/property-report-api/internal/ai"
	"github.com/psb-properties/property-report-api/internal/models"
)

const weeklySystemInstruction = "You are a property management analyst writing executive summaries for a property portfolio owner. Be concise, data-driven, and actionable."

const monthlySystemInstruction = "You are a property management analyst. Write concise monthly summaries."

// NarrativeServiceConfig makes the timeout and retry policy for the hosted
// model explicit and testable.
type NarrativeServiceConfig struct {
	Timeout     time.Duration
	MaxAttempts int
}

// NarrativeService turns a report bundle into analyst prose, falling back to
// a deterministic numeric summary whenever the hosted model fails. Both entry
// points always return non-empty text and never an error.
type NarrativeService struct {
	generator ai.Generator
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       NarrativeServiceConfig
}

// MonthlyNarrative carries the three month-end narrative sections.
type MonthlyNarrative struct {
	PnLSummary      string
	OccupancyTrends string
	ForwardLook     string
}

// NewNarrativeService constructs the service. A nil generator is allowed and
// routes every call straight to the fallback text.
func NewNarrativeService(generator ai.Generator, logger *zap.Logger, metrics *MetricsService, cfg NarrativeServiceConfig) *NarrativeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	return &NarrativeService{generator: generator, logger: logger, metrics: metrics, cfg: cfg}
}

// GenerateWeekly produces the executive summary for a weekly submission.
func (s *NarrativeService) GenerateWeekly(ctx context.Context, bundle *models.ReportBundle) string {
	prompt := s.buildWeeklyPrompt(bundle)
	if text, ok := s.generate(ctx, weeklySystemInstruction, prompt); ok {
		return text
	}
	return s.weeklyFallback(bundle)
}

// GenerateMonthly produces the three month-end sections for a monthly rollup.
func (s *NarrativeService) GenerateMonthly(ctx context.Context, report *models.Report, monthCosts []models.Cost, monthOccupancy []models.Occupancy) MonthlyNarrative {
	prompt := s.buildMonthlyPrompt(report, monthCosts, monthOccupancy)
	if text, ok := s.generate(ctx, monthlySystemInstruction, prompt); ok {
		return splitMonthlySections(text, s.monthlyFallback(report, monthCosts))
	}
	return s.monthlyFallback(report, monthCosts)
}

// generate applies the timeout and single-retry policy around the model call.
func (s *NarrativeService) generate(ctx context.Context, system, prompt string) (string, bool) {
	if s.generator == nil {
		s.metrics.RecordNarrativeOutcome("fallback")
		return "", false
	}
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		text, err := s.generator.Generate(attemptCtx, system, prompt)
		cancel()
		if err == nil {
			s.metrics.RecordNarrativeOutcome("generated")
			return text, true
		}
		lastErr = err
		s.logger.Sugar().Warnw("narrative generation attempt failed", "attempt", attempt, "error", err)
	}
	s.logger.Sugar().Warnw("narrative generation exhausted, using fallback", "error", lastErr)
	s.metrics.RecordNarrativeOutcome("fallback")
	return "", false
}

func (s *NarrativeService) buildWeeklyPrompt(bundle *models.ReportBundle) string {
	report := &bundle.Report
	maintenance, operational := models.SplitCosts(bundle.Costs)
	totalMaint := models.SumCosts(maintenance)
	totalOps := models.SumCosts(operational)
	open := models.OpenIssues(bundle.Issues)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a property management analyst for FFR & 52 Old Elvet, a student property portfolio in Durham managing 24 properties (85-100 students). Generate a concise executive summary report.\n\n")
	fmt.Fprintf(&b, "DATA FOR THIS WEEK (ending %s):\n\n", report.WeekEnding)

	fmt.Fprintf(&b, "TRAFFIC LIGHT STATUS:\n")
	fmt.Fprintf(&b, "- 52 Old Elvet: %s\n", report.StatusOldElvet)
	fmt.Fprintf(&b, "- FFR Group: %s\n", report.StatusFFR)
	fmt.Fprintf(&b, "- Cash Position: %s\n\n", report.StatusCash)

	fmt.Fprintf(&b, "PREVIOUS GOALS:\n")
	fmt.Fprintf(&b, "- Primary: %q - %s%s\n", textOr(report.PrevPrimaryGoal, "None set"), achievedLabel(report.PrevPrimaryAchieved), noteSuffix(report.PrevPrimaryNote))
	fmt.Fprintf(&b, "- Secondary: %q - %s%s\n\n", textOr(report.PrevSecondaryGoal, "None set"), achievedLabel(report.PrevSecondaryAchieved), noteSuffix(report.PrevSecondaryNote))

	fmt.Fprintf(&b, "THIS WEEK'S GOALS:\n")
	fmt.Fprintf(&b, "- Primary: %q\n", textOr(report.PrimaryGoal, "Not set"))
	fmt.Fprintf(&b, "- Secondary: %q\n\n", textOr(report.SecondaryGoal, "Not set"))

	fmt.Fprintf(&b, "COSTS THIS WEEK:\n")
	fmt.Fprintf(&b, "- Maintenance: £%s across %d items\n", totalMaint.StringFixed(2), len(maintenance))
	for _, c := range maintenance {
		fmt.Fprintf(&b, "  - %s at %s: £%s%s\n", c.Description, textOr(c.Property, "General"), c.Amount.StringFixed(2), parenthetical(c.ContractorSupplier))
	}
	fmt.Fprintf(&b, "- Operational: £%s across %d items\n", totalOps.StringFixed(2), len(operational))
	for _, c := range operational {
		fmt.Fprintf(&b, "  - %s: £%s%s\n", c.Description, c.Amount.StringFixed(2), parenthetical(c.ContractorSupplier))
	}
	fmt.Fprintf(&b, "- Total spend: £%s\n\n", totalMaint.Add(totalOps).StringFixed(2))

	fmt.Fprintf(&b, "TENANT PULSE:\n")
	fmt.Fprintf(&b, "- Complaints: %d%s\n", report.TenantComplaints, noteSuffix(report.TenantComplaintsSummary))
	fmt.Fprintf(&b, "- Compliments: %d\n", report.TenantCompliments)
	fmt.Fprintf(&b, "- Inspections: %d of %d\n", report.InspectionsDone, report.InspectionsScheduled)
	if report.SafeguardingConcerns {
		fmt.Fprintf(&b, "- Safeguarding concerns: YES - %s\n\n", textOr(report.SafeguardingDetail, ""))
	} else {
		fmt.Fprintf(&b, "- Safeguarding concerns: None\n\n")
	}

	fmt.Fprintf(&b, "OPEN MAINTENANCE ISSUES: %d\n", len(open))
	for _, i := range open {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", i.Property, i.Issue, i.Status)
	}
	fmt.Fprintf(&b, "\nARREARS: %d tenants\n", len(bundle.Arrears))
	for _, a := range bundle.Arrears {
		fmt.Fprintf(&b, "  - %s at %s: £%s (%d days overdue)\n", a.TenantName, a.Property, a.AmountOwed.StringFixed(2), a.DaysOverdue)
	}

	fmt.Fprintf(&b, "\nAOB: %s\n", textOr(report.AOB, "None"))
	fmt.Fprintf(&b, "FUTURE ISSUES: %s\n\n", textOr(report.FutureIssues, "None flagged"))

	b.WriteString(`Please write a professional executive summary (300-500 words) that:
1. Opens with the overall health of the portfolio this week
2. Highlights key achievements or concerns
3. Summarises spending with any notable patterns
4. Flags any risk areas
5. Provides brief forward-looking recommendations
6. Ends with priority actions for the coming week

Write in a direct, professional British English style. Use £ for currency. Be specific with numbers.`)

	return b.String()
}

// weeklyFallback is assembled purely from locally computed totals so the
// pipeline always produces some summary text.
func (s *NarrativeService) weeklyFallback(bundle *models.ReportBundle) string {
	maintenance, operational := models.SplitCosts(bundle.Costs)
	totalMaint := models.SumCosts(maintenance)
	totalOps := models.SumCosts(operational)
	open := models.OpenIssues(bundle.Issues)

	return fmt.Sprintf(
		"[AI summary unavailable]\n\nWeek ending %s: Total spend £%s (Maintenance: £%s, Operational: £%s). %d cost items logged. %d open maintenance issues. %d arrears cases.",
		bundle.Report.WeekEnding,
		totalMaint.Add(totalOps).StringFixed(2),
		totalMaint.StringFixed(2),
		totalOps.StringFixed(2),
		len(bundle.Costs),
		len(open),
		len(bundle.Arrears),
	)
}

func (s *NarrativeService) buildMonthlyPrompt(report *models.Report, monthCosts []models.Cost, monthOccupancy []models.Occupancy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a monthly property management summary for FFR & 52 Old Elvet portfolio. This is the end-of-month report for %s.\n\n", report.WeekEnding)
	b.WriteString("Provide three sections, each starting with its heading on its own line:\nP&L SUMMARY - overview of income vs costs for the month\nOCCUPANCY TRENDS - any patterns in occupancy, voids, viewings\nFORWARD LOOK - what to expect and prepare for over the next 3 months\n\n")

	fmt.Fprintf(&b, "Month costs (%d items):\n", len(monthCosts))
	for _, c := range monthCosts {
		fmt.Fprintf(&b, "- %s [%s]: £%s\n", c.Description, c.Category, c.Amount.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nOccupancy snapshots:\n")
	for _, o := range monthOccupancy {
		fmt.Fprintf(&b, "- %s: %d/%d occupied, %d vacant, %d viewings booked, %d offers in progress\n",
			o.Portfolio.DisplayName(), o.Occupied, o.TotalUnits, o.Vacant, o.ViewingsBooked, o.OffersInProgress)
	}

	b.WriteString("\nWrite concisely in British English, 200 words per section max.")
	return b.String()
}

func (s *NarrativeService) monthlyFallback(report *models.Report, monthCosts []models.Cost) MonthlyNarrative {
	maintenance, operational := models.SplitCosts(monthCosts)
	totalMaint := models.SumCosts(maintenance)
	totalOps := models.SumCosts(operational)
	total := totalMaint.Add(totalOps)

	return MonthlyNarrative{
		PnLSummary: fmt.Sprintf(
			"[Monthly AI summary unavailable]\n\nMonth ending %s: total recorded spend £%s (Maintenance: £%s, Operational: £%s) across %d cost items.",
			report.WeekEnding, total.StringFixed(2), totalMaint.StringFixed(2), totalOps.StringFixed(2), len(monthCosts)),
		OccupancyTrends: fmt.Sprintf("[Monthly AI summary unavailable] Occupancy trend commentary could not be generated for the month ending %s.", report.WeekEnding),
		ForwardLook:     fmt.Sprintf("[Monthly AI summary unavailable] Forward look commentary could not be generated for the month ending %s.", report.WeekEnding),
	}
}

// splitMonthlySections carves the model output into the three expected
// sections. Sections the model failed to delimit keep their fallback text,
// except the P&L section which absorbs the undelimited whole.
func splitMonthlySections(text string, fallback MonthlyNarrative) MonthlyNarrative {
	out := fallback

	pnlIdx := headingIndex(text, "P&L SUMMARY")
	occIdx := headingIndex(text, "OCCUPANCY TRENDS")
	fwdIdx := headingIndex(text, "FORWARD LOOK")

	if pnlIdx < 0 && occIdx < 0 && fwdIdx < 0 {
		out.PnLSummary = strings.TrimSpace(text)
		return out
	}

	if pnlIdx >= 0 {
		end := len(text)
		if occIdx > pnlIdx {
			end = occIdx
		} else if fwdIdx > pnlIdx {
			end = fwdIdx
		}
		out.PnLSummary = sectionBody(text[pnlIdx:end], "P&L SUMMARY")
	}
	if occIdx >= 0 {
		end := len(text)
		if fwdIdx > occIdx {
			end = fwdIdx
		}
		out.OccupancyTrends = sectionBody(text[occIdx:end], "OCCUPANCY TRENDS")
	}
	if fwdIdx >= 0 {
		out.ForwardLook = sectionBody(text[fwdIdx:], "FORWARD LOOK")
	}
	return out
}

// headingIndex locates the heading case-insensitively in the original text.
// Offsets must come from the text that gets sliced: case-folding a copy can
// change byte lengths and skew the indices.
func headingIndex(text, heading string) int {
	for i := 0; i+len(heading) <= len(text); i++ {
		if strings.EqualFold(text[i:i+len(heading)], heading) {
			return i
		}
	}
	return -1
}

func sectionBody(section, heading string) string {
	body := section[len(heading):]
	body = strings.TrimLeft(body, ":-– \t\n")
	return strings.TrimSpace(body)
}

func textOr(s *string, fallback string) string {
	if s != nil && strings.TrimSpace(*s) != "" {
		return *s
	}
	return fallback
}

func achievedLabel(achieved bool) string {
	if achieved {
		return "ACHIEVED"
	}
	return "NOT ACHIEVED"
}

func noteSuffix(note *string) string {
	if note != nil && strings.TrimSpace(*note) != "" {
		return " - " + *note
	}
	return ""
}

func parenthetical(s *string) string {
	if s != nil && strings.TrimSpace(*s) != "" {
		return " (" + *s + ")"
	}
	return ""
}
