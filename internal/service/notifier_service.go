package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/psb-properties/property-report-api/internal/models"
	"github.com/psb-properties/property-report-api/pkg/mailer"
)

// DeliveryResult captures the outcome of one delivery attempt.
type DeliveryResult struct {
	Delivered bool
	MessageID string
	Error     error
}

// NotifierService emails the rendered report digest to the portfolio owner.
// Delivery is best-effort: a single attempt whose failure is reported in the
// result, never raised as an error.
type NotifierService struct {
	sender    mailer.Sender
	recipient string
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewNotifierService constructs the notifier. A nil sender or empty recipient
// disables delivery.
func NewNotifierService(sender mailer.Sender, recipient string, metrics *MetricsService, logger *zap.Logger) *NotifierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotifierService{sender: sender, recipient: recipient, metrics: metrics, logger: logger}
}

// Notify sends the report digest with the rendered document attached.
func (s *NotifierService) Notify(bundle *models.ReportBundle, attachmentPath string) DeliveryResult {
	if s.sender == nil || s.recipient == "" {
		s.metrics.RecordEmailOutcome("skipped")
		return DeliveryResult{Delivered: false, Error: fmt.Errorf("email delivery not configured")}
	}

	report := &bundle.Report
	subject := fmt.Sprintf("Weekly Property Report - Week Ending %s", report.WeekEnding)
	if report.IsMonthly {
		subject = fmt.Sprintf("Monthly Property Report - Week Ending %s", report.WeekEnding)
	}

	msg := mailer.Message{
		To:             s.recipient,
		Subject:        subject,
		HTML:           s.buildDigest(bundle),
		AttachmentPath: attachmentPath,
	}

	id, err := s.sender.Send(msg)
	if err != nil {
		s.logger.Sugar().Warnw("report email delivery failed", "report_id", report.ID, "error", err)
		s.metrics.RecordEmailOutcome("failed")
		return DeliveryResult{Delivered: false, Error: err}
	}
	s.logger.Sugar().Infow("report email delivered", "report_id", report.ID, "message_id", id)
	s.metrics.RecordEmailOutcome("sent")
	return DeliveryResult{Delivered: true, MessageID: id}
}

func trafficEmoji(status models.TrafficLight) string {
	switch status {
	case models.TrafficGreen:
		return "🟢"
	case models.TrafficAmber:
		return "🟡"
	default:
		return "🔴"
	}
}

func (s *NotifierService) buildDigest(bundle *models.ReportBundle) string {
	report := &bundle.Report
	maintenance, operational := models.SplitCosts(bundle.Costs)
	totalMaint := models.SumCosts(maintenance)
	totalOps := models.SumCosts(operational)

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto; color: #1e293b;">`)
	fmt.Fprintf(&b, `<h2 style="color: #0f172a;">Weekly Property Report</h2>`)
	fmt.Fprintf(&b, `<p>Week ending <strong>%s</strong>, submitted by %s.</p>`, report.WeekEnding, report.SubmittedBy)

	fmt.Fprintf(&b, `<h3 style="color: #334155;">Traffic Lights</h3><p>%s 52 Old Elvet &nbsp; %s FFR Group &nbsp; %s Cash Position</p>`,
		trafficEmoji(report.StatusOldElvet), trafficEmoji(report.StatusFFR), trafficEmoji(report.StatusCash))

	if report.PrimaryGoal != nil || report.SecondaryGoal != nil {
		b.WriteString(`<h3 style="color: #334155;">This Week's Goals</h3><ul>`)
		if report.PrimaryGoal != nil && *report.PrimaryGoal != "" {
			fmt.Fprintf(&b, `<li><strong>Primary:</strong> %s</li>`, *report.PrimaryGoal)
		}
		if report.SecondaryGoal != nil && *report.SecondaryGoal != "" {
			fmt.Fprintf(&b, `<li><strong>Secondary:</strong> %s</li>`, *report.SecondaryGoal)
		}
		b.WriteString(`</ul>`)
	}

	b.WriteString(`<h3 style="color: #334155;">Costs</h3>`)
	b.WriteString(`<table style="border-collapse: collapse; width: 100%;">`)
	fmt.Fprintf(&b, `<tr style="background: #f8fafc;"><td style="padding: 6px; border: 1px solid #e2e8f0;">Maintenance (%d items)</td><td style="padding: 6px; border: 1px solid #e2e8f0; text-align: right;">&pound;%s</td></tr>`, len(maintenance), totalMaint.StringFixed(2))
	fmt.Fprintf(&b, `<tr><td style="padding: 6px; border: 1px solid #e2e8f0;">Operational (%d items)</td><td style="padding: 6px; border: 1px solid #e2e8f0; text-align: right;">&pound;%s</td></tr>`, len(operational), totalOps.StringFixed(2))
	fmt.Fprintf(&b, `<tr style="background: #f8fafc; font-weight: bold;"><td style="padding: 6px; border: 1px solid #e2e8f0;">Total</td><td style="padding: 6px; border: 1px solid #e2e8f0; text-align: right;">&pound;%s</td></tr>`, totalMaint.Add(totalOps).StringFixed(2))
	b.WriteString(`</table>`)

	if report.AISummary != nil && *report.AISummary != "" {
		b.WriteString(`<h3 style="color: #334155;">Summary</h3>`)
		fmt.Fprintf(&b, `<div style="background: #f8fafc; border-left: 3px solid #3b82f6; padding: 12px; white-space: pre-wrap;">%s</div>`, *report.AISummary)
	}

	b.WriteString(`<p style="color: #94a3b8; font-size: 12px; margin-top: 24px;">The full report is attached as a PDF. FFR &amp; 52 Property Management - Confidential.</p>`)
	b.WriteString(`</div>`)
	return b.String()
}
