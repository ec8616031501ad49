package service

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psb-properties/property-report-api/pkg/mailer"
)

type senderStub struct {
	sent []mailer.Message
	err  error
}

func (s *senderStub) Send(msg mailer.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return "msg-1", nil
}

func TestNotifySendsDigestWithAttachment(t *testing.T) {
	sender := &senderStub{}
	metrics := NewMetricsService()
	svc := NewNotifierService(sender, "owner@psb.properties", metrics, nil)

	result := svc.Notify(testBundle(), "/tmp/documents/Report_2025-03-28_1.pdf")
	assert.True(t, result.Delivered)
	assert.Equal(t, "msg-1", result.MessageID)
	assert.NoError(t, result.Error)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "owner@psb.properties", msg.To)
	assert.Contains(t, msg.Subject, "Weekly Property Report")
	assert.Contains(t, msg.Subject, "2025-03-28")
	assert.Contains(t, msg.HTML, "225.50")
	assert.Equal(t, "/tmp/documents/Report_2025-03-28_1.pdf", msg.AttachmentPath)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.emailsTotal.WithLabelValues("sent")))
}

func TestNotifyMonthlySubject(t *testing.T) {
	sender := &senderStub{}
	svc := NewNotifierService(sender, "owner@psb.properties", nil, nil)

	bundle := testBundle()
	bundle.Report.IsMonthly = true
	result := svc.Notify(bundle, "")
	assert.True(t, result.Delivered)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Subject, "Monthly Property Report")
}

func TestNotifyReportsFailure(t *testing.T) {
	sender := &senderStub{err: errors.New("smtp refused")}
	metrics := NewMetricsService()
	svc := NewNotifierService(sender, "owner@psb.properties", metrics, nil)

	result := svc.Notify(testBundle(), "")
	assert.False(t, result.Delivered)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "smtp refused")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.emailsTotal.WithLabelValues("failed")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.emailsTotal.WithLabelValues("sent")))
}

func TestNotifyUnconfigured(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewNotifierService(nil, "", metrics, nil)

	result := svc.Notify(testBundle(), "")
	assert.False(t, result.Delivered)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "not configured")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.emailsTotal.WithLabelValues("skipped")))
}
