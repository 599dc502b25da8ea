package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/kianvosoft/site-backend/config"
	"github.com/kianvosoft/site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type emailSender interface {
	SendEmail(ctx context.Context, subject, body string, recipients []string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, body string, numbers []string) error
}

// StaffNotifier tells staff about new contact inquiries by e-mail and SMS.
// Either channel is skipped when it has no recipients.
type StaffNotifier struct {
	mailer  emailSender
	emailTo []string
	texter  smsSender
	smsTo   []string
	logger  zerolog.Logger
}

func NewStaffNotifier(mailer emailSender, emailTo []string, texter smsSender, smsTo []string) *StaffNotifier {
	return &StaffNotifier{
		mailer:  mailer,
		emailTo: emailTo,
		texter:  texter,
		smsTo:   smsTo,
		logger:  log.With().Str("component", "staffNotifier").Logger(),
	}
}

// NewStaffNotifierFromConfig wires Resend and Twilio from configuration.
func NewStaffNotifierFromConfig(cfg map[string]string) *StaffNotifier {
	var mailer emailSender
	if key := config.GetString(cfg, "RESEND_API_KEY", ""); key != "" {
		mailer = NewResendMailer(key, config.GetString(cfg, "RESEND_FROM_EMAIL", ""))
	}

	var texter smsSender
	if sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", ""); sid != "" {
		texter = NewTwilioTexter(sid,
			config.GetString(cfg, "TWILIO_AUTH_TOKEN", ""),
			config.GetString(cfg, "TWILIO_FROM_NUMBER", ""))
	}

	return NewStaffNotifier(mailer,
		config.GetList(cfg, "INQUIRY_NOTIFY_EMAILS"),
		texter,
		config.GetList(cfg, "INQUIRY_NOTIFY_SMS"))
}

// NotifyInquiry never fails; delivery problems are logged.
func (n *StaffNotifier) NotifyInquiry(ctx context.Context, inquiry *models.ContactInquiry) {
	logger := n.logger.With().Str("inquiryId", inquiry.ID.String()).Logger()

	if n.mailer != nil && len(n.emailTo) > 0 {
		if err := n.mailer.SendEmail(ctx, inquirySubject(inquiry), inquiryEmailBody(inquiry), n.emailTo); err != nil {
			logger.Error().Err(err).Msg("failed to e-mail inquiry notification")
		}
	}

	if n.texter != nil && len(n.smsTo) > 0 {
		if err := n.texter.SendSMS(ctx, inquirySMSBody(inquiry), n.smsTo); err != nil {
			logger.Error().Err(err).Msg("failed to text inquiry notification")
		}
	}
}

func inquirySubject(inquiry *models.ContactInquiry) string {
	if inquiry.Subject != "" {
		return fmt.Sprintf("New inquiry from %s: %s", inquiry.Name, inquiry.Subject)
	}
	return fmt.Sprintf("New inquiry from %s", inquiry.Name)
}

func inquiryEmailBody(inquiry *models.ContactInquiry) string {
	var b strings.Builder
	b.WriteString("<h2>New contact inquiry</h2><ul>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>", label, html.EscapeString(value))
	}
	row("Name", inquiry.Name)
	row("Email", inquiry.Email)
	row("Phone", inquiry.Phone)
	if inquiry.ServiceType != "" {
		row("Service", inquiry.ServiceType.Label())
	}
	row("Subject", inquiry.Subject)
	b.WriteString("</ul><p>")
	b.WriteString(strings.ReplaceAll(html.EscapeString(inquiry.Message), "\n", "<br>"))
	b.WriteString("</p>")
	return b.String()
}

func inquirySMSBody(inquiry *models.ContactInquiry) string {
	msg := fmt.Sprintf("New inquiry from %s <%s>", inquiry.Name, inquiry.Email)
	if inquiry.ServiceType != "" {
		msg += " about " + inquiry.ServiceType.Label()
	}
	return msg
}
