package mail

import (
	"fmt"

	"github.com/minhngvn/finshare-server/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends outgoing mail over SMTP. A Mailer built from an empty SMTP
// host is disabled: Send returns nil without dialing, so callers do not
// need to special-case environments without a mail server.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

// SendExpenseInvite notifies a participant that they were added to a shared
// expense.
func (m *Mailer) SendExpenseInvite(to, creatorName, title, amount, currency string) error {
	subject := fmt.Sprintf("%s added you to '%s'", creatorName, title)
	body := fmt.Sprintf(
		"<p>%s added you to the shared expense <b>%s</b> (%s %s).</p>"+
			"<p>Open the app to confirm your share.</p>",
		creatorName, title, amount, currency,
	)
	return m.Send(to, subject, body)
}

// SendDebtReminder nudges a participant who still owes part of their share.
func (m *Mailer) SendDebtReminder(to, title, owed, currency string) error {
	subject := fmt.Sprintf("Reminder: you still owe %s %s for '%s'", owed, currency, title)
	body := fmt.Sprintf(
		"<p>You still owe <b>%s %s</b> for the shared expense <b>%s</b>.</p>",
		owed, currency, title,
	)
	return m.Send(to, subject, body)
}
