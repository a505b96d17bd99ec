package email

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"sitecms/internal/config"
	"sitecms/internal/model"
)

// Notifier sends submission notifications to the site owner. Delivery is
// best-effort: callers treat a send failure as non-fatal and the submission
// is already persisted by the time a notification goes out.
type Notifier interface {
	NotifyContact(m *model.ContactMessage)
	NotifyQuote(q *model.QuoteRequest)
}

// PasswordMailer delivers password-reset links. Unlike notifications the
// email is the operation itself, so failures are returned to the caller.
type PasswordMailer interface {
	SendPasswordReset(to, username, resetURL string) error
}

// Mailer delivers notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewMailer builds a Mailer from SMTP settings. It returns nil when the host
// or recipient is unset, which callers interpret as notifications disabled.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	if cfg.Host == "" || cfg.NotifyTo == "" {
		return nil
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
		to:     cfg.NotifyTo,
	}
}

func (m *Mailer) NotifyContact(c *model.ContactMessage) {
	if m == nil {
		return
	}
	body := renderRows([][2]string{
		{"Name", c.Name},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Service", c.Service},
		{"Message", c.Message},
	})
	m.send(fmt.Sprintf("New contact message from %s", c.Name), body)
}

func (m *Mailer) NotifyQuote(q *model.QuoteRequest) {
	if m == nil {
		return
	}
	body := renderRows([][2]string{
		{"Name", q.Name},
		{"Email", q.Email},
		{"Phone", q.Phone},
		{"Property type", q.PropertyType},
		{"Rooms", q.NumRooms},
		{"Frequency", q.CleaningFrequency},
		{"Preferred date", q.PreferredDate},
		{"Service", q.Service},
		{"Message", q.Message},
		{"Special instructions", q.SpecialInstructions},
	})
	m.send(fmt.Sprintf("New quote request from %s", q.Name), body)
}

// SendPasswordReset mails a reset link to the account owner. The link
// expires server-side; the body says so without stating the window.
func (m *Mailer) SendPasswordReset(to, username, resetURL string) error {
	if m == nil {
		return errors.New("mail delivery is not configured")
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>A password reset was requested for your account. "+
			"Follow the link below to choose a new password. "+
			"If you did not request this, ignore this email.</p>"+
			`<p><a href="%s">%s</a></p>`,
		html.EscapeString(username), html.EscapeString(resetURL), html.EscapeString(resetURL))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset")
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) send(subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logJSON(map[string]any{
			"component":     "email",
			"event":         "notification_send_failed",
			"level":         "error",
			"subject":       subject,
			"error_message": err.Error(),
		})
	}
}

func renderRows(rows [][2]string) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>", html.EscapeString(row[0]), html.EscapeString(row[1]))
	}
	b.WriteString("</table>")
	return b.String()
}

func logJSON(data map[string]any) {
	data["ts"] = time.Now().Format(time.RFC3339Nano)
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal email log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
