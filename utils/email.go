package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text notification emails over SMTP. When SMTP is not
// configured it logs the message instead of sending, so local and test runs
// work without a mail server.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
	From     string
}

func (m *Mailer) configured() bool {
	return m.Host != "" && m.Port != "" && m.Username != "" && m.Password != ""
}

// Send delivers one plain-text message to the recipients.
func (m *Mailer) Send(subject, body string, to []string) error {
	if len(to) == 0 {
		return nil
	}

	if !m.configured() {
		log.Printf("[MOCK EMAIL] to:%s subject:%q", strings.Join(to, ","), subject)
		return nil
	}

	from := m.From
	if from == "" {
		from = m.Username
	}
	fromHeader := from
	if m.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", m.FromName, from)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", fromHeader))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body)
	sb.WriteString("\r\n")

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	return smtp.SendMail(addr, auth, from, to, []byte(sb.String()))
}

// SendQuietly is the fire-and-forget variant used by the intake flows:
// failures are logged and swallowed so they never block the request.
func (m *Mailer) SendQuietly(subject, body string, to []string) {
	if err := m.Send(subject, body, to); err != nil {
		log.Printf("warning: failed to send email %q to %s: %v", subject, strings.Join(to, ","), err)
	}
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
