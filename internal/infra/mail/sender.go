package mail

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendOutreach delivers one rendered outreach step. The message carries a
// plain text part plus an HTML alternative so it reads well everywhere.
func (s *EmailSender) SendOutreach(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", toHTML(body))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}

func toHTML(body string) string {
	escaped := html.EscapeString(body)
	return strings.ReplaceAll(escaped, "\n", "<br>\n")
}
