// Package mailer sends best-effort notifications. Callers log failures
// and move on; a lost mail never rolls back a financial mutation.
package mailer

import (
	"fmt"
	"net/smtp"

	"tourdesk/internal/utils"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers over plain-auth SMTP.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	msg := []byte("From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	return smtp.SendMail(addr, auth, m.From, []string{to}, msg)
}

// LogMailer stands in when SMTP is not configured (local development).
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	utils.LogEvent("", "mail", "send", fmt.Sprintf("to=%s subject=%q (smtp not configured, dropped)", to, subject))
	return nil
}
