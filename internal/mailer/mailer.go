// Package mailer sends registration confirmation email over SMTP.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer holds SMTP connection parameters. A zero Host disables sending,
// which keeps local development working without an SMTP account.
type Mailer struct {
	Host string // e.g. smtp.gmail.com
	Port string
	From string
	Pass string
}

// FromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, SMTP_FROM, SMTP_PASS.
func FromEnv() *Mailer {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &Mailer{
		Host: os.Getenv("SMTP_HOST"),
		Port: port,
		From: os.Getenv("SMTP_FROM"),
		Pass: os.Getenv("SMTP_PASS"),
	}
}

// SendConfirmation emails the registrant that their spot is confirmed.
func (m *Mailer) SendConfirmation(to, name, ticketType string) error {
	if m.Host == "" {
		log.Printf("mailer: SMTP not configured, skipping confirmation for %s", to)
		return nil
	}

	subject := "Your registration is confirmed"
	body := fmt.Sprintf("Hi %s,\n\nYour %s ticket is confirmed. We look forward to seeing you at the conference!\n", name, ticketType)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.From, to, subject, body)

	auth := smtp.PlainAuth("", m.From, m.Pass, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	log.Printf("mailer: confirmation sent to %s", to)
	return nil
}
