package infra

import (
	"fmt"
	"net/smtp"
	"path/filepath"
	"strings"

	"mireparto/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends balance documents by email over SMTP.
type Mailer struct {
	from string
	addr string
	auth smtp.Auth
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{from: cfg.SMTPFrom}
	if m.from == "" {
		m.from = cfg.SMTPUser
	}
	if cfg.SMTPHost != "" {
		m.addr = fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
		if cfg.SMTPUser != "" {
			m.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
		}
	}
	return m
}

// SendConAdjunto sends body to one recipient. A non-empty pdfPath is
// attached under its base name.
func (m *Mailer) SendConAdjunto(to, subject, body, pdfPath string) error {
	if m.addr == "" {
		return fmt.Errorf("mailer: SMTP_HOST no configurado")
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("mailer: destinatario vacío")
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		a, err := e.AttachFile(pdfPath)
		if err != nil {
			return fmt.Errorf("mailer: adjuntar %s: %w", filepath.Base(pdfPath), err)
		}
		a.ContentType = "application/pdf"
	}
	return e.Send(m.addr, m.auth)
}
