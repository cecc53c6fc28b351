package mailing

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"Sehat-Backend/internal/utils"
)

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	Mailer interface {
		// Enabled is false when no SMTP host is configured.
		Enabled() bool
		SendMail(toEmail string, subject string, body string) error
	}

	dialer interface {
		DialAndSend(m ...*gomail.Message) error
	}

	smtpMailer struct {
		cfg    MailConfig
		dialer dialer
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfigDefault("SMTP_PORT", "587"),
		SMTPSender:   utils.GetConfigDefault("SMTP_SENDER_NAME", "Sehat"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer(cfg MailConfig) (Mailer, error) {
	if cfg.SMTPHost == "" {
		return &smtpMailer{cfg: cfg}, nil
	}

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTPPort, err)
	}

	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPEmail, cfg.SMTPPassword),
	}, nil
}

func (m *smtpMailer) Enabled() bool {
	return m.dialer != nil
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	if m.dialer == nil {
		return nil
	}

	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.cfg.SMTPEmail, m.cfg.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	return m.dialer.DialAndSend(mailer)
}
