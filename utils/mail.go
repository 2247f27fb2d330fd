package utils

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"saudeplus/config"
)

// SendMail delivers an HTML email through the configured SMTP server. When
// mail credentials are not configured the message is dropped with a warning
// so callers never break on missing mail setup.
func SendMail(to, subject, html string) error {
	cfg := config.AppConfig
	if cfg.MailUsername == "" || cfg.MailPassword == "" {
		GetLogger().Warn("mail credentials not configured, email not sent",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	from := cfg.MailFrom
	if from == "" {
		from = cfg.MailUsername
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(cfg.MailServer, cfg.MailPort, cfg.MailUsername, cfg.MailPassword)
	return d.DialAndSend(m)
}
