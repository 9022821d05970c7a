// utils/email_service.go
package utils

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/aprovacriativos/aprova_backend/config"
)

// SendCodeByEmail delivers a verification code to an approver's inbox
func SendCodeByEmail(cfg *config.Config, email, name, code string, ttl time.Duration) error {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" || cfg.FromEmail == "" {
		return fmt.Errorf("missing SMTP configuration")
	}

	subject := "Your Aprova Criativos verification code"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Review access code</h2>
			<p>Hello %s,</p>
			<p>Use the following code to access the content waiting for your review:</p>
			<h3 style="background-color: #f0f0f0; padding: 10px; font-size: 24px; letter-spacing: 5px; text-align: center;">%s</h3>
			<p>This code will expire in %d minutes.</p>
			<p>If you did not request access, you can safely ignore this email.</p>
			<p>Thank you,<br>Aprova Criativos</p>
		</body>
		</html>
	`, name, code, int(ttl.Minutes()))

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.FromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
