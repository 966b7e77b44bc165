package mailing

import (
	"fmt"
	"strconv"

	"foodbridge-backend/internal/utils"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// Sender delivers HTML mail. Services hold this interface so tests can swap
// in a no-op implementation.
type Sender interface {
	Send(to string, subject string, htmlBody string) error
}

type smtpSender struct{}

func NewSender() Sender {
	return smtpSender{}
}

func (smtpSender) Send(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", emailConfig.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

// Template renders the shared HTML shell used by all platform notifications.
func Template(title string, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: auto; background: #ffffff; padding: 24px; border-radius: 8px;">
    <h2 style="color: #2e7d32;">%s</h2>
    <p style="color: #333333; font-size: 15px;">%s</p>
    <hr style="border: none; border-top: 1px solid #eeeeee;" />
    <p style="color: #999999; font-size: 12px;">FoodBridge, reducing food waste together.</p>
  </div>
</body>
</html>`, title, body)
}
