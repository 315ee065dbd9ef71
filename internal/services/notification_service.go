// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/agriloop/agriloop-backend/internal/config"
	"github.com/agriloop/agriloop-backend/internal/models"
)

type NotificationService struct {
	config *config.Config
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{
		config: config,
	}
}

const verificationEmailTemplate = `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome to AgriLoop, {{.FullName}}!</h2>
	<p>Thank you for signing up. Please verify your email address to complete your registration.</p>
	<p><a href="{{.VerificationURL}}">Verify Email Address</a></p>
	<p>If the link doesn't work, copy and paste this URL into your browser:</p>
	<p>{{.VerificationURL}}</p>
	<p>If you didn't create this account, please ignore this email.</p>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`

func (s *NotificationService) SendVerificationEmail(user *models.User, token string) error {
	data := map[string]interface{}{
		"FullName":        user.FullName,
		"VerificationURL": fmt.Sprintf("%s/api/verify-email?token=%s", s.config.Frontend.BaseURL, token),
		"PlatformName":    s.config.Email.FromName,
	}

	body, err := s.renderTemplate(verificationEmailTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, "Verify your email - AgriLoop", body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email delivery skipped: SMTP not configured")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
