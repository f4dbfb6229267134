package notification

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendLeaveDecision(to, employeeID, leaveID, status, adminComment string, daysRequested int) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailerFromEnv builds an SMTP mailer from SMTP_* env vars. When SMTP_HOST
// is unset it returns a mailer that only logs, so the consumer still runs in
// environments without a mail relay.
func NewMailerFromEnv(logger *zap.Logger) Mailer {
	log := logger.Named("notification.mailer")

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Warn("SMTP_HOST not set, mail delivery disabled")
		return &logMailer{logger: log}
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD")),
		from:   from,
		logger: log,
	}
}

func (m *smtpMailer) SendLeaveDecision(to, employeeID, leaveID, status, adminComment string, daysRequested int) error {
	if to == "" {
		m.logger.Warn("leave decision mail skipped, empty recipient",
			zap.String("leave_id", leaveID),
		)
		return nil
	}

	subject := fmt.Sprintf("Your leave request was %s", status)
	body := fmt.Sprintf(
		"Hello,\n\nYour leave request (%d business day(s)) has been %s.\n",
		daysRequested, status,
	)
	if adminComment != "" {
		body += fmt.Sprintf("\nComment from the approver: %s\n", adminComment)
	}
	body += "\nRegards,\nHR"

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send leave decision mail: %w", err)
	}

	m.logger.Info("leave decision mail sent",
		zap.String("employee_id", employeeID),
		zap.String("leave_id", leaveID),
		zap.String("status", status),
	)
	return nil
}

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) SendLeaveDecision(to, employeeID, leaveID, status, adminComment string, daysRequested int) error {
	m.logger.Info("leave decision mail (delivery disabled)",
		zap.String("to", to),
		zap.String("employee_id", employeeID),
		zap.String("leave_id", leaveID),
		zap.String("status", status),
		zap.Int("days_requested", daysRequested),
	)
	return nil
}
