package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	// SendLeaveStatusUpdate tells an employee that a leave request was
	// approved or rejected. Dates are "YYYY-MM-DD".
	SendLeaveStatusUpdate(to, employeeName, leaveTypeName, startDate, endDate, status string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template

	// send is smtp.SendMail outside tests
	send  func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	sleep func(time.Duration)
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		sleep:     time.Sleep,
	}, nil
}

type leaveStatusEmailData struct {
	EmployeeName  string
	LeaveTypeName string
	StartDate     string
	EndDate       string
	StatusLabel   string
	StatusColor   string
}

// SendLeaveStatusUpdate implements EmailService.
func (s *emailServiceImpl) SendLeaveStatusUpdate(to, employeeName, leaveTypeName, startDate, endDate, status string) error {
	data := leaveStatusEmailData{
		EmployeeName:  employeeName,
		LeaveTypeName: leaveTypeName,
		StartDate:     startDate,
		EndDate:       endDate,
		StatusLabel:   "Rejected",
		StatusColor:   "#dc2626",
	}
	if status == "approved" {
		data.StatusLabel = "Approved"
		data.StatusColor = "#16a34a"
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_status_update.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Leave request %s", status), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Info("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, s.cfg.From, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// exponential backoff: 1s, 2s
		if attempt < maxRetries {
			s.sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
