package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/config"
	"github.com/skywebdev/server/internal/domain/enrollments"
)

// Service sends candidate-facing mail through the Resend API. When disabled
// it logs what would have been sent and reports success, so development
// environments never need API credentials.
type Service struct {
	config config.EmailConfig
	client *resend.Client
	tmpl   *template.Template
	logger zerolog.Logger
}

func NewService(cfg config.EmailConfig, logger zerolog.Logger) (*Service, error) {
	if cfg.Enabled {
		if err := validateEmailAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
	}

	tmpl, err := template.New("application_received").Parse(applicationReceivedHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	s := &Service{
		config: cfg,
		tmpl:   tmpl,
		logger: logger.With().Str("component", "email").Logger(),
	}
	if cfg.Enabled {
		s.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return s, nil
}

// applicationReceivedData feeds the confirmation template.
type applicationReceivedData struct {
	Name            string
	InternshipTitle string
	Duration        string
	Location        string
	Stipend         string
	ResumeLink      string
	AppliedAt       string
	CompanyName     string
	CompanyWebsite  string
	CompanyEmail    string
	CurrentYear     int
}

// SendApplicationReceived confirms a candidate's application. Delivery is
// best effort: failures are logged, never propagated, so the enrollment that
// triggered the mail always stands.
func (s *Service) SendApplicationReceived(ctx context.Context, enrollment *enrollments.Enrollment, internship *enrollments.PostingSummary) {
	if err := validateEmailAddress(enrollment.Email); err != nil {
		s.logger.Warn().Err(err).Str("enrollment_id", enrollment.ID).Msg("skipping confirmation email for invalid address")
		return
	}

	if !s.config.Enabled {
		s.logger.Info().
			Str("to", enrollment.Email).
			Str("internship", internship.Title).
			Msg("email service disabled, skipping application confirmation")
		return
	}

	data := applicationReceivedData{
		Name:            enrollment.Name,
		InternshipTitle: internship.Title,
		Duration:        internship.Duration,
		Location:        internship.Location,
		Stipend:         internship.Stipend,
		ResumeLink:      enrollment.ResumeLink,
		AppliedAt:       enrollment.AppliedAt.Format("January 2, 2006"),
		CompanyName:     s.config.CompanyName,
		CompanyWebsite:  s.config.CompanyWebsite,
		CompanyEmail:    s.config.CompanyEmail,
		CurrentYear:     time.Now().Year(),
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Str("enrollment_id", enrollment.ID).Msg("failed to render confirmation email")
		return
	}

	subject := fmt.Sprintf("Application Received - %s", internship.Title)
	if err := s.send(ctx, enrollment.Email, subject, buf.String()); err != nil {
		s.logger.Error().Err(err).
			Str("to", enrollment.Email).
			Str("enrollment_id", enrollment.ID).
			Msg("failed to send application confirmation")
		return
	}

	s.logger.Info().
		Str("to", enrollment.Email).
		Str("internship", internship.Title).
		Msg("application confirmation sent")
}

func (s *Service) send(ctx context.Context, to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    s.config.From,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend API error: %w", err)
	}

	s.logger.Debug().Str("email_id", sent.Id).Str("to", to).Msg("email accepted by resend")
	return nil
}

// validateEmailAddress checks format and rejects header injection attempts.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	return nil
}
