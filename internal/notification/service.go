// Package notification composes and sends the outreach email for a talent.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"talentdesk-backend/internal/apperror"
	settingsdomain "talentdesk-backend/internal/settings/domain"
	settingsrepo "talentdesk-backend/internal/settings/repository"
	talentdomain "talentdesk-backend/internal/talent/domain"
	talentrepo "talentdesk-backend/internal/talent/repository"
	"talentdesk-backend/pkg/metrics"
	"talentdesk-backend/pkg/smtp"

	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog"
)

const (
	NamePlaceholder = "{{name}}"

	DefaultSubject  = "Hello " + NamePlaceholder
	DefaultTemplate = "Dear " + NamePlaceholder + ",\n\nBest regards"
	DefaultFromName = "Talent Management"
)

// Sender delivers a composed message
type Sender interface {
	Send(ctx context.Context, server smtp.Server, from string, to []string, msg io.Reader) error
}

// EmailCounter records send outcomes
type EmailCounter interface {
	EmailSent(outcome string)
}

// Service sends the configured email to one talent at a time
type Service struct {
	talents  talentrepo.TalentRepository
	settings settingsrepo.SettingsRepository
	sender   Sender
	counter  EmailCounter
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates a notification Service. counter may be nil.
func NewService(
	talents talentrepo.TalentRepository,
	settings settingsrepo.SettingsRepository,
	sender Sender,
	counter EmailCounter,
	log zerolog.Logger,
) *Service {
	return &Service{
		talents:  talents,
		settings: settings,
		sender:   sender,
		counter:  counter,
		log:      log.With().Str("component", "notifier").Logger(),
		now:      time.Now,
	}
}

// SendToTalent renders the template for the talent and sends it. Missing
// email or SMTP settings fail with apperror.ErrPreconditionFailed.
func (s *Service) SendToTalent(ctx context.Context, id uint) error {
	talent, err := s.talents.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !talent.HasEmail() {
		s.count(metrics.OutcomeRejected)
		return fmt.Errorf("talent does not have an email address: %w", apperror.ErrPreconditionFailed)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.SMTPConfigured() {
		s.count(metrics.OutcomeRejected)
		return fmt.Errorf("SMTP settings are not configured: %w", apperror.ErrPreconditionFailed)
	}

	from, msg, err := s.Compose(talent, settings)
	if err != nil {
		s.count(metrics.OutcomeFailed)
		return fmt.Errorf("compose email: %w", err)
	}

	server := smtp.Server{
		Host:     *settings.SMTPHost,
		Port:     valueOr(settings.SMTPPort, ""),
		Username: *settings.SMTPUsername,
		Password: *settings.SMTPPassword,
		Secure:   settings.SMTPSecure != nil && *settings.SMTPSecure,
	}
	if err := s.sender.Send(ctx, server, from, []string{strings.TrimSpace(*talent.Email)}, bytes.NewReader(msg)); err != nil {
		s.count(metrics.OutcomeFailed)
		return fmt.Errorf("send email to talent %d: %w", id, err)
	}

	s.count(metrics.OutcomeSent)
	s.log.Info().Uint("talent", id).Str("smtp_host", server.Host).Msg("email sent")
	return nil
}

// Compose renders the message and returns the envelope sender with it
func (s *Service) Compose(talent *talentdomain.Talent, settings *settingsdomain.Settings) (string, []byte, error) {
	subject := Render(valueOr(settings.EmailSubject, DefaultSubject), talent.FullName)
	body := Render(valueOr(settings.EmailTemplate, DefaultTemplate), talent.FullName)

	fromEmail := valueOr(settings.FromEmail, *settings.SMTPUsername)
	fromName := valueOr(settings.FromName, DefaultFromName)

	var h mail.Header
	h.SetDate(s.now())
	h.SetSubject(subject)
	h.SetAddressList("From", []*mail.Address{{Name: fromName, Address: fromEmail}})
	h.SetAddressList("To", []*mail.Address{{Name: talent.FullName, Address: strings.TrimSpace(*talent.Email)}})
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return "", nil, err
	}
	if _, err := io.WriteString(w, body); err != nil {
		return "", nil, err
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return fromEmail, buf.Bytes(), nil
}

// Render replaces every literal {{name}} with name
func Render(template, name string) string {
	return strings.ReplaceAll(template, NamePlaceholder, name)
}

func (s *Service) count(outcome string) {
	if s.counter != nil {
		s.counter.EmailSent(outcome)
	}
}

func valueOr(p *string, fallback string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return fallback
	}
	return *p
}
