package usecase

import (
	"context"

	"talentdesk-backend/internal/settings/domain"
)

// SettingsUsecase defines the business logic around the email settings
type SettingsUsecase interface {
	// GetSettings returns the stored settings, or nil before first configuration
	GetSettings(ctx context.Context) (*domain.Settings, error)

	// ReplaceSettings overwrites the whole record; omitted fields become unset
	ReplaceSettings(ctx context.Context, req ReplaceSettingsRequest) (*domain.Settings, error)
}

// ReplaceSettingsRequest is the full settings form
type ReplaceSettingsRequest struct {
	SMTPHost      *string `json:"smtpHost"`
	SMTPPort      *string `json:"smtpPort"`
	SMTPUsername  *string `json:"smtpUsername"`
	SMTPPassword  *string `json:"smtpPassword"`
	SMTPSecure    *bool   `json:"smtpSecure"`
	EmailSubject  *string `json:"emailSubject"`
	EmailTemplate *string `json:"emailTemplate"`
	FromName      *string `json:"fromName"`
	FromEmail     *string `json:"fromEmail"`
}
