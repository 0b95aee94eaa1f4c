package usecase

import (
	"context"

	"talentdesk-backend/internal/settings/domain"
	"talentdesk-backend/internal/settings/repository"
)

// settingsUsecase implements SettingsUsecase interface
type settingsUsecase struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsUsecase creates a new instance of settingsUsecase
func NewSettingsUsecase(settingsRepo repository.SettingsRepository) SettingsUsecase {
	return &settingsUsecase{settingsRepo: settingsRepo}
}

func (u *settingsUsecase) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return u.settingsRepo.Get(ctx)
}

func (u *settingsUsecase) ReplaceSettings(ctx context.Context, req ReplaceSettingsRequest) (*domain.Settings, error) {
	settings := &domain.Settings{
		SMTPHost:      req.SMTPHost,
		SMTPPort:      req.SMTPPort,
		SMTPUsername:  req.SMTPUsername,
		SMTPPassword:  req.SMTPPassword,
		SMTPSecure:    req.SMTPSecure,
		EmailSubject:  req.EmailSubject,
		EmailTemplate: req.EmailTemplate,
		FromName:      req.FromName,
		FromEmail:     req.FromEmail,
	}
	settings.Normalize()
	return u.settingsRepo.Replace(ctx, settings)
}
