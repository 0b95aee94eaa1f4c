package repository

import (
	"context"

	"talentdesk-backend/internal/settings/domain"
)

// SettingsRepository stores the singleton settings record
type SettingsRepository interface {
	// Get returns nil without error before the first Replace
	Get(ctx context.Context) (*domain.Settings, error)

	// Replace overwrites every field of the record, creating it on first use.
	// CreatedAt of an existing record is preserved.
	Replace(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
}
