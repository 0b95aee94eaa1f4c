package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentdesk-backend/internal/settings/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a GORM-based SettingsRepository
func NewGormSettingsRepository(db *gorm.DB) SettingsRepository {
	return &gormSettingsRepository{db: db}
}

func (r *gormSettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.db.WithContext(ctx).Where("id = ?", domain.SingletonID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &settings, nil
}

// replacedColumns are overwritten on conflict; created_at is kept
var replacedColumns = []string{
	"smtp_host", "smtp_port", "smtp_username", "smtp_password", "smtp_secure",
	"email_subject", "email_template", "from_name", "from_email", "updated_at",
}

func (r *gormSettingsRepository) Replace(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	row := settings.Clone()
	row.ID = domain.SingletonID
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(replacedColumns),
	}).Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("replace settings: %w", err)
	}

	stored, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	return stored, nil
}
