package repository

import (
	"context"
	"sync"
	"time"

	"talentdesk-backend/internal/settings/domain"
)

type memorySettingsRepository struct {
	mu       sync.RWMutex
	settings *domain.Settings
}

// NewMemorySettingsRepository creates an in-process SettingsRepository
func NewMemorySettingsRepository() SettingsRepository {
	return &memorySettingsRepository{}
}

func (r *memorySettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings.Clone(), nil
}

func (r *memorySettingsRepository) Replace(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	next := settings.Clone()
	next.ID = domain.SingletonID
	next.CreatedAt = now
	if r.settings != nil {
		next.CreatedAt = r.settings.CreatedAt
	}
	next.UpdatedAt = now
	r.settings = next

	return next.Clone(), nil
}
