package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"talentdesk-backend/internal/apperror"
	authdomain "talentdesk-backend/internal/auth/domain"

	"github.com/google/uuid"
)

type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]authdomain.User
	byEmail map[string]string
}

// NewMemoryUserRepository returns a process-local UserRepository
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]authdomain.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, taken := r.byEmail[email]; taken {
		return fmt.Errorf("email %s already registered: %w", email, apperror.ErrConflict)
	}

	user.ID = uuid.New().String()
	user.Email = email
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	r.byID[user.ID] = *user
	r.byEmail[email] = user.ID
	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	user := r.byID[id]
	return &user, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}
