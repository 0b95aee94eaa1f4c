package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"talentdesk-backend/internal/apperror"
	"talentdesk-backend/internal/talent/domain"
)

// memoryTalentRepository keeps talents in a map guarded by a single lock.
// Records are copied on every read and write.
type memoryTalentRepository struct {
	mu      sync.RWMutex
	talents map[uint]*domain.Talent
	nextID  uint
	now     func() time.Time
}

// NewMemoryTalentRepository creates an empty in-process TalentRepository
func NewMemoryTalentRepository() TalentRepository {
	return &memoryTalentRepository{
		talents: make(map[uint]*domain.Talent),
		nextID:  1,
		now:     time.Now,
	}
}

func (r *memoryTalentRepository) List(ctx context.Context, filter ListFilter) ([]*domain.Talent, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyword := strings.ToLower(filter.Keyword)
	matched := make([]*domain.Talent, 0, len(r.talents))
	for _, t := range r.talents {
		if filter.EmailOnly && !t.HasEmail() {
			continue
		}
		if keyword != "" && !matchesKeyword(t, keyword) {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start, ok := filter.Offset()
	if !ok || start >= len(matched) {
		return []*domain.Talent{}, total, nil
	}
	end := len(matched)
	if filter.Limit < end-start {
		end = start + filter.Limit
	}

	page := make([]*domain.Talent, 0, end-start)
	for _, t := range matched[start:end] {
		page = append(page, t.Clone())
	}
	return page, total, nil
}

// matchesKeyword expects keyword already lowercased
func matchesKeyword(t *domain.Talent, keyword string) bool {
	if strings.Contains(strings.ToLower(t.FullName), keyword) {
		return true
	}
	if t.Email != nil && strings.Contains(strings.ToLower(*t.Email), keyword) {
		return true
	}
	if t.Note != nil && strings.Contains(strings.ToLower(*t.Note), keyword) {
		return true
	}
	for _, link := range t.ExternalLinks {
		if strings.Contains(strings.ToLower(link.URL), keyword) {
			return true
		}
	}
	return false
}

func (r *memoryTalentRepository) FindByID(ctx context.Context, id uint) (*domain.Talent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.talents[id]
	if !ok {
		return nil, fmt.Errorf("talent %d: %w", id, apperror.ErrNotFound)
	}
	return t.Clone(), nil
}

func (r *memoryTalentRepository) FindByTalentID(ctx context.Context, talentID string) (*domain.Talent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t := r.findByTalentIDLocked(talentID); t != nil {
		return t.Clone(), nil
	}
	return nil, fmt.Errorf("talent id %q: %w", talentID, apperror.ErrNotFound)
}

func (r *memoryTalentRepository) findByTalentIDLocked(talentID string) *domain.Talent {
	for _, t := range r.talents {
		if t.TalentID == talentID {
			return t
		}
	}
	return nil
}

func (r *memoryTalentRepository) Create(ctx context.Context, talent *domain.Talent) (*domain.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findByTalentIDLocked(talent.TalentID) != nil {
		return nil, fmt.Errorf("talent id %q: %w", talent.TalentID, apperror.ErrConflict)
	}

	stored := talent.Clone()
	stored.ID = r.nextID
	r.nextID++
	now := r.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.talents[stored.ID] = stored

	return stored.Clone(), nil
}

func (r *memoryTalentRepository) Update(ctx context.Context, id uint, patch domain.TalentPatch) (*domain.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.talents[id]
	if !ok {
		return nil, fmt.Errorf("talent %d: %w", id, apperror.ErrNotFound)
	}

	updated := existing.Clone()
	patch.Apply(updated)
	updated.UpdatedAt = r.now()
	r.talents[id] = updated

	return updated.Clone(), nil
}

func (r *memoryTalentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.talents[id]; !ok {
		return false, nil
	}
	delete(r.talents, id)
	return true, nil
}

func (r *memoryTalentRepository) Previous(ctx context.Context, id uint) (*domain.Talent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.talents[id]; !ok {
		return nil, fmt.Errorf("talent %d: %w", id, apperror.ErrNotFound)
	}

	var best *domain.Talent
	for _, t := range r.talents {
		if t.ID < id && (best == nil || t.ID > best.ID) {
			best = t
		}
	}
	return best.Clone(), nil
}

func (r *memoryTalentRepository) Next(ctx context.Context, id uint) (*domain.Talent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.talents[id]; !ok {
		return nil, fmt.Errorf("talent %d: %w", id, apperror.ErrNotFound)
	}

	var best *domain.Talent
	for _, t := range r.talents {
		if t.ID > id && (best == nil || t.ID < best.ID) {
			best = t
		}
	}
	return best.Clone(), nil
}

func (r *memoryTalentRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.talents)), nil
}
