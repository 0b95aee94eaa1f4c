package repository

import (
	"context"
	"math"

	"talentdesk-backend/internal/talent/domain"
)

// ListFilter selects one page of talents.
// Page and Limit are 1-based and must be positive.
type ListFilter struct {
	Page      int
	Limit     int
	Keyword   string
	EmailOnly bool
}

// Offset returns the number of records skipped before the page starts.
// ok is false when that number does not fit in an int; such a page is
// always past the end.
func (f ListFilter) Offset() (offset int, ok bool) {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0, true
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return 0, false
	}
	return (f.Page - 1) * f.Limit, true
}

// TalentRepository defines the interface for talent data access
type TalentRepository interface {
	// List returns one page of matching talents ordered by id, and the number
	// of matches regardless of paging
	List(ctx context.Context, filter ListFilter) ([]*domain.Talent, int64, error)

	// FindByID returns apperror.ErrNotFound when the id does not resolve
	FindByID(ctx context.Context, id uint) (*domain.Talent, error)

	// FindByTalentID looks a talent up by its external identifier
	FindByTalentID(ctx context.Context, talentID string) (*domain.Talent, error)

	// Create assigns the next id and both timestamps.
	// Returns apperror.ErrConflict when the talent id is taken
	Create(ctx context.Context, talent *domain.Talent) (*domain.Talent, error)

	// Update applies only the present patch fields and bumps updatedAt
	Update(ctx context.Context, id uint, patch domain.TalentPatch) (*domain.Talent, error)

	// Delete removes the talent; false means nothing was stored under id
	Delete(ctx context.Context, id uint) (bool, error)

	// Previous returns the talent with the greatest id below id, or nil
	Previous(ctx context.Context, id uint) (*domain.Talent, error)

	// Next returns the talent with the smallest id above id, or nil
	Next(ctx context.Context, id uint) (*domain.Talent, error)

	// Count returns the total number of stored talents
	Count(ctx context.Context) (int64, error)
}
