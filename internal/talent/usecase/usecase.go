package usecase

import (
	"context"

	"talentdesk-backend/internal/talent/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// TalentUsecase defines the interface for talent business logic
type TalentUsecase interface {
	// ListTalents returns one page of talents and the total number of matches
	ListTalents(ctx context.Context, params ListParams) ([]*domain.Talent, int64, error)

	// GetTalent returns the talent stored under id
	GetTalent(ctx context.Context, id uint) (*domain.Talent, error)

	// GetTalentByTalentID looks a talent up by its external identifier
	GetTalentByTalentID(ctx context.Context, talentID string) (*domain.Talent, error)

	// CreateTalent validates and stores a new talent
	CreateTalent(ctx context.Context, req CreateTalentRequest) (*domain.Talent, error)

	// UpdateTalent applies a partial update
	UpdateTalent(ctx context.Context, id uint, patch domain.TalentPatch) (*domain.Talent, error)

	// DeleteTalent removes a talent; deleting a missing talent is not an error
	DeleteTalent(ctx context.Context, id uint) error

	// Navigation returns the neighbours of id in id order, nil at either end
	Navigation(ctx context.Context, id uint) (*Navigation, error)

	// SeedSampleTalents inserts the sample profiles when the store is empty.
	// Returns the number of talents inserted.
	SeedSampleTalents(ctx context.Context) (int, error)
}

// ListParams are the listing query parameters. Page and Limit below 1 fall
// back to the defaults.
type ListParams struct {
	Page      int
	Limit     int
	Keyword   string
	EmailOnly bool
}

// CreateTalentRequest is the body accepted when creating a talent
type CreateTalentRequest struct {
	TalentID      string                `json:"talentId"`
	TalentURL     *string               `json:"talentUrl"`
	FullName      string                `json:"fullName"`
	Nationality   *string               `json:"nationality"`
	Location      *string               `json:"location"`
	ExternalLinks []domain.ExternalLink `json:"externalLinks"`
	Email         *string               `json:"email"`
	Note          *string               `json:"note"`
	Important     bool                  `json:"important"`
}

// Navigation holds the previous and next talents around an anchor
type Navigation struct {
	Previous *domain.Talent `json:"previous,omitempty"`
	Next     *domain.Talent `json:"next,omitempty"`
}
