package usecase

import (
	"context"
	"fmt"
	"strings"

	"talentdesk-backend/internal/apperror"
	"talentdesk-backend/internal/talent/domain"
	"talentdesk-backend/internal/talent/repository"
)

// talentUsecase implements TalentUsecase interface
type talentUsecase struct {
	talentRepo repository.TalentRepository
}

// NewTalentUsecase creates a new instance of talentUsecase
func NewTalentUsecase(talentRepo repository.TalentRepository) TalentUsecase {
	return &talentUsecase{talentRepo: talentRepo}
}

func (u *talentUsecase) ListTalents(ctx context.Context, params ListParams) ([]*domain.Talent, int64, error) {
	filter := repository.ListFilter{
		Page:      params.Page,
		Limit:     params.Limit,
		Keyword:   params.Keyword,
		EmailOnly: params.EmailOnly,
	}
	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultLimit
	}
	return u.talentRepo.List(ctx, filter)
}

func (u *talentUsecase) GetTalent(ctx context.Context, id uint) (*domain.Talent, error) {
	return u.talentRepo.FindByID(ctx, id)
}

func (u *talentUsecase) GetTalentByTalentID(ctx context.Context, talentID string) (*domain.Talent, error) {
	return u.talentRepo.FindByTalentID(ctx, talentID)
}

func (u *talentUsecase) CreateTalent(ctx context.Context, req CreateTalentRequest) (*domain.Talent, error) {
	talent := &domain.Talent{
		TalentID:      req.TalentID,
		TalentURL:     req.TalentURL,
		FullName:      req.FullName,
		Nationality:   req.Nationality,
		Location:      req.Location,
		ExternalLinks: domain.CloneLinks(req.ExternalLinks),
		Email:         req.Email,
		Note:          req.Note,
		Important:     req.Important,
	}
	talent.Normalize()

	if talent.TalentID == "" {
		return nil, fmt.Errorf("talentId is required: %w", apperror.ErrValidation)
	}
	if talent.FullName == "" {
		return nil, fmt.Errorf("fullName is required: %w", apperror.ErrValidation)
	}
	if err := validateLinks(talent.ExternalLinks); err != nil {
		return nil, err
	}

	return u.talentRepo.Create(ctx, talent)
}

func (u *talentUsecase) UpdateTalent(ctx context.Context, id uint, patch domain.TalentPatch) (*domain.Talent, error) {
	patch.Normalize()

	if patch.FullName.Set {
		patch.FullName.Value = strings.TrimSpace(patch.FullName.Value)
		if patch.FullName.Value == "" {
			return nil, fmt.Errorf("fullName cannot be empty: %w", apperror.ErrValidation)
		}
	}
	if patch.ExternalLinks.Set {
		if err := validateLinks(patch.ExternalLinks.Value); err != nil {
			return nil, err
		}
	}

	// an empty patch still has to resolve the id
	if patch.IsEmpty() {
		return u.talentRepo.FindByID(ctx, id)
	}
	return u.talentRepo.Update(ctx, id, patch)
}

func (u *talentUsecase) DeleteTalent(ctx context.Context, id uint) error {
	_, err := u.talentRepo.Delete(ctx, id)
	return err
}

func (u *talentUsecase) Navigation(ctx context.Context, id uint) (*Navigation, error) {
	previous, err := u.talentRepo.Previous(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := u.talentRepo.Next(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Navigation{Previous: previous, Next: next}, nil
}

func (u *talentUsecase) SeedSampleTalents(ctx context.Context) (int, error) {
	count, err := u.talentRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, sample := range sampleTalents() {
		if _, err := u.talentRepo.Create(ctx, sample); err != nil {
			return inserted, fmt.Errorf("seed %s: %w", sample.TalentID, err)
		}
		inserted++
	}
	return inserted, nil
}

func validateLinks(links []domain.ExternalLink) error {
	for i, link := range links {
		if strings.TrimSpace(link.URL) == "" {
			return fmt.Errorf("externalLinks[%d].url is required: %w", i, apperror.ErrValidation)
		}
	}
	return nil
}
