package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"talentdesk-backend/internal/apperror"
	"talentdesk-backend/internal/talent/domain"

	"gorm.io/gorm"
)

// gormTalentRepository implements TalentRepository using GORM
type gormTalentRepository struct {
	db *gorm.DB
}

// NewGormTalentRepository creates a new GORM-based TalentRepository.
// The talents table must already be migrated.
func NewGormTalentRepository(db *gorm.DB) TalentRepository {
	return &gormTalentRepository{db: db}
}

func (r *gormTalentRepository) List(ctx context.Context, filter ListFilter) ([]*domain.Talent, int64, error) {
	var talents []*domain.Talent
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Talent{})

	if filter.EmailOnly {
		query = query.Where("email IS NOT NULL AND email <> ''")
	}

	if filter.Keyword != "" {
		pattern := likePattern(filter.Keyword)
		query = query.Where(
			r.db.Where(`LOWER(full_name) LIKE ? ESCAPE '\'`, pattern).
				Or(`LOWER(email) LIKE ? ESCAPE '\'`, pattern).
				Or(`LOWER(note) LIKE ? ESCAPE '\'`, pattern).
				Or(r.linkURLCondition(), pattern),
		)
	}

	// Count total
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count talents: %w", err)
	}

	offset, ok := filter.Offset()
	if !ok || int64(offset) >= total {
		return []*domain.Talent{}, total, nil
	}

	err := query.Session(&gorm.Session{}).Order("id ASC").Limit(filter.Limit).Offset(offset).Find(&talents).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list talents: %w", err)
	}
	if talents == nil {
		talents = []*domain.Talent{}
	}

	return talents, total, nil
}

// linkURLCondition matches the url of any element in the external_links JSON array
func (r *gormTalentRepository) linkURLCondition() string {
	if r.db.Dialector.Name() == "postgres" {
		return `EXISTS (SELECT 1 FROM jsonb_array_elements(external_links::jsonb) AS link WHERE LOWER(link->>'url') LIKE ? ESCAPE '\')`
	}
	return `EXISTS (SELECT 1 FROM json_each(CAST(external_links AS TEXT)) AS link WHERE LOWER(json_extract(link.value, '$.url')) LIKE ? ESCAPE '\')`
}

// likePattern lowercases keyword and escapes LIKE wildcards so it matches literally
func likePattern(keyword string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(keyword))
	return "%" + escaped + "%"
}

func (r *gormTalentRepository) FindByID(ctx context.Context, id uint) (*domain.Talent, error) {
	var talent domain.Talent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&talent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("talent %d: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("find talent %d: %w", id, err)
	}
	return &talent, nil
}

func (r *gormTalentRepository) FindByTalentID(ctx context.Context, talentID string) (*domain.Talent, error) {
	var talent domain.Talent
	err := r.db.WithContext(ctx).Where("talent_id = ?", talentID).First(&talent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("talent id %q: %w", talentID, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("find talent id %q: %w", talentID, err)
	}
	return &talent, nil
}

func (r *gormTalentRepository) Create(ctx context.Context, talent *domain.Talent) (*domain.Talent, error) {
	stored := talent.Clone()
	stored.ID = 0
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&domain.Talent{}).Where("talent_id = ?", stored.TalentID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperror.ErrConflict
		}
		return tx.Create(stored).Error
	})
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("talent id %q: %w", stored.TalentID, apperror.ErrConflict)
		}
		return nil, fmt.Errorf("create talent: %w", err)
	}
	return stored, nil
}

func (r *gormTalentRepository) Update(ctx context.Context, id uint, patch domain.TalentPatch) (*domain.Talent, error) {
	updates := patchColumns(patch)
	updates["updated_at"] = time.Now()

	var talent domain.Talent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Talent{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}
		return tx.Where("id = ?", id).First(&talent).Error
	})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("talent %d: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("update talent %d: %w", id, err)
	}
	return &talent, nil
}

// patchColumns maps present patch fields to column values; nil clears the column
func patchColumns(patch domain.TalentPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.TalentURL.Set {
		updates["talent_url"] = nullable(patch.TalentURL.Value)
	}
	if patch.FullName.Set {
		updates["full_name"] = patch.FullName.Value
	}
	if patch.Nationality.Set {
		updates["nationality"] = nullable(patch.Nationality.Value)
	}
	if patch.Location.Set {
		updates["location"] = nullable(patch.Location.Value)
	}
	if patch.ExternalLinks.Set {
		updates["external_links"] = domain.CloneLinks(patch.ExternalLinks.Value)
	}
	if patch.Email.Set {
		updates["email"] = nullable(patch.Email.Value)
	}
	if patch.Note.Set {
		updates["note"] = nullable(patch.Note.Value)
	}
	if patch.Important.Set {
		updates["important"] = patch.Important.Value
	}
	return updates
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func (r *gormTalentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Talent{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("delete talent %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *gormTalentRepository) Previous(ctx context.Context, id uint) (*domain.Talent, error) {
	return r.neighbour(ctx, id, "id < ?", "id DESC")
}

func (r *gormTalentRepository) Next(ctx context.Context, id uint) (*domain.Talent, error) {
	return r.neighbour(ctx, id, "id > ?", "id ASC")
}

func (r *gormTalentRepository) neighbour(ctx context.Context, id uint, cond, order string) (*domain.Talent, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	var talent domain.Talent
	err := r.db.WithContext(ctx).Where(cond, id).Order(order).Limit(1).Take(&talent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find neighbour of talent %d: %w", id, err)
	}
	return &talent, nil
}

func (r *gormTalentRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Talent{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count talents: %w", err)
	}
	return total, nil
}
