package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ExternalLink is a named link shown on a talent profile
type ExternalLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Talent represents one tracked profile
type Talent struct {
	ID            uint                              `json:"id" gorm:"primaryKey;autoIncrement"`
	TalentID      string                            `json:"talentId" gorm:"column:talent_id;uniqueIndex;not null"`
	TalentURL     *string                           `json:"talentUrl" gorm:"column:talent_url"`
	FullName      string                            `json:"fullName" gorm:"column:full_name;not null"`
	Nationality   *string                           `json:"nationality"`
	Location      *string                           `json:"location"`
	ExternalLinks datatypes.JSONSlice[ExternalLink] `json:"externalLinks" gorm:"column:external_links;not null"`
	Email         *string                           `json:"email"`
	Note          *string                           `json:"note"`
	Important     bool                              `json:"important" gorm:"not null;default:false"`
	CreatedAt     time.Time                         `json:"createdAt"`
	UpdatedAt     time.Time                         `json:"updatedAt"`
}

// TableName pins the table name so both storage backends agree on it.
func (Talent) TableName() string {
	return "talents"
}

// HasEmail reports whether the talent has a non-empty email address.
func (t *Talent) HasEmail() bool {
	return t.Email != nil && strings.TrimSpace(*t.Email) != ""
}

// Clone returns a deep copy, so callers can never alias stored link slices.
func (t *Talent) Clone() *Talent {
	if t == nil {
		return nil
	}
	c := *t
	c.TalentURL = cloneString(t.TalentURL)
	c.Nationality = cloneString(t.Nationality)
	c.Location = cloneString(t.Location)
	c.Email = cloneString(t.Email)
	c.Note = cloneString(t.Note)
	c.ExternalLinks = CloneLinks(t.ExternalLinks)
	return &c
}

// Normalize turns empty optional strings into nil and a nil link list into an
// empty one. Required strings are trimmed.
func (t *Talent) Normalize() {
	t.TalentID = strings.TrimSpace(t.TalentID)
	t.FullName = strings.TrimSpace(t.FullName)
	t.TalentURL = NullIfEmpty(t.TalentURL)
	t.Nationality = NullIfEmpty(t.Nationality)
	t.Location = NullIfEmpty(t.Location)
	t.Email = NullIfEmpty(t.Email)
	t.Note = NullIfEmpty(t.Note)
	t.ExternalLinks = CloneLinks(t.ExternalLinks)
}

// CloneLinks copies links; nil becomes an empty list.
func CloneLinks(links []ExternalLink) datatypes.JSONSlice[ExternalLink] {
	out := make(datatypes.JSONSlice[ExternalLink], len(links))
	copy(out, links)
	return out
}

// NullIfEmpty maps nil and blank strings to nil.
func NullIfEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
