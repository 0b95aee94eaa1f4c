package domain

import (
	"bytes"
	"encoding/json"
)

// Optional marks whether a field was supplied in a partial update.
// A JSON key with a null value decodes as Set with the zero value.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON is only invoked when the key is present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON writes the value, or null when absent.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// TalentPatch lists the fields a partial update may change.
// id and talentId are immutable and not part of it.
type TalentPatch struct {
	TalentURL     Optional[*string]        `json:"talentUrl"`
	FullName      Optional[string]         `json:"fullName"`
	Nationality   Optional[*string]        `json:"nationality"`
	Location      Optional[*string]        `json:"location"`
	ExternalLinks Optional[[]ExternalLink] `json:"externalLinks"`
	Email         Optional[*string]        `json:"email"`
	Note          Optional[*string]        `json:"note"`
	Important     Optional[bool]           `json:"important"`
}

// IsEmpty reports whether no field is present.
func (p TalentPatch) IsEmpty() bool {
	return !p.TalentURL.Set && !p.FullName.Set && !p.Nationality.Set && !p.Location.Set &&
		!p.ExternalLinks.Set && !p.Email.Set && !p.Note.Set && !p.Important.Set
}

// Normalize applies the same empty-to-null rules as Talent.Normalize to the
// present fields.
func (p *TalentPatch) Normalize() {
	if p.TalentURL.Set {
		p.TalentURL.Value = NullIfEmpty(p.TalentURL.Value)
	}
	if p.Nationality.Set {
		p.Nationality.Value = NullIfEmpty(p.Nationality.Value)
	}
	if p.Location.Set {
		p.Location.Value = NullIfEmpty(p.Location.Value)
	}
	if p.Email.Set {
		p.Email.Value = NullIfEmpty(p.Email.Value)
	}
	if p.Note.Set {
		p.Note.Value = NullIfEmpty(p.Note.Value)
	}
	if p.ExternalLinks.Set {
		p.ExternalLinks.Value = CloneLinks(p.ExternalLinks.Value)
	}
}

// Apply writes the present fields onto t.
func (p TalentPatch) Apply(t *Talent) {
	if p.TalentURL.Set {
		t.TalentURL = cloneString(p.TalentURL.Value)
	}
	if p.FullName.Set {
		t.FullName = p.FullName.Value
	}
	if p.Nationality.Set {
		t.Nationality = cloneString(p.Nationality.Value)
	}
	if p.Location.Set {
		t.Location = cloneString(p.Location.Value)
	}
	if p.ExternalLinks.Set {
		t.ExternalLinks = CloneLinks(p.ExternalLinks.Value)
	}
	if p.Email.Set {
		t.Email = cloneString(p.Email.Value)
	}
	if p.Note.Set {
		t.Note = cloneString(p.Note.Value)
	}
	if p.Important.Set {
		t.Important = p.Important.Value
	}
}
