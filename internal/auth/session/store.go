// Package session keeps the server-side half of login sessions.
package session

import (
	"context"

	authdomain "talentdesk-backend/internal/auth/domain"
)

// Store persists sessions by id. Get returns nil, nil for ids that are
// unknown or expired.
type Store interface {
	Save(ctx context.Context, s *authdomain.Session) error
	Get(ctx context.Context, id string) (*authdomain.Session, error)
	Delete(ctx context.Context, id string) error
}
