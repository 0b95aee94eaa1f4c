package usecase

import (
	"context"
	"fmt"
	"time"

	"talentdesk-backend/internal/apperror"
	authdomain "talentdesk-backend/internal/auth/domain"
	authdto "talentdesk-backend/internal/auth/dto"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password
var ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperror.ErrUnauthorized)

// AuthUsecase defines the interface for authentication logic
type AuthUsecase interface {
	// Register creates the user and logs them in
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.User, string, error)

	// Login verifies credentials and issues a session token
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdomain.User, string, error)

	// VerifyCredentials returns ErrInvalidCredentials on mismatch
	VerifyCredentials(ctx context.Context, email, password string) (*authdomain.User, error)

	// IssueSession stores a new server-side session and returns the signed token
	IssueSession(ctx context.Context, user *authdomain.User) (string, error)

	// ValidateSession resolves a token to its user, or apperror.ErrUnauthorized
	ValidateSession(ctx context.Context, token string) (*authdomain.User, error)

	// RevokeSession ends the session behind token. Unknown tokens are ignored.
	RevokeSession(ctx context.Context, token string) error

	// EnsureAdmin creates the account when no user has the email yet
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)

	// SessionTTL is the lifetime of issued sessions
	SessionTTL() time.Duration
}
