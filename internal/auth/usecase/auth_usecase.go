package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"talentdesk-backend/internal/apperror"
	authdomain "talentdesk-backend/internal/auth/domain"
	authdto "talentdesk-backend/internal/auth/dto"
	"talentdesk-backend/internal/auth/repository"
	"talentdesk-backend/internal/auth/session"
	"talentdesk-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type sessionClaims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	sessions session.Store
	config   *config.Config
	now      func() time.Time
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, sessions session.Store, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		sessions: sessions,
		config:   cfg,
		now:      time.Now,
	}
}

func (u *authUsecase) SessionTTL() time.Duration {
	return u.config.SessionTTL
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.User, string, error) {
	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("email already registered: %w", apperror.ErrConflict)
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &authdomain.User{
		Email:    req.Email,
		Password: hashedPassword,
		FullName: strings.TrimSpace(req.FirstName + " " + req.LastName),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.IssueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdomain.User, string, error) {
	user, err := u.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, "", err
	}

	token, err := u.IssueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *authUsecase) VerifyCredentials(ctx context.Context, email, password string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !repository.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (u *authUsecase) IssueSession(ctx context.Context, user *authdomain.User) (string, error) {
	now := u.now()
	sess := &authdomain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(u.config.SessionTTL),
	}
	if err := u.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	claims := sessionClaims{
		UserID:    user.ID,
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.SessionSecret))
}

func (u *authUsecase) ValidateSession(ctx context.Context, tokenString string) (*authdomain.User, error) {
	claims, err := u.parse(tokenString, jwt.WithExpirationRequired(), jwt.WithTimeFunc(u.now))
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", apperror.ErrUnauthorized)
	}

	sess, err := u.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserID != claims.UserID {
		return nil, fmt.Errorf("session has ended: %w", apperror.ErrUnauthorized)
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user no longer exists: %w", apperror.ErrUnauthorized)
	}
	return user, nil
}

func (u *authUsecase) RevokeSession(ctx context.Context, tokenString string) error {
	// expired tokens still name a session worth deleting
	claims, err := u.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	return u.sessions.Delete(ctx, claims.SessionID)
}

func (u *authUsecase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hashedPassword, err := repository.HashPassword(password)
	if err != nil {
		return false, err
	}
	err = u.userRepo.Create(ctx, &authdomain.User{
		Email:    email,
		Password: hashedPassword,
		FullName: "Administrator",
	})
	if errors.Is(err, apperror.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (u *authUsecase) parse(tokenString string, opts ...jwt.ParserOption) (*sessionClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.SessionSecret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.SessionID == "" || claims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
