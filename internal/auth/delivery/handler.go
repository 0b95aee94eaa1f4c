package delivery

import (
	"errors"
	"net/http"

	"talentdesk-backend/internal/apperror"
	authdomain "talentdesk-backend/internal/auth/domain"
	authdto "talentdesk-backend/internal/auth/dto"
	"talentdesk-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	secureCookie bool
	log          zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		secureCookie: secureCookie,
		log:          log.With().Str("component", "auth").Logger(),
	}
}

// Register creates an account and starts a session
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
			return
		}
		apperror.Respond(c, h.log, err, "Registration failed")
		return
	}

	h.setSessionCookie(c, token)
	h.log.Info().Str("user_id", user.ID).Msg("user registered")
	c.JSON(http.StatusCreated, authdto.AuthResponse{Message: "Registration successful", User: user})
}

// Login verifies credentials and starts a session
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		apperror.Respond(c, h.log, err, "Login failed")
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, authdto.AuthResponse{Message: "Login successful", User: user})
}

// Logout ends the session and clears the cookie
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := tokenFromRequest(c); token != "" {
		if err := h.authUsecase.RevokeSession(c.Request.Context(), token); err != nil {
			apperror.Respond(c, h.log, err, "Could not log out")
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me returns the authenticated user
// GET /api/auth/user
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user.(*authdomain.User))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(h.authUsecase.SessionTTL().Seconds()), "/", "", h.secureCookie, true)
}
