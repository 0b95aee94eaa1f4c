package delivery

import (
	"net/http"

	"talentdesk-backend/internal/apperror"
	"talentdesk-backend/internal/settings/domain"
	"talentdesk-backend/internal/settings/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SettingsHandler handles the email settings endpoints
type SettingsHandler struct {
	settingsUsecase usecase.SettingsUsecase
	log             zerolog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsUsecase usecase.SettingsUsecase, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsUsecase: settingsUsecase,
		log:             log.With().Str("component", "settings").Logger(),
	}
}

// GetSettings returns the current settings; every field is null before the first save
// GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsUsecase.GetSettings(c.Request.Context())
	if err != nil {
		apperror.Respond(c, h.log, err, "Failed to fetch settings")
		return
	}
	if settings == nil {
		settings = &domain.Settings{}
	}
	c.JSON(http.StatusOK, settings)
}

// ReplaceSettings overwrites the settings record
// PUT /api/settings
func (h *SettingsHandler) ReplaceSettings(c *gin.Context) {
	var req usecase.ReplaceSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings data: " + err.Error()})
		return
	}

	settings, err := h.settingsUsecase.ReplaceSettings(c.Request.Context(), req)
	if err != nil {
		apperror.Respond(c, h.log, err, "Failed to save settings")
		return
	}

	h.log.Info().Bool("smtp_configured", settings.SMTPConfigured()).Msg("settings replaced")
	c.JSON(http.StatusOK, settings)
}
