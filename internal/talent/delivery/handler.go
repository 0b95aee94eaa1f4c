package delivery

import (
	"context"
	"net/http"
	"strconv"

	"talentdesk-backend/internal/apperror"
	"talentdesk-backend/internal/talent/domain"
	"talentdesk-backend/internal/talent/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Notifier sends the configured email to one talent
type Notifier interface {
	SendToTalent(ctx context.Context, id uint) error
}

// TalentHandler handles talent-related HTTP requests
type TalentHandler struct {
	talentUsecase usecase.TalentUsecase
	notifier      Notifier
	log           zerolog.Logger
}

// NewTalentHandler creates a new TalentHandler
func NewTalentHandler(talentUsecase usecase.TalentUsecase, notifier Notifier, log zerolog.Logger) *TalentHandler {
	return &TalentHandler{
		talentUsecase: talentUsecase,
		notifier:      notifier,
		log:           log.With().Str("component", "talents").Logger(),
	}
}

// ListTalents returns one page of talents
// GET /api/talents?page=1&limit=100&keyword=go&emailOnly=true
func (h *TalentHandler) ListTalents(c *gin.Context) {
	// non-numeric values parse to 0 and fall back to the defaults
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	talents, total, err := h.talentUsecase.ListTalents(c.Request.Context(), usecase.ListParams{
		Page:      page,
		Limit:     limit,
		Keyword:   c.Query("keyword"),
		EmailOnly: c.Query("emailOnly") == "true",
	})
	if err != nil {
		apperror.Respond(c, h.log, err, "Failed to fetch talents")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"talents": talents,
		"total":   total,
	})
}

// GetTalent returns a specific talent
// GET /api/talents/:id
func (h *TalentHandler) GetTalent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	talent, err := h.talentUsecase.GetTalent(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, h.log, err, "Failed to fetch talent")
		return
	}
	c.JSON(http.StatusOK, talent)
}

// GetTalentByTalentID returns a talent by its external identifier
// GET /api/talents/by-talent-id/:talentId
func (h *TalentHandler) GetTalentByTalentID(c *gin.Context) {
	talent, err := h.talentUsecase.GetTalentByTalentID(c.Request.Context(), c.Param("talentId"))
	if err != nil {
		apperror.Respond(c, h.log, err, "Failed to fetch talent")
		return
	}
	c.JSON(http.StatusOK, talent)
}

// GetNavigation returns the previous and next talents around :id
// GET /api/talents/:id/navigation
func (h *TalentHandler) GetNavigation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	nav, err := h.talentUsecase.Navigation(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, h.log, err, "Failed to fetch navigation")
		return
	}
	c.JSON(http.StatusOK, nav)
}

// CreateTalent creates a new talent
// POST /api/talents
func (h *TalentHandler) CreateTalent(c *gin.Context) {
	var req usecase.CreateTalentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid talent data: " + err.Error()})
		return
	}

	talent, err := h.talentUsecase.CreateTalent(c.Request.Context(), req)
	if err != nil {
		apperror.Respond(c, h.log, err, "Failed to create talent")
		return
	}

	h.log.Info().Uint("id", talent.ID).Str("talent_id", talent.TalentID).Msg("talent created")
	c.JSON(http.StatusCreated, talent)
}

// UpdateTalent applies a partial update
// PATCH /api/talents/:id
func (h *TalentHandler) UpdateTalent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch domain.TalentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid talent data: " + err.Error()})
		return
	}

	talent, err := h.talentUsecase.UpdateTalent(c.Request.Context(), id, patch)
	if err != nil {
		apperror.Respond(c, h.log, err, "Failed to update talent")
		return
	}
	c.JSON(http.StatusOK, talent)
}

// DeleteTalent removes a talent
// DELETE /api/talents/:id
func (h *TalentHandler) DeleteTalent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.talentUsecase.DeleteTalent(c.Request.Context(), id); err != nil {
		apperror.Respond(c, h.log, err, "Failed to delete talent")
		return
	}
	c.Status(http.StatusNoContent)
}

// SendEmail sends the configured email to the talent
// POST /api/talents/:id/send-email
func (h *TalentHandler) SendEmail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.notifier.SendToTalent(c.Request.Context(), id); err != nil {
		apperror.Respond(c, h.log, err, "Failed to send email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid talent id"})
		return 0, false
	}
	return uint(id), true
}
