package api

import (
	"net/http"

	authDelivery "talentdesk-backend/internal/auth/delivery"
	authUsecase "talentdesk-backend/internal/auth/usecase"
	settingsDelivery "talentdesk-backend/internal/settings/delivery"
	talentDelivery "talentdesk-backend/internal/talent/delivery"
	"talentdesk-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUsecase authUsecase.AuthUsecase,
	authHandler *authDelivery.AuthHandler,
	talentHandler *talentDelivery.TalentHandler,
	settingsHandler *settingsDelivery.SettingsHandler,
	m *metrics.Metrics,
) {
	requireAuth := authDelivery.AuthMiddleware(authUsecase)

	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/auth/user", requireAuth, authHandler.Me)

		// Talent routes; single-record reads are public
		talents := api.Group("/talents")
		{
			talents.GET("", requireAuth, talentHandler.ListTalents)
			talents.POST("", requireAuth, talentHandler.CreateTalent)
			talents.GET("/by-talent-id/:talentId", talentHandler.GetTalentByTalentID)
			talents.GET("/:id", talentHandler.GetTalent)
			talents.GET("/:id/navigation", talentHandler.GetNavigation)
			talents.PATCH("/:id", requireAuth, talentHandler.UpdateTalent)
			talents.DELETE("/:id", requireAuth, talentHandler.DeleteTalent)
			talents.POST("/:id/send-email", requireAuth, talentHandler.SendEmail)
		}

		// Settings routes (protected)
		settings := api.Group("/settings")
		settings.Use(requireAuth)
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", settingsHandler.ReplaceSettings)
			settings.POST("", settingsHandler.ReplaceSettings)
		}
	}
}
