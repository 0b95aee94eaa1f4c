package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	authDelivery "talentdesk-backend/internal/auth/delivery"
	authUsecase "talentdesk-backend/internal/auth/usecase"
	settingsDelivery "talentdesk-backend/internal/settings/delivery"
	settingsUsecase "talentdesk-backend/internal/settings/usecase"
	talentDelivery "talentdesk-backend/internal/talent/delivery"
	talentUsecase "talentdesk-backend/internal/talent/usecase"
	"talentdesk-backend/pkg/config"
	"talentdesk-backend/pkg/logger"
	"talentdesk-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	authUsecase     authUsecase.AuthUsecase
	authHandler     *authDelivery.AuthHandler
	talentHandler   *talentDelivery.TalentHandler
	settingsHandler *settingsDelivery.SettingsHandler
	metrics         *metrics.Metrics
	config          *config.Config
	log             zerolog.Logger
	server          *http.Server
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	talentUc talentUsecase.TalentUsecase,
	settingsUc settingsUsecase.SettingsUsecase,
	notifier talentDelivery.Notifier,
	m *metrics.Metrics,
	cfg *config.Config,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authUsecase:     authUc,
		authHandler:     authDelivery.NewAuthHandler(authUc, cfg.CookieSecure, log),
		talentHandler:   talentDelivery.NewTalentHandler(talentUc, notifier, log),
		settingsHandler: settingsDelivery.NewSettingsHandler(settingsUc, log),
		metrics:         m,
		config:          cfg,
		log:             log,
	}
}

// Router builds the gin engine with middleware and routes
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogger(h.log), h.metrics.Middleware(), corsMiddleware(h.config.AllowedOrigins))

	SetupRoutes(r, h.authUsecase, h.authHandler, h.talentHandler, h.settingsHandler, h.metrics)
	return r
}

// Start serves until Shutdown is called
func (h *Handler) Start(addr string) error {
	h.server = &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// sending email waits on the SMTP relay
		WriteTimeout: h.config.SMTPTimeout + 30*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	h.log.Info().Str("addr", addr).Msg("Server starting")
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (h *Handler) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

// corsMiddleware reflects the request origin when it is allowed. An empty
// allow list accepts every origin.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		allowedSet[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			if _, ok := allowedSet[origin]; ok || len(allowedSet) == 0 {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				c.Writer.Header().Add("Vary", "Origin")
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
