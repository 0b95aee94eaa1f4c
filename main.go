package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "talentdesk-backend/cmd/api"
	authdomain "talentdesk-backend/internal/auth/domain"
	authRepo "talentdesk-backend/internal/auth/repository"
	"talentdesk-backend/internal/auth/scheduler"
	"talentdesk-backend/internal/auth/session"
	authUsecase "talentdesk-backend/internal/auth/usecase"
	"talentdesk-backend/internal/notification"
	settingsdomain "talentdesk-backend/internal/settings/domain"
	settingsRepo "talentdesk-backend/internal/settings/repository"
	settingsUsecase "talentdesk-backend/internal/settings/usecase"
	talentdomain "talentdesk-backend/internal/talent/domain"
	talentRepo "talentdesk-backend/internal/talent/repository"
	talentUsecase "talentdesk-backend/internal/talent/usecase"
	"talentdesk-backend/pkg/config"
	"talentdesk-backend/pkg/database"
	"talentdesk-backend/pkg/logger"
	"talentdesk-backend/pkg/metrics"
	"talentdesk-backend/pkg/redis"
	"talentdesk-backend/pkg/smtp"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type stores struct {
	talents  talentRepo.TalentRepository
	settings settingsRepo.SettingsRepository
	users    authRepo.UserRepository
	db       *gorm.DB
}

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	st, err := openStores(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	if st.db != nil {
		defer func() { _ = database.Close(st.db) }()
	}

	// Initialize session store
	sessions, sweeper, err := openSessions(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session store")
	}
	if sweeper != nil {
		if err := sweeper.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start session sweeper")
		}
		defer sweeper.Stop()
	}

	// Initialize use cases (dependency injection)
	m := metrics.New()
	authUc := authUsecase.NewAuthUsecase(st.users, sessions, cfg)
	talentUc := talentUsecase.NewTalentUsecase(st.talents)
	settingsUc := settingsUsecase.NewSettingsUsecase(st.settings)
	startTLS, _ := smtp.ParseStartTLSPolicy(cfg.SMTPStartTLS) // checked by cfg.Validate
	mailer := smtp.NewClient(cfg.SMTPTimeout).WithStartTLS(startTLS)
	notifier := notification.NewService(st.talents, st.settings, mailer, m, log)

	if cfg.SeedSampleData {
		n, err := talentUc.SeedSampleTalents(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed sample talents")
		}
		if n > 0 {
			log.Info().Int("count", n).Msg("Seeded sample talents")
		}
	}

	if cfg.AdminEmail != "" {
		created, err := authUc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create admin account")
		}
		if created {
			log.Info().Str("email", cfg.AdminEmail).Msg("Created admin account")
		}
	}

	// Initialize HTTP handler
	handler := api.NewHandler(authUc, talentUc, settingsUc, notifier, m, cfg, log)

	errCh := make(chan error, 1)
	go func() { errCh <- handler.Start(":" + cfg.Port) }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := handler.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}

func openStores(cfg *config.Config, log zerolog.Logger) (*stores, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Info().Msg("Using in-memory storage")
		return &stores{
			talents:  talentRepo.NewMemoryTalentRepository(),
			settings: settingsRepo.NewMemorySettingsRepository(),
			users:    authRepo.NewMemoryUserRepository(),
		}, nil
	case config.StoragePostgres:
		db, err = database.NewPostgresConnection(cfg.DatabaseURL, database.Options{})
	case config.StorageSQLite:
		db, err = database.NewSQLiteConnection(cfg.SQLitePath, database.Options{})
	default:
		return nil, errors.New("unknown storage driver " + cfg.StorageDriver)
	}
	if err != nil {
		return nil, err
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&talentdomain.Talent{}, &settingsdomain.Settings{}, &authdomain.User{}); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	log.Info().Str("driver", cfg.StorageDriver).Msg("Database connected")

	return &stores{
		talents:  talentRepo.NewGormTalentRepository(db),
		settings: settingsRepo.NewGormSettingsRepository(db),
		users:    authRepo.NewUserRepository(db),
		db:       db,
	}, nil
}

func openSessions(ctx context.Context, cfg *config.Config, log zerolog.Logger) (session.Store, *scheduler.SessionSweeper, error) {
	if cfg.SessionStore == config.SessionStoreRedis {
		rdb, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("Using Redis session store")
		return session.NewRedisStore(rdb), nil, nil
	}

	store := session.NewMemoryStore()
	return store, scheduler.NewSessionSweeper(store, cfg.SessionSweepSpec, log), nil
}
