package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Pruner removes expired sessions
type Pruner interface {
	PruneExpired(ctx context.Context, now time.Time) (int, error)
}

// SessionSweeper periodically prunes expired sessions from a Pruner
type SessionSweeper struct {
	cron   *cron.Cron
	pruner Pruner
	spec   string // cron spec, e.g. "@every 10m"
	log    zerolog.Logger
	now    func() time.Time
}

// NewSessionSweeper creates a sweeper firing on spec
func NewSessionSweeper(pruner Pruner, spec string, log zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		cron:   cron.New(),
		pruner: pruner,
		spec:   spec,
		log:    log.With().Str("component", "session_sweeper").Logger(),
		now:    time.Now,
	}
}

// Start registers the job and starts the cron loop
func (s *SessionSweeper) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("session sweeper started")
	return nil
}

// Stop waits for a running sweep to finish
func (s *SessionSweeper) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("session sweeper stopped")
}

// Sweep runs one pruning pass
func (s *SessionSweeper) Sweep(ctx context.Context) int {
	removed, err := s.pruner.PruneExpired(ctx, s.now())
	if err != nil {
		s.log.Error().Err(err).Msg("error pruning expired sessions")
		return 0
	}
	if removed > 0 {
		s.log.Debug().Int("removed", removed).Msg("pruned expired sessions")
	}
	return removed
}
