// Package maintenance runs background housekeeping for the session store.
package maintenance

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/astralgate/auth-system/internal/core/ports"
)

const defaultInterval = 24 * time.Hour

// Sweeper periodically purges expired sessions. It only ever removes
// entries, so it can run alongside live request handling without
// coordination beyond the store's own locking.
type Sweeper struct {
	store    ports.SessionStore
	interval time.Duration
	log      zerolog.Logger
}

// NewSweeper creates a Sweeper. If interval <= 0, defaultInterval is used.
func NewSweeper(store ports.SessionStore, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{store: store, interval: interval, log: log}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := s.store.Sweep(ctx, now); err != nil {
				s.log.Error().Err(err).Msg("session sweep failed")
			}
		}
	}
}
