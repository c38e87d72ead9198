package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
)

// Syncer imports people and renders their calendar.
type Syncer interface {
	RunSync(ctx context.Context, cfg engine.SourceConfig) ([]byte, []engine.Contact, int, error)
}

// Refresher rebuilds the served calendar on a fixed interval.
type Refresher struct {
	Server   *Server
	Syncer   Syncer
	Source   engine.SourceConfig
	Interval time.Duration
}

// Run syncs once right away, then every Interval until ctx ends. Failed
// syncs are logged and the previous calendar keeps being served.
func (r *Refresher) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	interval := r.Interval
	if interval <= 0 {
		interval = config.DefaultRefresh
	}

	r.Sync(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgRefreshStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgRefreshStop)
			return nil
		case <-ticker.C:
			r.Sync(ctx)
		}
	}
}

// Sync runs one import and publishes the result. It reports success.
func (r *Refresher) Sync(ctx context.Context) bool {
	ics, contacts, events, err := r.Syncer.RunSync(ctx, r.Source)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error(config.ErrCalendarRefresh,
				config.LogKeyComponent, config.CompWorker,
				config.LogKeyMode, r.Source.Mode,
				config.LogKeyError, err,
			)
		}
		return false
	}

	r.Server.SetPeople(contacts)
	r.Server.UpdateCalendar(ics)

	slog.Debug(config.MsgRefreshDone,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyFound, len(contacts),
		config.LogKeyEvents, events,
	)
	return true
}
