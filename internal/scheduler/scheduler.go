// Package scheduler drives periodic scan attempts on a best-effort cadence.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/sadopc/wifitrackr/internal/scan"
	"github.com/sadopc/wifitrackr/internal/store"
)

// MinIntervalMinutes is the floor for the periodic cadence, matching the
// minimum repeat interval of mobile background schedulers.
const MinIntervalMinutes = 15

type Scheduler struct {
	store    *store.Store
	recorder *scan.Recorder
	log      *slog.Logger
}

func New(s *store.Store, recorder *scan.Recorder, log *slog.Logger) *Scheduler {
	return &Scheduler{store: s, recorder: recorder, log: log}
}

// Run executes one periodic attempt immediately, then one per interval
// until the context is cancelled. The interval is re-read from settings
// every cycle, so changes take effect on the next wake-up. Failed attempts
// are not retried eagerly; the next tick is the retry.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		s.attempt(ctx)

		timer := time.NewTimer(s.interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (s *Scheduler) attempt(ctx context.Context) {
	out, err := s.recorder.RunAttempt(ctx, scan.TriggerPeriodic)
	switch {
	case err != nil:
		s.log.Error("periodic scan failed", "error", err)
	case out.Skipped:
		s.log.Debug("periodic scan skipped", "reason", out.Reason)
	default:
		s.log.Debug("periodic scan done", "session", out.SessionID, "matches", out.Count)
	}
}

func (s *Scheduler) interval() time.Duration {
	minutes := store.DefaultScanIntervalMinutes
	if cfg, err := s.store.LoadSettings(); err == nil {
		minutes = cfg.ScanIntervalMinutes
	} else {
		s.log.Warn("using default scan interval", "error", err)
	}
	return time.Duration(ClampInterval(minutes)) * time.Minute
}

// ClampInterval floors an interval in minutes to the platform minimum.
func ClampInterval(minutes int) int {
	if minutes < MinIntervalMinutes {
		return MinIntervalMinutes
	}
	return minutes
}
