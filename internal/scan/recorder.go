package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sadopc/wifitrackr/internal/store"
	"github.com/sadopc/wifitrackr/internal/wifi"
)

// Trigger identifies what started a scan attempt. The values double as the
// scan_type stored on every record of the attempt.
type Trigger string

const (
	TriggerManual   Trigger = store.ScanTypeManual
	TriggerPeriodic Trigger = store.ScanTypePeriodic
)

// SkipReason explains why an attempt did no work. Skips are successful
// completions; none of them is worth a scheduler retry.
type SkipReason string

const (
	SkipNoTarget         SkipReason = "no_target_configured"
	SkipOutsideWindow    SkipReason = "outside_scan_window"
	SkipSourceDisabled   SkipReason = "source_disabled"
	SkipPermissionDenied SkipReason = "permission_denied"
)

// Outcome is the result of one scan attempt that did not fail.
// A recorded attempt with zero matches has Count 0 and SessionID 0.
type Outcome struct {
	Skipped   bool
	Reason    SkipReason
	SessionID int64
	Count     int
}

func skipped(reason SkipReason) Outcome {
	return Outcome{Skipped: true, Reason: reason}
}

// Recorder orchestrates one scan attempt: precondition checks, matching,
// and persisting the matched networks under a single session id.
type Recorder struct {
	store   *store.Store
	scanner wifi.Scanner
	log     *slog.Logger

	now func() time.Time // test seam
}

func NewRecorder(s *store.Store, scanner wifi.Scanner, log *slog.Logger) *Recorder {
	return &Recorder{
		store:   s,
		scanner: scanner,
		log:     log,
		now:     time.Now,
	}
}

// RunAttempt performs one scan attempt. Settings are read fresh from the
// store each time. A non-nil error means the attempt failed after matching
// and is a candidate for retry by the caller; skips and empty scans return
// a nil error.
func (r *Recorder) RunAttempt(ctx context.Context, trigger Trigger) (Outcome, error) {
	cfg, err := r.store.LoadSettings()
	if err != nil {
		return Outcome{}, fmt.Errorf("load settings: %w", err)
	}

	if strings.TrimSpace(cfg.TargetKeyword) == "" {
		r.log.Debug("scan skipped", "trigger", trigger, "reason", SkipNoTarget)
		return skipped(SkipNoTarget), nil
	}

	// Manual scans ignore the time window.
	if trigger == TriggerPeriodic && !InWindow(r.now(), cfg.ScanStartHour, cfg.ScanEndHour) {
		r.log.Debug("scan skipped", "trigger", trigger, "reason", SkipOutsideWindow,
			"start_hour", cfg.ScanStartHour, "end_hour", cfg.ScanEndHour)
		return skipped(SkipOutsideWindow), nil
	}

	enabled, err := r.scanner.Enabled(ctx)
	if err != nil {
		if errors.Is(err, wifi.ErrPermissionDenied) {
			return skipped(SkipPermissionDenied), nil
		}
		if errors.Is(err, wifi.ErrUnavailable) {
			return skipped(SkipSourceDisabled), nil
		}
		return Outcome{}, fmt.Errorf("check wifi state: %w", err)
	}
	if !enabled {
		r.log.Debug("scan skipped", "trigger", trigger, "reason", SkipSourceDisabled)
		return skipped(SkipSourceDisabled), nil
	}

	visible, err := r.scanner.VisibleNetworks(ctx)
	if err != nil {
		if errors.Is(err, wifi.ErrPermissionDenied) {
			r.log.Warn("scan skipped, permission denied", "trigger", trigger)
			return skipped(SkipPermissionDenied), nil
		}
		if errors.Is(err, wifi.ErrUnavailable) {
			return skipped(SkipSourceDisabled), nil
		}
		return Outcome{}, fmt.Errorf("list networks: %w", err)
	}

	matched := Match(cfg.TargetKeyword, visible)
	if len(matched) == 0 {
		r.log.Debug("scan found no matches", "trigger", trigger, "keyword", cfg.TargetKeyword, "visible", len(visible))
		return Outcome{Count: 0}, nil
	}

	// One timestamp for the whole attempt; it doubles as the session id
	// that groups the rows.
	ts := r.now().UnixMilli()
	for _, name := range matched {
		_, err := r.store.InsertRecord(store.ScanRecord{
			Timestamp:      ts,
			NetworkName:    name,
			MatchedKeyword: cfg.TargetKeyword,
			SessionID:      ts,
			ScanType:       string(trigger),
		})
		if err != nil {
			return Outcome{}, fmt.Errorf("record match %q: %w", name, err)
		}
	}

	r.log.Info("scan recorded", "trigger", trigger, "session", ts, "matches", len(matched))
	return Outcome{SessionID: ts, Count: len(matched)}, nil
}
