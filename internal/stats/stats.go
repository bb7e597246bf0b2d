// Package stats derives per-day and per-session views from stored scan
// records. Nothing here is persisted; everything is recomputed from the
// record store.
package stats

import (
	"sort"
	"time"

	"github.com/sadopc/wifitrackr/internal/store"
)

// DateFormat keys all daily aggregates.
const DateFormat = "2006-01-02"

// DailyStat counts the distinct scan sessions observed on one local
// calendar date.
type DailyStat struct {
	PeriodicSessions int // distinct periodic session ids
	TotalSessions    int // distinct session ids of any type
}

// Successful reports whether a day met the configured target. Only
// periodic sessions count; manual test scans must not satisfy the daily
// goal on their own.
func (d DailyStat) Successful(target int) bool {
	return d.PeriodicSessions >= target
}

// Daily aggregates records into per-date stats keyed yyyy-MM-dd (local
// time). Dates without records are absent from the map. Partial sessions
// (interrupted mid-write) aggregate like any other: a session counts once
// however many of its rows survived.
func Daily(records []store.ScanRecord) map[string]DailyStat {
	periodic := make(map[string]map[int64]struct{})
	total := make(map[string]map[int64]struct{})

	for _, r := range records {
		date := r.Time().Format(DateFormat)
		if total[date] == nil {
			total[date] = make(map[int64]struct{})
		}
		total[date][r.SessionID] = struct{}{}
		if r.ScanType == store.ScanTypePeriodic {
			if periodic[date] == nil {
				periodic[date] = make(map[int64]struct{})
			}
			periodic[date][r.SessionID] = struct{}{}
		}
	}

	stats := make(map[string]DailyStat, len(total))
	for date, sessions := range total {
		stats[date] = DailyStat{
			PeriodicSessions: len(periodic[date]),
			TotalSessions:    len(sessions),
		}
	}
	return stats
}

// MonthRange returns the half-open epoch-millisecond interval
// [firstOfMonth, firstOfNextMonth) in the given location.
func MonthRange(year int, month time.Month, loc *time.Location) (start, end int64) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return first.UnixMilli(), first.AddDate(0, 1, 0).UnixMilli()
}

// Session is one scan attempt reconstructed from its records.
type Session struct {
	SessionID      int64
	Timestamp      int64
	MatchedKeyword string
	ScanType       string
	NetworkCount   int
	NetworkNames   []string // sorted ascending for stable display
}

// Time returns the session timestamp as a local time.Time.
func (s Session) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Sessions groups records by session id, newest first. All rows of a
// session share timestamp, keyword and scan type by construction, so the
// first row seen supplies them.
func Sessions(records []store.ScanRecord) []Session {
	byID := make(map[int64]*Session)
	for _, r := range records {
		s, ok := byID[r.SessionID]
		if !ok {
			s = &Session{
				SessionID:      r.SessionID,
				Timestamp:      r.Timestamp,
				MatchedKeyword: r.MatchedKeyword,
				ScanType:       r.ScanType,
			}
			byID[r.SessionID] = s
		}
		s.NetworkCount++
		s.NetworkNames = append(s.NetworkNames, r.NetworkName)
	}

	sessions := make([]Session, 0, len(byID))
	for _, s := range byID {
		sort.Strings(s.NetworkNames)
		sessions = append(sessions, *s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Timestamp != sessions[j].Timestamp {
			return sessions[i].Timestamp > sessions[j].Timestamp
		}
		return sessions[i].SessionID > sessions[j].SessionID
	})
	return sessions
}
