package tui

import (
	"time"

	"github.com/sadopc/wifitrackr/internal/scan"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCalendar
	viewLog
	viewSettings
)

var viewNames = []string{"Dashboard", "Calendar", "Log", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// storeChangedMsg fires whenever the record store commits a write, so open
// views refresh without polling.
type storeChangedMsg struct{}

type scanDoneMsg struct {
	outcome scan.Outcome
	err     error
}

type exportDoneMsg struct {
	path string
}

type recordsClearedMsg struct{}

// --- Helpers ---

func formatStamp(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}

func scanTypeGlyph(scanType string) string {
	if scanType == "manual" {
		return "◆"
	}
	return "●"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
