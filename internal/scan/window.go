package scan

import "time"

// InWindow reports whether t falls inside the half-open scan window
// [startHour:00, endHour:00). A window with startHour > endHour wraps
// midnight, e.g. 22-6 covers 22:00-23:59 and 00:00-05:59.
//
// startHour == endHour is a zero-width window and is never in range;
// settings validation rejects it before save, this is the backstop.
func InWindow(t time.Time, startHour, endHour int) bool {
	minute := t.Hour()*60 + t.Minute()
	start := startHour * 60
	end := endHour * 60

	switch {
	case startHour < endHour:
		return minute >= start && minute < end
	case startHour > endHour:
		return minute >= start || minute < end
	default:
		return false
	}
}
