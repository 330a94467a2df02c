// Package schedule derives display and filtering facts from a session's
// stored date field and free text: multi-date parsing, weekly-recurrence
// detection and expiry. All functions are pure.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/openmat-france/openmat-api/internal/domain"
)

// RecurringSentinel marks a session with no fixed date, repeating weekly.
// LegacyRecurringSentinel is the value older rows used before the sentinel
// was introduced.
const (
	RecurringSentinel       = "RÉCURRENT"
	LegacyRecurringSentinel = "2099-12-31"
)

const dateDelimiter = "|"

// frenchDays in scan order; the first one found in the session text wins.
var frenchDays = []string{
	"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche",
}

// ParseDates splits a raw date value into individual trimmed dates.
// Strings split on "|", slices pass through element-wise, anything else is
// coerced to a single-element list. Empty or nil input yields nil.
func ParseDates(value any) []string {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		var dates []string
		for _, part := range strings.Split(v, dateDelimiter) {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				dates = append(dates, trimmed)
			}
		}
		return dates
	case []string:
		var dates []string
		for _, part := range v {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				dates = append(dates, trimmed)
			}
		}
		return dates
	case []any:
		var dates []string
		for _, part := range v {
			if trimmed := strings.TrimSpace(fmt.Sprint(part)); trimmed != "" {
				dates = append(dates, trimmed)
			}
		}
		return dates
	default:
		if trimmed := strings.TrimSpace(fmt.Sprint(v)); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}
}

// IsRecurring reports whether the session repeats weekly instead of being
// tied to calendar dates.
func IsRecurring(s domain.Session) bool {
	if s.Date == "" {
		return false
	}

	return s.Date == RecurringSentinel ||
		s.Date == LegacyRecurringSentinel ||
		strings.Contains(s.Date, RecurringSentinel)
}

// RecurrenceDay extracts the weekday of a recurring session from its title
// and description. The day is not stored structurally, so this is a
// heuristic over free text; it returns "" when no French day name appears.
func RecurrenceDay(s domain.Session) string {
	text := strings.ToLower(s.Title + " " + s.Description)
	for _, day := range frenchDays {
		if strings.Contains(text, day) {
			return day
		}
	}

	return ""
}

// IsExpired reports whether every date of the session is in the past,
// relative to the local clock.
func IsExpired(s domain.Session) bool {
	return IsExpiredAt(s, time.Now())
}

// IsExpiredAt is IsExpired against an explicit clock. Recurring sessions
// never expire. A session with no parseable dates is not expired, and one
// future date among several keeps the whole session alive.
func IsExpiredAt(s domain.Session, now time.Time) bool {
	if IsRecurring(s) {
		return false
	}

	dates := ParseDates(s.Date)
	if len(dates) == 0 {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, raw := range dates {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			// Unparseable dates cannot be proven past.
			return false
		}
		if !parsed.Before(today) {
			return false
		}
	}

	return true
}

// FilterActive returns the sessions that have not expired.
func FilterActive(sessions []domain.Session) []domain.Session {
	return filterAt(sessions, time.Now(), false)
}

// FilterExpired returns the sessions whose every date is past.
func FilterExpired(sessions []domain.Session) []domain.Session {
	return filterAt(sessions, time.Now(), true)
}

func filterAt(sessions []domain.Session, now time.Time, expired bool) []domain.Session {
	var out []domain.Session
	for _, s := range sessions {
		if IsExpiredAt(s, now) == expired {
			out = append(out, s)
		}
	}

	return out
}
