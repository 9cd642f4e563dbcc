/*
clock.go - Permissive clock string parsing

PURPOSE:
  Normalizes the heterogeneous time-of-day formats found in attendance
  imports into minutes-since-midnight. Accepts 24-hour "HH:MM[:SS]" and
  12-hour "HH:MM[:SS] AM/PM" (case-insensitive). Everything else -
  empty, garbage, OCR noise - is "no punch recorded", NOT an error.
  Attendance data is untrusted; permissive parsing is the chosen
  failure mode.
*/
package engine

import (
	"strconv"
	"strings"
)

// ParseClock parses a raw clock string into minutes since midnight.
// The second return value is false when the input is not a time; callers
// must treat that as "no punch recorded".
func ParseClock(raw string) (Minutes, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	// Peel off a trailing AM/PM marker, with or without a space.
	meridiem := ""
	upper := strings.ToUpper(s)
	for _, suffix := range []string{"AM", "PM", "A.M.", "P.M."} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = string(suffix[0])
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}

	hour, ok := clockField(parts[0])
	if !ok {
		return 0, false
	}
	minute, ok := clockField(parts[1])
	if !ok || minute > 59 {
		return 0, false
	}
	if len(parts) == 3 {
		// Seconds are validated then dropped; the engine works in minutes.
		sec, ok := clockField(parts[2])
		if !ok || sec > 59 {
			return 0, false
		}
	}

	switch meridiem {
	case "A":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "P":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, false
		}
	}

	return Minutes(hour*MinutesPerHour + minute), true
}

func clockField(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 2 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
