package timecalc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return h*60 + m, nil
}

// HoursWorked converts an entry/exit clock-time pair into the hours the
// day contributes, in decimal hours rounded to 2 places. Both times are
// wall-clock times on the same calendar day.
//
// A span below the daily minimum contributes 0 — a short day counts for
// nothing rather than its raw value. A span above the daily maximum is
// clamped to the maximum. A negative span (exit before entry) falls under
// the below-minimum branch and also yields 0.
func HoursWorked(entry, exit string, rules Rules) (float64, error) {
	entryMin, err := ParseClock(entry)
	if err != nil {
		return 0, fmt.Errorf("entry time: %w", err)
	}
	exitMin, err := ParseClock(exit)
	if err != nil {
		return 0, fmt.Errorf("exit time: %w", err)
	}

	hours := float64(exitMin-entryMin) / 60

	if hours < rules.MinimumDailyHours {
		return 0, nil
	}
	if hours > rules.MaximumDailyHours {
		return rules.MaximumDailyHours, nil
	}
	return Round2(hours), nil
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
