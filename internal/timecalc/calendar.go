package timecalc

import (
	"fmt"
	"time"
)

// WeekInfo identifies the Monday–Sunday window containing a given instant.
// WeekNumber and Year follow ISO 8601 week numbering, so the pair is a
// stable key even for the week spanning a year boundary.
type WeekInfo struct {
	WeekNumber int
	Year       int
	StartDate  string // Monday, YYYY-MM-DD
	EndDate    string // Sunday, YYYY-MM-DD
	WeekStart  time.Time
	WeekEnd    time.Time
}

// WeekDay is one enumerated day of a week window.
type WeekDay struct {
	Date      string // YYYY-MM-DD
	Weekday   time.Weekday
	DayNumber int // day of month
	IsWeekend bool
}

// StartOfWeek returns midnight of the Monday of the week containing t,
// in t's location.
func StartOfWeek(t time.Time) time.Time {
	// Go's weekday: Sunday=0; treat Sunday as 7 so Monday starts the week.
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// CurrentWeekInfo computes the week window containing now.
func CurrentWeekInfo(now time.Time) WeekInfo {
	year, week := now.ISOWeek()
	start := StartOfWeek(now)
	endDay := start.AddDate(0, 0, 6)
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, 0, now.Location())

	return WeekInfo{
		WeekNumber: week,
		Year:       year,
		StartDate:  start.Format(time.DateOnly),
		EndDate:    endDay.Format(time.DateOnly),
		WeekStart:  start,
		WeekEnd:    end,
	}
}

// WeekDays enumerates the 7 days of the week starting at startDate
// (a Monday, YYYY-MM-DD), in order. The last two entries are the weekend.
func WeekDays(startDate string) ([]WeekDay, error) {
	start, err := time.Parse(time.DateOnly, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid week start %q: %w", startDate, err)
	}

	days := make([]WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, WeekDay{
			Date:      d.Format(time.DateOnly),
			Weekday:   d.Weekday(),
			DayNumber: d.Day(),
			IsWeekend: d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
		})
	}
	return days, nil
}

// TodayLocalDate returns now's calendar date in its own location as
// YYYY-MM-DD. Formatting the local time directly avoids the off-by-one
// date a UTC conversion would introduce near midnight.
func TodayLocalDate(now time.Time) string {
	return now.Format(time.DateOnly)
}
