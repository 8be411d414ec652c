package service

import (
	"math"

	"weekhours-service/internal/model"
	"weekhours-service/internal/timecalc"
)

// WeekSummary carries the derived presentation metrics for a week. These
// are computed from the stored rollup on every request and never
// persisted.
type WeekSummary struct {
	TotalHours    float64 `json:"totalHours"`
	CompletedDays int     `json:"completedDays"`
	AbsentDays    int     `json:"absentDays"`

	// ProgressPercent is worked hours over the weekly target, rounded.
	ProgressPercent int `json:"progressPercent"`

	// DailyAverage is worked hours per completed day so far.
	DailyAverage float64 `json:"dailyAverage"`

	// RemainingDays is how many working days still need to be completed.
	RemainingDays int `json:"remainingDays"`

	// MathematicalRemainingHours is the plain arithmetic remainder
	// against the weekly target.
	MathematicalRemainingHours float64 `json:"mathematicalRemainingHours"`

	// MinimumRequiredHours is the floor imposed by the daily minimum:
	// each remaining day must reach at least the minimum to count.
	MinimumRequiredHours float64 `json:"minimumRequiredHours"`

	// RemainingHours is what is actually asked of the user: the larger
	// of the arithmetic remainder and the daily-minimum floor, or 0 once
	// every working day is complete.
	RemainingHours float64 `json:"remainingHours"`

	// AverageNeeded is the hours per remaining day needed to close the
	// week, never below the daily minimum, 0 on a finished week.
	AverageNeeded float64 `json:"averageNeeded"`
}

// Summarize derives the presentation metrics for a week rollup.
//
// Even when the arithmetic remainder is small the summary never asks for
// less than the daily minimum per remaining day, since anything shorter
// would not mark the day complete. A finished week reports 0 rather than
// dividing by zero.
func Summarize(week *model.WeekRecord, rules timecalc.Rules) WeekSummary {
	s := WeekSummary{
		TotalHours:    week.TotalHours,
		CompletedDays: week.CompletedDays,
		AbsentDays:    week.AbsentDays,
	}

	if rules.RequiredWeeklyHours > 0 {
		s.ProgressPercent = int(math.Round(week.TotalHours / rules.RequiredWeeklyHours * 100))
	}
	if week.CompletedDays > 0 {
		s.DailyAverage = timecalc.Round2(week.TotalHours / float64(week.CompletedDays))
	}

	s.RemainingDays = rules.WorkingDays - week.CompletedDays
	if s.RemainingDays < 0 {
		s.RemainingDays = 0
	}

	s.MathematicalRemainingHours = max(0, rules.RequiredWeeklyHours-week.TotalHours)
	s.MinimumRequiredHours = float64(s.RemainingDays) * rules.MinimumDailyHours

	if s.RemainingDays > 0 {
		s.RemainingHours = max(s.MathematicalRemainingHours, s.MinimumRequiredHours)
		s.AverageNeeded = timecalc.Round2(max(
			rules.MinimumDailyHours,
			s.MathematicalRemainingHours/float64(s.RemainingDays),
		))
	}

	return s
}
