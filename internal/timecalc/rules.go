package timecalc

// Rules holds the work-hour policy applied to every day and week.
// Values are injected wherever they are needed instead of living as
// package globals, so alternate policies can be tested and the defaults
// can be overridden from a config file.
type Rules struct {
	// RequiredWeeklyHours is the weekly target the tracker measures against.
	RequiredWeeklyHours float64 `yaml:"required_weekly_hours"`

	// MinimumDailyHours is the threshold below which a worked day counts
	// for nothing: shorter days contribute 0 hours and are not complete.
	MinimumDailyHours float64 `yaml:"minimum_daily_hours"`

	// MaximumDailyHours caps the hours a single day can contribute.
	MaximumDailyHours float64 `yaml:"maximum_daily_hours"`

	// SpecialDayHours is the fixed credit for remote and holiday days.
	SpecialDayHours float64 `yaml:"special_day_hours"`

	// WorkingDays is the number of working days per week (Monday onward).
	WorkingDays int `yaml:"working_days"`
}

// DefaultRules returns the standard policy: a 35-hour week of 5 working
// days, 5–9 hour daily bounds and a 7-hour credit for special days.
func DefaultRules() Rules {
	return Rules{
		RequiredWeeklyHours: 35,
		MinimumDailyHours:   5,
		MaximumDailyHours:   9,
		SpecialDayHours:     7,
		WorkingDays:         5,
	}
}
