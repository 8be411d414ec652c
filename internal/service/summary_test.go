package service

import (
	"testing"

	"weekhours-service/internal/model"
	"weekhours-service/internal/timecalc"
)

func TestSummarize(t *testing.T) {
	rules := timecalc.DefaultRules()

	tests := []struct {
		name string
		week model.WeekRecord
		want WeekSummary
	}{
		{
			name: "empty week",
			week: model.WeekRecord{},
			want: WeekSummary{
				RemainingDays:              5,
				MathematicalRemainingHours: 35,
				MinimumRequiredHours:       25,
				RemainingHours:             35,
				AverageNeeded:              7,
			},
		},
		{
			name: "almost done, minimum floor wins",
			// 33h over 4 completed days: only 2h remain arithmetically,
			// but the last day still needs the 5h minimum to count.
			week: model.WeekRecord{TotalHours: 33, CompletedDays: 4},
			want: WeekSummary{
				TotalHours:                 33,
				CompletedDays:              4,
				ProgressPercent:            94,
				DailyAverage:               8.25,
				RemainingDays:              1,
				MathematicalRemainingHours: 2,
				MinimumRequiredHours:       5,
				RemainingHours:             5,
				AverageNeeded:              5,
			},
		},
		{
			name: "mid-week, arithmetic average wins",
			week: model.WeekRecord{TotalHours: 10, CompletedDays: 2},
			want: WeekSummary{
				TotalHours:                 10,
				CompletedDays:              2,
				ProgressPercent:            29,
				DailyAverage:               5,
				RemainingDays:              3,
				MathematicalRemainingHours: 25,
				MinimumRequiredHours:       15,
				RemainingHours:             25,
				AverageNeeded:              8.33,
			},
		},
		{
			name: "finished week",
			week: model.WeekRecord{TotalHours: 35, CompletedDays: 5},
			want: WeekSummary{
				TotalHours:      35,
				CompletedDays:   5,
				ProgressPercent: 100,
				DailyAverage:    7,
				RemainingDays:   0,
				RemainingHours:  0,
				AverageNeeded:   0,
			},
		},
		{
			name: "overachieved week never goes negative",
			week: model.WeekRecord{TotalHours: 42, CompletedDays: 5},
			want: WeekSummary{
				TotalHours:      42,
				CompletedDays:   5,
				ProgressPercent: 120,
				DailyAverage:    8.4,
				RemainingDays:   0,
				RemainingHours:  0,
				AverageNeeded:   0,
			},
		},
		{
			name: "incomplete days count absent but not toward progress",
			week: model.WeekRecord{TotalHours: 7, CompletedDays: 1, AbsentDays: 2},
			want: WeekSummary{
				TotalHours:                 7,
				CompletedDays:              1,
				AbsentDays:                 2,
				ProgressPercent:            20,
				DailyAverage:               7,
				RemainingDays:              4,
				MathematicalRemainingHours: 28,
				MinimumRequiredHours:       20,
				RemainingHours:             28,
				AverageNeeded:              7,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(&tt.week, rules)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
