package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"weekhours-service/internal/model"
	"weekhours-service/internal/timecalc"
)

// DayStore is the day-record half of the storage gateway. A nil record
// with a nil error means the date (or ID) is unrecorded — a valid state,
// not a failure.
type DayStore interface {
	Create(ctx context.Context, record *model.DayRecord) error
	Update(ctx context.Context, record *model.DayRecord) error
	GetByID(ctx context.Context, id bson.ObjectID, userID string) (*model.DayRecord, error)
	GetByDate(ctx context.Context, userID, date string) (*model.DayRecord, error)
	Delete(ctx context.Context, id bson.ObjectID, userID string) error
}

// WeekStore is the week-record half of the storage gateway.
type WeekStore interface {
	Create(ctx context.Context, record *model.WeekRecord) error
	Update(ctx context.Context, record *model.WeekRecord) error
	GetByID(ctx context.Context, id bson.ObjectID, userID string) (*model.WeekRecord, error)
	GetByKey(ctx context.Context, userID string, year, weekNumber int) (*model.WeekRecord, error)
	List(ctx context.Context, userID string) ([]*model.WeekRecord, error)
}

// Tracker owns the day lifecycle and the weekly rollup. Every day
// mutation ends with a recomputation of the day's week from the
// authoritative day records.
type Tracker struct {
	days  DayStore
	weeks WeekStore
	rules timecalc.Rules
	now   func() time.Time
}

func NewTracker(days DayStore, weeks WeekStore, rules timecalc.Rules) *Tracker {
	return &Tracker{days: days, weeks: weeks, rules: rules, now: time.Now}
}

// Rules returns the work-hour policy the tracker was built with.
func (t *Tracker) Rules() timecalc.Rules {
	return t.rules
}

// CurrentWeek returns the user's week record for the week containing now,
// creating an empty one on first access.
func (t *Tracker) CurrentWeek(ctx context.Context, userID string) (*model.WeekRecord, error) {
	info := timecalc.CurrentWeekInfo(t.now())
	return t.loadOrCreateWeek(ctx, userID, info)
}

// History returns all of the user's weeks, most recent first.
func (t *Tracker) History(ctx context.Context, userID string) ([]*model.WeekRecord, error) {
	return t.weeks.List(ctx, userID)
}

// DayByDate returns the user's record for a date, or nil if unrecorded.
func (t *Tracker) DayByDate(ctx context.Context, userID, date string) (*model.DayRecord, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	return t.days.GetByDate(ctx, userID, date)
}

// RegisterNormal creates a new worked-day record from an entry/exit pair
// and recomputes the week. The date must be an unrecorded working day.
func (t *Tracker) RegisterNormal(ctx context.Context, userID, date, entry, exit string) (*model.DayRecord, *model.WeekRecord, error) {
	if err := t.validateWorkingDate(date); err != nil {
		return nil, nil, err
	}
	hours, err := t.validateAndComputeHours(entry, exit)
	if err != nil {
		return nil, nil, err
	}

	existing, err := t.days.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("get day by date: %w", err)
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrDayExists, date)
	}

	record := &model.DayRecord{
		UserID:     userID,
		Date:       date,
		EntryTime:  entry,
		ExitTime:   exit,
		TotalHours: hours,
		IsComplete: hours >= t.rules.MinimumDailyHours,
	}
	if err := t.days.Create(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("create day: %w", err)
	}

	week, err := t.recomputeWeek(ctx, userID, date)
	if err != nil {
		return nil, nil, err
	}
	return record, week, nil
}

// RegisterSpecial creates a remote or holiday record for an unrecorded
// working day: no clock times, the fixed special-day credit, always
// complete.
func (t *Tracker) RegisterSpecial(ctx context.Context, userID, date string, kind model.DayKind) (*model.DayRecord, *model.WeekRecord, error) {
	if err := t.validateWorkingDate(date); err != nil {
		return nil, nil, err
	}
	if !kind.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	existing, err := t.days.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("get day by date: %w", err)
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrDayExists, date)
	}

	record := &model.DayRecord{
		UserID:     userID,
		Date:       date,
		TotalHours: t.rules.SpecialDayHours,
		IsHoliday:  kind == model.DayKindHoliday,
		IsRemote:   kind == model.DayKindRemote,
		IsComplete: true,
	}
	if err := t.days.Create(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("create day: %w", err)
	}

	week, err := t.recomputeWeek(ctx, userID, date)
	if err != nil {
		return nil, nil, err
	}
	return record, week, nil
}

// EditToNormal reclassifies an existing record as a worked day with the
// given times, clearing any special flag, and recomputes the week.
func (t *Tracker) EditToNormal(ctx context.Context, userID string, id bson.ObjectID, entry, exit string) (*model.DayRecord, *model.WeekRecord, error) {
	hours, err := t.validateAndComputeHours(entry, exit)
	if err != nil {
		return nil, nil, err
	}

	record, err := t.days.GetByID(ctx, id, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get day: %w", err)
	}
	if record == nil {
		return nil, nil, ErrDayNotFound
	}

	record.EntryTime = entry
	record.ExitTime = exit
	record.TotalHours = hours
	record.IsHoliday = false
	record.IsRemote = false
	record.IsComplete = hours >= t.rules.MinimumDailyHours
	if err := t.days.Update(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("update day: %w", err)
	}

	week, err := t.recomputeWeek(ctx, userID, record.Date)
	if err != nil {
		return nil, nil, err
	}
	return record, week, nil
}

// EditToSpecial reclassifies an existing record as remote or holiday,
// clearing the clock times and the other flag in the same update.
func (t *Tracker) EditToSpecial(ctx context.Context, userID string, id bson.ObjectID, kind model.DayKind) (*model.DayRecord, *model.WeekRecord, error) {
	if !kind.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	record, err := t.days.GetByID(ctx, id, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get day: %w", err)
	}
	if record == nil {
		return nil, nil, ErrDayNotFound
	}

	record.EntryTime = ""
	record.ExitTime = ""
	record.TotalHours = t.rules.SpecialDayHours
	record.IsHoliday = kind == model.DayKindHoliday
	record.IsRemote = kind == model.DayKindRemote
	record.IsComplete = true
	if err := t.days.Update(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("update day: %w", err)
	}

	week, err := t.recomputeWeek(ctx, userID, record.Date)
	if err != nil {
		return nil, nil, err
	}
	return record, week, nil
}

// Remove deletes a day record, leaving its date unrecorded, and
// recomputes the week.
func (t *Tracker) Remove(ctx context.Context, userID string, id bson.ObjectID) (*model.WeekRecord, error) {
	record, err := t.days.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}
	if record == nil {
		return nil, ErrDayNotFound
	}

	if err := t.days.Delete(ctx, id, userID); err != nil {
		return nil, fmt.Errorf("delete day: %w", err)
	}
	return t.recomputeWeek(ctx, userID, record.Date)
}

// recomputeWeek rebuilds the weekly rollup for the week containing date
// from the stored day records of its working days, writes it back and
// re-reads the authoritative record.
//
// Unrecorded days are skipped, not materialized as zero-hour records, so
// absent days counts records that exist but are incomplete — a day with
// no record at all is neither completed nor absent.
func (t *Tracker) recomputeWeek(ctx context.Context, userID, date string) (*model.WeekRecord, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	info := timecalc.CurrentWeekInfo(day)

	week, err := t.loadOrCreateWeek(ctx, userID, info)
	if err != nil {
		return nil, err
	}

	weekDays, err := timecalc.WeekDays(week.StartDate)
	if err != nil {
		return nil, err
	}

	var days []model.DayRecord
	for _, wd := range weekDays {
		if wd.IsWeekend {
			continue
		}
		record, err := t.days.GetByDate(ctx, userID, wd.Date)
		if err != nil {
			return nil, fmt.Errorf("get day by date: %w", err)
		}
		if record != nil {
			days = append(days, *record)
		}
	}

	var totalHours float64
	completed := 0
	for _, d := range days {
		totalHours += d.TotalHours
		if d.IsComplete {
			completed++
		}
	}

	week.TotalHours = totalHours
	week.CompletedDays = completed
	week.AbsentDays = len(days) - completed
	week.RemainingHours = max(0, t.rules.RequiredWeeklyHours-totalHours)
	week.Days = days
	if err := t.weeks.Update(ctx, week); err != nil {
		return nil, fmt.Errorf("update week: %w", err)
	}

	// Read-after-write: serve what the store holds, not what we sent.
	updated, err := t.weeks.GetByID(ctx, week.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("reload week: %w", err)
	}
	if updated == nil {
		return week, nil
	}
	return updated, nil
}

func (t *Tracker) loadOrCreateWeek(ctx context.Context, userID string, info timecalc.WeekInfo) (*model.WeekRecord, error) {
	week, err := t.weeks.GetByKey(ctx, userID, info.Year, info.WeekNumber)
	if err != nil {
		return nil, fmt.Errorf("get week: %w", err)
	}
	if week != nil {
		return week, nil
	}

	week = &model.WeekRecord{
		UserID:         userID,
		WeekNumber:     info.WeekNumber,
		Year:           info.Year,
		StartDate:      info.StartDate,
		EndDate:        info.EndDate,
		RemainingHours: t.rules.RequiredWeeklyHours,
		Days:           []model.DayRecord{},
	}
	if err := t.weeks.Create(ctx, week); err != nil {
		return nil, fmt.Errorf("create week: %w", err)
	}
	return week, nil
}

// validateWorkingDate rejects malformed dates and weekends; only
// Monday–Friday records are ever persisted.
func (t *Tracker) validateWorkingDate(date string) error {
	day, err := parseDate(date)
	if err != nil {
		return err
	}
	if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		return fmt.Errorf("%w: %s", ErrWeekendDate, date)
	}
	return nil
}

// validateAndComputeHours rejects malformed or inverted time pairs before
// any write, then computes the day's contribution. The arithmetic itself
// would quietly zero an inverted pair; rejecting it here keeps a bad form
// entry from masquerading as a short day.
func (t *Tracker) validateAndComputeHours(entry, exit string) (float64, error) {
	entryMin, err := timecalc.ParseClock(entry)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	exitMin, err := timecalc.ParseClock(exit)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if exitMin <= entryMin {
		return 0, fmt.Errorf("%w: %s → %s", ErrInvalidTimeRange, entry, exit)
	}

	hours, err := timecalc.HoursWorked(entry, exit, t.rules)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	return hours, nil
}

func parseDate(date string) (time.Time, error) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return day, nil
}
