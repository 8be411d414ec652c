package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"weekhours-service/internal/model"
	"weekhours-service/internal/timecalc"
)

// In-memory stores standing in for the Mongo gateway. They copy records
// on the way in and out so tests observe store round-trips, not shared
// pointers.

type fakeDayStore struct {
	records map[bson.ObjectID]model.DayRecord
}

func newFakeDayStore() *fakeDayStore {
	return &fakeDayStore{records: make(map[bson.ObjectID]model.DayRecord)}
}

func (s *fakeDayStore) Create(_ context.Context, record *model.DayRecord) error {
	record.ID = bson.NewObjectID()
	s.records[record.ID] = *record
	return nil
}

func (s *fakeDayStore) Update(_ context.Context, record *model.DayRecord) error {
	s.records[record.ID] = *record
	return nil
}

func (s *fakeDayStore) GetByID(_ context.Context, id bson.ObjectID, userID string) (*model.DayRecord, error) {
	r, ok := s.records[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	return &r, nil
}

func (s *fakeDayStore) GetByDate(_ context.Context, userID, date string) (*model.DayRecord, error) {
	for _, r := range s.records {
		if r.UserID == userID && r.Date == date {
			return &r, nil
		}
	}
	return nil, nil
}

func (s *fakeDayStore) Delete(_ context.Context, id bson.ObjectID, userID string) error {
	if r, ok := s.records[id]; ok && r.UserID == userID {
		delete(s.records, id)
	}
	return nil
}

type fakeWeekStore struct {
	records map[bson.ObjectID]model.WeekRecord
}

func newFakeWeekStore() *fakeWeekStore {
	return &fakeWeekStore{records: make(map[bson.ObjectID]model.WeekRecord)}
}

func (s *fakeWeekStore) Create(_ context.Context, record *model.WeekRecord) error {
	record.ID = bson.NewObjectID()
	s.records[record.ID] = *record
	return nil
}

func (s *fakeWeekStore) Update(_ context.Context, record *model.WeekRecord) error {
	s.records[record.ID] = *record
	return nil
}

func (s *fakeWeekStore) GetByID(_ context.Context, id bson.ObjectID, userID string) (*model.WeekRecord, error) {
	r, ok := s.records[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	return &r, nil
}

func (s *fakeWeekStore) GetByKey(_ context.Context, userID string, year, weekNumber int) (*model.WeekRecord, error) {
	for _, r := range s.records {
		if r.UserID == userID && r.Year == year && r.WeekNumber == weekNumber {
			return &r, nil
		}
	}
	return nil, nil
}

func (s *fakeWeekStore) List(_ context.Context, userID string) ([]*model.WeekRecord, error) {
	var out []*model.WeekRecord
	for _, r := range s.records {
		if r.UserID == userID {
			week := r
			out = append(out, &week)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].WeekNumber > out[j].WeekNumber
	})
	return out, nil
}

// newTestTracker pins now to a Wednesday in ISO week 9 of 2026
// (window 2026-02-23 .. 2026-03-01).
func newTestTracker() *Tracker {
	tr := NewTracker(newFakeDayStore(), newFakeWeekStore(), timecalc.DefaultRules())
	tr.now = func() time.Time {
		return time.Date(2026, 2, 25, 15, 0, 0, 0, time.UTC)
	}
	return tr
}

const user = "user-1"

func TestCurrentWeekCreatesEmptyWeek(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	week, err := tr.CurrentWeek(ctx, user)
	if err != nil {
		t.Fatalf("CurrentWeek: %v", err)
	}
	if week.Year != 2026 || week.WeekNumber != 9 {
		t.Errorf("week key = (%d, %d), want (2026, 9)", week.Year, week.WeekNumber)
	}
	if week.StartDate != "2026-02-23" || week.EndDate != "2026-03-01" {
		t.Errorf("window = %s..%s", week.StartDate, week.EndDate)
	}
	if week.TotalHours != 0 || week.CompletedDays != 0 || week.AbsentDays != 0 {
		t.Errorf("new week not empty: %+v", week)
	}
	if week.RemainingHours != 35 {
		t.Errorf("RemainingHours = %v, want 35", week.RemainingHours)
	}

	again, err := tr.CurrentWeek(ctx, user)
	if err != nil {
		t.Fatalf("CurrentWeek again: %v", err)
	}
	if again.ID != week.ID {
		t.Error("second CurrentWeek created a duplicate week")
	}
}

func TestRegisterNormal(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	day, week, err := tr.RegisterNormal(ctx, user, "2026-02-23", "09:00", "17:30")
	if err != nil {
		t.Fatalf("RegisterNormal: %v", err)
	}
	if day.TotalHours != 8.5 || !day.IsComplete {
		t.Errorf("day = %+v, want 8.5h complete", day)
	}
	if day.IsRemote || day.IsHoliday {
		t.Error("normal day has a special flag set")
	}
	if week.TotalHours != 8.5 || week.CompletedDays != 1 || week.AbsentDays != 0 {
		t.Errorf("week = %+v, want 8.5h 1 completed 0 absent", week)
	}
	if week.RemainingHours != 26.5 {
		t.Errorf("RemainingHours = %v, want 26.5", week.RemainingHours)
	}
	if len(week.Days) != 1 || week.Days[0].Date != "2026-02-23" {
		t.Errorf("week snapshot = %+v", week.Days)
	}
}

func TestRegisterNormalBelowMinimum(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	// 4 hours: stored as 0 and incomplete. The record exists, so the day
	// counts as absent, not merely unrecorded.
	day, week, err := tr.RegisterNormal(ctx, user, "2026-02-23", "09:00", "13:00")
	if err != nil {
		t.Fatalf("RegisterNormal: %v", err)
	}
	if day.TotalHours != 0 || day.IsComplete {
		t.Errorf("day = %+v, want 0h incomplete", day)
	}
	if week.CompletedDays != 0 || week.AbsentDays != 1 {
		t.Errorf("week = %d completed %d absent, want 0/1", week.CompletedDays, week.AbsentDays)
	}
	if week.RemainingHours != 35 {
		t.Errorf("RemainingHours = %v, want 35", week.RemainingHours)
	}
}

func TestRegisterDuplicateDay(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	if _, _, err := tr.RegisterNormal(ctx, user, "2026-02-23", "09:00", "17:30"); err != nil {
		t.Fatalf("RegisterNormal: %v", err)
	}
	_, _, err := tr.RegisterNormal(ctx, user, "2026-02-23", "08:00", "16:00")
	if !errors.Is(err, ErrDayExists) {
		t.Errorf("err = %v, want ErrDayExists", err)
	}
	_, _, err = tr.RegisterSpecial(ctx, user, "2026-02-23", model.DayKindRemote)
	if !errors.Is(err, ErrDayExists) {
		t.Errorf("special err = %v, want ErrDayExists", err)
	}
}

func TestRegisterSpecial(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	remote, _, err := tr.RegisterSpecial(ctx, user, "2026-02-23", model.DayKindRemote)
	if err != nil {
		t.Fatalf("RegisterSpecial remote: %v", err)
	}
	holiday, week, err := tr.RegisterSpecial(ctx, user, "2026-02-24", model.DayKindHoliday)
	if err != nil {
		t.Fatalf("RegisterSpecial holiday: %v", err)
	}

	for _, d := range []*model.DayRecord{remote, holiday} {
		if d.TotalHours != 7 || !d.IsComplete {
			t.Errorf("special day = %+v, want 7h complete", d)
		}
		if d.EntryTime != "" || d.ExitTime != "" {
			t.Errorf("special day kept clock times: %+v", d)
		}
		if d.IsRemote == d.IsHoliday {
			t.Errorf("special flags not exclusive: %+v", d)
		}
	}
	if !remote.IsRemote || !holiday.IsHoliday {
		t.Error("kind mapped to the wrong flag")
	}
	if week.TotalHours != 14 || week.CompletedDays != 2 {
		t.Errorf("week = %+v, want 14h 2 completed", week)
	}
}

func TestRegisterValidation(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"weekend", func() error {
			_, _, err := tr.RegisterNormal(ctx, user, "2026-02-28", "09:00", "17:00")
			return err
		}, ErrWeekendDate},
		{"bad date", func() error {
			_, _, err := tr.RegisterNormal(ctx, user, "23-02-2026", "09:00", "17:00")
			return err
		}, ErrInvalidDate},
		{"inverted times", func() error {
			_, _, err := tr.RegisterNormal(ctx, user, "2026-02-23", "17:00", "09:00")
			return err
		}, ErrInvalidTimeRange},
		{"equal times", func() error {
			_, _, err := tr.RegisterNormal(ctx, user, "2026-02-23", "09:00", "09:00")
			return err
		}, ErrInvalidTimeRange},
		{"bad clock", func() error {
			_, _, err := tr.RegisterNormal(ctx, user, "2026-02-23", "9am", "17:00")
			return err
		}, ErrInvalidTime},
		{"bad kind", func() error {
			_, _, err := tr.RegisterSpecial(ctx, user, "2026-02-23", "vacation")
			return err
		}, ErrInvalidKind},
	}
	for _, tt := range tests {
		if err := tt.call(); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}

	// No partial state: all rejected before any write.
	if day, _ := tr.DayByDate(ctx, user, "2026-02-23"); day != nil {
		t.Errorf("validation failure left a record behind: %+v", day)
	}
}

func TestFullRemoteWeek(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	dates := []string{"2026-02-23", "2026-02-24", "2026-02-25", "2026-02-26", "2026-02-27"}
	var week *model.WeekRecord
	for _, d := range dates {
		var err error
		_, week, err = tr.RegisterSpecial(ctx, user, d, model.DayKindRemote)
		if err != nil {
			t.Fatalf("RegisterSpecial(%s): %v", d, err)
		}
	}

	if week.TotalHours != 35 || week.RemainingHours != 0 {
		t.Errorf("week = %vh remaining %v, want 35h remaining 0", week.TotalHours, week.RemainingHours)
	}
	if week.CompletedDays != 5 || week.AbsentDays != 0 {
		t.Errorf("week = %d completed %d absent, want 5/0", week.CompletedDays, week.AbsentDays)
	}
}

func TestEditToSpecialClearsTimes(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	day, _, err := tr.RegisterNormal(ctx, user, "2026-02-23", "09:00", "17:30")
	if err != nil {
		t.Fatalf("RegisterNormal: %v", err)
	}

	edited, week, err := tr.EditToSpecial(ctx, user, day.ID, model.DayKindHoliday)
	if err != nil {
		t.Fatalf("EditToSpecial: %v", err)
	}
	if edited.EntryTime != "" || edited.ExitTime != "" {
		t.Errorf("clock times not cleared: %+v", edited)
	}
	if edited.TotalHours != 7 || !edited.IsComplete || !edited.IsHoliday || edited.IsRemote {
		t.Errorf("edited = %+v, want 7h complete holiday", edited)
	}
	if edited.ID != day.ID {
		t.Error("edit changed record identity")
	}
	if week.TotalHours != 7 {
		t.Errorf("week TotalHours = %v, want 7", week.TotalHours)
	}
}

func TestEditToNormalClearsFlags(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	day, _, err := tr.RegisterSpecial(ctx, user, "2026-02-23", model.DayKindRemote)
	if err != nil {
		t.Fatalf("RegisterSpecial: %v", err)
	}

	edited, week, err := tr.EditToNormal(ctx, user, day.ID, "09:00", "15:00")
	if err != nil {
		t.Fatalf("EditToNormal: %v", err)
	}
	if edited.IsRemote || edited.IsHoliday {
		t.Errorf("special flags not cleared: %+v", edited)
	}
	if edited.TotalHours != 6 || !edited.IsComplete {
		t.Errorf("edited = %+v, want 6h complete", edited)
	}
	if week.TotalHours != 6 {
		t.Errorf("week TotalHours = %v, want 6", week.TotalHours)
	}
}

func TestEditMissingDay(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	_, _, err := tr.EditToNormal(ctx, user, bson.NewObjectID(), "09:00", "17:00")
	if !errors.Is(err, ErrDayNotFound) {
		t.Errorf("err = %v, want ErrDayNotFound", err)
	}
	_, _, err = tr.EditToSpecial(ctx, user, bson.NewObjectID(), model.DayKindRemote)
	if !errors.Is(err, ErrDayNotFound) {
		t.Errorf("err = %v, want ErrDayNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	day, _, err := tr.RegisterNormal(ctx, user, "2026-02-23", "09:00", "17:30")
	if err != nil {
		t.Fatalf("RegisterNormal: %v", err)
	}

	week, err := tr.Remove(ctx, user, day.ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if week.TotalHours != 0 || week.CompletedDays != 0 || week.AbsentDays != 0 {
		t.Errorf("week after remove = %+v, want empty", week)
	}
	if week.RemainingHours != 35 {
		t.Errorf("RemainingHours = %v, want 35", week.RemainingHours)
	}

	if got, _ := tr.DayByDate(ctx, user, "2026-02-23"); got != nil {
		t.Error("date still recorded after remove")
	}
	if _, err := tr.Remove(ctx, user, day.ID); !errors.Is(err, ErrDayNotFound) {
		t.Errorf("second remove err = %v, want ErrDayNotFound", err)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	if _, _, err := tr.RegisterNormal(ctx, user, "2026-02-23", "09:00", "17:30"); err != nil {
		t.Fatalf("RegisterNormal: %v", err)
	}
	if _, _, err := tr.RegisterSpecial(ctx, user, "2026-02-24", model.DayKindRemote); err != nil {
		t.Fatalf("RegisterSpecial: %v", err)
	}

	first, err := tr.recomputeWeek(ctx, user, "2026-02-25")
	if err != nil {
		t.Fatalf("recomputeWeek: %v", err)
	}
	second, err := tr.recomputeWeek(ctx, user, "2026-02-25")
	if err != nil {
		t.Fatalf("recomputeWeek again: %v", err)
	}

	if first.TotalHours != second.TotalHours ||
		first.CompletedDays != second.CompletedDays ||
		first.AbsentDays != second.AbsentDays ||
		first.RemainingHours != second.RemainingHours {
		t.Errorf("recompute not idempotent: %+v vs %+v", first, second)
	}
}

func TestUserScoping(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	day, _, err := tr.RegisterNormal(ctx, "user-a", "2026-02-23", "09:00", "17:30")
	if err != nil {
		t.Fatalf("RegisterNormal: %v", err)
	}

	if got, _ := tr.DayByDate(ctx, "user-b", "2026-02-23"); got != nil {
		t.Error("another user's record leaked through DayByDate")
	}
	if _, _, err := tr.EditToNormal(ctx, "user-b", day.ID, "08:00", "16:00"); !errors.Is(err, ErrDayNotFound) {
		t.Errorf("cross-user edit err = %v, want ErrDayNotFound", err)
	}

	week, err := tr.CurrentWeek(ctx, "user-b")
	if err != nil {
		t.Fatalf("CurrentWeek: %v", err)
	}
	if week.TotalHours != 0 {
		t.Errorf("user-b week TotalHours = %v, want 0", week.TotalHours)
	}
}

func TestHistoryOrder(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	// Three different weeks, registered out of order.
	for _, d := range []string{"2026-01-05", "2025-12-22", "2026-02-23"} {
		if _, _, err := tr.RegisterSpecial(ctx, user, d, model.DayKindRemote); err != nil {
			t.Fatalf("RegisterSpecial(%s): %v", d, err)
		}
	}

	weeks, err := tr.History(ctx, user)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(weeks) != 3 {
		t.Fatalf("got %d weeks, want 3", len(weeks))
	}

	type key struct{ year, week int }
	want := []key{{2026, 9}, {2026, 2}, {2025, 52}}
	for i, w := range weeks {
		if w.Year != want[i].year || w.WeekNumber != want[i].week {
			t.Errorf("weeks[%d] = (%d, %d), want (%d, %d)",
				i, w.Year, w.WeekNumber, want[i].year, want[i].week)
		}
	}
}
