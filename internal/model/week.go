package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// WeekRecord is the weekly rollup for one user, unique per
// (user, year, week number). Totals are recomputed from the day records
// after every day-level change; the embedded Days slice is the snapshot
// used in the last recomputation, a denormalized cache — the day
// collection stays authoritative.
type WeekRecord struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string        `bson:"user_id" json:"userId"`
	WeekNumber     int           `bson:"week_number" json:"weekNumber"`
	Year           int           `bson:"year" json:"year"`
	StartDate      string        `bson:"start_date" json:"startDate"` // Monday
	EndDate        string        `bson:"end_date" json:"endDate"`     // Sunday
	TotalHours     float64       `bson:"total_hours" json:"totalHours"`
	CompletedDays  int           `bson:"completed_days" json:"completedDays"`
	AbsentDays     int           `bson:"absent_days" json:"absentDays"`
	RemainingHours float64       `bson:"remaining_hours" json:"remainingHours"`
	Days           []DayRecord   `bson:"days" json:"days"`
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updatedAt"`
}
