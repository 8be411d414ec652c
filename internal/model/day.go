package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DayKind classifies a special day. A normal worked day has no kind.
type DayKind string

const (
	DayKindRemote  DayKind = "remote"
	DayKindHoliday DayKind = "holiday"
)

// Valid reports whether k is a known special-day kind.
func (k DayKind) Valid() bool {
	return k == DayKindRemote || k == DayKindHoliday
}

// DayRecord is one calendar day's work status for one user. At most one
// record exists per (user, date); a date with no record is simply
// unrecorded.
//
// For a normal day EntryTime/ExitTime hold the registered clock times and
// TotalHours their computed contribution. For a special (remote or
// holiday) day the clock times are empty, exactly one of IsRemote and
// IsHoliday is set, and TotalHours is the fixed special-day credit.
type DayRecord struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string        `bson:"user_id" json:"userId"`
	Date       string        `bson:"date" json:"date"` // YYYY-MM-DD
	EntryTime  string        `bson:"entry_time" json:"entryTime"`
	ExitTime   string        `bson:"exit_time" json:"exitTime"`
	TotalHours float64       `bson:"total_hours" json:"totalHours"`
	IsHoliday  bool          `bson:"is_holiday" json:"isHoliday"`
	IsRemote   bool          `bson:"is_remote" json:"isRemote"`
	IsComplete bool          `bson:"is_complete" json:"isComplete"`
	CreatedAt  time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updatedAt"`
}
