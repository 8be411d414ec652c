package service

import "errors"

// Validation failures surfaced to the caller before any storage write.
var (
	ErrDayExists        = errors.New("day already registered")
	ErrDayNotFound      = errors.New("day record not found")
	ErrInvalidDate      = errors.New("invalid date")
	ErrWeekendDate      = errors.New("date falls on a weekend")
	ErrInvalidTime      = errors.New("invalid clock time")
	ErrInvalidTimeRange = errors.New("exit time is not after entry time")
	ErrInvalidKind      = errors.New("unknown special day kind")
)
