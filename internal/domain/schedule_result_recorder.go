package domain

import (
	"context"
	"time"
)

// ScheduleResultRecord captures the outcome of one reschedule for offline
// analysis of scheduling behaviour.
type ScheduleResultRecord struct {
	RunID          string
	AlarmID        string
	Mode           string
	PlannedCount   int
	DirectCount    int
	LeaveByCount   int
	CancelledCount int
	FailedCount    int
	TravelSeconds  float64
	PlannedAt      time.Time
}

type ScheduleResultRecorder interface {
	RecordReschedule(ctx context.Context, record ScheduleResultRecord) error
	Flush(ctx context.Context) error
	Close() error
}
