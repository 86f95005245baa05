package domain

import (
	"context"
	"time"
)

// AlarmSnapshot is the glanceable next-alarm summary written to the shared
// key-value namespace for companion surfaces (widgets, status displays).
type AlarmSnapshot struct {
	NextAlarmTime  *time.Time `json:"next_alarm_time"`
	NextAlarmTitle string     `json:"next_alarm_title"`
	RepeatLabel    string     `json:"repeat_label"`
}

type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshot *AlarmSnapshot) error
	LoadSnapshot(ctx context.Context) (*AlarmSnapshot, error)
}
