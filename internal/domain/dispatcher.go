package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=dispatcher.go -destination=dispatcher_mock.go -package=domain

// ReminderDispatcher delivers reminder tasks to the platform task queue.
// Which backend is active (primind-tasks locally, Cloud Tasks on gcloud) is
// resolved once at startup; callers stay agnostic.
type ReminderDispatcher interface {
	Schedule(ctx context.Context, reminder *ScheduledReminder) (*DispatchResponse, error)
	Delete(ctx context.Context, reminderID string) error
}

type DispatchResponse struct {
	Name         string
	ScheduleTime time.Time
	CreateTime   time.Time
}

// ReminderStateRepository tracks which reminder IDs were issued for each
// alarm so a reschedule can cancel the full prior set before reissuing.
type ReminderStateRepository interface {
	IssuedReminderIDs(ctx context.Context, alarmID string) ([]string, error)
	SaveIssuedReminderIDs(ctx context.Context, alarmID string, reminderIDs []string) error
	ClearIssuedReminderIDs(ctx context.Context, alarmID string) error
}
