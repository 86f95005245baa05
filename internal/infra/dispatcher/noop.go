package dispatcher

import (
	"context"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

// noopDispatcher accepts every request without dispatching anything. Used
// when no task queue backend is configured so the rest of the service keeps
// working.
type noopDispatcher struct{}

func NewNoopDispatcher() domain.ReminderDispatcher {
	return &noopDispatcher{}
}

func (n *noopDispatcher) Schedule(_ context.Context, reminder *domain.ScheduledReminder) (*domain.DispatchResponse, error) {
	return &domain.DispatchResponse{
		Name:         reminder.ReminderID,
		ScheduleTime: reminder.FireAt,
	}, nil
}

func (n *noopDispatcher) Delete(_ context.Context, _ string) error {
	return nil
}
