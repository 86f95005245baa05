package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/recurrence"
)

// DefaultOccurrenceCount is how many upcoming occurrences a reschedule
// materializes into dispatched reminders.
const DefaultOccurrenceCount = 20

type Service interface {
	Plan(alarm *domain.Alarm, holidays domain.HolidaySet, now time.Time) ([]*domain.ScheduledReminder, error)
	Reschedule(ctx context.Context, alarm *domain.Alarm, holidays domain.HolidaySet) (*Result, error)
	Cancel(ctx context.Context, alarmID string) (int, error)
	RefreshTravelEstimate(ctx context.Context, alarm *domain.Alarm) bool
}

type serviceImpl struct {
	engine          recurrence.Engine
	dispatcher      domain.ReminderDispatcher
	state           domain.ReminderStateRepository
	estimator       domain.RouteEstimator
	recorder        domain.ScheduleResultRecorder
	occurrenceCount int
	now             func() time.Time
}

func NewService(
	engine recurrence.Engine,
	dispatcher domain.ReminderDispatcher,
	state domain.ReminderStateRepository,
	estimator domain.RouteEstimator,
	recorder domain.ScheduleResultRecorder,
	occurrenceCount int,
) Service {
	if occurrenceCount <= 0 {
		occurrenceCount = DefaultOccurrenceCount
	}
	return &serviceImpl{
		engine:          engine,
		dispatcher:      dispatcher,
		state:           state,
		estimator:       estimator,
		recorder:        recorder,
		occurrenceCount: occurrenceCount,
		now:             time.Now,
	}
}

// Plan derives the reminders an alarm needs right now, without touching any
// external system. Disabled alarms plan nothing. Commute alarms with a known
// travel estimate get leave-by reminders; everything else gets direct alarms
// at the fire instants themselves.
func (s *serviceImpl) Plan(alarm *domain.Alarm, holidays domain.HolidaySet, now time.Time) ([]*domain.ScheduledReminder, error) {
	if !alarm.IsEnabled {
		return nil, nil
	}

	fireDates, err := s.engine.NextFireDates(alarm, now, s.occurrenceCount, holidays)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate fire dates: %w", err)
	}

	useLeaveBy := alarm.Commute.Enabled && alarm.Commute.HasTravelEstimate()
	lead := alarm.Commute.TravelDuration() + alarm.Commute.BufferDuration()

	reminders := make([]*domain.ScheduledReminder, 0, len(fireDates))
	for _, arrival := range fireDates {
		if useLeaveBy {
			departure := arrival.Add(-lead)
			// The first arrival can be close enough that its departure
			// already passed; that occurrence is simply unservable.
			if !departure.After(now) {
				continue
			}
			reminder := domain.NewLeaveByReminder(alarm, arrival, departure)
			reminders = append(reminders, &reminder)
		} else {
			reminder := domain.NewDirectReminder(alarm, arrival)
			reminders = append(reminders, &reminder)
		}
	}

	return reminders, nil
}

// Reschedule cancels every reminder previously issued for the alarm and
// dispatches a fresh plan. Cancelling first makes the operation idempotent:
// running it twice in a row leaves the same set of reminders pending.
func (s *serviceImpl) Reschedule(ctx context.Context, alarm *domain.Alarm, holidays domain.HolidaySet) (*Result, error) {
	cancelled, err := s.Cancel(ctx, alarm.ID)
	if err != nil {
		slog.WarnContext(ctx, "failed to cancel previous reminders, continuing with reschedule",
			slog.String("alarm_id", alarm.ID),
			slog.String("error", err.Error()),
		)
	}

	result := &Result{
		AlarmID:        alarm.ID,
		CancelledCount: cancelled,
	}

	reminders, err := s.Plan(alarm, holidays, s.now())
	if err != nil {
		return nil, err
	}

	issued := make([]string, 0, len(reminders))
	for _, reminder := range reminders {
		if _, err := s.dispatcher.Schedule(ctx, reminder); err != nil {
			result.FailedCount++
			slog.ErrorContext(ctx, "failed to schedule reminder",
				slog.String("alarm_id", alarm.ID),
				slog.String("reminder_id", reminder.ReminderID),
				slog.Time("fire_at", reminder.FireAt),
				slog.String("error", err.Error()),
			)
			continue
		}
		issued = append(issued, reminder.ReminderID)
		switch reminder.Kind {
		case domain.ReminderLeaveBy:
			result.LeaveByCount++
		default:
			result.DirectCount++
		}
	}

	if len(issued) > 0 {
		if err := s.state.SaveIssuedReminderIDs(ctx, alarm.ID, issued); err != nil {
			return nil, fmt.Errorf("failed to save issued reminder ids: %w", err)
		}
	}

	s.record(ctx, alarm, result)

	slog.InfoContext(ctx, "alarm rescheduled",
		slog.String("alarm_id", alarm.ID),
		slog.Int("cancelled", result.CancelledCount),
		slog.Int("scheduled", result.ScheduledCount()),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

// Cancel deletes every reminder previously issued for the alarm and clears
// the issued-ID state. Individual delete failures are collected but do not
// stop the remaining deletes.
func (s *serviceImpl) Cancel(ctx context.Context, alarmID string) (int, error) {
	ids, err := s.state.IssuedReminderIDs(ctx, alarmID)
	if err != nil {
		return 0, fmt.Errorf("failed to load issued reminder ids: %w", err)
	}

	cancelled := 0
	var firstErr error
	for _, id := range ids {
		if err := s.dispatcher.Delete(ctx, id); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to delete reminder %s: %w", id, err)
			}
			continue
		}
		cancelled++
	}

	if err := s.state.ClearIssuedReminderIDs(ctx, alarmID); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to clear issued reminder ids: %w", err)
	}

	return cancelled, firstErr
}

// RefreshTravelEstimate fetches a fresh travel time for a commute alarm and
// updates the alarm in place. Failures keep the previous estimate; commute
// scheduling must survive the routing backend being down.
func (s *serviceImpl) RefreshTravelEstimate(ctx context.Context, alarm *domain.Alarm) bool {
	if !alarm.Commute.Enabled || !alarm.Commute.HasDestination() {
		return false
	}

	destination := domain.Coordinate{
		Latitude:  alarm.Commute.Latitude,
		Longitude: alarm.Commute.Longitude,
	}
	travel, err := s.estimator.TravelTime(ctx, destination, alarm.Commute.TransportType)
	if err != nil {
		slog.WarnContext(ctx, "failed to refresh travel estimate, keeping previous value",
			slog.String("alarm_id", alarm.ID),
			slog.String("destination", alarm.Commute.DestinationName),
			slog.Float64("last_travel_seconds", alarm.Commute.LastTravelSeconds),
			slog.String("error", err.Error()),
		)
		return false
	}

	alarm.Commute.LastTravelSeconds = travel.Seconds()
	return true
}

func (s *serviceImpl) record(ctx context.Context, alarm *domain.Alarm, result *Result) {
	if s.recorder == nil {
		return
	}
	record := domain.ScheduleResultRecord{
		RunID:          uuid.NewString(),
		AlarmID:        alarm.ID,
		Mode:           string(alarm.Mode.Kind),
		PlannedCount:   result.ScheduledCount() + result.FailedCount,
		DirectCount:    result.DirectCount,
		LeaveByCount:   result.LeaveByCount,
		CancelledCount: result.CancelledCount,
		FailedCount:    result.FailedCount,
		TravelSeconds:  alarm.Commute.LastTravelSeconds,
		PlannedAt:      s.now().UTC(),
	}
	if err := s.recorder.RecordReschedule(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record schedule result",
			slog.String("alarm_id", alarm.ID),
			slog.String("error", err.Error()),
		)
	}
}
