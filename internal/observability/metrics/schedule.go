package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "alarm.scheduler"
)

type ScheduleMetrics struct {
	reschedulesTotal   metric.Int64Counter
	remindersScheduled metric.Int64Counter
	remindersCancelled metric.Int64Counter
	rescheduleDuration metric.Float64Histogram
	holidayFetches     metric.Int64Counter
	travelRefreshes    metric.Int64Counter
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	reschedulesTotal, err := meter.Int64Counter(
		"alarm_reschedules_total",
		metric.WithDescription("Total number of alarm reschedule operations"),
		metric.WithUnit("{reschedule}"),
	)
	if err != nil {
		return nil, err
	}

	remindersScheduled, err := meter.Int64Counter(
		"alarm_reminders_scheduled_total",
		metric.WithDescription("Total number of reminders handed to the dispatcher"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	remindersCancelled, err := meter.Int64Counter(
		"alarm_reminders_cancelled_total",
		metric.WithDescription("Total number of previously issued reminders cancelled"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	rescheduleDuration, err := meter.Float64Histogram(
		"alarm_reschedule_duration_seconds",
		metric.WithDescription("Time spent planning and dispatching one alarm"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	holidayFetches, err := meter.Int64Counter(
		"holiday_fetches_total",
		metric.WithDescription("Total number of holiday directory fetches against external APIs"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	travelRefreshes, err := meter.Int64Counter(
		"travel_estimate_refreshes_total",
		metric.WithDescription("Total number of commute travel estimate refreshes"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		reschedulesTotal:   reschedulesTotal,
		remindersScheduled: remindersScheduled,
		remindersCancelled: remindersCancelled,
		rescheduleDuration: rescheduleDuration,
		holidayFetches:     holidayFetches,
		travelRefreshes:    travelRefreshes,
	}, nil
}

func (m *ScheduleMetrics) RecordReschedule(ctx context.Context, mode, outcome string) {
	m.reschedulesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordRemindersScheduled(ctx context.Context, kind string, count int) {
	if count <= 0 {
		return
	}
	m.remindersScheduled.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *ScheduleMetrics) RecordRemindersCancelled(ctx context.Context, count int) {
	if count <= 0 {
		return
	}
	m.remindersCancelled.Add(ctx, int64(count))
}

func (m *ScheduleMetrics) RecordRescheduleDuration(ctx context.Context, mode string, duration time.Duration) {
	m.rescheduleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("mode", mode),
	))
}

func (m *ScheduleMetrics) RecordHolidayFetch(ctx context.Context, countryCode, outcome string) {
	m.holidayFetches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("country_code", countryCode),
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordTravelRefresh(ctx context.Context, outcome string) {
	m.travelRefreshes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
