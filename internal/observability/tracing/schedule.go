package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/KasumiMercury/primind-alarm-scheduling/internal/service/planner"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartRescheduleSpan(ctx context.Context, alarmID, mode string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.reschedule",
		trace.WithAttributes(
			attribute.String("alarm_id", alarmID),
			attribute.String("alarm.mode", mode),
		),
	)
}

func StartHolidayFetchSpan(ctx context.Context, countryCode string, year int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.holiday_fetch",
		trace.WithAttributes(
			attribute.String("country_code", countryCode),
			attribute.Int("year", year),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordRescheduleResult(span trace.Span, scheduledCount, cancelledCount, failedCount int, err error) {
	span.SetAttributes(
		attribute.Int("reschedule.scheduled_count", scheduledCount),
		attribute.Int("reschedule.cancelled_count", cancelledCount),
		attribute.Int("reschedule.failed_count", failedCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordHolidayFetchResult(span trace.Span, holidayCount int, err error) {
	span.SetAttributes(
		attribute.Int("holiday.count", holidayCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordLeaveByCalculation(span trace.Span, arrivalTime, departureTime time.Time, travelSeconds float64) {
	span.SetAttributes(
		attribute.String("commute.arrival_time", arrivalTime.Format(time.RFC3339)),
		attribute.String("commute.departure_time", departureTime.Format(time.RFC3339)),
		attribute.Float64("commute.travel_seconds", travelSeconds),
	)
}

// InjectToHTTPRequest propagates the trace context of ctx into the outgoing
// request headers.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
