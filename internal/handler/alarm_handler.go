package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/tracing"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/refresher"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/holiday"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/planner"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/recurrence"
)

type AlarmHandler struct {
	alarms          domain.AlarmRepository
	planner         planner.Service
	holidays        holiday.Directory
	engine          recurrence.Engine
	refresher       *refresher.Refresher
	scheduleMetrics *metrics.ScheduleMetrics
}

func NewAlarmHandler(
	alarms domain.AlarmRepository,
	plannerService planner.Service,
	holidays holiday.Directory,
	engine recurrence.Engine,
	refresherService *refresher.Refresher,
	scheduleMetrics *metrics.ScheduleMetrics,
) *AlarmHandler {
	return &AlarmHandler{
		alarms:          alarms,
		planner:         plannerService,
		holidays:        holidays,
		engine:          engine,
		refresher:       refresherService,
		scheduleMetrics: scheduleMetrics,
	}
}

func (h *AlarmHandler) HandleCreateAlarm(c *gin.Context) {
	ctx := c.Request.Context()

	var req alarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	mode, err := req.mode()
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	alarm := domain.NewAlarm(req.Title, req.Hour, req.Minute, mode)
	alarm.SkipHolidays = req.SkipHolidays
	if req.IsEnabled != nil {
		alarm.IsEnabled = *req.IsEnabled
	}
	req.applyCommute(alarm)

	if err := alarm.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if alarm.Commute.Enabled {
		h.planner.RefreshTravelEstimate(ctx, alarm)
	}

	if err := h.alarms.Save(ctx, alarm); err != nil {
		slog.ErrorContext(ctx, "failed to save alarm",
			slog.String("alarm_id", alarm.ID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to save alarm")
		return
	}

	h.reschedule(c, alarm)

	c.JSON(http.StatusCreated, toAlarmResponse(alarm))
}

func (h *AlarmHandler) HandleListAlarms(c *gin.Context) {
	ctx := c.Request.Context()

	alarms, err := h.alarms.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list alarms", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to list alarms")
		return
	}

	responses := make([]alarmResponse, 0, len(alarms))
	for _, alarm := range alarms {
		responses = append(responses, toAlarmResponse(alarm))
	}

	c.JSON(http.StatusOK, gin.H{"alarms": responses})
}

func (h *AlarmHandler) HandleGetAlarm(c *gin.Context) {
	alarm, ok := h.loadAlarm(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toAlarmResponse(alarm))
}

func (h *AlarmHandler) HandleUpdateAlarm(c *gin.Context) {
	ctx := c.Request.Context()

	alarm, ok := h.loadAlarm(c)
	if !ok {
		return
	}

	var req alarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	mode, err := req.mode()
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	alarm.Title = req.Title
	alarm.Hour = req.Hour
	alarm.Minute = req.Minute
	alarm.Mode = mode
	alarm.SkipHolidays = req.SkipHolidays
	if req.IsEnabled != nil {
		alarm.IsEnabled = *req.IsEnabled
	}
	req.applyCommute(alarm)

	if err := alarm.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if alarm.Commute.Enabled {
		h.planner.RefreshTravelEstimate(ctx, alarm)
	}

	if err := h.alarms.Save(ctx, alarm); err != nil {
		slog.ErrorContext(ctx, "failed to save alarm",
			slog.String("alarm_id", alarm.ID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to save alarm")
		return
	}

	h.reschedule(c, alarm)

	c.JSON(http.StatusOK, toAlarmResponse(alarm))
}

func (h *AlarmHandler) HandleDeleteAlarm(c *gin.Context) {
	ctx := c.Request.Context()

	alarm, ok := h.loadAlarm(c)
	if !ok {
		return
	}

	if _, err := h.planner.Cancel(ctx, alarm.ID); err != nil {
		slog.WarnContext(ctx, "failed to cancel reminders for deleted alarm",
			slog.String("alarm_id", alarm.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := h.alarms.Delete(ctx, alarm.ID); err != nil {
		slog.ErrorContext(ctx, "failed to delete alarm",
			slog.String("alarm_id", alarm.ID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to delete alarm")
		return
	}

	h.refreshSnapshot(c)

	c.Status(http.StatusNoContent)
}

func (h *AlarmHandler) HandleToggleAlarm(c *gin.Context) {
	ctx := c.Request.Context()

	alarm, ok := h.loadAlarm(c)
	if !ok {
		return
	}

	alarm.IsEnabled = !alarm.IsEnabled

	if err := h.alarms.Save(ctx, alarm); err != nil {
		slog.ErrorContext(ctx, "failed to save alarm",
			slog.String("alarm_id", alarm.ID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to save alarm")
		return
	}

	h.reschedule(c, alarm)

	c.JSON(http.StatusOK, toAlarmResponse(alarm))
}

// HandleFireDates previews the upcoming fire instants of one alarm.
func (h *AlarmHandler) HandleFireDates(c *gin.Context) {
	alarm, ok := h.loadAlarm(c)
	if !ok {
		return
	}

	count := planner.DefaultOccurrenceCount
	if countStr := c.Query("count"); countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "validation_error", "count must be a positive integer")
			return
		}
		count = parsed
	}

	dates, err := h.engine.NextFireDates(alarm, time.Now(), count, h.holidays.Snapshot())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "planning_error", err.Error())
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(time.RFC3339))
	}

	c.JSON(http.StatusOK, gin.H{
		"alarm_id":   alarm.ID,
		"fire_dates": formatted,
	})
}

// HandleAlarmsForDate lists the enabled alarms that fire on a given calendar
// day.
func (h *AlarmHandler) HandleAlarmsForDate(c *gin.Context) {
	ctx := c.Request.Context()

	dateStr := c.Query("date")
	if dateStr == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "date query parameter is required")
		return
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid date, expected YYYY-MM-DD")
		return
	}

	alarms, err := h.alarms.List(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to list alarms")
		return
	}

	holidaySet := h.holidays.Snapshot()

	firing := make([]alarmResponse, 0)
	for _, alarm := range alarms {
		fires, err := h.engine.Fires(alarm, day, holidaySet)
		if err != nil {
			slog.WarnContext(ctx, "failed to evaluate alarm for date",
				slog.String("alarm_id", alarm.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if fires {
			firing = append(firing, toAlarmResponse(alarm))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   dateStr,
		"alarms": firing,
	})
}

// loadAlarm resolves the :id path parameter, writing the error response
// itself when the alarm cannot be loaded.
func (h *AlarmHandler) loadAlarm(c *gin.Context) (*domain.Alarm, bool) {
	ctx := c.Request.Context()

	alarm, err := h.alarms.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAlarmNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "alarm not found")
			return nil, false
		}
		slog.ErrorContext(ctx, "failed to load alarm",
			slog.String("alarm_id", c.Param("id")),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to load alarm")
		return nil, false
	}

	return alarm, true
}

// reschedule re-plans one alarm's reminders after a mutation and refreshes
// the next-alarm snapshot. Dispatch failures degrade to a warning; the
// mutation itself has already been persisted.
func (h *AlarmHandler) reschedule(c *gin.Context, alarm *domain.Alarm) {
	ctx := c.Request.Context()

	// Holiday data must be in place before planning, otherwise a
	// skip-holiday alarm created against a cold directory is planned
	// without skips until the nightly refresh.
	year := time.Now().Year()
	if err := h.holidays.EnsureLoaded(ctx, year, year+1); err != nil {
		slog.WarnContext(ctx, "failed to load holidays before reschedule, planning with loaded data",
			slog.String("alarm_id", alarm.ID),
			slog.String("error", err.Error()),
		)
	}

	spanCtx, span := tracing.StartRescheduleSpan(ctx, alarm.ID, string(alarm.Mode.Kind))
	defer span.End()

	started := time.Now()
	result, err := h.planner.Reschedule(spanCtx, alarm, h.holidays.Snapshot())
	duration := time.Since(started)

	if h.scheduleMetrics != nil {
		h.scheduleMetrics.RecordRescheduleDuration(spanCtx, string(alarm.Mode.Kind), duration)
	}

	if err != nil {
		tracing.RecordRescheduleResult(span, 0, 0, 0, err)
		if h.scheduleMetrics != nil {
			h.scheduleMetrics.RecordReschedule(spanCtx, string(alarm.Mode.Kind), "error")
		}
		slog.WarnContext(ctx, "reschedule after mutation failed",
			slog.String("alarm_id", alarm.ID),
			slog.String("error", err.Error()),
		)
	} else {
		tracing.RecordRescheduleResult(span, result.ScheduledCount(), result.CancelledCount, result.FailedCount, nil)
		if h.scheduleMetrics != nil {
			h.scheduleMetrics.RecordReschedule(spanCtx, string(alarm.Mode.Kind), "success")
			h.scheduleMetrics.RecordRemindersScheduled(spanCtx, string(domain.ReminderDirectAlarm), result.DirectCount)
			h.scheduleMetrics.RecordRemindersScheduled(spanCtx, string(domain.ReminderLeaveBy), result.LeaveByCount)
			h.scheduleMetrics.RecordRemindersCancelled(spanCtx, result.CancelledCount)
		}
	}

	h.refreshSnapshot(c)
}

func (h *AlarmHandler) refreshSnapshot(c *gin.Context) {
	if h.refresher == nil {
		return
	}
	ctx := c.Request.Context()
	if err := h.refresher.RefreshSnapshot(ctx); err != nil {
		slog.WarnContext(ctx, "failed to refresh next-alarm snapshot",
			slog.String("error", err.Error()),
		)
	}
}
