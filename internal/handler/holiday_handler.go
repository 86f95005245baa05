package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/holiday"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/planner"
)

type HolidayHandler struct {
	holidays        holiday.Directory
	alarms          domain.AlarmRepository
	planner         planner.Service
	scheduleMetrics *metrics.ScheduleMetrics
}

func NewHolidayHandler(
	holidays holiday.Directory,
	alarms domain.AlarmRepository,
	plannerService planner.Service,
	scheduleMetrics *metrics.ScheduleMetrics,
) *HolidayHandler {
	return &HolidayHandler{
		holidays:        holidays,
		alarms:          alarms,
		planner:         plannerService,
		scheduleMetrics: scheduleMetrics,
	}
}

func (h *HolidayHandler) HandleHolidaysForYear(c *gin.Context) {
	ctx := c.Request.Context()

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 2200 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid year")
		return
	}

	if err := h.holidays.EnsureLoaded(ctx, year); err != nil {
		slog.ErrorContext(ctx, "failed to load holidays",
			slog.String("country_code", h.holidays.CountryCode()),
			slog.Int("year", year),
			slog.String("error", err.Error()),
		)
		if h.scheduleMetrics != nil {
			h.scheduleMetrics.RecordHolidayFetch(ctx, h.holidays.CountryCode(), "error")
		}
		respondError(c, http.StatusBadGateway, "holiday_source_error", "failed to load holidays")
		return
	}

	if h.scheduleMetrics != nil {
		h.scheduleMetrics.RecordHolidayFetch(ctx, h.holidays.CountryCode(), "success")
	}

	holidaysForYear := h.holidays.HolidaysFor(year)
	if holidaysForYear == nil {
		holidaysForYear = map[string]string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"country_code": h.holidays.CountryCode(),
		"year":         year,
		"holidays":     holidaysForYear,
	})
}

func (h *HolidayHandler) HandleHolidayCheck(c *gin.Context) {
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

	if err := h.holidays.EnsureLoaded(ctx, day.Year()); err != nil {
		slog.WarnContext(ctx, "holiday check using cached data only",
			slog.String("country_code", h.holidays.CountryCode()),
			slog.String("error", err.Error()),
		)
	}

	name, isHoliday := h.holidays.HolidayName(day)

	c.JSON(http.StatusOK, gin.H{
		"date":       dateStr,
		"is_holiday": isHoliday,
		"name":       name,
	})
}

type updateCountryRequest struct {
	CountryCode string `json:"country_code" binding:"required"`
}

// HandleUpdateCountry switches the holiday country and re-plans every enabled
// alarm that skips holidays, since their occurrence sets may have changed.
func (h *HolidayHandler) HandleUpdateCountry(c *gin.Context) {
	ctx := c.Request.Context()

	var req updateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.holidays.UpdateCountry(ctx, req.CountryCode); err != nil {
		slog.ErrorContext(ctx, "failed to update holiday country",
			slog.String("country_code", req.CountryCode),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadGateway, "holiday_source_error", err.Error())
		return
	}

	rescheduled := 0
	alarms, err := h.alarms.List(ctx)
	if err != nil {
		slog.WarnContext(ctx, "country updated but alarm re-planning skipped",
			slog.String("error", err.Error()),
		)
	} else {
		holidaySet := h.holidays.Snapshot()
		for _, alarm := range alarms {
			if !alarm.IsEnabled || !alarm.SkipHolidays {
				continue
			}
			if _, err := h.planner.Reschedule(ctx, alarm, holidaySet); err != nil {
				slog.WarnContext(ctx, "failed to reschedule alarm after country change",
					slog.String("alarm_id", alarm.ID),
					slog.String("error", err.Error()),
				)
				continue
			}
			rescheduled++
		}
	}

	slog.InfoContext(ctx, "holiday country updated",
		slog.String("country_code", h.holidays.CountryCode()),
		slog.Int("rescheduled", rescheduled),
	)

	c.JSON(http.StatusOK, gin.H{
		"country_code": h.holidays.CountryCode(),
		"rescheduled":  rescheduled,
	})
}
