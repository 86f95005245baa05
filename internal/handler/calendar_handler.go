package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/holiday"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/icsfeed"
)

type CalendarHandler struct {
	alarms   domain.AlarmRepository
	holidays holiday.Directory
	feed     icsfeed.Builder
}

func NewCalendarHandler(alarms domain.AlarmRepository, holidays holiday.Directory, feed icsfeed.Builder) *CalendarHandler {
	return &CalendarHandler{
		alarms:   alarms,
		holidays: holidays,
		feed:     feed,
	}
}

// HandleCalendarFeed serves the alarm schedule as an iCalendar subscription.
func (h *CalendarHandler) HandleCalendarFeed(c *gin.Context) {
	ctx := c.Request.Context()

	alarms, err := h.alarms.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list alarms for calendar feed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to list alarms")
		return
	}

	feed, err := h.feed.Build(alarms, h.holidays.Snapshot(), time.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to build calendar feed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "feed_error", "failed to build calendar feed")
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
