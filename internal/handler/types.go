package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

const dateLayout = "2006-01-02"

type commuteRequest struct {
	Enabled         bool    `json:"enabled"`
	DestinationName string  `json:"destination_name"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	TransportType   string  `json:"transport_type"`
	BufferMinutes   int     `json:"buffer_minutes"`
}

type alarmRequest struct {
	Title        string          `json:"title"`
	Hour         int             `json:"hour"`
	Minute       int             `json:"minute"`
	Mode         string          `json:"mode" binding:"required"`
	TargetDate   string          `json:"target_date,omitempty"`
	Weekdays     []int           `json:"weekdays,omitempty"`
	LunarMonth   int             `json:"lunar_month,omitempty"`
	LunarDay     int             `json:"lunar_day,omitempty"`
	SkipHolidays bool            `json:"skip_holidays"`
	IsEnabled    *bool           `json:"is_enabled,omitempty"`
	Commute      *commuteRequest `json:"commute,omitempty"`
}

type commuteResponse struct {
	Enabled           bool    `json:"enabled"`
	DestinationName   string  `json:"destination_name,omitempty"`
	Latitude          float64 `json:"latitude,omitempty"`
	Longitude         float64 `json:"longitude,omitempty"`
	TransportType     string  `json:"transport_type"`
	BufferMinutes     int     `json:"buffer_minutes"`
	LastTravelSeconds float64 `json:"last_travel_seconds,omitempty"`
}

type alarmResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Hour         int              `json:"hour"`
	Minute       int              `json:"minute"`
	Mode         string           `json:"mode"`
	TargetDate   string           `json:"target_date,omitempty"`
	Weekdays     []int            `json:"weekdays,omitempty"`
	LunarMonth   int              `json:"lunar_month,omitempty"`
	LunarDay     int              `json:"lunar_day,omitempty"`
	RepeatLabel  string           `json:"repeat_label"`
	SkipHolidays bool             `json:"skip_holidays"`
	IsEnabled    bool             `json:"is_enabled"`
	Commute      *commuteResponse `json:"commute,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (r *alarmRequest) mode() (domain.Mode, error) {
	switch domain.ModeKind(r.Mode) {
	case domain.ModeOneTime:
		if r.TargetDate == "" {
			return domain.Mode{}, fmt.Errorf("target_date is required for one_time alarms")
		}
		target, err := time.ParseInLocation(dateLayout, r.TargetDate, time.Local)
		if err != nil {
			return domain.Mode{}, fmt.Errorf("invalid target_date: %w", err)
		}
		return domain.OneTimeMode(target), nil
	case domain.ModeWeekly:
		return domain.WeeklyMode(r.Weekdays...), nil
	case domain.ModeAnnualLunar:
		return domain.AnnualLunarMode(r.LunarMonth, r.LunarDay), nil
	default:
		return domain.Mode{}, fmt.Errorf("unknown mode %q", r.Mode)
	}
}

func (r *alarmRequest) applyCommute(alarm *domain.Alarm) {
	if r.Commute == nil {
		return
	}

	alarm.Commute.Enabled = r.Commute.Enabled
	alarm.Commute.DestinationName = r.Commute.DestinationName
	alarm.Commute.Latitude = r.Commute.Latitude
	alarm.Commute.Longitude = r.Commute.Longitude
	if r.Commute.TransportType != "" {
		alarm.Commute.TransportType = domain.TransportType(r.Commute.TransportType)
	}
	if r.Commute.BufferMinutes > 0 {
		alarm.Commute.BufferMinutes = r.Commute.BufferMinutes
	}
}

func toAlarmResponse(alarm *domain.Alarm) alarmResponse {
	resp := alarmResponse{
		ID:           alarm.ID,
		Title:        alarm.Title,
		Hour:         alarm.Hour,
		Minute:       alarm.Minute,
		Mode:         string(alarm.Mode.Kind),
		Weekdays:     alarm.Mode.Weekdays,
		LunarMonth:   alarm.Mode.LunarMonth,
		LunarDay:     alarm.Mode.LunarDay,
		RepeatLabel:  alarm.Mode.Label(),
		SkipHolidays: alarm.SkipHolidays,
		IsEnabled:    alarm.IsEnabled,
		CreatedAt:    alarm.CreatedAt,
	}

	if !alarm.Mode.TargetDate.IsZero() {
		resp.TargetDate = alarm.Mode.TargetDate.Format(dateLayout)
	}

	if alarm.Commute.Enabled || alarm.Commute.HasDestination() {
		resp.Commute = &commuteResponse{
			Enabled:           alarm.Commute.Enabled,
			DestinationName:   alarm.Commute.DestinationName,
			Latitude:          alarm.Commute.Latitude,
			Longitude:         alarm.Commute.Longitude,
			TransportType:     string(alarm.Commute.TransportType),
			BufferMinutes:     alarm.Commute.BufferMinutes,
			LastTravelSeconds: alarm.Commute.LastTravelSeconds,
		}
	}

	return resp
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{
		"error":   errType,
		"message": message,
	})
}
