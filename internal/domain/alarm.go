package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ModeKind identifies which recurrence case of an alarm is active.
type ModeKind string

const (
	ModeOneTime     ModeKind = "one_time"
	ModeWeekly      ModeKind = "weekly"
	ModeAnnualLunar ModeKind = "annual_lunar"
)

// Mode is the recurrence mode of an alarm. Exactly one case is active,
// selected by Kind; the remaining fields are meaningful only for their case.
type Mode struct {
	Kind ModeKind

	// TargetDate is the calendar day of a one-time alarm.
	TargetDate time.Time

	// Weekdays uses calendar weekday values: 1=Sunday .. 7=Saturday.
	Weekdays []int

	// LunarMonth and LunarDay identify an annual lunar-calendar date.
	LunarMonth int
	LunarDay   int
}

func OneTimeMode(target time.Time) Mode {
	return Mode{Kind: ModeOneTime, TargetDate: target}
}

func WeeklyMode(weekdays ...int) Mode {
	return Mode{Kind: ModeWeekly, Weekdays: weekdays}
}

func AnnualLunarMode(month, day int) Mode {
	return Mode{Kind: ModeAnnualLunar, LunarMonth: month, LunarDay: day}
}

// IsRepeating reports whether the mode produces more than one occurrence per
// scheduling horizon scan. Annual lunar alarms repeat across years, but within
// a single scan they behave like a one-shot.
func (m Mode) IsRepeating() bool {
	return m.Kind == ModeWeekly
}

func (m Mode) ContainsWeekday(weekday int) bool {
	for _, w := range m.Weekdays {
		if w == weekday {
			return true
		}
	}
	return false
}

var weekdayShortNames = [8]string{"", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Label renders the recurrence as a short human-readable repeat description,
// used by companion surfaces such as the widget snapshot.
func (m Mode) Label() string {
	switch m.Kind {
	case ModeOneTime:
		return "Once"
	case ModeWeekly:
		if len(m.Weekdays) == 7 {
			return "Every day"
		}
		names := make([]string, 0, len(m.Weekdays))
		for _, w := range m.Weekdays {
			if w >= 1 && w <= 7 {
				names = append(names, weekdayShortNames[w])
			}
		}
		return strings.Join(names, ", ")
	case ModeAnnualLunar:
		return fmt.Sprintf("Lunar %d/%d", m.LunarMonth, m.LunarDay)
	default:
		return ""
	}
}

// TransportType selects the routing profile for commute travel estimation.
type TransportType string

const (
	TransportAuto    TransportType = "auto"
	TransportWalk    TransportType = "walk"
	TransportTransit TransportType = "transit"
)

func (t TransportType) String() string {
	return string(t)
}

// Commute is the optional commute configuration of an alarm. When Enabled,
// the alarm's time-of-day is the desired arrival time and the reminder fires
// earlier by travel time plus buffer.
type Commute struct {
	Enabled         bool
	DestinationName string
	Latitude        float64
	Longitude       float64
	TransportType   TransportType
	BufferMinutes   int

	// LastTravelSeconds is the most recently fetched travel estimate,
	// cached so scheduling keeps working when route estimation is down.
	LastTravelSeconds float64
}

// HasDestination reports whether a destination coordinate has been set.
// Commute scheduling is meaningless without one.
func (c Commute) HasDestination() bool {
	return c.Latitude != 0 || c.Longitude != 0
}

// HasTravelEstimate reports whether at least one travel-time fetch has
// ever succeeded.
func (c Commute) HasTravelEstimate() bool {
	return c.LastTravelSeconds > 0
}

func (c Commute) TravelDuration() time.Duration {
	return time.Duration(c.LastTravelSeconds * float64(time.Second))
}

func (c Commute) BufferDuration() time.Duration {
	return time.Duration(c.BufferMinutes) * time.Minute
}

const DefaultCommuteBufferMinutes = 15

// Alarm is the central scheduling entity. For commute alarms Hour/Minute is
// the desired arrival time; otherwise it is the fire time.
type Alarm struct {
	ID           string
	Title        string
	Hour         int
	Minute       int
	Mode         Mode
	SkipHolidays bool
	IsEnabled    bool
	Commute      Commute
	CreatedAt    time.Time
}

func NewAlarm(title string, hour, minute int, mode Mode) *Alarm {
	return &Alarm{
		ID:        uuid.NewString(),
		Title:     title,
		Hour:      hour,
		Minute:    minute,
		Mode:      mode,
		IsEnabled: true,
		Commute: Commute{
			TransportType: TransportAuto,
			BufferMinutes: DefaultCommuteBufferMinutes,
		},
		CreatedAt: time.Now().UTC(),
	}
}

// FireInstant combines a calendar day with the alarm's time-of-day in the
// day's location.
func (a *Alarm) FireInstant(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), a.Hour, a.Minute, 0, 0, day.Location())
}

// Validate rejects configurations that can never fire or reference
// out-of-range calendar components.
func (a *Alarm) Validate() error {
	if a.Hour < 0 || a.Hour > 23 || a.Minute < 0 || a.Minute > 59 {
		return ErrInvalidAlarmConfiguration
	}

	switch a.Mode.Kind {
	case ModeOneTime:
		if a.Mode.TargetDate.IsZero() {
			return ErrInvalidAlarmConfiguration
		}
	case ModeWeekly:
		if len(a.Mode.Weekdays) == 0 {
			return ErrInvalidAlarmConfiguration
		}
		for _, w := range a.Mode.Weekdays {
			if w < 1 || w > 7 {
				return ErrInvalidAlarmConfiguration
			}
		}
	case ModeAnnualLunar:
		if a.Mode.LunarMonth < 1 || a.Mode.LunarMonth > 12 {
			return ErrInvalidAlarmConfiguration
		}
		if a.Mode.LunarDay < 1 || a.Mode.LunarDay > 30 {
			return ErrInvalidAlarmConfiguration
		}
	default:
		return ErrInvalidAlarmConfiguration
	}

	return nil
}

// DayKey formats a timestamp as the calendar-day key used for holiday
// lookups, in the timestamp's own location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two instants fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
