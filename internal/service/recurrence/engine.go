package recurrence

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

// horizonDays bounds every occurrence scan. An alarm with no occurrence
// within two years is treated as never firing.
const horizonDays = 730

type Engine interface {
	Fires(alarm *domain.Alarm, day time.Time, holidays domain.HolidaySet) (bool, error)
	NextFireDate(alarm *domain.Alarm, from time.Time, holidays domain.HolidaySet) (time.Time, bool, error)
	NextFireDates(alarm *domain.Alarm, from time.Time, count int, holidays domain.HolidaySet) ([]time.Time, error)
}

type engineImpl struct {
	lunar domain.LunarResolver
}

func NewEngine(lunar domain.LunarResolver) Engine {
	return &engineImpl{
		lunar: lunar,
	}
}

// Fires reports whether the alarm fires on the given calendar day. Disabled
// alarms never fire, and holiday-skipping alarms never fire on a holiday,
// regardless of mode.
func (e *engineImpl) Fires(alarm *domain.Alarm, day time.Time, holidays domain.HolidaySet) (bool, error) {
	if !alarm.IsEnabled {
		return false, nil
	}
	if alarm.SkipHolidays && holidays.Contains(domain.DayKey(day)) {
		return false, nil
	}
	return e.matchesDay(alarm, day)
}

// NextFireDate returns the first fire instant strictly after from. The bool
// result is false when no occurrence exists within the scan horizon.
func (e *engineImpl) NextFireDate(alarm *domain.Alarm, from time.Time, holidays domain.HolidaySet) (time.Time, bool, error) {
	dates, err := e.NextFireDates(alarm, from, 1, holidays)
	if err != nil {
		return time.Time{}, false, err
	}
	if len(dates) == 0 {
		return time.Time{}, false, nil
	}
	return dates[0], true, nil
}

// NextFireDates returns up to count upcoming fire instants strictly after
// from, in ascending order. The scan walks calendar days so that holiday
// skips and month/year boundaries need no special casing.
func (e *engineImpl) NextFireDates(alarm *domain.Alarm, from time.Time, count int, holidays domain.HolidaySet) ([]time.Time, error) {
	if count <= 0 || !alarm.IsEnabled {
		return nil, nil
	}

	dates := make([]time.Time, 0, count)
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	for offset := 0; offset <= horizonDays; offset++ {
		matches, err := e.matchesDay(alarm, day)
		if err != nil {
			return nil, fmt.Errorf("failed to match day %s: %w", domain.DayKey(day), err)
		}
		if matches {
			skipped := alarm.SkipHolidays && holidays.Contains(domain.DayKey(day))
			if !skipped {
				instant := alarm.FireInstant(day)
				if instant.After(from) {
					dates = append(dates, instant)
					if len(dates) >= count {
						return dates, nil
					}
				}
				// A holiday-skipped day was never a candidate, so one-shot
				// modes scan past it (an annual alarm rolls over to the next
				// year). A real candidate ends the walk even when the
				// strictly-after cutoff rejected it.
				if !alarm.Mode.IsRepeating() {
					return dates, nil
				}
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return dates, nil
}

// matchesDay reports whether the alarm's mode selects the given calendar day,
// ignoring the enabled flag and holiday skips.
func (e *engineImpl) matchesDay(alarm *domain.Alarm, day time.Time) (bool, error) {
	switch alarm.Mode.Kind {
	case domain.ModeOneTime:
		return domain.SameDay(alarm.Mode.TargetDate, day), nil
	case domain.ModeWeekly:
		// Calendar weekday values run 1=Sunday .. 7=Saturday.
		weekday := int(day.Weekday()) + 1
		return alarm.Mode.ContainsWeekday(weekday), nil
	case domain.ModeAnnualLunar:
		solar, err := e.lunar.SolarDateFor(day.Year(), alarm.Mode.LunarMonth, alarm.Mode.LunarDay)
		if err != nil {
			return false, fmt.Errorf("failed to resolve lunar date %d/%d in %d: %w",
				alarm.Mode.LunarMonth, alarm.Mode.LunarDay, day.Year(), err)
		}
		return domain.SameDay(solar, day), nil
	default:
		return false, nil
	}
}
