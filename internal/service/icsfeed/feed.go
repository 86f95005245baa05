package icsfeed

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/recurrence"
)

const (
	productID = "-//primind//alarm-scheduling//EN"
	uidSuffix = "@primind"
)

// Builder renders enabled alarms as an iCalendar feed so external calendar
// clients can subscribe to upcoming alarm occurrences.
type Builder interface {
	Build(alarms []*domain.Alarm, holidays domain.HolidaySet, now time.Time) (string, error)
}

type builderImpl struct {
	engine          recurrence.Engine
	occurrenceCount int
}

func NewBuilder(engine recurrence.Engine, occurrenceCount int) Builder {
	return &builderImpl{
		engine:          engine,
		occurrenceCount: occurrenceCount,
	}
}

// Build serializes every enabled alarm into VEVENTs. Weekly alarms become a
// single recurring event with an RRULE and EXDATEs for skipped holidays;
// other modes are enumerated as individual occurrences.
func (b *builderImpl) Build(alarms []*domain.Alarm, holidays domain.HolidaySet, now time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, alarm := range alarms {
		if !alarm.IsEnabled {
			continue
		}

		if alarm.Mode.Kind == domain.ModeWeekly {
			if err := b.addWeeklyEvent(cal, alarm, holidays, now); err != nil {
				return "", err
			}
			continue
		}

		if err := b.addEnumeratedEvents(cal, alarm, holidays, now); err != nil {
			return "", err
		}
	}

	return cal.Serialize(), nil
}

// rrule weekday constants start at Monday, calendar weekdays at Sunday.
var rruleWeekdays = map[int]rrule.Weekday{
	1: rrule.SU,
	2: rrule.MO,
	3: rrule.TU,
	4: rrule.WE,
	5: rrule.TH,
	6: rrule.FR,
	7: rrule.SA,
}

func (b *builderImpl) addWeeklyEvent(cal *ics.Calendar, alarm *domain.Alarm, holidays domain.HolidaySet, now time.Time) error {
	// DTSTART is the first raw weekday match. Holiday exclusions are
	// expressed as EXDATEs so the RRULE stays a faithful description of
	// the alarm's weekday pattern.
	first, ok, err := b.engine.NextFireDate(alarm, now, domain.NewHolidaySet())
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	weekdays := make([]rrule.Weekday, 0, len(alarm.Mode.Weekdays))
	for _, w := range alarm.Mode.Weekdays {
		if wd, found := rruleWeekdays[w]; found {
			weekdays = append(weekdays, wd)
		}
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: weekdays,
		Dtstart:   first,
	})
	if err != nil {
		return fmt.Errorf("build weekly rule for alarm %s: %w", alarm.ID, err)
	}

	event := cal.AddEvent(alarm.ID + uidSuffix)
	event.SetDtStampTime(now)
	event.SetStartAt(first)
	event.SetEndAt(first)
	event.SetSummary(eventSummary(alarm))
	event.SetDescription(alarm.Mode.Label())
	event.SetProperty(ics.ComponentPropertyRrule, rule.OrigOptions.RRuleString())

	if alarm.SkipHolidays {
		for dayKey := range holidays {
			day, err := time.ParseInLocation("2006-01-02", dayKey, first.Location())
			if err != nil {
				continue
			}
			if !alarm.Mode.ContainsWeekday(int(day.Weekday()) + 1) {
				continue
			}
			excluded := alarm.FireInstant(day)
			if excluded.Before(first) {
				continue
			}
			event.AddProperty(ics.ComponentPropertyExdate, excluded.Format("20060102T150405"))
		}
	}

	return nil
}

func (b *builderImpl) addEnumeratedEvents(cal *ics.Calendar, alarm *domain.Alarm, holidays domain.HolidaySet, now time.Time) error {
	dates, err := b.engine.NextFireDates(alarm, now, b.occurrenceCount, holidays)
	if err != nil {
		return err
	}

	for _, fireAt := range dates {
		event := cal.AddEvent(fmt.Sprintf("%s-%d%s", alarm.ID, fireAt.Unix(), uidSuffix))
		event.SetDtStampTime(now)
		event.SetStartAt(fireAt)
		event.SetEndAt(fireAt)
		event.SetSummary(eventSummary(alarm))
		event.SetDescription(alarm.Mode.Label())
	}

	return nil
}

func eventSummary(alarm *domain.Alarm) string {
	if alarm.Title != "" {
		return alarm.Title
	}
	return "Alarm"
}
