package domain

import (
	"fmt"
	"time"
)

// ReminderKind distinguishes a plain alarm from a commute departure reminder.
type ReminderKind string

const (
	ReminderDirectAlarm ReminderKind = "direct_alarm"
	ReminderLeaveBy     ReminderKind = "leave_by"
)

func (k ReminderKind) String() string {
	return string(k)
}

// ReminderPayload carries the display content delivered with a reminder.
type ReminderPayload struct {
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Destination   string    `json:"destination,omitempty"`
	TravelMinutes int       `json:"travel_minutes,omitempty"`
	ArrivalTime   time.Time `json:"arrival_time,omitzero"`
}

// ScheduledReminder is one concrete output of planning: a single dispatch
// request against the external reminder dispatcher. Reminders for an alarm
// are always replaced as a full set, never patched individually.
type ScheduledReminder struct {
	ReminderID string
	AlarmID    string
	FireAt     time.Time
	Kind       ReminderKind
	Payload    ReminderPayload
}

const defaultAlarmTitle = "Alarm"

func NewDirectReminder(alarm *Alarm, fireAt time.Time) ScheduledReminder {
	title := alarm.Title
	if title == "" {
		title = defaultAlarmTitle
	}

	return ScheduledReminder{
		ReminderID: fmt.Sprintf("%s-%d", alarm.ID, fireAt.Unix()),
		AlarmID:    alarm.ID,
		FireAt:     fireAt,
		Kind:       ReminderDirectAlarm,
		Payload: ReminderPayload{
			Title: title,
			Body:  fireAt.Format("15:04"),
		},
	}
}

func NewLeaveByReminder(alarm *Alarm, arrival, departure time.Time) ScheduledReminder {
	travelMinutes := int(alarm.Commute.LastTravelSeconds / 60)

	body := arrival.Format("15:04")
	if alarm.Commute.DestinationName != "" {
		body = fmt.Sprintf("%s → %s", body, alarm.Commute.DestinationName)
	}
	body = fmt.Sprintf("%s · ~%d min", body, travelMinutes)

	return ScheduledReminder{
		ReminderID: fmt.Sprintf("%s-commute-%d", alarm.ID, arrival.Unix()),
		AlarmID:    alarm.ID,
		FireAt:     departure,
		Kind:       ReminderLeaveBy,
		Payload: ReminderPayload{
			Title:         "Time to Leave!",
			Body:          body,
			Destination:   alarm.Commute.DestinationName,
			TravelMinutes: travelMinutes,
			ArrivalTime:   arrival,
		},
	}
}
