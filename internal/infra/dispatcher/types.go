package dispatcher

import (
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

// reminderMessage is the delivery payload posted back to the notification
// surface when a reminder task fires.
type reminderMessage struct {
	ReminderID    string    `json:"reminder_id"`
	AlarmID       string    `json:"alarm_id"`
	Kind          string    `json:"kind"`
	FireAt        time.Time `json:"fire_at"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Destination   string    `json:"destination,omitempty"`
	TravelMinutes int       `json:"travel_minutes,omitempty"`
	ArrivalTime   time.Time `json:"arrival_time,omitzero"`
}

func newReminderMessage(reminder *domain.ScheduledReminder) reminderMessage {
	return reminderMessage{
		ReminderID:    reminder.ReminderID,
		AlarmID:       reminder.AlarmID,
		Kind:          reminder.Kind.String(),
		FireAt:        reminder.FireAt,
		Title:         reminder.Payload.Title,
		Body:          reminder.Payload.Body,
		Destination:   reminder.Payload.Destination,
		TravelMinutes: reminder.Payload.TravelMinutes,
		ArrivalTime:   reminder.Payload.ArrivalTime,
	}
}
