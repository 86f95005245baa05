package planner

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/recurrence"
)

func newTestService(t *testing.T, ctrl *gomock.Controller, occurrenceCount int) (
	Service,
	*domain.MockReminderDispatcher,
	*domain.MockReminderStateRepository,
	*domain.MockRouteEstimator,
) {
	t.Helper()
	dispatcher := domain.NewMockReminderDispatcher(ctrl)
	state := domain.NewMockReminderStateRepository(ctrl)
	estimator := domain.NewMockRouteEstimator(ctrl)
	svc := NewService(recurrence.NewEngine(nil), dispatcher, state, estimator, nil, occurrenceCount)
	return svc, dispatcher, state, estimator
}

func newCommuteAlarm(travelSeconds float64) *domain.Alarm {
	// Arrive at 09:00 every Monday.
	alarm := domain.NewAlarm("Work", 9, 0, domain.WeeklyMode(2))
	alarm.Commute = domain.Commute{
		Enabled:           true,
		DestinationName:   "Office",
		Latitude:          31.2304,
		Longitude:         121.4737,
		TransportType:     domain.TransportTransit,
		BufferMinutes:     15,
		LastTravelSeconds: travelSeconds,
	}
	return alarm
}

func TestService_Plan_DisabledPlansNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestService(t, ctrl, 5)

	alarm := domain.NewAlarm("Morning", 7, 0, domain.WeeklyMode(2, 3, 4, 5, 6))
	alarm.IsEnabled = false

	reminders, err := svc.Plan(alarm, nil, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Plan() error = %v, want nil", err)
	}
	if len(reminders) != 0 {
		t.Errorf("Plan() returned %d reminders for disabled alarm, want 0", len(reminders))
	}
}

func TestService_Plan_DirectAlarms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestService(t, ctrl, 3)

	alarm := domain.NewAlarm("Morning", 7, 0, domain.WeeklyMode(2))
	now := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC) // Sunday

	reminders, err := svc.Plan(alarm, nil, now)
	if err != nil {
		t.Fatalf("Plan() error = %v, want nil", err)
	}
	if len(reminders) != 3 {
		t.Fatalf("Plan() returned %d reminders, want 3", len(reminders))
	}

	wantFirst := time.Date(2024, 1, 8, 7, 0, 0, 0, time.UTC)
	if !reminders[0].FireAt.Equal(wantFirst) {
		t.Errorf("reminders[0].FireAt = %v, want %v", reminders[0].FireAt, wantFirst)
	}
	for i, r := range reminders {
		if r.Kind != domain.ReminderDirectAlarm {
			t.Errorf("reminders[%d].Kind = %s, want %s", i, r.Kind, domain.ReminderDirectAlarm)
		}
		if r.AlarmID != alarm.ID {
			t.Errorf("reminders[%d].AlarmID = %s, want %s", i, r.AlarmID, alarm.ID)
		}
	}
}

func TestService_Plan_CommuteLeaveBy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestService(t, ctrl, 1)

	// 20 minutes travel plus 15 minutes buffer before a 09:00 arrival.
	alarm := newCommuteAlarm(1200)
	now := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

	reminders, err := svc.Plan(alarm, nil, now)
	if err != nil {
		t.Fatalf("Plan() error = %v, want nil", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("Plan() returned %d reminders, want 1", len(reminders))
	}

	r := reminders[0]
	if r.Kind != domain.ReminderLeaveBy {
		t.Errorf("Kind = %s, want %s", r.Kind, domain.ReminderLeaveBy)
	}
	wantDeparture := time.Date(2024, 1, 8, 8, 25, 0, 0, time.UTC)
	if !r.FireAt.Equal(wantDeparture) {
		t.Errorf("FireAt = %v, want %v (arrival minus travel minus buffer)", r.FireAt, wantDeparture)
	}
	wantArrival := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	if !r.Payload.ArrivalTime.Equal(wantArrival) {
		t.Errorf("Payload.ArrivalTime = %v, want %v", r.Payload.ArrivalTime, wantArrival)
	}
	if r.Payload.TravelMinutes != 20 {
		t.Errorf("Payload.TravelMinutes = %d, want 20", r.Payload.TravelMinutes)
	}
}

func TestService_Plan_CommuteWithoutEstimateFallsBackToDirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestService(t, ctrl, 1)

	// Commute enabled but no travel fetch has ever succeeded.
	alarm := newCommuteAlarm(0)
	now := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

	reminders, err := svc.Plan(alarm, nil, now)
	if err != nil {
		t.Fatalf("Plan() error = %v, want nil", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("Plan() returned %d reminders, want 1", len(reminders))
	}
	if reminders[0].Kind != domain.ReminderDirectAlarm {
		t.Errorf("Kind = %s, want %s (no estimate means direct alarm)", reminders[0].Kind, domain.ReminderDirectAlarm)
	}
	want := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	if !reminders[0].FireAt.Equal(want) {
		t.Errorf("FireAt = %v, want %v", reminders[0].FireAt, want)
	}
}

func TestService_Plan_SkipsDeparturesAlreadyPassed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestService(t, ctrl, 2)

	alarm := newCommuteAlarm(1200)
	// Monday 08:40: arrival 09:00 is still ahead, but its 08:25 departure
	// has already passed. Only next Monday is servable.
	now := time.Date(2024, 1, 8, 8, 40, 0, 0, time.UTC)

	reminders, err := svc.Plan(alarm, nil, now)
	if err != nil {
		t.Fatalf("Plan() error = %v, want nil", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("Plan() returned %d reminders, want 1", len(reminders))
	}
	want := time.Date(2024, 1, 15, 8, 25, 0, 0, time.UTC)
	if !reminders[0].FireAt.Equal(want) {
		t.Errorf("FireAt = %v, want %v (first servable departure)", reminders[0].FireAt, want)
	}
}

func TestService_Plan_HolidaysSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestService(t, ctrl, 1)

	alarm := domain.NewAlarm("Morning", 8, 0, domain.WeeklyMode(2))
	alarm.SkipHolidays = true
	holidays := domain.NewHolidaySet("2024-01-01")

	now := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	reminders, err := svc.Plan(alarm, holidays, now)
	if err != nil {
		t.Fatalf("Plan() error = %v, want nil", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("Plan() returned %d reminders, want 1", len(reminders))
	}
	want := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	if !reminders[0].FireAt.Equal(want) {
		t.Errorf("FireAt = %v, want %v (holiday Monday skipped)", reminders[0].FireAt, want)
	}
}

func TestService_Reschedule_CancelsThenSchedules(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, dispatcher, state, _ := newTestService(t, ctrl, 2)
	svc.(*serviceImpl).now = func() time.Time {
		return time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	}

	alarm := domain.NewAlarm("Morning", 7, 0, domain.WeeklyMode(2))
	ctx := context.Background()

	stale := []string{"old-1", "old-2"}
	state.EXPECT().IssuedReminderIDs(ctx, alarm.ID).Return(stale, nil)
	dispatcher.EXPECT().Delete(ctx, "old-1").Return(nil)
	dispatcher.EXPECT().Delete(ctx, "old-2").Return(nil)
	state.EXPECT().ClearIssuedReminderIDs(ctx, alarm.ID).Return(nil)

	dispatcher.EXPECT().Schedule(ctx, gomock.Any()).Return(&domain.DispatchResponse{}, nil).Times(2)
	state.EXPECT().SaveIssuedReminderIDs(ctx, alarm.ID, gomock.Len(2)).Return(nil)

	result, err := svc.Reschedule(ctx, alarm, nil)
	if err != nil {
		t.Fatalf("Reschedule() error = %v, want nil", err)
	}
	if result.CancelledCount != 2 {
		t.Errorf("CancelledCount = %d, want 2", result.CancelledCount)
	}
	if result.DirectCount != 2 || result.LeaveByCount != 0 || result.FailedCount != 0 {
		t.Errorf("result = %+v, want 2 direct, 0 leave-by, 0 failed", result)
	}
}

func TestService_Reschedule_DisabledOnlyCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, dispatcher, state, _ := newTestService(t, ctrl, 2)

	alarm := domain.NewAlarm("Morning", 7, 0, domain.WeeklyMode(2))
	alarm.IsEnabled = false
	ctx := context.Background()

	state.EXPECT().IssuedReminderIDs(ctx, alarm.ID).Return([]string{"old-1"}, nil)
	dispatcher.EXPECT().Delete(ctx, "old-1").Return(nil)
	state.EXPECT().ClearIssuedReminderIDs(ctx, alarm.ID).Return(nil)
	// No Schedule and no SaveIssuedReminderIDs expectations: a disabled
	// alarm must not dispatch anything.

	result, err := svc.Reschedule(ctx, alarm, nil)
	if err != nil {
		t.Fatalf("Reschedule() error = %v, want nil", err)
	}
	if result.CancelledCount != 1 || result.ScheduledCount() != 0 {
		t.Errorf("result = %+v, want 1 cancelled and nothing scheduled", result)
	}
}

func TestService_Reschedule_PartialScheduleFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, dispatcher, state, _ := newTestService(t, ctrl, 2)
	svc.(*serviceImpl).now = func() time.Time {
		return time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	}

	alarm := domain.NewAlarm("Morning", 7, 0, domain.WeeklyMode(2))
	ctx := context.Background()

	state.EXPECT().IssuedReminderIDs(ctx, alarm.ID).Return(nil, nil)
	state.EXPECT().ClearIssuedReminderIDs(ctx, alarm.ID).Return(nil)

	first := dispatcher.EXPECT().Schedule(ctx, gomock.Any()).Return(&domain.DispatchResponse{}, nil)
	dispatcher.EXPECT().Schedule(ctx, gomock.Any()).Return(nil, errors.New("queue full")).After(first)
	state.EXPECT().SaveIssuedReminderIDs(ctx, alarm.ID, gomock.Len(1)).Return(nil)

	result, err := svc.Reschedule(ctx, alarm, nil)
	if err != nil {
		t.Fatalf("Reschedule() error = %v, want nil", err)
	}
	if result.DirectCount != 1 || result.FailedCount != 1 {
		t.Errorf("result = %+v, want 1 scheduled and 1 failed", result)
	}
}

type memState struct {
	ids map[string][]string
}

func (m *memState) IssuedReminderIDs(ctx context.Context, alarmID string) ([]string, error) {
	return m.ids[alarmID], nil
}

func (m *memState) SaveIssuedReminderIDs(ctx context.Context, alarmID string, reminderIDs []string) error {
	m.ids[alarmID] = reminderIDs
	return nil
}

func (m *memState) ClearIssuedReminderIDs(ctx context.Context, alarmID string) error {
	delete(m.ids, alarmID)
	return nil
}

type memDispatcher struct {
	pending map[string]struct{}
}

func (m *memDispatcher) Schedule(ctx context.Context, reminder *domain.ScheduledReminder) (*domain.DispatchResponse, error) {
	m.pending[reminder.ReminderID] = struct{}{}
	return &domain.DispatchResponse{Name: reminder.ReminderID}, nil
}

func (m *memDispatcher) Delete(ctx context.Context, reminderID string) error {
	delete(m.pending, reminderID)
	return nil
}

func TestService_Reschedule_Idempotent(t *testing.T) {
	dispatcher := &memDispatcher{pending: make(map[string]struct{})}
	state := &memState{ids: make(map[string][]string)}

	svc := NewService(recurrence.NewEngine(nil), dispatcher, state, nil, nil, 3)
	svc.(*serviceImpl).now = func() time.Time {
		return time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	}

	alarm := domain.NewAlarm("Morning", 7, 0, domain.WeeklyMode(2, 4))
	ctx := context.Background()

	if _, err := svc.Reschedule(ctx, alarm, nil); err != nil {
		t.Fatalf("Reschedule() #1 error = %v, want nil", err)
	}
	firstPending := pendingKeys(dispatcher)

	if _, err := svc.Reschedule(ctx, alarm, nil); err != nil {
		t.Fatalf("Reschedule() #2 error = %v, want nil", err)
	}
	secondPending := pendingKeys(dispatcher)

	if len(firstPending) != 3 {
		t.Fatalf("pending after first reschedule = %d, want 3", len(firstPending))
	}
	if len(firstPending) != len(secondPending) {
		t.Fatalf("pending count changed: %d then %d", len(firstPending), len(secondPending))
	}
	for i := range firstPending {
		if firstPending[i] != secondPending[i] {
			t.Errorf("pending set changed across reschedules: %v vs %v", firstPending, secondPending)
			break
		}
	}
}

func pendingKeys(d *memDispatcher) []string {
	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestService_RefreshTravelEstimate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, estimator := newTestService(t, ctrl, 1)

	alarm := newCommuteAlarm(900)
	ctx := context.Background()

	estimator.EXPECT().
		TravelTime(ctx, domain.Coordinate{Latitude: 31.2304, Longitude: 121.4737}, domain.TransportTransit).
		Return(25*time.Minute, nil)

	if !svc.RefreshTravelEstimate(ctx, alarm) {
		t.Error("RefreshTravelEstimate() = false, want true")
	}
	if alarm.Commute.LastTravelSeconds != 1500 {
		t.Errorf("LastTravelSeconds = %v, want 1500", alarm.Commute.LastTravelSeconds)
	}
}

func TestService_RefreshTravelEstimate_FailureKeepsPreviousValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, estimator := newTestService(t, ctrl, 1)

	alarm := newCommuteAlarm(900)
	ctx := context.Background()

	estimator.EXPECT().
		TravelTime(ctx, gomock.Any(), gomock.Any()).
		Return(time.Duration(0), domain.ErrNoRouteFound)

	if svc.RefreshTravelEstimate(ctx, alarm) {
		t.Error("RefreshTravelEstimate() = true, want false")
	}
	if alarm.Commute.LastTravelSeconds != 900 {
		t.Errorf("LastTravelSeconds = %v, want previous value 900", alarm.Commute.LastTravelSeconds)
	}
}

func TestService_RefreshTravelEstimate_SkipsWithoutCommute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestService(t, ctrl, 1)

	// No estimator expectation: plain alarms must not hit routing at all.
	alarm := domain.NewAlarm("Morning", 7, 0, domain.WeeklyMode(2))
	if svc.RefreshTravelEstimate(context.Background(), alarm) {
		t.Error("RefreshTravelEstimate() = true for non-commute alarm, want false")
	}
}
