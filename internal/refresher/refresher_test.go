package refresher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/planner"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/recurrence"
)

type fakeLunarResolver struct{}

func (f *fakeLunarResolver) SolarDateFor(year, lunarMonth, lunarDay int) (time.Time, error) {
	return time.Date(year, 2, 10, 0, 0, 0, 0, time.UTC), nil
}

type memAlarmRepo struct {
	alarms []*domain.Alarm
	saved  []string
}

func (r *memAlarmRepo) Save(_ context.Context, alarm *domain.Alarm) error {
	r.saved = append(r.saved, alarm.ID)
	return nil
}

func (r *memAlarmRepo) Get(_ context.Context, id string) (*domain.Alarm, error) {
	for _, a := range r.alarms {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrAlarmNotFound
}

func (r *memAlarmRepo) List(_ context.Context) ([]*domain.Alarm, error) {
	return r.alarms, nil
}

func (r *memAlarmRepo) Delete(_ context.Context, _ string) error {
	return nil
}

type fakePlanner struct {
	rescheduled  []string
	failFor      map[string]error
	refreshTo    float64
	refreshCalls int
}

func (p *fakePlanner) Plan(_ *domain.Alarm, _ domain.HolidaySet, _ time.Time) ([]*domain.ScheduledReminder, error) {
	return nil, nil
}

func (p *fakePlanner) Reschedule(_ context.Context, alarm *domain.Alarm, _ domain.HolidaySet) (*planner.Result, error) {
	if err := p.failFor[alarm.ID]; err != nil {
		return nil, err
	}
	p.rescheduled = append(p.rescheduled, alarm.ID)
	return &planner.Result{AlarmID: alarm.ID}, nil
}

func (p *fakePlanner) Cancel(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (p *fakePlanner) RefreshTravelEstimate(_ context.Context, alarm *domain.Alarm) bool {
	p.refreshCalls++
	if p.refreshTo > 0 && alarm.Commute.Enabled {
		alarm.Commute.LastTravelSeconds = p.refreshTo
		return true
	}
	return false
}

type fakeDirectory struct {
	holidays      domain.HolidaySet
	ensureErr     error
	ensuredYears  []int
	countryCode   string
	versionValue  uint64
	updateErr     error
	updateCalls   int
	holidaysByYr  map[int]map[string]string
	updateCountry string
}

func (d *fakeDirectory) EnsureLoaded(_ context.Context, years ...int) error {
	d.ensuredYears = append(d.ensuredYears, years...)
	return d.ensureErr
}

func (d *fakeDirectory) UpdateCountry(_ context.Context, countryCode string) error {
	d.updateCalls++
	d.updateCountry = countryCode
	return d.updateErr
}

func (d *fakeDirectory) CountryCode() string { return d.countryCode }

func (d *fakeDirectory) IsHoliday(day time.Time) bool {
	return d.holidays.Contains(domain.DayKey(day))
}

func (d *fakeDirectory) HolidayName(_ time.Time) (string, bool) { return "", false }

func (d *fakeDirectory) HolidaysFor(year int) map[string]string { return d.holidaysByYr[year] }

func (d *fakeDirectory) Snapshot() domain.HolidaySet {
	if d.holidays == nil {
		return domain.NewHolidaySet()
	}
	return d.holidays
}

func (d *fakeDirectory) Version() uint64 { return d.versionValue }

type memSnapshotRepo struct {
	snapshot *domain.AlarmSnapshot
	saveErr  error
}

func (r *memSnapshotRepo) SaveSnapshot(_ context.Context, snapshot *domain.AlarmSnapshot) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.snapshot = snapshot
	return nil
}

func (r *memSnapshotRepo) LoadSnapshot(_ context.Context) (*domain.AlarmSnapshot, error) {
	if r.snapshot == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return r.snapshot, nil
}

func newTestRefresher(repo *memAlarmRepo, plan *fakePlanner, dir *fakeDirectory, snaps *memSnapshotRepo, now time.Time) *Refresher {
	engine := recurrence.NewEngine(&fakeLunarResolver{})
	r := New(repo, plan, dir, engine, snaps, "")
	r.now = func() time.Time { return now }
	return r
}

func TestRunOnceReschedulesEnabledAlarms(t *testing.T) {
	enabled := domain.NewAlarm("Work", 7, 0, domain.WeeklyMode(2, 3, 4, 5, 6))
	disabled := domain.NewAlarm("Weekend", 9, 0, domain.WeeklyMode(1, 7))
	disabled.IsEnabled = false

	repo := &memAlarmRepo{alarms: []*domain.Alarm{enabled, disabled}}
	plan := &fakePlanner{}
	dir := &fakeDirectory{countryCode: "CN"}
	snaps := &memSnapshotRepo{}

	now := time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)
	r := newTestRefresher(repo, plan, dir, snaps, now)

	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v, want nil", err)
	}

	if len(plan.rescheduled) != 1 || plan.rescheduled[0] != enabled.ID {
		t.Errorf("RunOnce() rescheduled = %v, want only %s", plan.rescheduled, enabled.ID)
	}
	if len(dir.ensuredYears) != 2 || dir.ensuredYears[0] != 2024 || dir.ensuredYears[1] != 2025 {
		t.Errorf("RunOnce() ensured years = %v, want [2024 2025]", dir.ensuredYears)
	}
	if snaps.snapshot == nil {
		t.Fatal("RunOnce() did not write a snapshot")
	}
}

func TestRunOncePersistsRefreshedTravelEstimate(t *testing.T) {
	alarm := domain.NewAlarm("Commute", 9, 0, domain.WeeklyMode(2))
	alarm.Commute.Enabled = true
	alarm.Commute.DestinationName = "Office"
	alarm.Commute.Latitude = 31.2304
	alarm.Commute.Longitude = 121.4737

	repo := &memAlarmRepo{alarms: []*domain.Alarm{alarm}}
	plan := &fakePlanner{refreshTo: 1500}
	dir := &fakeDirectory{countryCode: "CN"}
	snaps := &memSnapshotRepo{}

	now := time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)
	r := newTestRefresher(repo, plan, dir, snaps, now)

	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v, want nil", err)
	}

	if len(repo.saved) != 1 || repo.saved[0] != alarm.ID {
		t.Errorf("RunOnce() saved alarms = %v, want [%s]", repo.saved, alarm.ID)
	}
	if alarm.Commute.LastTravelSeconds != 1500 {
		t.Errorf("RunOnce() travel seconds = %v, want 1500", alarm.Commute.LastTravelSeconds)
	}
}

func TestRunOnceContinuesAfterRescheduleFailure(t *testing.T) {
	broken := domain.NewAlarm("Broken", 7, 0, domain.WeeklyMode(2))
	healthy := domain.NewAlarm("Healthy", 8, 0, domain.WeeklyMode(3))

	repo := &memAlarmRepo{alarms: []*domain.Alarm{broken, healthy}}
	plan := &fakePlanner{failFor: map[string]error{broken.ID: errors.New("dispatcher down")}}
	dir := &fakeDirectory{countryCode: "CN"}
	snaps := &memSnapshotRepo{}

	now := time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)
	r := newTestRefresher(repo, plan, dir, snaps, now)

	err := r.RunOnce(context.Background())
	if err == nil {
		t.Fatal("RunOnce() error = nil, want reschedule failure")
	}

	if len(plan.rescheduled) != 1 || plan.rescheduled[0] != healthy.ID {
		t.Errorf("RunOnce() rescheduled = %v, want only %s", plan.rescheduled, healthy.ID)
	}
}

func TestRefreshSnapshotPicksEarliestAlarm(t *testing.T) {
	// Friday 2024-01-05. The 07:00 Saturday alarm fires before the 06:00
	// Monday alarm.
	early := domain.NewAlarm("Saturday", 7, 0, domain.WeeklyMode(7))
	late := domain.NewAlarm("Monday", 6, 0, domain.WeeklyMode(2))

	repo := &memAlarmRepo{alarms: []*domain.Alarm{late, early}}
	snaps := &memSnapshotRepo{}
	dir := &fakeDirectory{countryCode: "CN"}

	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	r := newTestRefresher(repo, &fakePlanner{}, dir, snaps, now)

	if err := r.RefreshSnapshot(context.Background()); err != nil {
		t.Fatalf("RefreshSnapshot() error = %v, want nil", err)
	}

	if snaps.snapshot == nil || snaps.snapshot.NextAlarmTime == nil {
		t.Fatal("RefreshSnapshot() wrote no next alarm time")
	}

	want := time.Date(2024, 1, 6, 7, 0, 0, 0, time.UTC)
	if !snaps.snapshot.NextAlarmTime.Equal(want) {
		t.Errorf("RefreshSnapshot() next time = %v, want %v", snaps.snapshot.NextAlarmTime, want)
	}
	if snaps.snapshot.NextAlarmTitle != "Saturday" {
		t.Errorf("RefreshSnapshot() title = %q, want %q", snaps.snapshot.NextAlarmTitle, "Saturday")
	}
}

func TestRefreshSnapshotEmptyWhenNoEnabledAlarms(t *testing.T) {
	disabled := domain.NewAlarm("Off", 7, 0, domain.WeeklyMode(2))
	disabled.IsEnabled = false

	repo := &memAlarmRepo{alarms: []*domain.Alarm{disabled}}
	snaps := &memSnapshotRepo{}
	dir := &fakeDirectory{countryCode: "CN"}

	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	r := newTestRefresher(repo, &fakePlanner{}, dir, snaps, now)

	if err := r.RefreshSnapshot(context.Background()); err != nil {
		t.Fatalf("RefreshSnapshot() error = %v, want nil", err)
	}

	if snaps.snapshot == nil {
		t.Fatal("RefreshSnapshot() wrote no snapshot")
	}
	if snaps.snapshot.NextAlarmTime != nil {
		t.Errorf("RefreshSnapshot() next time = %v, want nil", snaps.snapshot.NextAlarmTime)
	}
}
