package refresher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/holiday"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/planner"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/recurrence"
)

// DefaultCronSpec runs the nightly refresh at 03:00 local time, when no
// reasonable alarm is about to fire.
const DefaultCronSpec = "0 3 * * *"

const runTimeout = 10 * time.Minute

// Refresher periodically re-plans every enabled alarm: holiday data for the
// current and next year is topped up, commute travel estimates are refreshed,
// reminders are re-dispatched, and the next-alarm snapshot is rewritten.
type Refresher struct {
	cron      *cron.Cron
	alarms    domain.AlarmRepository
	planner   planner.Service
	holidays  holiday.Directory
	engine    recurrence.Engine
	snapshots domain.SnapshotRepository
	spec      string
	now       func() time.Time
}

func New(
	alarms domain.AlarmRepository,
	plannerService planner.Service,
	holidays holiday.Directory,
	engine recurrence.Engine,
	snapshots domain.SnapshotRepository,
	spec string,
) *Refresher {
	if spec == "" {
		spec = DefaultCronSpec
	}
	return &Refresher{
		cron:      cron.New(),
		alarms:    alarms,
		planner:   plannerService,
		holidays:  holidays,
		engine:    engine,
		snapshots: snapshots,
		spec:      spec,
		now:       time.Now,
	}
}

// Start registers the nightly job and starts the cron scheduler.
func (r *Refresher) Start() error {
	_, err := r.cron.AddFunc(r.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if err := r.RunOnce(ctx); err != nil {
			slog.ErrorContext(ctx, "nightly refresh finished with errors",
				slog.String("error", err.Error()),
			)
		}
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	slog.Info("nightly refresh scheduled", slog.String("cron", r.spec))

	return nil
}

// Stop halts the scheduler and waits for a running job to finish or ctx to
// expire.
func (r *Refresher) Stop(ctx context.Context) {
	stopped := r.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		slog.Warn("nightly refresh stop timed out")
	}
}

// RunOnce executes one full refresh pass. Per-alarm failures are collected
// rather than aborting the pass; a broken routing backend must not stop the
// other alarms from being re-planned.
func (r *Refresher) RunOnce(ctx context.Context) error {
	started := r.now()

	year := started.Year()
	if err := r.holidays.EnsureLoaded(ctx, year, year+1); err != nil {
		slog.WarnContext(ctx, "holiday refresh failed, planning with cached data",
			slog.String("country_code", r.holidays.CountryCode()),
			slog.String("error", err.Error()),
		)
	}

	alarms, err := r.alarms.List(ctx)
	if err != nil {
		return err
	}

	holidaySet := r.holidays.Snapshot()

	var errs []error
	refreshed := 0
	for _, alarm := range alarms {
		if !alarm.IsEnabled {
			continue
		}

		if r.planner.RefreshTravelEstimate(ctx, alarm) {
			if err := r.alarms.Save(ctx, alarm); err != nil {
				slog.WarnContext(ctx, "failed to persist refreshed travel estimate",
					slog.String("alarm_id", alarm.ID),
					slog.String("error", err.Error()),
				)
			}
		}

		if _, err := r.planner.Reschedule(ctx, alarm, holidaySet); err != nil {
			errs = append(errs, err)
			continue
		}
		refreshed++
	}

	if err := r.RefreshSnapshot(ctx); err != nil {
		errs = append(errs, err)
	}

	slog.InfoContext(ctx, "refresh pass completed",
		slog.Int("alarms", len(alarms)),
		slog.Int("refreshed", refreshed),
		slog.Int("failed", len(errs)),
		slog.Duration("duration", r.now().Sub(started)),
	)

	return errors.Join(errs...)
}

// RefreshSnapshot recomputes the next-alarm summary across all enabled alarms
// and persists it for companion surfaces.
func (r *Refresher) RefreshSnapshot(ctx context.Context) error {
	alarms, err := r.alarms.List(ctx)
	if err != nil {
		return err
	}

	holidaySet := r.holidays.Snapshot()
	now := r.now()

	snapshot := &domain.AlarmSnapshot{}
	for _, alarm := range alarms {
		if !alarm.IsEnabled {
			continue
		}

		next, ok, err := r.engine.NextFireDate(alarm, now, holidaySet)
		if err != nil || !ok {
			continue
		}

		if snapshot.NextAlarmTime == nil || next.Before(*snapshot.NextAlarmTime) {
			nextCopy := next
			snapshot.NextAlarmTime = &nextCopy
			snapshot.NextAlarmTitle = alarm.Title
			snapshot.RepeatLabel = alarm.Mode.Label()
		}
	}

	return r.snapshots.SaveSnapshot(ctx, snapshot)
}
