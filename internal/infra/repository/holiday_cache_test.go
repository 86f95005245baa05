package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/testutil"
)

func TestHolidayCacheSaveAndLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	cache := NewHolidayCache(client)

	holidays := map[int]map[string]string{
		2024: {"2024-01-01": "元旦", "2024-02-10": "春节"},
		2025: {"2025-01-01": "元旦"},
	}

	if err := cache.Save(ctx, "CN", holidays); err != nil {
		t.Fatalf("Save() error = %v, want nil", err)
	}

	got, err := cache.Load(ctx, "CN")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load() returned %d years, want 2", len(got))
	}
	if got[2024]["2024-02-10"] != "春节" {
		t.Errorf("Load()[2024] = %v, holidays do not round-trip", got[2024])
	}
}

func TestHolidayCacheLoadMissingCountry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	cache := NewHolidayCache(client)

	got, err := cache.Load(ctx, "US")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing country", err)
	}
	if got != nil {
		t.Errorf("Load() = %v, want nil for missing country", got)
	}
}

func TestHolidayCacheCountriesAreIsolated(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	cache := NewHolidayCache(client)

	if err := cache.Save(ctx, "CN", map[int]map[string]string{
		2024: {"2024-01-01": "元旦"},
	}); err != nil {
		t.Fatalf("Save(CN) error = %v, want nil", err)
	}
	if err := cache.Save(ctx, "US", map[int]map[string]string{
		2024: {"2024-07-04": "Independence Day"},
	}); err != nil {
		t.Fatalf("Save(US) error = %v, want nil", err)
	}

	cn, err := cache.Load(ctx, "CN")
	if err != nil {
		t.Fatalf("Load(CN) error = %v, want nil", err)
	}
	if _, ok := cn[2024]["2024-07-04"]; ok {
		t.Error("CN cache contains US holidays, countries must be isolated")
	}
	if cn[2024]["2024-01-01"] != "元旦" {
		t.Errorf("Load(CN) = %v, missing CN holiday", cn)
	}
}

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSnapshotRepository(client)

	if _, err := repo.LoadSnapshot(ctx); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Errorf("LoadSnapshot() on empty store error = %v, want ErrSnapshotNotFound", err)
	}

	next := time.Date(2024, 1, 8, 7, 30, 0, 0, time.UTC)
	snapshot := &domain.AlarmSnapshot{
		NextAlarmTime:  &next,
		NextAlarmTitle: "Morning",
		RepeatLabel:    "Mon, Wed, Fri",
	}

	if err := repo.SaveSnapshot(ctx, snapshot); err != nil {
		t.Fatalf("SaveSnapshot() error = %v, want nil", err)
	}

	got, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v, want nil", err)
	}
	if got.NextAlarmTitle != "Morning" || got.RepeatLabel != "Mon, Wed, Fri" {
		t.Errorf("LoadSnapshot() = %+v, does not round-trip", got)
	}
	if got.NextAlarmTime == nil || !got.NextAlarmTime.Equal(next) {
		t.Errorf("NextAlarmTime = %v, want %v", got.NextAlarmTime, next)
	}
}
