package repository

import (
	"context"
	"sort"
	"testing"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/testutil"
)

func TestReminderStateSaveAndLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderStateRepository(client)
	alarmID := "alarm-1"

	ids, err := repo.IssuedReminderIDs(ctx, alarmID)
	if err != nil {
		t.Fatalf("IssuedReminderIDs() error = %v, want nil", err)
	}
	if len(ids) != 0 {
		t.Errorf("IssuedReminderIDs() = %v on empty store, want empty", ids)
	}

	if err := repo.SaveIssuedReminderIDs(ctx, alarmID, []string{"r-1", "r-2"}); err != nil {
		t.Fatalf("SaveIssuedReminderIDs() error = %v, want nil", err)
	}

	ids, err = repo.IssuedReminderIDs(ctx, alarmID)
	if err != nil {
		t.Fatalf("IssuedReminderIDs() error = %v, want nil", err)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "r-1" || ids[1] != "r-2" {
		t.Errorf("IssuedReminderIDs() = %v, want [r-1 r-2]", ids)
	}
}

func TestReminderStateSaveReplacesExisting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderStateRepository(client)
	alarmID := "alarm-1"

	if err := repo.SaveIssuedReminderIDs(ctx, alarmID, []string{"old-1", "old-2"}); err != nil {
		t.Fatalf("SaveIssuedReminderIDs() error = %v, want nil", err)
	}
	if err := repo.SaveIssuedReminderIDs(ctx, alarmID, []string{"new-1"}); err != nil {
		t.Fatalf("SaveIssuedReminderIDs() error = %v, want nil", err)
	}

	ids, err := repo.IssuedReminderIDs(ctx, alarmID)
	if err != nil {
		t.Fatalf("IssuedReminderIDs() error = %v, want nil", err)
	}
	if len(ids) != 1 || ids[0] != "new-1" {
		t.Errorf("IssuedReminderIDs() = %v, want [new-1] (save must replace, not append)", ids)
	}
}

func TestReminderStateClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderStateRepository(client)
	alarmID := "alarm-1"

	if err := repo.SaveIssuedReminderIDs(ctx, alarmID, []string{"r-1"}); err != nil {
		t.Fatalf("SaveIssuedReminderIDs() error = %v, want nil", err)
	}
	if err := repo.ClearIssuedReminderIDs(ctx, alarmID); err != nil {
		t.Fatalf("ClearIssuedReminderIDs() error = %v, want nil", err)
	}

	ids, err := repo.IssuedReminderIDs(ctx, alarmID)
	if err != nil {
		t.Fatalf("IssuedReminderIDs() error = %v, want nil", err)
	}
	if len(ids) != 0 {
		t.Errorf("IssuedReminderIDs() = %v after clear, want empty", ids)
	}

	// Clearing an alarm with no issued reminders is a no-op.
	if err := repo.ClearIssuedReminderIDs(ctx, "alarm-unknown"); err != nil {
		t.Errorf("ClearIssuedReminderIDs() on missing alarm error = %v, want nil", err)
	}
}
