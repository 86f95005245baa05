package config

import (
	"os"
	"strconv"
)

const (
	occurrenceCountEnv = "SCHEDULE_OCCURRENCE_COUNT"
	refreshCronEnv     = "SCHEDULE_REFRESH_CRON"

	defaultOccurrenceCount = 20
	defaultRefreshCron     = "0 3 * * *"
)

type ScheduleConfig struct {
	// OccurrenceCount is how many upcoming occurrences are materialized
	// into dispatched reminders per alarm.
	OccurrenceCount int
	// RefreshCron is the cron spec of the nightly refresh pass.
	RefreshCron string
}

func LoadScheduleConfig() *ScheduleConfig {
	occurrenceCount := defaultOccurrenceCount
	if v := os.Getenv(occurrenceCountEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			occurrenceCount = parsed
		}
	}

	refreshCron := os.Getenv(refreshCronEnv)
	if refreshCron == "" {
		refreshCron = defaultRefreshCron
	}

	return &ScheduleConfig{
		OccurrenceCount: occurrenceCount,
		RefreshCron:     refreshCron,
	}
}
