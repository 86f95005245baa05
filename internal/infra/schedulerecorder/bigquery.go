//go:build gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt     time.Time `bigquery:"recorded_at"`
	PlannedAt      time.Time `bigquery:"planned_at"`
	RunID          string    `bigquery:"run_id"`
	AlarmID        string    `bigquery:"alarm_id"`
	Mode           string    `bigquery:"mode"`
	PlannedCount   int64     `bigquery:"planned_count"`
	DirectCount    int64     `bigquery:"direct_count"`
	LeaveByCount   int64     `bigquery:"leave_by_count"`
	CancelledCount int64     `bigquery:"cancelled_count"`
	FailedCount    int64     `bigquery:"failed_count"`
	TravelSeconds  float64   `bigquery:"travel_seconds"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, schedule result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordReschedule(ctx context.Context, record domain.ScheduleResultRecord) error {
	bqRecord := &bigQueryRecord{
		RecordedAt:     time.Now(),
		PlannedAt:      record.PlannedAt,
		RunID:          record.RunID,
		AlarmID:        record.AlarmID,
		Mode:           record.Mode,
		PlannedCount:   int64(record.PlannedCount),
		DirectCount:    int64(record.DirectCount),
		LeaveByCount:   int64(record.LeaveByCount),
		CancelledCount: int64(record.CancelledCount),
		FailedCount:    int64(record.FailedCount),
		TravelSeconds:  record.TravelSeconds,
	}

	if err := r.inserter.Put(ctx, []*bigQueryRecord{bqRecord}); err != nil {
		slog.WarnContext(ctx, "failed to insert schedule result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("alarm_id", record.AlarmID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
