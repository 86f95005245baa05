//go:build gcloud

package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

// CloudTasksDispatcher schedules reminder tasks on Google Cloud Tasks.
type CloudTasksDispatcher struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

func NewCloudTasksDispatcher(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksDispatcher, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksDispatcher{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (d *CloudTasksDispatcher) Schedule(ctx context.Context, reminder *domain.ScheduledReminder) (*domain.DispatchResponse, error) {
	queuePath := fmt.Sprintf("projects/%s/locations/%s/queues/%s",
		d.projectID, d.locationID, d.queueID)

	payload, err := json.Marshal(newReminderMessage(reminder))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder message: %w", err)
	}

	taskName := fmt.Sprintf("%s/tasks/%s", queuePath, reminder.ReminderID)

	cloudTask := &taskspb.Task{
		Name: taskName,
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        d.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
		ScheduleTime: timestamppb.New(reminder.FireAt),
	}

	req := &taskspb.CreateTaskRequest{
		Parent: queuePath,
		Task:   cloudTask,
	}

	var lastErr error
	for attempt := 0; attempt < d.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying reminder scheduling",
				slog.String("reminder_id", reminder.ReminderID),
				slog.String("alarm_id", reminder.AlarmID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := d.createTask(ctx, req, reminder.ReminderID)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for reminder scheduling",
		slog.String("reminder_id", reminder.ReminderID),
		slog.String("alarm_id", reminder.AlarmID),
		slog.Int("max_retries", d.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to schedule reminder after %d retries: %w", d.maxRetries, lastErr)
}

func (d *CloudTasksDispatcher) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, reminderID string) (*domain.DispatchResponse, error) {
	slog.Debug("scheduling reminder to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("reminder_id", reminderID),
	)

	createdTask, err := d.client.CreateTask(ctx, req)
	if err != nil {
		slog.Warn("failed to create cloud task",
			slog.String("reminder_id", reminderID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.Info("reminder scheduled to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("reminder_id", reminderID),
	)

	var scheduleTime, createTime time.Time
	if createdTask.ScheduleTime != nil {
		scheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		createTime = createdTask.CreateTime.AsTime()
	}

	return &domain.DispatchResponse{
		Name:         createdTask.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (d *CloudTasksDispatcher) Delete(ctx context.Context, reminderID string) error {
	taskPath := fmt.Sprintf("projects/%s/locations/%s/queues/%s/tasks/%s",
		d.projectID, d.locationID, d.queueID, reminderID)

	var lastErr error
	for attempt := 0; attempt < d.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying task deletion",
				slog.String("reminder_id", reminderID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := d.deleteTask(ctx, taskPath, reminderID)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for task deletion",
		slog.String("reminder_id", reminderID),
		slog.Int("max_retries", d.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("failed to delete task after %d retries: %w", d.maxRetries, lastErr)
}

func (d *CloudTasksDispatcher) deleteTask(ctx context.Context, taskPath, reminderID string) error {
	req := &taskspb.DeleteTaskRequest{
		Name: taskPath,
	}

	err := d.client.DeleteTask(ctx, req)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			slog.Info("task not found in Cloud Tasks (may have been processed)",
				slog.String("reminder_id", reminderID),
			)
			return nil
		}

		slog.Warn("failed to delete cloud task",
			slog.String("reminder_id", reminderID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete cloud task: %w", err)
	}

	slog.Debug("task deleted from Cloud Tasks",
		slog.String("reminder_id", reminderID),
	)
	return nil
}

func (d *CloudTasksDispatcher) Close() error {
	return d.client.Close()
}
