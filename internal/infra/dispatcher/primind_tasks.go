//go:build !gcloud

package dispatcher

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

// PrimindTasksDispatcher schedules reminder tasks against the primind-tasks
// emulator used in local development.
type PrimindTasksDispatcher struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewPrimindTasksDispatcher(baseURL, queueName string, maxRetries int) *PrimindTasksDispatcher {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &PrimindTasksDispatcher{
		baseURL:   baseURL,
		queueName: queueName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

type primindTaskRequest struct {
	Task primindTask `json:"task"`
}

type primindTask struct {
	HTTPRequest  primindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type primindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type primindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

func (d *PrimindTasksDispatcher) Schedule(ctx context.Context, reminder *domain.ScheduledReminder) (*domain.DispatchResponse, error) {
	payload, err := json.Marshal(newReminderMessage(reminder))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder message: %w", err)
	}

	encodedBody := base64.StdEncoding.EncodeToString(payload)

	primindReq := primindTaskRequest{
		Task: primindTask{
			HTTPRequest: primindHTTPRequest{
				Body: encodedBody,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
			ScheduleTime: reminder.FireAt.Format(time.RFC3339),
		},
	}

	reqBody, err := json.Marshal(primindReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal primind request: %w", err)
	}

	url := d.tasksURL()

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

		resp, err := d.doSchedule(ctx, url, reqBody, reminder)
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

func (d *PrimindTasksDispatcher) doSchedule(ctx context.Context, url string, reqBody []byte, reminder *domain.ScheduledReminder) (*domain.DispatchResponse, error) {
	slog.Debug("scheduling reminder to Primind Tasks",
		slog.String("url", url),
		slog.String("reminder_id", reminder.ReminderID),
		slog.Time("fire_at", reminder.FireAt),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		slog.Warn("failed to send request to Primind Tasks",
			slog.String("reminder_id", reminder.ReminderID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.Warn("unexpected status code from Primind Tasks",
			slog.String("reminder_id", reminder.ReminderID),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var primindResp primindTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&primindResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, primindResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, primindResp.CreateTime)

	slog.Info("reminder scheduled to Primind Tasks",
		slog.String("task_name", primindResp.Name),
		slog.String("reminder_id", reminder.ReminderID),
	)

	return &domain.DispatchResponse{
		Name:         primindResp.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (d *PrimindTasksDispatcher) Delete(ctx context.Context, reminderID string) error {
	url := fmt.Sprintf("%s/%s", d.tasksURL(), reminderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// A missing task already fired or was cleaned up; deletion is satisfied
	// either way.
	if resp.StatusCode == http.StatusNotFound {
		slog.Info("task not found in Primind Tasks (may have been processed)",
			slog.String("reminder_id", reminderID),
		)
		return nil
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	slog.Debug("task deleted from Primind Tasks",
		slog.String("reminder_id", reminderID),
	)
	return nil
}

func (d *PrimindTasksDispatcher) tasksURL() string {
	if d.queueName != "" && d.queueName != "default" {
		return fmt.Sprintf("%s/tasks/%s", d.baseURL, d.queueName)
	}
	return fmt.Sprintf("%s/tasks", d.baseURL)
}
