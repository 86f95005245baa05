package repository

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

const reminderStateKeyPrefix = "alarm:reminders:"

type reminderStateRepository struct {
	client *redis.Client
}

func NewReminderStateRepository(client *redis.Client) domain.ReminderStateRepository {
	return &reminderStateRepository{
		client: client,
	}
}

func (r *reminderStateRepository) IssuedReminderIDs(ctx context.Context, alarmID string) ([]string, error) {
	key := reminderStateKeyPrefix + alarmID

	ids, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *reminderStateRepository) SaveIssuedReminderIDs(ctx context.Context, alarmID string, reminderIDs []string) error {
	key := reminderStateKeyPrefix + alarmID

	// Replace the whole set atomically; reminders are never patched
	// individually.
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(reminderIDs) > 0 {
		members := make([]interface{}, 0, len(reminderIDs))
		for _, id := range reminderIDs {
			members = append(members, id)
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (r *reminderStateRepository) ClearIssuedReminderIDs(ctx context.Context, alarmID string) error {
	key := reminderStateKeyPrefix + alarmID
	return r.client.Del(ctx, key).Err()
}
