package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

// snapshotKey is shared with companion widget surfaces.
const snapshotKey = "alarm_widget_snapshot"

type snapshotRepository struct {
	client *redis.Client
}

func NewSnapshotRepository(client *redis.Client) domain.SnapshotRepository {
	return &snapshotRepository{
		client: client,
	}
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, snapshot *domain.AlarmSnapshot) error {
	if snapshot == nil {
		return ErrInvalidSnapshotData
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return ErrInvalidSnapshotData
	}
	return r.client.Set(ctx, snapshotKey, data, 0).Err()
}

func (r *snapshotRepository) LoadSnapshot(ctx context.Context) (*domain.AlarmSnapshot, error) {
	data, err := r.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}

	var snapshot domain.AlarmSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, ErrInvalidSnapshotData
	}
	return &snapshot, nil
}
