package domain

import "context"

//go:generate mockgen -source=alarm_repository.go -destination=alarm_repository_mock.go -package=domain

// AlarmRepository is the persistent store of alarm definitions.
type AlarmRepository interface {
	Save(ctx context.Context, alarm *Alarm) error
	Get(ctx context.Context, id string) (*Alarm, error)
	List(ctx context.Context) ([]*Alarm, error)
	Delete(ctx context.Context, id string) error
}
