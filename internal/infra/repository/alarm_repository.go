package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

type alarmRecord struct {
	ID                string `gorm:"primaryKey;size:36"`
	Title             string
	Hour              int
	Minute            int
	ModeKind          string `gorm:"size:16"`
	TargetDate        *time.Time
	Weekdays          string `gorm:"size:32"`
	LunarMonth        int
	LunarDay          int
	SkipHolidays      bool
	IsEnabled         bool
	CommuteEnabled    bool
	DestinationName   string
	Latitude          float64
	Longitude         float64
	TransportType     string `gorm:"size:16"`
	BufferMinutes     int
	LastTravelSeconds float64
	CreatedAt         time.Time
}

func (alarmRecord) TableName() string {
	return "alarms"
}

type alarmRepository struct {
	db *gorm.DB
}

func NewAlarmRepository(db *gorm.DB) (domain.AlarmRepository, error) {
	if err := db.AutoMigrate(&alarmRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate alarms table: %w", err)
	}
	return &alarmRepository{db: db}, nil
}

func (r *alarmRepository) Save(ctx context.Context, alarm *domain.Alarm) error {
	if alarm == nil {
		return ErrInvalidAlarmData
	}

	record, err := toAlarmRecord(alarm)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(record).Error
}

func (r *alarmRepository) Get(ctx context.Context, id string) (*domain.Alarm, error) {
	var record alarmRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAlarmNotFound
		}
		return nil, err
	}
	return toAlarm(&record)
}

func (r *alarmRepository) List(ctx context.Context) ([]*domain.Alarm, error) {
	var records []alarmRecord
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, err
	}

	alarms := make([]*domain.Alarm, 0, len(records))
	for i := range records {
		alarm, err := toAlarm(&records[i])
		if err != nil {
			return nil, err
		}
		alarms = append(alarms, alarm)
	}
	return alarms, nil
}

func (r *alarmRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&alarmRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlarmNotFound
	}
	return nil
}

func toAlarmRecord(alarm *domain.Alarm) (*alarmRecord, error) {
	weekdays, err := json.Marshal(alarm.Mode.Weekdays)
	if err != nil {
		return nil, ErrInvalidAlarmData
	}

	record := &alarmRecord{
		ID:                alarm.ID,
		Title:             alarm.Title,
		Hour:              alarm.Hour,
		Minute:            alarm.Minute,
		ModeKind:          string(alarm.Mode.Kind),
		Weekdays:          string(weekdays),
		LunarMonth:        alarm.Mode.LunarMonth,
		LunarDay:          alarm.Mode.LunarDay,
		SkipHolidays:      alarm.SkipHolidays,
		IsEnabled:         alarm.IsEnabled,
		CommuteEnabled:    alarm.Commute.Enabled,
		DestinationName:   alarm.Commute.DestinationName,
		Latitude:          alarm.Commute.Latitude,
		Longitude:         alarm.Commute.Longitude,
		TransportType:     string(alarm.Commute.TransportType),
		BufferMinutes:     alarm.Commute.BufferMinutes,
		LastTravelSeconds: alarm.Commute.LastTravelSeconds,
		CreatedAt:         alarm.CreatedAt,
	}
	if !alarm.Mode.TargetDate.IsZero() {
		target := alarm.Mode.TargetDate
		record.TargetDate = &target
	}
	return record, nil
}

func toAlarm(record *alarmRecord) (*domain.Alarm, error) {
	var weekdays []int
	if record.Weekdays != "" {
		if err := json.Unmarshal([]byte(record.Weekdays), &weekdays); err != nil {
			return nil, ErrInvalidAlarmData
		}
	}

	mode := domain.Mode{
		Kind:       domain.ModeKind(record.ModeKind),
		Weekdays:   weekdays,
		LunarMonth: record.LunarMonth,
		LunarDay:   record.LunarDay,
	}
	if record.TargetDate != nil {
		mode.TargetDate = *record.TargetDate
	}

	return &domain.Alarm{
		ID:           record.ID,
		Title:        record.Title,
		Hour:         record.Hour,
		Minute:       record.Minute,
		Mode:         mode,
		SkipHolidays: record.SkipHolidays,
		IsEnabled:    record.IsEnabled,
		Commute: domain.Commute{
			Enabled:           record.CommuteEnabled,
			DestinationName:   record.DestinationName,
			Latitude:          record.Latitude,
			Longitude:         record.Longitude,
			TransportType:     domain.TransportType(record.TransportType),
			BufferMinutes:     record.BufferMinutes,
			LastTravelSeconds: record.LastTravelSeconds,
		},
		CreatedAt: record.CreatedAt,
	}, nil
}
