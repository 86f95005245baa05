package repository

import "errors"

var (
	ErrInvalidAlarmData    = errors.New("invalid alarm data")
	ErrInvalidHolidayData  = errors.New("invalid holiday data")
	ErrInvalidSnapshotData = errors.New("invalid snapshot data")
)
