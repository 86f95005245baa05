package domain

import "errors"

var (
	ErrAlarmNotFound             = errors.New("alarm not found")
	ErrInvalidAlarmConfiguration = errors.New("invalid alarm configuration")
	ErrNoRouteFound              = errors.New("no route found")
	ErrLocationPermissionDenied  = errors.New("location permission denied")
	ErrSnapshotNotFound          = errors.New("snapshot not found")
)
