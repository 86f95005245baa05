package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=route_estimator.go -destination=route_estimator_mock.go -package=domain

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// RouteEstimator returns the current travel time from the user's origin to a
// destination. Failures map to ErrNoRouteFound or ErrLocationPermissionDenied
// and are always recoverable: the planner falls back to the cached estimate.
type RouteEstimator interface {
	TravelTime(ctx context.Context, destination Coordinate, transport TransportType) (time.Duration, error)
}
