package domain

import "context"

//go:generate mockgen -source=holiday_source.go -destination=holiday_source_mock.go -package=domain

// HolidaySource fetches the public holidays of one year for one country as a
// day-key (YYYY-MM-DD) to holiday-name mapping.
type HolidaySource interface {
	Fetch(ctx context.Context, year int, countryCode string) (map[string]string, error)
}

// HolidayCache is the durable key-value store behind the in-memory holiday
// directory, keyed per country and shared with companion surfaces.
type HolidayCache interface {
	Load(ctx context.Context, countryCode string) (map[int]map[string]string, error)
	Save(ctx context.Context, countryCode string, holidays map[int]map[string]string) error
}
