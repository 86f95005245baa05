package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

// Directory is the in-memory holiday lookup backed by a remote source and a
// durable cache. Lookups are synchronous and never block on network fetches;
// EnsureLoaded and UpdateCountry do the loading.
type Directory interface {
	EnsureLoaded(ctx context.Context, years ...int) error
	UpdateCountry(ctx context.Context, countryCode string) error
	CountryCode() string
	IsHoliday(day time.Time) bool
	HolidayName(day time.Time) (string, bool)
	HolidaysFor(year int) map[string]string
	Snapshot() domain.HolidaySet
	Version() uint64
}

type directoryImpl struct {
	source domain.HolidaySource
	cache  domain.HolidayCache
	group  singleflight.Group
	now    func() time.Time

	mu          sync.RWMutex
	countryCode string
	hydratedFor string
	version     uint64
	byYear      map[int]map[string]string
}

func NewDirectory(source domain.HolidaySource, cache domain.HolidayCache, countryCode string) Directory {
	return &directoryImpl{
		source:      source,
		cache:       cache,
		now:         time.Now,
		countryCode: normalizeCountryCode(countryCode),
		byYear:      make(map[int]map[string]string),
	}
}

func normalizeCountryCode(countryCode string) string {
	return strings.ToUpper(strings.TrimSpace(countryCode))
}

// EnsureLoaded makes the given years available for lookup, hydrating from the
// durable cache first and fetching only years still missing. Concurrent calls
// for the same country and year collapse into a single source fetch; every
// caller returns after that fetch has been merged.
func (d *directoryImpl) EnsureLoaded(ctx context.Context, years ...int) error {
	countryCode := d.CountryCode()

	if err := d.hydrate(ctx, countryCode); err != nil {
		slog.WarnContext(ctx, "failed to hydrate holiday cache",
			slog.String("country_code", countryCode),
			slog.String("error", err.Error()),
		)
	}

	var errs []error
	for _, year := range years {
		if d.hasYear(year) {
			continue
		}
		if err := d.fetchYear(ctx, countryCode, year); err != nil {
			errs = append(errs, fmt.Errorf("failed to load holidays for %d: %w", year, err))
		}
	}

	return errors.Join(errs...)
}

// UpdateCountry switches the active country, drops all loaded data, and loads
// the current and next year for the new country. Fetches still in flight for
// the previous country are discarded when they complete.
func (d *directoryImpl) UpdateCountry(ctx context.Context, countryCode string) error {
	countryCode = normalizeCountryCode(countryCode)
	if countryCode == "" {
		return errors.New("country code must not be empty")
	}

	d.mu.Lock()
	if d.countryCode == countryCode {
		d.mu.Unlock()
		return nil
	}
	d.countryCode = countryCode
	d.hydratedFor = ""
	d.byYear = make(map[int]map[string]string)
	d.version++
	d.mu.Unlock()

	slog.InfoContext(ctx, "holiday country switched",
		slog.String("country_code", countryCode),
	)

	year := d.now().Year()
	return d.EnsureLoaded(ctx, year, year+1)
}

func (d *directoryImpl) CountryCode() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.countryCode
}

func (d *directoryImpl) IsHoliday(day time.Time) bool {
	_, ok := d.HolidayName(day)
	return ok
}

func (d *directoryImpl) HolidayName(day time.Time) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	year, ok := d.byYear[day.Year()]
	if !ok {
		return "", false
	}
	name, ok := year[domain.DayKey(day)]
	return name, ok
}

func (d *directoryImpl) HolidaysFor(year int) map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	holidays := make(map[string]string, len(d.byYear[year]))
	for dayKey, name := range d.byYear[year] {
		holidays[dayKey] = name
	}
	return holidays
}

// Snapshot returns the day keys of every loaded holiday across all years,
// for handing to the recurrence engine.
func (d *directoryImpl) Snapshot() domain.HolidaySet {
	d.mu.RLock()
	defer d.mu.RUnlock()

	set := make(domain.HolidaySet)
	for _, year := range d.byYear {
		for dayKey := range year {
			set[dayKey] = struct{}{}
		}
	}
	return set
}

// Version increments on every mutation of the loaded data, so callers can
// detect when a cached derivation (snapshots, plans) has gone stale.
func (d *directoryImpl) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

func (d *directoryImpl) hasYear(year int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byYear[year]
	return ok
}

func (d *directoryImpl) hydrate(ctx context.Context, countryCode string) error {
	d.mu.RLock()
	hydrated := d.hydratedFor == countryCode
	d.mu.RUnlock()
	if hydrated {
		return nil
	}

	_, err, _ := d.group.Do("hydrate:"+countryCode, func() (any, error) {
		cached, err := d.cache.Load(ctx, countryCode)
		if err != nil {
			return nil, err
		}

		d.mu.Lock()
		defer d.mu.Unlock()
		if d.countryCode != countryCode || d.hydratedFor == countryCode {
			return nil, nil
		}
		for year, holidays := range cached {
			if _, ok := d.byYear[year]; !ok {
				d.byYear[year] = holidays
			}
		}
		d.hydratedFor = countryCode
		if len(cached) > 0 {
			d.version++
		}
		return nil, nil
	})
	return err
}

func (d *directoryImpl) fetchYear(ctx context.Context, countryCode string, year int) error {
	key := fmt.Sprintf("%s:%d", countryCode, year)
	_, err, _ := d.group.Do(key, func() (any, error) {
		// A collapsed caller may arrive after the winner already merged.
		if d.hasYear(year) {
			return nil, nil
		}

		holidays, err := d.source.Fetch(ctx, year, countryCode)
		if err != nil {
			return nil, err
		}
		d.merge(ctx, countryCode, year, holidays)
		return nil, nil
	})
	return err
}

// merge installs a fetched year under the country the fetch started for. When
// the active country changed while the fetch was in flight, the result is
// dropped instead of polluting the new country's data.
func (d *directoryImpl) merge(ctx context.Context, countryCode string, year int, holidays map[string]string) {
	d.mu.Lock()
	if d.countryCode != countryCode {
		d.mu.Unlock()
		slog.WarnContext(ctx, "discarding stale holiday fetch",
			slog.String("fetched_country_code", countryCode),
			slog.Int("year", year),
		)
		return
	}
	d.byYear[year] = holidays
	d.version++
	persisted := make(map[int]map[string]string, len(d.byYear))
	for y, hs := range d.byYear {
		persisted[y] = hs
	}
	d.mu.Unlock()

	if err := d.cache.Save(ctx, countryCode, persisted); err != nil {
		slog.WarnContext(ctx, "failed to persist holiday cache",
			slog.String("country_code", countryCode),
			slog.Int("year", year),
			slog.String("error", err.Error()),
		)
	}
}
