package lunar

import (
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// Resolver converts lunar-calendar dates to solar dates via the lunar-go
// almanac tables.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// SolarDateFor returns the solar date the given lunar month/day falls on in
// the given solar year. The underlying library panics on dates that do not
// exist in a year (for example day 30 of a short lunar month), so the
// conversion is wrapped in a recover.
func (r *Resolver) SolarDateFor(year, lunarMonth, lunarDay int) (solar time.Time, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("invalid lunar date %d/%d in %d: %v", lunarMonth, lunarDay, year, rec)
		}
	}()

	l := calendar.NewLunarFromYmd(year, lunarMonth, lunarDay)
	s := l.GetSolar()

	return time.Date(s.GetYear(), time.Month(s.GetMonth()), s.GetDay(), 0, 0, 0, 0, time.Local), nil
}
