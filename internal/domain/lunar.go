package domain

import "time"

// LunarResolver converts a lunar-calendar month/day to the solar date it
// falls on in a given solar year.
type LunarResolver interface {
	SolarDateFor(year, lunarMonth, lunarDay int) (time.Time, error)
}
