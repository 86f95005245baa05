package domain

// HolidaySet is an immutable snapshot of holiday dates, keyed by the
// YYYY-MM-DD day key. Safe to share across goroutines once built.
type HolidaySet map[string]struct{}

func NewHolidaySet(dates ...string) HolidaySet {
	s := make(HolidaySet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s HolidaySet) Contains(dayKey string) bool {
	_, ok := s[dayKey]
	return ok
}

func (s HolidaySet) Len() int {
	return len(s)
}
