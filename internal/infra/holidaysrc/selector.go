package holidaysrc

import (
	"context"
	"strings"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

// selectorSource routes fetches by country. The timor.tech calendar carries
// the official CN rest-day adjustments that Nager.Date lacks; every other
// country goes to Nager.Date.
type selectorSource struct {
	timor domain.HolidaySource
	nager domain.HolidaySource
}

func NewSource(timor, nager domain.HolidaySource) domain.HolidaySource {
	return &selectorSource{
		timor: timor,
		nager: nager,
	}
}

func (s *selectorSource) Fetch(ctx context.Context, year int, countryCode string) (map[string]string, error) {
	if strings.EqualFold(countryCode, "CN") {
		return s.timor.Fetch(ctx, year, countryCode)
	}
	return s.nager.Fetch(ctx, year, countryCode)
}
