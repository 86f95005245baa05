package lunar

import (
	"testing"
	"time"
)

func TestResolverSolarDateFor(t *testing.T) {
	resolver := NewResolver()

	tests := []struct {
		name       string
		year       int
		lunarMonth int
		lunarDay   int
		want       time.Time
	}{
		{
			name:       "lunar new year 2024",
			year:       2024,
			lunarMonth: 1,
			lunarDay:   1,
			want:       time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local),
		},
		{
			name:       "lunar new year 2025",
			year:       2025,
			lunarMonth: 1,
			lunarDay:   1,
			want:       time.Date(2025, 1, 29, 0, 0, 0, 0, time.Local),
		},
		{
			name:       "mid autumn 2024",
			year:       2024,
			lunarMonth: 8,
			lunarDay:   15,
			want:       time.Date(2024, 9, 17, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.SolarDateFor(tt.year, tt.lunarMonth, tt.lunarDay)
			if err != nil {
				t.Fatalf("SolarDateFor() error = %v, want nil", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("SolarDateFor(%d, %d, %d) = %v, want %v",
					tt.year, tt.lunarMonth, tt.lunarDay, got, tt.want)
			}
		})
	}
}

func TestResolverSolarDateForInvalidDate(t *testing.T) {
	resolver := NewResolver()

	if _, err := resolver.SolarDateFor(2024, 13, 1); err == nil {
		t.Error("SolarDateFor() error = nil, want error for month 13")
	}
}
