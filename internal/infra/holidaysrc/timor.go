package holidaysrc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// TimorSource fetches Chinese public holidays from the timor.tech calendar
// API. Entries with holiday=false are shifted workdays and are dropped; an
// alarm skipping holidays must still fire on those days.
type TimorSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewTimorSource(baseURL string) *TimorSource {
	return &TimorSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *TimorSource) Fetch(ctx context.Context, year int, countryCode string) (map[string]string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = fmt.Sprintf("/api/holiday/year/%d", year)

	slog.DebugContext(ctx, "fetching holidays from timor.tech",
		slog.Int("year", year),
		slog.String("url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload timorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.Code != 0 {
		return nil, fmt.Errorf("holiday API returned code %d", payload.Code)
	}

	holidays := make(map[string]string)
	for _, entry := range payload.Holiday {
		if !entry.Holiday {
			continue
		}
		holidays[entry.Date] = entry.Name
	}

	slog.DebugContext(ctx, "fetched holidays",
		slog.Int("year", year),
		slog.Int("count", len(holidays)),
	)

	return holidays, nil
}
