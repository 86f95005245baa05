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

// NagerSource fetches public holidays from the Nager.Date API, which covers
// most country codes outside China.
type NagerSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewNagerSource(baseURL string) *NagerSource {
	return &NagerSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *NagerSource) Fetch(ctx context.Context, year int, countryCode string) (map[string]string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = fmt.Sprintf("/api/v3/PublicHolidays/%d/%s", year, countryCode)

	slog.DebugContext(ctx, "fetching holidays from Nager.Date",
		slog.Int("year", year),
		slog.String("country_code", countryCode),
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
		return nil, fmt.Errorf("unexpected status code for country %s: %d", countryCode, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var entries []nagerEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	holidays := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.LocalName
		if name == "" {
			name = entry.Name
		}
		holidays[entry.Date] = name
	}

	return holidays, nil
}
