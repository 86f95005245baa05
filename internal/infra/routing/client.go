package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/logging"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/tracing"
)

// Client estimates commute travel times against the primind routing service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(baseURL),
	}
}

type routeResponse struct {
	TravelSeconds float64 `json:"travel_seconds"`
}

func (c *Client) TravelTime(ctx context.Context, destination domain.Coordinate, transport domain.TransportType) (time.Duration, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = "/api/v1/route"
	q := u.Query()
	q.Set("dest_lat", strconv.FormatFloat(destination.Latitude, 'f', -1, 64))
	q.Set("dest_lng", strconv.FormatFloat(destination.Longitude, 'f', -1, 64))
	q.Set("mode", transport.String())
	u.RawQuery = q.Encode()

	slog.DebugContext(ctx, "fetching travel time from routing service",
		slog.String("url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to routing service",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return 0, domain.ErrNoRouteFound
	case http.StatusForbidden:
		return 0, domain.ErrLocationPermissionDenied
	default:
		slog.ErrorContext(ctx, "unexpected status code from routing service",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var route routeResponse
	if err := json.Unmarshal(body, &route); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if route.TravelSeconds <= 0 {
		return 0, domain.ErrNoRouteFound
	}

	return time.Duration(route.TravelSeconds * float64(time.Second)), nil
}
