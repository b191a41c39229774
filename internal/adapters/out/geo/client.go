// Package geo resolves delivery addresses to coordinates through an
// OpenRouteService-compatible geocoding endpoint, with an optional redis
// cache in front. The fulfillment coordinator treats the whole package as
// best effort; no error from here blocks an order.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const defaultHTTPTimeout = 10 * time.Second

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Client implements ports.Geocoder against a /geocode/search endpoint.
type Client struct {
	baseURL string
	apiKey  string
	session *http.Client
}

// NewClient validates the credentials at construction so a misconfigured
// deployment fails at startup, not on the first order.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("geocoderBaseURL")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("geocoderAPIKey")
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		session: &http.Client{Timeout: defaultHTTPTimeout},
	}, nil
}

// Geocode resolves an address to coordinates. "No results" is (nil, nil);
// the per-call deadline comes from ctx.
func (c *Client) Geocode(ctx context.Context, address order.DeliveryAddress) (*ports.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/geocode/search", nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("text", address.Line())
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return nil, nil
	}
	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return nil, fmt.Errorf("geocode: invalid coordinate format for %q", address.Line())
	}

	// GeoJSON order is [lon, lat].
	return &ports.Coordinates{
		Latitude:  coords[1],
		Longitude: coords[0],
	}, nil
}
