package ors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"meeting-point-service/internal/platform/httpx"
	"meeting-point-service/internal/ports"
)

const defaultBaseURL = "https://api.openrouteservice.org"

// Client implements Geocoder and IsochroneProvider using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type Client struct {
	http         *httpx.Client
	apiKey       string
	baseURL      string
	country      string
	geocodeCache ports.GeocodeCache
}

var (
	_ ports.Geocoder          = (*Client)(nil)
	_ ports.IsochroneProvider = (*Client)(nil)
)

type Option func(*Client)

func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") } }

func WithGeocodeCache(cache ports.GeocodeCache) Option {
	return func(c *Client) { c.geocodeCache = cache }
}

func WithHTTPClient(h *httpx.Client) Option { return func(c *Client) { c.http = h } }

// WithCountry restricts geocoding to an ISO 3166 country code. Empty disables it.
func WithCountry(code string) Option { return func(c *Client) { c.country = code } }

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	c := &Client{
		http:    httpx.NewClient(10 * time.Second),
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		country: "US",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json, application/geo+json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}
