package yelp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/httpx"
	"meeting-point-service/internal/platform/obs"
	"meeting-point-service/internal/ports"
)

const defaultBaseURL = "https://api.yelp.com"

// Client implements BusinessSearcher using the Yelp Fusion business search API.
// Results are read through the optional BusinessCache.
// The client is safe for concurrent use.
type Client struct {
	http    *httpx.Client
	apiKey  string
	baseURL string
	term    string
	limit   int
	cache   ports.BusinessCache
}

var _ ports.BusinessSearcher = (*Client)(nil)

type Option func(*Client)

// WithBaseURL points the client at another host (tests, proxies).
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") } }

func WithCache(cache ports.BusinessCache) Option { return func(c *Client) { c.cache = cache } }

func WithHTTPClient(h *httpx.Client) Option { return func(c *Client) { c.http = h } }

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("yelp api key is empty")
	}

	c := &Client{
		http:    httpx.NewClient(10 * time.Second),
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		term:    "restaurants",
		limit:   20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type searchResponse struct {
	Businesses []struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Rating      float64 `json:"rating"`
		ReviewCount int     `json:"review_count"`
		ImageURL    string  `json:"image_url"`
		URL         string  `json:"url"`
		Distance    float64 `json:"distance"`
		Coordinates struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"coordinates"`
		Categories []struct {
			Alias string `json:"alias"`
			Title string `json:"title"`
		} `json:"categories"`
		Location struct {
			DisplayAddress []string `json:"display_address"`
		} `json:"location"`
	} `json:"businesses"`
}

// SearchBusinesses returns open restaurants near at, best match first.
func (c *Client) SearchBusinesses(ctx context.Context, at domain.Coordinates) (_ []domain.Business, err error) {
	if err := at.Validate(); err != nil {
		return nil, fmt.Errorf("yelp search: %w", err)
	}

	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, at)
		if err != nil {
			log.Printf("business cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	defer obs.Time(ctx, "yelp.SearchBusinesses")(&err)

	endpoint := c.baseURL + "/v3/businesses/search"

	resp, err := c.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("term", c.term)
		q.Set("latitude", strconv.FormatFloat(at.Lat, 'f', -1, 64))
		q.Set("longitude", strconv.FormatFloat(at.Lon, 'f', -1, 64))
		q.Set("open_now", "true")
		q.Set("sort_by", "best_match")
		q.Set("limit", strconv.Itoa(c.limit))
		req.URL.RawQuery = q.Encode()

		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("yelp search request: %w", err)
	}
	defer resp.Body.Close()

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode yelp search response: %w", err)
	}

	out := make([]domain.Business, 0, len(decoded.Businesses))
	for _, b := range decoded.Businesses {
		// Businesses without coordinates cannot be placed on the map.
		if b.Coordinates.Latitude == nil || b.Coordinates.Longitude == nil {
			continue
		}

		categories := make([]string, 0, len(b.Categories))
		for _, cat := range b.Categories {
			categories = append(categories, cat.Title)
		}

		out = append(out, domain.Business{
			ID:          b.ID,
			Name:        b.Name,
			Rating:      b.Rating,
			ReviewCount: b.ReviewCount,
			Coordinates: domain.Coordinates{Lat: *b.Coordinates.Latitude, Lon: *b.Coordinates.Longitude},
			Categories:  categories,
			Address:     strings.Join(b.Location.DisplayAddress, ", "),
			ImageURL:    b.ImageURL,
			URL:         b.URL,
			Distance:    b.Distance,
		})
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, at, out); err != nil {
			log.Printf("business cache write failed: %v", err)
		}
	}

	return out, nil
}
