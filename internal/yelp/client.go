// Package yelp talks to the Yelp Fusion API and matches stores against the
// business records it returns.
package yelp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Lookup failures the caller may want to distinguish from "no match found".
// A sync job should retry or record these, never treat them as a negative
// search result.
var (
	ErrRateLimited   = errors.New("yelp: rate limit exceeded")
	ErrUnauthorized  = errors.New("yelp: invalid API key")
	ErrMissingAPIKey = errors.New("yelp: API key not configured")
)

const defaultBaseURL = "https://api.yelp.com/v3"

// Business is one candidate record from a business search.
type Business struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Phone       string   `json:"phone"`
	Location    Location `json:"location"`
}

// Location carries the candidate's address parts.
type Location struct {
	Address1       string   `json:"address1"`
	City           string   `json:"city"`
	ZipCode        string   `json:"zip_code"`
	State          string   `json:"state"`
	DisplayAddress []string `json:"display_address"`
}

type searchResponse struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
}

// Searcher is the search surface the sync service depends on.
type Searcher interface {
	SearchBusinesses(ctx context.Context, term, location string) ([]Business, error)
}

// Client calls the Yelp Fusion v3 API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient builds a Yelp client. baseURL may be empty to use the production
// endpoint.
func NewClient(apiKey, baseURL string) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: trimmed,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchBusinesses runs a restaurant search for the given name near the
// given address and returns the candidate businesses.
func (c *Client) SearchBusinesses(ctx context.Context, term, location string) ([]Business, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("term", term)
	query.Set("location", location)
	query.Set("categories", "restaurants,food")
	query.Set("limit", strconv.Itoa(searchLimit))
	query.Set("sort_by", "distance")

	endpoint := fmt.Sprintf("%s/businesses/search?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("yelp: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yelp: search request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("yelp: search failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yelp: read response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("yelp: decode response: %w", err)
	}
	return parsed.Businesses, nil
}

const searchLimit = 10
