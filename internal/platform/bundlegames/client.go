package bundlegames

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Record is one entry of the external bundle-games feed: when a title's
// community value was reduced or zeroed. Fetched on demand, never persisted.
type Record struct {
	Name                  string `json:"name"`
	AppID                 *int   `json:"app_id"`
	PackageID             *int   `json:"package_id"`
	ReducedValueTimestamp *int64 `json:"reduced_value_timestamp"`
	NoValueTimestamp      *int64 `json:"no_value_timestamp"`
}

type searchResponse struct {
	Success bool     `json:"success"`
	Results []Record `json:"results"`
}

// Client queries the bundle-games search endpoint. Each call waits out a
// fixed delay first; rate-limit responses are retried with backoff by the
// underlying retryable client.
type Client struct {
	http     *retryablehttp.Client
	baseURL  string
	delay    time.Duration
	lastCall time.Time
}

func NewClient(baseURL string, delay time.Duration, maxRetries int) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.RetryWaitMin = 2 * time.Second
	rc.RetryWaitMax = 30 * time.Second
	rc.Logger = nil

	return &Client{
		http:    rc,
		baseURL: baseURL,
		delay:   delay,
	}
}

// Search runs one bundle-games query. The query is either a numeric app id
// or a game name; the endpoint treats both the same way.
func (c *Client) Search(ctx context.Context, query string) ([]Record, error) {
	c.throttle()

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bundle games url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bundle games search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bundle games search %q: status %d", query, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("bundle games search %q: decode: %w", query, err)
	}

	if !payload.Success {
		return nil, nil
	}
	return payload.Results, nil
}

func (c *Client) throttle() {
	if c.delay <= 0 {
		return
	}
	if since := time.Since(c.lastCall); since < c.delay {
		time.Sleep(c.delay - since)
	}
	c.lastCall = time.Now()
}
