package destination

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production catalog service.
	DefaultBaseURL = "https://quietravel.vercel.app/api"

	httpTimeout = 10 * time.Second
)

// ErrNotFound is returned when the catalog has no record for a slug.
var ErrNotFound = errors.New("destination not found")

// StatusError reports a non-2xx answer from the catalog service.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// newHTTPClient returns an http.Client with a 10-second timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Client talks to the QuieTravel catalog service and surfaces every failure
// as an error. Catalog wraps it with the empty/absent semantics the screens use.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client for the given base URL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, newHTTPClient())
}

// NewClientWithHTTP constructs a Client with a caller-supplied http.Client (for tests).
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = newHTTPClient()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: hc}
}

// BaseURL returns the catalog root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// do sends req and hands the body to decode when the status is 2xx.
func (c *Client) do(req *http.Request, decode func(io.Reader) error) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode}
	}

	return decode(resp.Body)
}

// doGet performs a GET request and hands the body to decode.
func (c *Client) doGet(ctx context.Context, rawURL string, decode func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, decode)
}

// FetchAll retrieves the full destination catalog.
func (c *Client) FetchAll(ctx context.Context) ([]Destination, error) {
	var out []Destination
	err := c.doGet(ctx, c.baseURL+"/destinations", func(r io.Reader) error {
		d, err := DecodeDestinations(r)
		out = d
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching destinations: %w", err)
	}
	return out, nil
}

// Search asks the catalog service for destinations matching query.
// A response without a destinations field yields an empty slice.
func (c *Client) Search(ctx context.Context, query string) ([]Destination, error) {
	endpoint := c.baseURL + "/search?q=" + url.QueryEscape(query)

	var raw searchResponse
	err := c.doGet(ctx, endpoint, func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return fmt.Errorf("%w: decoding search response: %v", ErrMalformed, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching destinations for %q: %w", query, err)
	}

	return normalizeDestinations(decodeRecords[rawDestination](raw.Destinations, "destination")), nil
}

// FetchBySlug retrieves a single destination. A 404 yields an error
// matching ErrNotFound.
func (c *Client) FetchBySlug(ctx context.Context, slug string) (*Destination, error) {
	endpoint := c.baseURL + "/destinations/" + url.PathEscape(slug)

	var raw rawDestination
	err := c.doGet(ctx, endpoint, func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return fmt.Errorf("%w: decoding destination: %v", ErrMalformed, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching destination %s: %w", slug, err)
	}

	d, ok := raw.toDestination()
	if !ok {
		return nil, fmt.Errorf("fetching destination %s: %w: missing id or slug", slug, ErrMalformed)
	}
	return &d, nil
}

// MatchTours posts prefs to the matching endpoint and returns the raw
// recommendation payload.
func (c *Client) MatchTours(ctx context.Context, prefs TripPreferences) (json.RawMessage, error) {
	if prefs.Activities == nil {
		prefs.Activities = []string{}
	}
	body, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("marshaling trip preferences: %w", err)
	}

	endpoint := c.baseURL + "/tours/match"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var out json.RawMessage
	err = c.do(req, func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(&out); err != nil {
			return fmt.Errorf("%w: decoding match response: %v", ErrMalformed, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("matching tours: %w", err)
	}
	return out, nil
}
