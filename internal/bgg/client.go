// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

/*
client.go - BoardGameGeek XML API2 Client

Implements catalog.Client against the four XML API2 endpoints hotpick needs:
hot, thing, collection and search.

API Reference: https://boardgamegeek.com/wiki/page/BGG_XML_API2
*/

package bgg

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/hotpick/internal/catalog"
	"github.com/tomtom215/hotpick/internal/metrics"
	"github.com/tomtom215/hotpick/internal/recommend"
)

// DefaultBaseURL is the XML API2 root.
const DefaultBaseURL = "https://boardgamegeek.com/xmlapi2"

// maxBodyBytes caps a single response; large collections stay well below.
const maxBodyBytes = 32 << 20

// errQueued marks a 202 response: BGG accepted the request and will have
// the data on a later call.
var errQueued = errors.New("request queued by upstream")

// Ensure Client implements catalog.Client
var _ catalog.Client = (*Client)(nil)

// StatusError is a non-success HTTP status from the API.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bgg %s returned status %d: %s", e.Endpoint, e.Code, e.Body)
}

// StatusCode returns the HTTP status.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Config configures the client.
type Config struct {
	BaseURL string

	// Token is an optional application token sent as a Bearer credential.
	Token string

	UserAgent string

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// RetryMax is the number of transport retries on 429/5xx and
	// connection errors.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// RequestsPerSecond paces outgoing requests; Burst allows short bursts.
	RequestsPerSecond float64
	Burst             int

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         "hotpick/1.0 (+https://github.com/tomtom215/hotpick)",
		Timeout:           30 * time.Second,
		RetryMax:          3,
		RetryWaitMin:      time.Second,
		RetryWaitMax:      10 * time.Second,
		RequestsPerSecond: 2,
		Burst:             4,
		BreakerTimeout:    time.Minute,
	}
}

// Client talks to the BoardGameGeek XML API2.
// It is safe for concurrent use.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *retryablehttp.Client
	limiter   *rate.Limiter
	cb        *gobreaker.CircuitBreaker[[]byte]
	logger    zerolog.Logger
}

// NewClient creates a BGG client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = def.BreakerTimeout
	}

	logger = logger.With().Str("component", "bgg").Logger()

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		rc.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rc.RetryWaitMax = cfg.RetryWaitMax
	}
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = leveledLogger{logger: logger}
	// Hand the final response back instead of a generic "giving up" error so
	// the status code can be classified.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		http:      rc,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cb:        newBreaker("bgg-api", cfg.BreakerTimeout, logger),
		logger:    logger,
	}
}

// HotItems returns the board game hotness list in rank order.
func (c *Client) HotItems(ctx context.Context) ([]catalog.HotEntry, error) {
	var resp hotResponse
	if err := c.getXML(ctx, "hot", "/hot", url.Values{"type": {"boardgame"}}, &resp); err != nil {
		return nil, err
	}

	entries := make([]catalog.HotEntry, 0, len(resp.Items))
	for _, it := range resp.Items {
		entries = append(entries, catalog.HotEntry{
			ID:        it.ID,
			Name:      it.Name.Value,
			Rank:      it.Rank,
			Thumbnail: it.Thumbnail.Value,
		})
	}
	return entries, nil
}

// ItemDetails returns an item's links as features plus its display fields.
func (c *Client) ItemDetails(ctx context.Context, id string) (catalog.Details, error) {
	var resp thingResponse
	if err := c.getXML(ctx, "thing", "/thing", url.Values{"id": {id}}, &resp); err != nil {
		return catalog.Details{}, err
	}
	if len(resp.Items) == 0 {
		return catalog.Details{}, fmt.Errorf("thing %s: %w", id, catalog.ErrNotFound)
	}

	it := resp.Items[0]
	features := make([]recommend.Feature, 0, len(it.Links))
	for _, l := range it.Links {
		features = append(features, recommend.Feature{Type: l.Type, ID: l.ID, Value: l.Value})
	}

	return catalog.Details{
		Name:        primaryName(it.Names),
		Features:    features,
		Description: cleanDescription(it.Description),
		Thumbnail:   strings.TrimSpace(it.Thumbnail),
	}, nil
}

// Collection returns the raw collection of username. A 202 "queued"
// response yields an empty slice so the caller's retry policy applies.
func (c *Client) Collection(ctx context.Context, username string) ([]catalog.CollectionEntry, error) {
	var resp collectionResponse
	err := c.getXML(ctx, "collection", "/collection", url.Values{"username": {username}}, &resp)
	if errors.Is(err, errQueued) {
		c.logger.Debug().Str("username", username).Msg("collection queued upstream")
		return []catalog.CollectionEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	if resp.XMLName.Local == "errors" {
		return nil, fmt.Errorf("collection %q: %s: %w", username, strings.Join(resp.Messages, "; "), catalog.ErrNotFound)
	}

	entries := make([]catalog.CollectionEntry, 0, len(resp.Items))
	for _, it := range resp.Items {
		entries = append(entries, catalog.CollectionEntry{
			ID:       it.ObjectID,
			Name:     strings.TrimSpace(it.Name),
			NumPlays: it.NumPlays,
			Status:   it.Status.flags(),
		})
	}
	return entries, nil
}

// Search returns board games (expansions included) matching query.
func (c *Client) Search(ctx context.Context, query string) ([]catalog.Candidate, error) {
	var resp searchResponse
	params := url.Values{"type": {"boardgame"}, "query": {query}}
	if err := c.getXML(ctx, "search", "/search", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, recommend.NoSearchResults(query)
	}

	out := make([]catalog.Candidate, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, catalog.Candidate{
			ID:   it.ID,
			Name: primaryName(it.Names),
			Year: it.YearPublished.Value,
		})
	}
	return out, nil
}

// getXML fetches path and decodes the body into v.
func (c *Client) getXML(ctx context.Context, endpoint, path string, params url.Values, v interface{}) error {
	body, err := c.get(ctx, endpoint, path, params)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(body, v); err != nil {
		return recommend.UpstreamUnavailable(endpoint, fmt.Errorf("decode %s response: %w", endpoint, err))
	}
	return nil
}

// get performs one paced, breaker-protected GET. Transport errors and
// non-2xx statuses come back as UpstreamUnavailable; a 202 comes back as
// errQueued.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			// The limiter refuses up front when the wait would outlast the
			// deadline; report it as the deadline it is.
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		metrics.RecordUpstreamRequest(endpoint, time.Since(start), err)
		return nil, recommend.UpstreamUnavailable(endpoint, err)
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	body, err := c.execute(func() ([]byte, error) {
		return c.do(ctx, endpoint, reqURL)
	})
	metrics.RecordUpstreamRequest(endpoint, time.Since(start), err)

	switch {
	case err == nil:
		return body, nil
	case errors.Is(err, errQueued):
		return nil, err
	default:
		c.logger.Debug().Err(err).Str("endpoint", endpoint).Msg("bgg request failed")
		return nil, recommend.UpstreamUnavailable(endpoint, err)
	}
}

func (c *Client) do(ctx context.Context, endpoint, reqURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return nil, errQueued
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: snippet}
	}
	return body, nil
}
