// Package client talks to the etymology backend API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"rhiza/internal/domain"
	"rhiza/internal/repository"
)

const (
	// DefaultTimeout bounds one backend request
	DefaultTimeout = 30 * time.Second
	// DefaultCacheTTL matches the backend's Cache-Control max-age
	DefaultCacheTTL = time.Hour
)

// ErrInvalidWord is returned for empty words or words with characters
// other than letters, spaces, apostrophes and hyphens
var ErrInvalidWord = errors.New("invalid word")

var wordPattern = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

// APIError is a non-2xx response from the backend
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Server error (%d)", e.Status)
}

// WordResult is the backend's answer to a word lookup
type WordResult struct {
	Name  string               `json:"name"`
	Roots []domain.RootDetails `json:"roots"`
}

// Client is a backend API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      repository.PayloadCache
	ttl        time.Duration
	log        *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache caches graph payloads for ttl; a non-positive ttl uses DefaultCacheTTL
func WithCache(cache repository.PayloadCache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the client logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		ttl:        DefaultCacheTTL,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeWord trims word and checks it against the accepted alphabet
func NormalizeWord(word string) (string, error) {
	w := strings.TrimSpace(word)
	if w == "" {
		return "", fmt.Errorf("%w: word is empty", ErrInvalidWord)
	}
	if !wordPattern.MatchString(w) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWord, w)
	}
	return w, nil
}

// SearchWord looks up the Greek roots of word
func (c *Client) SearchWord(ctx context.Context, word string) (*WordResult, error) {
	w, err := NormalizeWord(word)
	if err != nil {
		return nil, err
	}

	var result WordResult
	if err := c.get(ctx, "/word/"+url.PathEscape(w), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchGraph fetches the graph payload of word, consulting the cache first
func (c *Client) FetchGraph(ctx context.Context, word string, includeRelated bool) (*domain.Payload, error) {
	w, err := NormalizeWord(word)
	if err != nil {
		return nil, err
	}

	key := cacheKey(w, includeRelated)
	if c.cache != nil {
		p, ok, err := c.cache.GetPayload(ctx, key)
		if err != nil {
			c.log.Warn("payload cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return p, nil
		}
	}

	path := "/word/" + url.PathEscape(w) + "/graph"
	if includeRelated {
		path += "?include_related=true"
	}

	var p domain.Payload
	if err := c.get(ctx, path, &p); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.PutPayload(ctx, key, &p, c.ttl); err != nil {
			c.log.Warn("payload cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return &p, nil
}

func cacheKey(word string, includeRelated bool) string {
	key := "graph:" + strings.ToLower(word)
	if includeRelated {
		key += ":related"
	}
	return key
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch d := payload.Detail.(type) {
		case string:
			apiErr.Detail = d
		case nil:
		default:
			// validation errors arrive as a list of objects
			if b, err := json.Marshal(d); err == nil {
				apiErr.Detail = string(b)
			}
		}
	}
	return apiErr
}
