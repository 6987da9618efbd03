package zoomeye

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public host search API.
	DefaultBaseURL = "https://api.zoomeye.org"

	searchPath     = "/host/search"
	apiKeyHeader   = "API-KEY"
	defaultTimeout = 30 * time.Second

	// Error bodies are truncated before being attached to transport
	// errors so a misbehaving upstream cannot flood logs.
	maxErrorBody = 512
)

// TransportError covers every way a search call can fail on the wire:
// connection errors, non-2xx statuses, and undecodable bodies. The
// underlying message is preserved for display.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("zoomeye %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client is a single-shot host search client. It performs no retries
// and keeps no state between calls beyond the underlying connection
// pool of its http.Client.
type Client struct {
	log     zerolog.Logger
	baseURL string
	apiKey  string
	http    *http.Client
}

type Options struct {
	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string
	// Timeout bounds one whole search call. Zero means the default.
	Timeout time.Duration
}

func NewClient(log zerolog.Logger, apiKey string, opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		log:     log,
		baseURL: base,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Search runs one host search for the given DSL query and page. Pages
// start at 1; anything lower is treated as page 1.
func (c *Client) Search(ctx context.Context, query string, page int) (*Response, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	endpoint := c.baseURL + searchPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: "request", Err: err}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "get", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{
			Op:  "get",
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &TransportError{Op: "decode", Err: err}
	}

	c.log.Debug().
		Str("query", query).
		Int("page", page).
		Int("matches", len(payload.Matches)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("zoomeye_search")

	return &payload, nil
}
