// Package listingsapi fetches raw listings from the marketplace backend.
package listingsapi

import (
	"bytes"
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

	"marketplace-listings/pkg/logger"
	"marketplace-listings/pkg/metrics"

	"github.com/hashicorp/go-retryablehttp"
)

const maxBodyBytes = 8 << 20

var (
	ErrNotFound          = errors.New("listing not found upstream")
	ErrUnexpectedPayload = errors.New("unexpected listings payload")
	ErrPayloadTooLarge   = errors.New("payload too large")
)

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("listings api error %d: %s", e.StatusCode, e.Body)
}

type Config struct {
	BaseURL    string
	ListPath   string
	DetailPath string
	APIKey     string
	Timeout    time.Duration
	RetryMax   int
	MaxPages   int
}

type Client struct {
	cfg  Config
	http *retryablehttp.Client
}

func NewClient(cfg Config) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = leveledLogger{}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 1
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{cfg: cfg, http: rc}
}

// FetchProperties returns every listing, following paginator envelopes up to
// MaxPages pages.
func (c *Client) FetchProperties(ctx context.Context) ([]map[string]interface{}, error) {
	var all []map[string]interface{}
	for page := 1; page <= c.cfg.MaxPages; page++ {
		u := c.cfg.BaseURL + c.cfg.ListPath
		if page > 1 {
			u = withPage(u, page)
		}

		body, err := c.get(ctx, "list", u)
		if err != nil {
			return nil, err
		}
		payload, err := decode(body)
		if err != nil {
			return nil, err
		}
		items, p, err := unwrapList(payload)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if !p.hasNext() {
			break
		}
		if page == c.cfg.MaxPages {
			logger.Get().Warnf("listings api has %d pages, stopped after %d", p.last, c.cfg.MaxPages)
		}
	}
	if all == nil {
		all = []map[string]interface{}{}
	}
	return all, nil
}

// FetchProperty returns a single listing by id.
func (c *Client) FetchProperty(ctx context.Context, id string) (map[string]interface{}, error) {
	path := strings.ReplaceAll(c.cfg.DetailPath, "{id}", url.PathEscape(id))
	body, err := c.get(ctx, "detail", c.cfg.BaseURL+path)
	if err != nil {
		return nil, err
	}
	payload, err := decode(body)
	if err != nil {
		return nil, err
	}
	return unwrapDetail(payload)
}

func (c *Client) get(ctx context.Context, endpoint, u string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("listings api request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	return readAllLimit(resp.Body, maxBodyBytes)
}

func withPage(raw string, page int) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

func decode(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	return payload, nil
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, ErrPayloadTooLarge
	}
	return b, nil
}

// leveledLogger routes retryablehttp's request chatter to debug level.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) { logger.Get().Errorf("%s %v", msg, kv) }
func (leveledLogger) Warn(msg string, kv ...interface{})  { logger.Get().Warnf("%s %v", msg, kv) }
func (leveledLogger) Info(msg string, kv ...interface{})  { logger.Get().Debugf("%s %v", msg, kv) }
func (leveledLogger) Debug(msg string, kv ...interface{}) { logger.Get().Debugf("%s %v", msg, kv) }
