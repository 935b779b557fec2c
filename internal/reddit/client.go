package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/CalvinTheRed/BallotBot/internal/metrics"
)

const (
	defaultAPIBase  = "https://oauth.reddit.com"
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"

	requestTimeout = 15 * time.Second
	tokenSlack     = 1 * time.Minute
)

// Sentinel errors surfaced to callers for retry classification.
var (
	ErrRateLimited = errors.New("reddit: rate limited")
	ErrNotFound    = errors.New("reddit: not found")
)

// Credentials holds the script-app OAuth credentials (password grant).
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Config configures a Client. APIBase and TokenURL exist so tests can point
// the client at a local server; zero values mean the real endpoints.
type Config struct {
	Credentials  Credentials
	UserAgent    string
	Subreddit    string
	PollInterval time.Duration
	APIBase      string
	TokenURL     string
}

// Client talks to the Reddit OAuth API. All requests flow through one rate
// limiter (Reddit allows roughly one request per second for script apps)
// and a retrying HTTP client.
type Client struct {
	cfg     Config
	http    *retryablehttp.Client
	limiter *rate.Limiter
	clock   clockwork.Clock

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a Client. The underlying HTTP client retries transient
// failures with backoff; rate-limit responses are not retried there but
// surfaced as ErrRateLimited so callers can classify them.
func NewClient(cfg Config, clock clockwork.Clock) *Client {
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = requestTimeout
	rc.Logger = retryablehttp.LeveledLogger(leveledSlog{inner: slog.Default()})
	// 429 handling is ours, not the retry layer's.
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return &Client{
		cfg:     cfg,
		http:    rc,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		clock:   clock,
	}
}

// leveledSlog adapts slog to retryablehttp's logger, demoting retry errors
// to warnings because the client retries them anyway.
type leveledSlog struct {
	inner *slog.Logger
}

func (l leveledSlog) Error(msg string, keysAndValues ...any) { l.inner.Warn(msg, keysAndValues...) }
func (l leveledSlog) Warn(msg string, keysAndValues ...any)  { l.inner.Warn(msg, keysAndValues...) }
func (l leveledSlog) Info(msg string, keysAndValues ...any)  { l.inner.Info(msg, keysAndValues...) }
func (l leveledSlog) Debug(msg string, keysAndValues ...any) { l.inner.Debug(msg, keysAndValues...) }

// do performs one authenticated API call. form may be nil for GETs; out may
// be nil when the response body is irrelevant.
func (c *Client) do(ctx context.Context, method, endpoint, path string, form url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	var body any
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.cfg.APIBase+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RedditRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("reddit: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RedditRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("reddit: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("reddit: decode %s response: %w", path, err)
		}
	}
	return nil
}
