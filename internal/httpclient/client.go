// Package httpclient is the retrying JSON request wrapper every admin page
// action routes through. It merges default headers with per-call overrides,
// injects the bearer and CSRF tokens from the cookie jar, retries with a
// fixed delay, and converts every terminal failure into a normalized
// result. Callers never see transport errors.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospihub/adminkit/internal/config"
	"hospihub/adminkit/internal/cookie"
	"hospihub/adminkit/internal/loading"
	"hospihub/adminkit/pkg/result"
	"hospihub/adminkit/pkg/token"
)

const networkFailureMessage = "Network error. Please check your connection and try again."

type Client struct {
	baseURL    string
	httpClient *http.Client
	jar        *cookie.Jar
	tracker    *loading.Tracker
	logger     *zap.Logger

	authCookie string
	csrfCookie string

	retries    int
	retryDelay time.Duration
}

func New(cfg config.Config, jar *cookie.Jar, tracker *loading.Tracker, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	retries := cfg.API.Retries
	if retries < 1 {
		retries = 1
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.API.BaseURL, "/") + "/",
		httpClient: &http.Client{Timeout: cfg.API.Timeout},
		jar:        jar,
		tracker:    tracker,
		logger:     logger.Named("httpclient"),
		authCookie: cfg.Cookies.AuthToken,
		csrfCookie: cfg.Cookies.CSRFToken,
		retries:    retries,
		retryDelay: cfg.API.RetryDelay,
	}
}

func (c *Client) Get(ctx context.Context, path string, opts ...Option) result.Result {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

func (c *Client) Post(ctx context.Context, path string, payload interface{}, opts ...Option) result.Result {
	return c.Do(ctx, http.MethodPost, path, payload, opts...)
}

func (c *Client) Put(ctx context.Context, path string, payload interface{}, opts ...Option) result.Result {
	return c.Do(ctx, http.MethodPut, path, payload, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...Option) result.Result {
	return c.Do(ctx, http.MethodDelete, path, nil, opts...)
}

// Do performs method against path (joined to the base URL), retrying up to
// the configured attempt count with a fixed delay between attempts.
func (c *Client) Do(ctx context.Context, method, path string, payload interface{}, opts ...Option) result.Result {
	o := c.callOptions(opts)

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			c.logger.Error("failed to encode request payload", zap.Error(err))
			return result.Failure(0, "Invalid request data.")
		}
	}

	if !o.noLoading && c.tracker != nil {
		c.tracker.ShowPage()
		defer c.tracker.HidePage()
	}

	url := c.baseURL + strings.TrimPrefix(path, "/")
	requestID := uuid.New().String()
	logger := c.logger.With(
		zap.String("method", method),
		zap.String("url", url),
		zap.String("request_id", requestID),
	)

	var last result.Result
	for attempt := 1; attempt <= o.retries; attempt++ {
		res, retryable := c.attempt(ctx, method, url, body, requestID, o)
		if res.OK {
			return res
		}
		last = res

		if !retryable && !o.retryAll {
			logger.Warn("request failed, not retryable",
				zap.Int("status", res.Status), zap.Int("attempt", attempt))
			return res
		}
		if attempt < o.retries {
			logger.Warn("request failed, retrying",
				zap.Int("status", res.Status),
				zap.Int("attempt", attempt),
				zap.Duration("delay", o.retryDelay))
			if err := sleepCtx(ctx, o.retryDelay); err != nil {
				return last
			}
		}
	}

	logger.Error("request failed after all attempts",
		zap.Int("status", last.Status), zap.Int("attempts", o.retries))
	return last
}

// attempt performs one HTTP round trip. The second return value reports
// whether the failure is worth retrying: network errors and 5xx are, 4xx
// terminal responses are not.
func (c *Client) attempt(ctx context.Context, method, url string, body []byte, requestID string, o callOptions) (result.Result, bool) {
	reqCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return result.Failure(0, networkFailureMessage), false
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}
	c.injectTokens(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result.Failure(0, networkFailureMessage), true
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return result.Failure(0, networkFailureMessage), true
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var data json.RawMessage
		if len(respBody) > 0 {
			data = json.RawMessage(respBody)
		}
		return result.Success(resp.StatusCode, data), false
	}

	return result.Normalize(resp.StatusCode, respBody), resp.StatusCode >= 500
}

// injectTokens attaches the bearer and CSRF headers when the backing
// cookies are present. An expired JWT is still sent; the server decides.
func (c *Client) injectTokens(req *http.Request) {
	if c.jar == nil {
		return
	}
	if tok, ok := c.jar.Get(c.authCookie); ok && tok != "" {
		if token.Expired(tok) {
			c.logger.Debug("stored bearer token is expired")
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if csrf, ok := c.jar.Get(c.csrfCookie); ok && csrf != "" {
		req.Header.Set("X-CSRFToken", csrf)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
