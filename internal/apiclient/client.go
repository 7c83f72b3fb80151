// Package apiclient is the HTTP client for the external auth API. Every
// failure leaves this package as an *apierr.Error and produces exactly one
// error notification.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/apierr"
	"github.com/heartmarshall/kairon-web/internal/config"
	"github.com/heartmarshall/kairon-web/internal/notify"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// Interceptor mutates an outgoing request before it is sent. A returned
// error aborts the call as a construction error.
type Interceptor func(*http.Request) error

// Client sends JSON requests to the auth API.
type Client struct {
	cfg          config.APIConfig
	httpClient   *http.Client
	interceptors []Interceptor
	toaster      *notify.Toaster
	log          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithInterceptors appends request interceptors after the defaults.
func WithInterceptors(in ...Interceptor) Option {
	return func(c *Client) { c.interceptors = append(c.interceptors, in...) }
}

// New creates a Client. Requests carry the bearer token and locale found in
// their context (AuthHeader, AcceptLanguage).
func New(cfg config.APIConfig, notifier notify.Notifier, tr apierr.Translator, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		interceptors: []Interceptor{AuthHeader(), AcceptLanguage()},
		toaster:      notify.NewToaster(notifier, tr),
		log:          logger.With("adapter", "apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthHeader sets "Authorization: Bearer <token>" when the request context
// carries a session token.
func AuthHeader() Interceptor {
	return func(r *http.Request) error {
		if token, ok := ctxutil.AccessTokenFromCtx(r.Context()); ok {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// AcceptLanguage sets Accept-Language to the request locale (default vi).
func AcceptLanguage() Interceptor {
	return func(r *http.Request) error {
		r.Header.Set("Accept-Language", ctxutil.LocaleFromCtx(r.Context()).String())
		return nil
	}
}

// Do sends in as the JSON body of method path and decodes a 2xx body into out.
// in and out may be nil. A cancelled ctx aborts the call and returns the
// context error without a notification.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.log.DebugContext(ctx, "api request cancelled",
				slog.String("method", method),
				slog.String("path", path),
			)
			return fmt.Errorf("apiclient: %s %s: %w", method, path, ctxErr)
		}
		return c.fail(ctx, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("apiclient: %s %s: %w", method, path, ctxErr)
		}
		return c.fail(ctx, method, path, apierr.Network(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(ctx, method, path, apierr.FromResponse(resp.StatusCode, body))
	}

	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return c.fail(ctx, method, path, apierr.Malformed(resp.StatusCode, err))
		}
	}

	c.log.DebugContext(ctx, "api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	return nil
}

// send builds and executes the request. Build failures come back as
// construction errors, transport failures as network errors.
func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, apierr.Construction(err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint(path), body)
	if err != nil {
		return nil, apierr.Construction(err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, intercept := range c.interceptors {
		if err := intercept(req); err != nil {
			return nil, apierr.Construction(err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Network(err)
	}
	return resp, nil
}

// fail logs and notifies a normalized error once, then returns it.
func (c *Client) fail(ctx context.Context, method, path string, err error) error {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		apiErr = apierr.Construction(err)
	}

	c.log.WarnContext(ctx, "api request failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("kind", apiErr.Kind.String()),
		slog.Int("status", apiErr.StatusCode),
		slog.String("error", apiErr.Error()),
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
	)

	c.toaster.APIError(ctx, ctxutil.LocaleFromCtx(ctx), apiErr)

	return apiErr
}
