// Package api implements the resilient HTTP client used by every service in
// the DineBridge client: auth injection and correlation IDs via a middleware
// pipeline, a fixed error taxonomy, bounded retry for server errors, and
// per-request cancellation.
package api

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
	"sync/atomic"
	"time"

	"github.com/dinebridge/dinebridge/internal/client/notify"
	"github.com/dinebridge/dinebridge/internal/logging"
	"github.com/sethvargo/go-retry"
)

// Defaults applied by New when the corresponding Options field is zero.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

// Notification identifiers. One fixed ID per failure class, so overlapping
// failures of the same class collapse into a single toast.
const (
	noticeNetwork    = "network-error"
	noticeForbidden  = "forbidden"
	noticeValidation = "validation-error"
	noticeServer     = "server-error"
	noticeUnexpected = "unexpected-error"
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	// BaseURL is the API origin, e.g. "https://pos.example.com/api".
	// Read once at construction; not hot-reloadable.
	BaseURL string

	// Timeout bounds each individual HTTP attempt.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the first try,
	// applied to 5xx responses only.
	MaxRetries int

	// RetryDelay is the fixed pause between attempts. No growth.
	RetryDelay time.Duration

	// WithCredentials controls whether the bearer credential is attached
	// to outbound requests.
	WithCredentials bool
}

func (o *Options) withDefaults() {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
}

// Request describes a single API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header

	// Body, when non-nil, is JSON-encoded into the request body.
	Body any
}

// Client is the shared HTTP client. Construct one at the composition root
// and pass it to services by reference.
type Client struct {
	opts     Options
	doer     Doer
	notifier notify.Notifier
	logger   logging.Logger

	onUnauthorized   func(ctx context.Context)
	unauthorizedBusy atomic.Bool
}

// New builds a Client. source supplies the bearer credential (may be nil);
// notifier receives user-facing failure toasts.
func New(opts Options, source CredentialSource, notifier notify.Notifier, logger logging.Logger) *Client {
	opts.withDefaults()

	middlewares := []Middleware{RequestID()}
	if opts.WithCredentials {
		middlewares = append(middlewares, BearerAuth(source))
	}

	base := &http.Client{Timeout: opts.Timeout}

	if notifier == nil {
		notifier = notify.Nop{}
	}

	return &Client{
		opts:     opts,
		doer:     Chain(base, middlewares...),
		notifier: notifier,
		logger:   logger.With("component", "api"),
	}
}

// SetUnauthorizedHook installs the handler invoked when a response comes
// back 401. The session manager uses it to refresh or tear down the session.
// Concurrent 401s trigger the hook at most once per burst.
func (c *Client) SetUnauthorizedHook(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

// Do executes req, decodes a 2xx JSON body into out (when out is non-nil),
// and classifies every failure into the package taxonomy. 5xx responses are
// retried up to Options.MaxRetries with a fixed delay; everything else
// settles immediately.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	var body []byte
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = encoded
	}

	target, err := c.resolveURL(req)
	if err != nil {
		return fmt.Errorf("resolving url: %w", err)
	}

	backoff := retry.WithMaxRetries(uint64(c.opts.MaxRetries), retry.NewConstant(c.opts.RetryDelay))

	attemptErr := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.attempt(ctx, req, target, body, out)
	})
	if attemptErr == nil {
		return nil
	}

	apiErr := c.asAPIError(attemptErr)
	c.react(ctx, req, apiErr)
	return apiErr
}

// attempt performs one HTTP round trip. Server errors come back wrapped as
// retryable; every other failure is final.
func (c *Client) attempt(ctx context.Context, req *Request, target string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return &Error{Kind: KindUnexpected, Message: "Something went wrong. Please try again.", cause: err}
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return c.classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindUnexpected, Message: "Something went wrong. Please try again.", cause: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{
				Kind:    KindUnexpected,
				Status:  resp.StatusCode,
				Message: "Something went wrong. Please try again.",
				cause:   err,
			}
		}
		return nil
	}

	apiErr := classifyStatus(resp.StatusCode, data)
	if apiErr.Kind == KindServer {
		c.logger.Warn(ctx, "server error, retrying",
			"method", req.Method, "path", req.Path, "status", resp.StatusCode)
		return retry.RetryableError(apiErr)
	}
	return apiErr
}

func (c *Client) resolveURL(req *Request) (string, error) {
	base := strings.TrimRight(c.opts.BaseURL, "/")
	path := "/" + strings.TrimLeft(req.Path, "/")

	u, err := url.Parse(base + path)
	if err != nil {
		return "", err
	}
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}
	return u.String(), nil
}

// asAPIError normalizes whatever the retry loop produced into *Error.
// Context errors can surface bare when cancellation hits between attempts.
func (c *Client) asAPIError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return c.classifyTransport(context.Background(), err)
}

// classifyTransport maps errors where no HTTP response was received.
// Priority: cancellation, then timeout, then generic connectivity.
func (c *Client) classifyTransport(ctx context.Context, err error) *Error {
	if isCancelled(ctx, err) {
		return &Error{Kind: KindCancelled, Message: "request cancelled", cause: err}
	}
	if isTimeout(err) {
		return &Error{
			Kind:    KindNetwork,
			Timeout: true,
			Message: "Request timed out. Please try again.",
			cause:   err,
		}
	}
	return &Error{Kind: KindNetwork, Message: "Network error. Check your connection.", cause: err}
}

// react drives the user-facing side effects of a classified failure:
// exactly one notification per failure class, and session teardown on 401.
func (c *Client) react(ctx context.Context, req *Request, apiErr *Error) {
	switch apiErr.Kind {
	case KindCancelled:
		// Intentional caller action; stay silent.

	case KindAuthentication:
		c.logger.Info(ctx, "unauthorized response", "method", req.Method, "path", req.Path)
		c.handleUnauthorized(ctx)

	case KindAuthorization:
		c.notifier.Notify(notify.SeverityWarning, noticeForbidden, apiErr.Message)

	case KindValidation:
		message := apiErr.Message
		if msgs := apiErr.FieldMessages(); len(msgs) > 0 {
			message = joinMessages(msgs)
		}
		c.notifier.Notify(notify.SeverityError, noticeValidation, message)

	case KindServer:
		c.notifier.Notify(notify.SeverityError, noticeServer, apiErr.Message)

	case KindNetwork:
		c.notifier.Notify(notify.SeverityError, noticeNetwork, apiErr.Message)

	default:
		c.notifier.Notify(notify.SeverityError, noticeUnexpected, apiErr.Message)
	}
}

// handleUnauthorized invokes the unauthorized hook at most once per burst:
// while one invocation is in flight, concurrent 401s are dropped.
func (c *Client) handleUnauthorized(ctx context.Context) {
	if c.onUnauthorized == nil {
		return
	}
	if !c.unauthorizedBusy.CompareAndSwap(false, true) {
		return
	}
	defer c.unauthorizedBusy.Store(false)
	c.onUnauthorized(ctx)
}

// classifyStatus maps a non-2xx HTTP status to the taxonomy, in the fixed
// priority order: 401, 403, 422, 5xx, everything else.
func classifyStatus(status int, body []byte) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindAuthentication, Status: status, Message: "Session expired. Please log in again."}

	case status == http.StatusForbidden:
		return &Error{Kind: KindAuthorization, Status: status, Message: "You don't have permission to perform this action."}

	case status == http.StatusUnprocessableEntity:
		apiErr := &Error{Kind: KindValidation, Status: status, Message: "Validation failed. Check the submitted fields."}
		var payload struct {
			Errors  map[string][]string `json:"errors"`
			Message string              `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			apiErr.Fields = payload.Errors
			if payload.Message != "" && len(payload.Errors) == 0 {
				apiErr.Message = payload.Message
			}
		}
		return apiErr

	case status >= 500:
		return &Error{Kind: KindServer, Status: status, Message: "Server error. Please try again later."}

	default:
		return &Error{
			Kind:    KindUnexpected,
			Status:  status,
			Message: "Something went wrong. Please try again.",
		}
	}
}
