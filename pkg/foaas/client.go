// Package foaas is a client for the FOAAS phrase service.
//
// Every route of the service is a row of [Endpoints]. A [Client] renders the
// row's path template with the caller's arguments, sends one GET with
// "Accept: Application/json" and decodes the {message, subtitle} body:
//
//	c := foaas.New()
//	r := c.Call(ctx, "awesome", "alice")
//	fmt.Println(r.Message, r.Subtitle)
//
// [Client.Invoke] and [Client.Call] never fail: transport errors, non-200
// statuses and undecodable bodies come back as a Response whose Subtitle is
// "error" and whose Message is "Error: <cause>". Callers that need to branch
// on the failure use [Client.Fetch], which returns an [*Error] instead.
package foaas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/okian/foaas/pkg/logger"
	"github.com/okian/foaas/pkg/metrics"
)

const (
	// DefaultBaseURL is the public FOAAS host.
	DefaultBaseURL = "https://foaas.com"

	// acceptJSON is the Accept header sent with every request.
	acceptJSON = "Application/json"

	defaultConcurrencyMultiplier = 2 // multiplier for runtime.NumCPU()

	// unknownEndpointLabel keeps arbitrary caller input out of metric labels.
	unknownEndpointLabel = "unknown"
)

// Client invokes FOAAS endpoints. It is safe for concurrent use; nothing but
// the immutable configuration, the HTTP client and the rate limiter is shared
// between calls.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	rawPaths    bool
	compression bool
	concurrency int
	limiter     *rate.Limiter
	logger      logger.Logger
}

// New creates a Client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{},
		concurrency: runtime.NumCPU() * defaultConcurrencyMultiplier,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the host the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call looks up the endpoint by name and invokes it.
func (c *Client) Call(ctx context.Context, name string, args ...string) Response {
	ep, ok := Lookup(name)
	if !ok {
		err := &Error{Kind: KindRequest, Endpoint: name, Err: fmt.Errorf("%w: %q", ErrUnknownEndpoint, name)}
		c.observe(ctx, unknownEndpointLabel, "", time.Now(), err)
		return Fallback(err)
	}
	return c.Invoke(ctx, ep, args...)
}

// Invoke performs one request against ep and always returns a Response.
// Failures are folded into the error-shaped Response; see Fallback.
func (c *Client) Invoke(ctx context.Context, ep Endpoint, args ...string) Response {
	r, err := c.Fetch(ctx, ep, args...)
	if err != nil {
		return Fallback(err)
	}
	return r
}

// Fetch performs one request against ep. On failure the error is an *Error
// describing which stage failed.
func (c *Client) Fetch(ctx context.Context, ep Endpoint, args ...string) (Response, error) {
	start := time.Now()
	requestID := uuid.NewString()
	label := ep.Name
	if _, known := Lookup(ep.Name); !known {
		label = unknownEndpointLabel
	}

	c.logger.Debug(ctx, "invoking endpoint",
		logger.String("request_id", requestID),
		logger.String("endpoint", ep.Name),
		logger.Int("args", len(args)))

	r, err := c.fetch(ctx, ep, args)
	c.observe(ctx, label, requestID, start, err)
	return r, err
}

func (c *Client) fetch(ctx context.Context, ep Endpoint, args []string) (Response, error) {
	if ep.Path == "" {
		return Response{}, &Error{Kind: KindRequest, Endpoint: ep.Name, Err: fmt.Errorf("%w: %q", ErrUnknownEndpoint, ep.Name)}
	}
	path, err := ep.Render(args, !c.rawPaths)
	if err != nil {
		return Response{}, &Error{Kind: KindRequest, Endpoint: ep.Name, Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Response{}, &Error{Kind: KindTransport, Endpoint: ep.Name, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Response{}, &Error{Kind: KindRequest, Endpoint: ep.Name, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", acceptJSON)
	if c.compression {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	metrics.IncInFlight()
	res, err := c.httpClient.Do(req)
	metrics.DecInFlight()
	if err != nil {
		return Response{}, &Error{Kind: KindTransport, Endpoint: ep.Name, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Response{}, &Error{Kind: KindStatus, Endpoint: ep.Name, StatusCode: res.StatusCode, Status: res.Status}
	}

	body, err := readBody(res)
	if err != nil {
		return Response{}, &Error{Kind: KindDecode, Endpoint: ep.Name, Err: fmt.Errorf("read body: %w", err)}
	}
	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return Response{}, &Error{Kind: KindDecode, Endpoint: ep.Name, Err: fmt.Errorf("decode body: %w", err)}
	}
	return out, nil
}

// observe records metrics and logs the outcome of one invocation.
func (c *Client) observe(ctx context.Context, label, requestID string, start time.Time, err error) {
	elapsed := time.Since(start)
	durationMs := float64(elapsed.Microseconds()) / 1000

	if err == nil {
		metrics.RecordRequest(label, metrics.OutcomeSuccess, durationMs)
		c.logger.Debug(ctx, "endpoint responded",
			logger.String("request_id", requestID),
			logger.String("endpoint", label),
			logger.Duration("elapsed", elapsed))
		return
	}

	kind := KindTransport
	var fe *Error
	if errors.As(err, &fe) {
		kind = fe.Kind
	}
	metrics.RecordRequest(label, metrics.OutcomeError, durationMs)
	metrics.RecordError(kind.String())
	c.logger.Warn(ctx, "endpoint invocation failed",
		logger.String("request_id", requestID),
		logger.String("endpoint", label),
		logger.String("kind", kind.String()),
		logger.Duration("elapsed", elapsed),
		logger.Error(err))
}
