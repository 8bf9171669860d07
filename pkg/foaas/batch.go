package foaas

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/okian/foaas/pkg/metrics"
)

// ErrEmptyInvocation is returned by ParseInvocation for a blank line.
var ErrEmptyInvocation = errors.New("empty invocation")

// Invocation names an endpoint and the arguments to call it with.
type Invocation struct {
	Endpoint string
	Args     []string
}

// ParseInvocation reads the path form "name/arg1/arg2". A leading slash is
// ignored and every argument is percent-decoded, so the line reads like the
// URL path it produces.
func ParseInvocation(line string) (Invocation, error) {
	line = strings.TrimPrefix(strings.TrimSpace(line), "/")
	if line == "" {
		return Invocation{}, ErrEmptyInvocation
	}
	parts := strings.Split(line, "/")
	inv := Invocation{Endpoint: parts[0], Args: make([]string, 0, len(parts)-1)}
	for _, p := range parts[1:] {
		arg, err := url.PathUnescape(p)
		if err != nil {
			return Invocation{}, fmt.Errorf("invocation %q: %w", line, err)
		}
		inv.Args = append(inv.Args, arg)
	}
	return inv, nil
}

func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, i.Endpoint)
	for _, a := range i.Args {
		parts = append(parts, url.PathEscape(a))
	}
	return strings.Join(parts, "/")
}

// InvokeAll runs every invocation concurrently, at most WithConcurrency at a
// time. The i-th Response always belongs to the i-th Invocation; completion
// order is not otherwise defined.
func (c *Client) InvokeAll(ctx context.Context, calls []Invocation) []Response {
	results := make([]Response, len(calls))
	if len(calls) == 0 {
		return results
	}
	metrics.RecordBatchSize(len(calls))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			results[i] = c.Call(ctx, call.Endpoint, call.Args...)
			return nil
		})
	}
	_ = g.Wait() // calls never fail; failures are error-shaped Responses
	return results
}
