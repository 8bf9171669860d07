package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/okian/foaas/internal/config"
	"github.com/okian/foaas/pkg/foaas"
	"github.com/okian/foaas/pkg/logger"
	"github.com/okian/foaas/pkg/metrics"
)

const stdinName = "-"

// Run executes one foaas command against client.
func Run(ctx context.Context, client *foaas.Client, opts Options, s Streams) error {
	if opts.List {
		return listEndpoints(s.Out, opts.Output)
	}

	calls, err := invocations(opts, s.In)
	if err != nil {
		return err
	}

	logger.Get().Debug(ctx, "running invocations",
		logger.String("base_url", client.BaseURL()),
		logger.Int("calls", len(calls)))

	var results []foaas.Response
	if len(calls) == 1 && opts.Batch == "" {
		results = []foaas.Response{client.Call(ctx, calls[0].Endpoint, calls[0].Args...)}
	} else {
		results = client.InvokeAll(ctx, calls)
	}

	if err := writeResults(s.Out, opts.Output, opts.Batch != "", results); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if opts.Metrics {
		if err := metrics.WriteText(s.Err); err != nil {
			logger.Get().Warn(ctx, "failed to write metrics", logger.Error(err))
		}
	}

	failed := 0
	for _, r := range results {
		if r.IsError() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFailedCalls, failed, len(results))
	}
	return nil
}

func invocations(opts Options, stdin io.Reader) ([]foaas.Invocation, error) {
	if opts.Batch == "" {
		if len(opts.Args) == 0 {
			return nil, fmt.Errorf("%w: missing endpoint name", ErrUsage)
		}
		return []foaas.Invocation{{Endpoint: opts.Args[0], Args: opts.Args[1:]}}, nil
	}
	if len(opts.Args) > 0 {
		return nil, fmt.Errorf("%w: -batch takes no positional arguments", ErrUsage)
	}

	r := stdin
	if opts.Batch != stdinName {
		f, err := os.Open(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		defer f.Close()
		r = f
	}
	return ReadBatch(r)
}

// ReadBatch parses one invocation per line. Blank lines and lines starting
// with '#' are skipped.
func ReadBatch(r io.Reader) ([]foaas.Invocation, error) {
	var calls []foaas.Invocation
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inv, err := foaas.ParseInvocation(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrUsage, n, err)
		}
		calls = append(calls, inv)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return calls, nil
}

func writeResults(w io.Writer, format string, batch bool, results []foaas.Response) error {
	var v any = results
	if !batch && len(results) == 1 {
		v = results[0]
	}
	switch format {
	case config.OutputJSON, config.OutputYAML:
		return writeAny(w, format, v)
	default:
		for _, r := range results {
			if _, err := fmt.Fprintln(w, r.String()); err != nil {
				return err
			}
		}
		return nil
	}
}

type endpointRow struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

func listEndpoints(w io.Writer, format string) error {
	if format == config.OutputJSON || format == config.OutputYAML {
		rows := make([]endpointRow, 0, len(foaas.Endpoints))
		for _, ep := range foaas.Endpoints {
			rows = append(rows, endpointRow{Name: ep.Name, Path: ep.Path})
		}
		return writeAny(w, format, rows)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, ep := range foaas.Endpoints {
		fmt.Fprintf(tw, "%s\t%s\n", ep.Name, ep.Path)
	}
	return tw.Flush()
}

func writeAny(w io.Writer, format string, v any) error {
	if format == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
