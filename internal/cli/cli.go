// Package cli runs the foaas command: single calls, batches read from a file
// or stdin, and the endpoint listing.
package cli

import (
	"io"
)

// Options holds the parsed command line.
type Options struct {
	List    bool     // print the endpoint table and exit
	Batch   string   // file of invocations, "-" for stdin
	Output  string   // text, json or yaml
	Metrics bool     // dump client metrics to Stderr after the run
	Args    []string // endpoint name followed by its arguments
}

// Streams are the process streams Run reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// ShowHelp prints usage information for the foaas command.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `foaas
=====

Invoke FOAAS endpoints from the command line.

Usage:
  foaas [options] <endpoint> [args...]
  foaas [options] -batch <file|->
  foaas -list

Options:
  -list
        Print every endpoint with its path template
  -batch string
        Read "name/arg1/arg2" lines from a file, or stdin with "-"
  -o string
        Output format: text, json or yaml (default from config, "text")
  -metrics
        Print client metrics in Prometheus text format to stderr after the run
  -log-level string
        Override the configured log level: debug, info, warn, error
  -help
        Show this help message

Configuration:
  FOAAS_CONFIG names an optional YAML file. Every key can be overridden with
  a FOAAS_ prefixed variable, e.g. FOAAS_BASE_URL or FOAAS_TIMEOUT=5s.

Examples:
  foaas awesome Alice
  foaas -o json back "Jane Doe" Bob
  printf 'bag/Tom\ncool/Ann\n' | foaas -batch -
`)
}
