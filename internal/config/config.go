// Package config defines the foaas CLI configuration and how it is loaded.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and FOAAS_* env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"
	"time"

	"github.com/okian/foaas/pkg/foaas"
)

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// BaseURL is the FOAAS host, without a trailing slash.
	BaseURL string `koanf:"base_url"`

	// Timeout bounds each invocation. Zero leaves the transport defaults.
	Timeout time.Duration `koanf:"timeout"`

	// Concurrency caps in-flight calls of a batch run.
	Concurrency int `koanf:"concurrency"`

	// RawPaths disables percent-encoding of arguments.
	RawPaths bool `koanf:"raw_paths"`

	// Compression negotiates zstd, br or gzip response bodies.
	Compression bool `koanf:"compression"`

	// RateLimit is the maximum requests per second; zero is unlimited.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	// Output selects how responses are printed: text, json or yaml.
	Output string `koanf:"output"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "warn",
		BaseURL:     foaas.DefaultBaseURL,
		Timeout:     30 * time.Second,
		Concurrency: runtime.NumCPU() * 2,
		RateBurst:   1,
		Output:      OutputText,
	}
}

// ClientOptions translates the configuration into client options.
func (c *Config) ClientOptions() []foaas.Option {
	opts := []foaas.Option{
		foaas.WithBaseURL(c.BaseURL),
		foaas.WithTimeout(c.Timeout),
		foaas.WithConcurrency(c.Concurrency),
		foaas.WithRateLimit(c.RateLimit, c.RateBurst),
	}
	if c.RawPaths {
		opts = append(opts, foaas.WithRawPaths())
	}
	if c.Compression {
		opts = append(opts, foaas.WithCompression())
	}
	return opts
}
