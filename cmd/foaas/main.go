package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/foaas/internal/cli"
	"github.com/okian/foaas/internal/config"
	"github.com/okian/foaas/pkg/foaas"
	"github.com/okian/foaas/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}))
}

// run wires flags, configuration and logging around cli.Run and returns the
// process exit status.
func run(args []string, s cli.Streams) int {
	fs := flag.NewFlagSet("foaas", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		list     = fs.Bool("list", false, "Print every endpoint with its path template")
		batch    = fs.String("batch", "", `Read invocations from a file, or stdin with "-"`)
		output   = fs.String("o", "", "Output format: text, json or yaml")
		dump     = fs.Bool("metrics", false, "Print client metrics to stderr after the run")
		logLevel = fs.String("log-level", "", "Override the configured log level")
		help     = fs.Bool("help", false, "Show help")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.ShowHelp(s.Out)
			return 0
		}
		_, _ = io.WriteString(s.Err, err.Error()+"\n")
		cli.ShowHelp(s.Err)
		return 2
	}
	if *help {
		cli.ShowHelp(s.Out)
		return 0
	}

	if err := logger.InitWriter(s.Err); err != nil {
		_, _ = io.WriteString(s.Err, "failed to initialize logging: "+err.Error()+"\n")
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = io.WriteString(s.Err, "failed to load config: "+err.Error()+"\n")
		return 1
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *output != "" {
		cfg.Output = *output
		if err := cfg.Validate(); err != nil {
			_, _ = io.WriteString(s.Err, err.Error()+"\n")
			return 2
		}
	}

	log := logger.Get()
	// Apply configured log level (fallback to warn on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to warn", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("warn")
	}

	client := foaas.New(append(cfg.ClientOptions(), foaas.WithLogger(log.Named("client")))...)
	err = cli.Run(ctx, client, cli.Options{
		List:    *list,
		Batch:   *batch,
		Output:  cfg.Output,
		Metrics: *dump,
		Args:    fs.Args(),
	}, s)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrFailedCalls):
		log.Debug(ctx, "run finished with failures", logger.Error(err))
		return 1
	case errors.Is(err, cli.ErrUsage):
		_, _ = io.WriteString(s.Err, err.Error()+"\n")
		return 2
	default:
		log.Error(ctx, "run failed", logger.Error(err))
		return 1
	}
}
