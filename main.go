package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cdtdelta/cmdsynth/internal/config"
	"github.com/cdtdelta/cmdsynth/internal/generator"
	"github.com/cdtdelta/cmdsynth/internal/logger"
)

const usageLine = "Usage: cmdsynth [flags] NUM_ROWS [OUTPUT_CSV]"

// errUsage marks command-line mistakes; they exit non-zero before any file
// is written.
var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options is the parsed command line.
type options struct {
	rows        int
	output      string
	seed        uint64
	seedSet     bool
	anchor      time.Time
	workers     int
	metricsFile string
	inspect     string
	dumpCatalog bool
}

func parseArgs(args []string, cfg *config.Config, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("cmdsynth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	opts := &options{}
	seed := fs.String("seed", "", "random seed; equal seeds and row counts give identical output")
	anchor := fs.String("anchor", "", "RFC3339 end of the one-year timestamp window (default now, or start of today UTC with -seed)")
	fs.IntVar(&opts.workers, "workers", cfg.Workers, "number of generator goroutines")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write run counters in Prometheus textfile format")
	fs.StringVar(&opts.inspect, "inspect", "", "summarize an existing generated file instead of generating")
	fs.BoolVar(&opts.dumpCatalog, "dump-catalog", false, "print the command template catalog as YAML and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Seed != nil {
		opts.seed, opts.seedSet = *cfg.Seed, true
	}
	if *seed != "" {
		v, err := strconv.ParseUint(*seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid -seed %q", errUsage, *seed)
		}
		opts.seed, opts.seedSet = v, true
	}

	if *anchor != "" {
		t, err := time.Parse(time.RFC3339, *anchor)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid -anchor %q", errUsage, *anchor)
		}
		opts.anchor = t
	}

	if opts.workers < 1 {
		return nil, fmt.Errorf("%w: -workers must be at least 1", errUsage)
	}

	if opts.dumpCatalog || opts.inspect != "" {
		return opts, nil
	}

	if fs.NArg() < 1 {
		return nil, fmt.Errorf("%w: missing NUM_ROWS", errUsage)
	}
	// flag parsing stops at the first positional, so trailing flags land here
	if fs.NArg() > 2 {
		return nil, fmt.Errorf("%w: unexpected arguments %q (flags must come before NUM_ROWS)", errUsage, fs.Args()[2:])
	}
	rows, err := strconv.Atoi(fs.Arg(0))
	if err != nil || rows <= 0 {
		return nil, fmt.Errorf("%w: got %q", generator.ErrInvalidRowCount, fs.Arg(0))
	}
	opts.rows = rows

	opts.output = cfg.DefaultOutput
	if fs.NArg() >= 2 {
		opts.output = fs.Arg(1)
	}
	return opts, nil
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts, err := parseArgs(args, cfg, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, generator.ErrInvalidRowCount):
		fmt.Fprintln(stderr, "NUM_ROWS must be a positive integer.")
		return 1
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, usageLine)
		fmt.Fprintln(stderr, err)
		return 1
	case err != nil:
		// flag has already reported the problem
		return 1
	}

	log, err := logger.New(cfg.Environment, logger.FileOptions{
		Path:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
		MaxAgeDay: cfg.LogMaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	app := NewApp(cfg, log)

	switch {
	case opts.dumpCatalog:
		err = app.DumpCatalog(stdout)
	case opts.inspect != "":
		err = app.Inspect(stdout, opts.inspect)
	default:
		err = app.Generate(ctx, stdout, opts)
	}
	if err != nil {
		log.Error("cmdsynth failed", zap.Error(err))
		return 1
	}
	return 0
}
