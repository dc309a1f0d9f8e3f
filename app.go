package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cdtdelta/cmdsynth/internal/catalog"
	"github.com/cdtdelta/cmdsynth/internal/config"
	"github.com/cdtdelta/cmdsynth/internal/csvlog"
	"github.com/cdtdelta/cmdsynth/internal/generator"
	"github.com/cdtdelta/cmdsynth/internal/metrics"
	"github.com/cdtdelta/cmdsynth/internal/model"
)

// App wires configuration, logging and the generator together.
type App struct {
	cfg *config.Config
	log *zap.Logger
}

// NewApp creates a new App instance.
func NewApp(cfg *config.Config, log *zap.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// -- Generation --

// Generate writes opts.rows synthetic events to opts.output.
func (a *App) Generate(ctx context.Context, stdout io.Writer, opts *options) error {
	seed := opts.seed
	if !opts.seedSet {
		seed = rand.Uint64()
	}

	anchor := opts.anchor
	if anchor.IsZero() {
		anchor = time.Now().UTC()
		if opts.seedSet {
			anchor = anchor.Truncate(24 * time.Hour)
		}
	}

	collector := metrics.New()
	gen, err := generator.New(opts.rows, generator.Config{
		Seed:      seed,
		Anchor:    anchor,
		MaxUsers:  a.cfg.MaxUsers,
		ChunkSize: a.cfg.ChunkSize,
		Recorder:  collector,
	})
	if err != nil {
		return fmt.Errorf("preparing generator: %w", err)
	}

	a.log.Info("Generating command events",
		zap.Int("rows", gen.Rows()),
		zap.String("output", opts.output),
		zap.Uint64("seed", seed),
		zap.Time("anchor", anchor),
		zap.Int("users", len(gen.Users())),
		zap.Int("workers", opts.workers))

	started := time.Now()
	w, err := csvlog.Create(opts.output)
	if err != nil {
		return err
	}
	if err := gen.Stream(ctx, opts.workers, w.Write); err != nil {
		w.Close()
		return fmt.Errorf("generating events: %w", err)
	}
	if err := w.Close(); err != nil {
		return err
	}
	if w.Rows() != gen.Rows() {
		return fmt.Errorf("wrote %d of %d rows to %s", w.Rows(), gen.Rows(), opts.output)
	}

	summary, err := collector.Summary()
	if err != nil {
		return err
	}
	a.logSummary("Generation finished", summary, zap.Duration("elapsed", time.Since(started)))

	if opts.metricsFile != "" {
		if err := collector.WriteTextfile(opts.metricsFile); err != nil {
			return err
		}
		a.log.Info("Metrics written", zap.String("path", opts.metricsFile))
	}

	fmt.Fprintf(stdout, "Wrote %d rows to %s\n", w.Rows(), opts.output)
	return nil
}

// -- Inspection --

// Inspect reads a generated file back and prints its risk profile.
func (a *App) Inspect(stdout io.Writer, path string) error {
	result, err := csvlog.ReadEvents(path, 0, func(count int) {
		a.log.Debug("Reading events", zap.Int("count", count))
	})
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}

	collector := metrics.New()
	for _, e := range result.Events {
		collector.Observe(e, false)
	}
	summary, err := collector.Summary()
	if err != nil {
		return err
	}
	a.logSummary("Inspection finished", summary, zap.String("path", path))

	fmt.Fprintf(stdout, "%s: %d rows\n", path, summary.Total)
	for level := model.MinRiskLevel; level <= model.MaxRiskLevel; level++ {
		fmt.Fprintf(stdout, "  risk_level %d: %d (%.2f%%)\n", level, summary.ByRisk[level], percent(summary.ByRisk[level], summary.Total))
	}
	fmt.Fprintf(stdout, "  sudo_used: %d (%.2f%%)\n", summary.Sudo, percent(summary.Sudo, summary.Total))
	fmt.Fprintf(stdout, "  non-zero exit: %d (%.2f%%)\n", summary.Failed, percent(summary.Failed, summary.Total))
	return nil
}

// -- Catalog --

// DumpCatalog prints the template catalog as YAML.
func (a *App) DumpCatalog(stdout io.Writer) error {
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(catalog.Build().Templates()); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return enc.Close()
}

func (a *App) logSummary(msg string, s metrics.Summary, extra ...zap.Field) {
	fields := []zap.Field{
		zap.Int64("events", s.Total),
		zap.Int64("sudo", s.Sudo),
		zap.Int64("chained", s.Chained),
		zap.Int64("failed", s.Failed),
	}
	for level := model.MinRiskLevel; level <= model.MaxRiskLevel; level++ {
		fields = append(fields, zap.Int64(fmt.Sprintf("risk_%d", level), s.ByRisk[level]))
	}
	a.log.Info(msg, append(fields, extra...)...)
}

func percent(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
