// Command modeldraw converts the JSON written by Django's
// "manage.py graph_models --json" into a draw.io diagram: one box per
// model, one row per field and a line per relation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/syssam/modeldraw/compiler"
	"github.com/syssam/modeldraw/compiler/gen"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "modeldraw"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if cli.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}

	cfg, err := loadConfig(cli.ConfigPath)
	if err != nil {
		return err
	}
	cli.apply(cfg)
	if err := validateFlags(cfg, cli.Inputs); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	defer func() {
		_ = logger.Sync()
	}()

	opts, err := cfg.options()
	if err != nil {
		return err
	}
	opts = append(opts, gen.WithLogger(logger))

	switch {
	case len(cli.Inputs) > 0:
		return convertBatch(ctx, cfg, cli.Inputs, opts, logger)
	case cfg.Watch:
		return watch(ctx, cfg, opts, logger, stdout, stderr)
	default:
		return convert(cfg, opts, logger, stdout, stderr)
	}
}

// convert runs a single conversion. Without an output path the document
// goes to stdout.
func convert(cfg *Config, opts []gen.Option, logger *zap.Logger, stdout, stderr io.Writer) error {
	id, err := cfg.idOption()
	if err != nil {
		return err
	}
	g, err := compiler.ConvertFile(cfg.Input, slices.Concat(opts, []gen.Option{id})...)
	if err != nil {
		return err
	}
	logger.Info("loaded graph",
		zap.String("input", cfg.Input),
		zap.Stringer("policy", g.Policy),
		zap.Int("namespaces", len(g.Namespaces)),
		zap.Int("entities", len(g.Entities())),
		zap.Int("edges", len(g.Edges)),
		zap.Int("misses", len(g.Misses)),
	)
	if logger.Core().Enabled(zapcore.InfoLevel) {
		_, _ = fmt.Fprint(stderr, g.Summary())
	}

	if cfg.Output == "" {
		return gen.Generate(stdout, g)
	}
	w := gen.NewFileWriter(g)
	if err := w.WriteFile(cfg.Output); err != nil {
		return err
	}
	m := w.Metrics()
	logger.Info("wrote document",
		zap.String("output", cfg.Output),
		zap.Int64("bytes", m.Bytes),
		zap.Duration("render_time", m.RenderTime),
		zap.Duration("write_time", m.WriteTime),
	)
	return nil
}

// convertBatch converts every input in parallel.
func convertBatch(ctx context.Context, cfg *Config, inputs []string, opts []gen.Option, logger *zap.Logger) error {
	jobs, err := cfg.jobs(inputs)
	if err != nil {
		return err
	}
	results, err := compiler.ConvertAll(ctx, jobs, cfg.Workers, opts...)
	if err != nil {
		return err
	}
	for _, r := range results {
		logger.Info("wrote document",
			zap.String("input", r.Job.Input),
			zap.String("output", r.Job.Output),
			zap.Int("containers", r.Metrics.Containers),
			zap.Int("edges", r.Metrics.Edges),
			zap.Int("misses", len(r.Graph.Misses)),
			zap.Int64("bytes", r.Metrics.Bytes),
		)
	}
	return nil
}
