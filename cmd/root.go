package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/themcaffee/OPPR-sub003/internal/app"
	"github.com/themcaffee/OPPR-sub003/internal/config"
	"github.com/themcaffee/OPPR-sub003/pkg/logger"
	"github.com/themcaffee/OPPR-sub003/pkg/metrics"
)

// cli holds the flags and the state built once per invocation.
type cli struct {
	configPath  string
	logLevel    string
	metricsFile string

	cfg      *config.Config
	registry *prometheus.Registry
	engine   *app.Engine
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "oppr",
		Short: "Tournament valuation and ranking engine",
		Long: `oppr values competitive pinball events and turns finishing orders into points:
- Values an event from player strength (TVA), format (TGP) and its booster
- Distributes the first-place value over the finishing order
- Decays points by event age
- Imports player lists from CSV and updates ratings

Results are written to stdout as JSON; logs go to stderr.`,
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default is $"+config.EnvConfig+")")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	flags.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file on success")

	root.AddCommand(
		c.valueCmd(),
		c.scoreCmd(),
		c.decayCmd(),
		c.importCmd(),
		c.systemsCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	path := c.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.LogLevel
	if c.logLevel != "" {
		level = c.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		return err
	}

	c.registry = prometheus.NewRegistry()
	engine, err := app.New(
		app.WithLogger(logger.Named("engine")),
		app.WithMetrics(metrics.NewManager(
			metrics.WithNamespace(cfg.MetricsNamespace),
			metrics.WithPrometheusRegistry(c.registry),
		)),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithTopEvents(cfg.TopEventsCount),
		app.WithTrendWindow(cfg.TrendWindow),
		app.WithOpponentsRange(cfg.OpponentsRange),
		app.WithDefaultRatingSystem(cfg.RatingSystem),
	)
	if err != nil {
		return err
	}
	c.engine = engine

	logger.Get().Debug(ctx, "engine ready",
		logger.String("config", path),
		logger.Int("workers", cfg.WorkerCount),
		logger.String("rating_system", cfg.RatingSystem),
	)
	return nil
}

func (c *cli) teardown(cmd *cobra.Command, _ []string) error {
	if c.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(c.metricsFile, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	logger.Get().Debug(cmd.Context(), "metrics written", logger.String("path", c.metricsFile))
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
