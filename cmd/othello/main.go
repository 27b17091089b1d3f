package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"othello-engine/engine"
)

var (
	configPath  string
	logLevel    string
	metricsAddr string
	strength    int
	timeLimit   time.Duration
	workers     int

	cfg   engine.Config
	stats *engine.SearchStats
)

var rootCmd = &cobra.Command{
	Use:   "othello",
	Short: "Othello engine, game and tools",
	Long: `Play Othello against the engine, drive it from a front-end over the
text protocol, or run the perft and search benchmarks.

Settings come from --config (YAML), then OTHELLO_* environment variables,
then command-line flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "engine config file (YAML)")
	pf.StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	pf.IntVar(&strength, "strength", 0, "engine strength 1-4 (overrides config)")
	pf.DurationVar(&timeLimit, "time-limit", 0, "time per engine move (overrides config)")
	pf.IntVar(&workers, "workers", 0, "root search workers (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(protocolCmd)
	rootCmd.AddCommand(perftCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(analyseCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if cfg, err = engine.LoadConfig(configPath); err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("strength") {
		cfg.Strength = strength
	}
	if flags.Changed("time-limit") {
		cfg.TimeLimit = timeLimit
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	cfg = cfg.Normalize()
	log.Debug().Interface("config", cfg).Msg("config-loaded")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	stats = engine.NewSearchStats(reg)
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		go func() {
			log.Info().Str("addr", metricsAddr).Msg("metrics-listening")
			if err := http.ListenAndServe(metricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}
	return nil
}

func engineOptions() []engine.Option {
	return []engine.Option{engine.WithStats(stats)}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
