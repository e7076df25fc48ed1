package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/coregx/luapat"
	"github.com/coregx/luapat/config"
	"github.com/coregx/luapat/internal/logging"
	"github.com/coregx/luapat/metrics"
)

// Exit codes.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// errNoMatch makes a command exit with exitNoMatch without printing.
var errNoMatch = errors.New("no match")

// cli holds the flags and the state built from them before a subcommand runs.
type cli struct {
	stdout, stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string
	dumpMetric bool

	init    int
	plain   bool
	maxRepl int
	timeout time.Duration
	steps   uint64

	cfg       *config.Config
	logger    *slog.Logger
	collector *metrics.Collector
	engine    *luapat.Engine
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	c.writeMetrics()
	switch {
	case err == nil:
		return exitMatch
	case errors.Is(err, errNoMatch):
		return exitNoMatch
	default:
		fmt.Fprintln(stderr, "luapat:", err)
		return exitError
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "luapat",
		Short: "Lua 5.4 pattern matching with a cancellation governor",
		Long: `luapat runs Lua patterns (string.find, match, gmatch and gsub semantics)
against a subject string. Searches can be bounded by a wall-clock timeout that
is checked every --steps matching steps.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file path (YAML)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&c.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&c.dumpMetric, "metrics", false, "write Prometheus metrics to stderr on exit")
	flags.IntVar(&c.init, "init", 1, "1-based start position; negative counts from the end")
	flags.DurationVar(&c.timeout, "timeout", 0, "abort a search after this long (0 disables)")
	flags.Uint64Var(&c.steps, "steps", 0, "matching steps between two governor checks")

	root.AddCommand(c.findCmd(), c.matchCmd(), c.gmatchCmd(), c.gsubCmd())
	return root
}

// setup loads the configuration, applies flag overrides and builds the engine.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithEnvOverrides(c.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = c.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = c.logFormat
	}
	if flags.Changed("timeout") {
		cfg.Governor.Timeout = c.timeout
	}
	if flags.Changed("steps") {
		cfg.Governor.StepThreshold = c.steps
	}
	if c.dumpMetric {
		cfg.Metrics.Enabled = true
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	c.cfg = cfg

	c.logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, c.stderr)
	if err != nil {
		return err
	}

	var observer luapat.Observer
	if cfg.Metrics.Enabled {
		c.collector = metrics.NewCollector(&cfg.Metrics, prometheus.NewRegistry())
		observer = c.collector
	}

	c.engine, err = luapat.New(cfg.EngineConfig(c.logger, observer))
	return err
}

// options returns the per-call options from the flags and configuration.
func (c *cli) options() []luapat.Option {
	opts := append([]luapat.Option{luapat.WithInit(c.init)}, c.cfg.CallOptions()...)
	if c.plain {
		opts = append(opts, luapat.WithPlain())
	}
	return opts
}

// writeMetrics dumps the collected metrics in the Prometheus text format.
func (c *cli) writeMetrics() {
	if !c.dumpMetric || c.collector == nil {
		return
	}
	families, err := c.collector.Registry().Gather()
	if err != nil {
		c.logger.Error("gathering metrics", "error", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(c.stderr, mf); err != nil {
			c.logger.Error("writing metrics", "error", err)
			return
		}
	}
}
