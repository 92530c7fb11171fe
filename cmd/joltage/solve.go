package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/joltage/internal/config"
	"github.com/fyrsmithlabs/joltage/internal/input"
	"github.com/fyrsmithlabs/joltage/internal/logging"
	"github.com/fyrsmithlabs/joltage/internal/report"
	"github.com/fyrsmithlabs/joltage/internal/solver"
)

const defaultInputFile = "input.txt"

type solveOptions struct {
	*rootOptions
	digits      int
	part        int
	workers     int
	onInvalid   string
	format      string
	metricsFile string
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	opts := &solveOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Sum the maximum joltage of every bank in a file",
		Long: `Solve every bank in a puzzle input and print the total joltage.

Examples:
  # Part two (12 batteries per bank) on ./input.txt
  joltage solve

  # Part one
  joltage solve --part 1 input.txt

  # Read banks from stdin, skip malformed lines, four workers
  cat banks.txt | joltage solve --on-invalid skip --workers 4 -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultInputFile
			if len(args) == 1 {
				path = args[0]
			}
			return runSolve(cmd, opts, path)
		},
	}

	cmd.Flags().IntVarP(&opts.digits, "digits", "k", 0, "batteries to switch on per bank")
	cmd.Flags().IntVar(&opts.part, "part", 0, "puzzle part: 1 (2 batteries) or 2 (12 batteries)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "banks evaluated concurrently")
	cmd.Flags().StringVar(&opts.onInvalid, "on-invalid", "", "invalid bank policy: abort or skip")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "", "output format: text or json")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	cmd.MarkFlagsMutuallyExclusive("digits", "part")

	return cmd
}

// loadConfig layers flags that were set explicitly over file and env config.
func loadConfig(cmd *cobra.Command, opts *solveOptions) (*config.Config, error) {
	cfg, err := config.LoadWithFile(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("part") {
		digits, err := config.DigitsForPart(opts.part)
		if err != nil {
			return nil, err
		}
		cfg.Solver.Digits = digits
	}
	if flags.Changed("digits") {
		cfg.Solver.Digits = opts.digits
	}
	if flags.Changed("workers") {
		cfg.Solver.Workers = opts.workers
	}
	if flags.Changed("on-invalid") {
		cfg.Solver.OnInvalid = opts.onInvalid
	}
	if flags.Changed("format") {
		cfg.Report.Format = opts.format
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = opts.metricsFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.LoggingConfig) (*logging.Logger, error) {
	level, err := logging.LevelFromString(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logCfg := logging.NewDefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.Format

	return logging.NewLogger(logCfg, zapcore.AddSync(cmd.ErrOrStderr()))
}

func runSolve(cmd *cobra.Command, opts *solveOptions, path string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd, cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := logging.WithRunID(cmd.Context(), uuid.NewString())
	ctx = logging.WithInputPath(ctx, path)
	logger.Info(ctx, "solving for file")

	lines, err := readInput(cmd, path)
	if err != nil {
		logger.Error(ctx, "failed to load input", zap.Error(err))
		return err
	}

	registry := prometheus.NewRegistry()
	s, err := solver.New(solver.Options{
		Digits:    cfg.Solver.Digits,
		Workers:   cfg.Solver.Workers,
		OnInvalid: solver.Policy(cfg.Solver.OnInvalid),
	}, logger, solver.NewMetrics(registry))
	if err != nil {
		return err
	}

	res, err := s.Run(ctx, lines)
	if err != nil {
		logger.Error(ctx, "solve failed", zap.Error(err))
		return err
	}

	reporter, err := report.New(cfg.Report.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := reporter.Report(res); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return writeMetrics(ctx, logger, cfg.Metrics.Textfile, registry)
}

func readInput(cmd *cobra.Command, path string) ([]string, error) {
	if path == input.Stdin {
		return input.ReadLines(cmd.InOrStdin())
	}
	return input.LoadLines(path)
}

func writeMetrics(ctx context.Context, logger *logging.Logger, path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	logger.Debug(ctx, "metrics written", zap.String("path", path))
	return nil
}
