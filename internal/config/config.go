// Package config provides configuration loading for joltage.
//
// Configuration is layered: defaults, then an optional YAML file, then
// JOLTAGE_* environment variables. Command-line flags are applied on top by
// the CLI after loading.
package config

import (
	"errors"
	"fmt"
)

// Part one of the puzzle switches on two batteries per bank, part two twelve.
const (
	PartOneDigits = 2
	PartTwoDigits = 12
)

// Invalid bank policies.
const (
	OnInvalidAbort = "abort"
	OnInvalidSkip  = "skip"
)

// Config holds the complete joltage configuration.
type Config struct {
	Solver  SolverConfig  `koanf:"solver"`
	Logging LoggingConfig `koanf:"logging"`
	Report  ReportConfig  `koanf:"report"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// SolverConfig controls how banks are evaluated.
type SolverConfig struct {
	Digits    int    `koanf:"digits"`     // batteries to switch on per bank
	Workers   int    `koanf:"workers"`    // banks evaluated concurrently
	OnInvalid string `koanf:"on_invalid"` // abort or skip
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ReportConfig selects the answer output format.
type ReportConfig struct {
	Format string `koanf:"format"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"` // empty disables export
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Digits:    PartTwoDigits,
			Workers:   1,
			OnInvalid: OnInvalidAbort,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Report: ReportConfig{
			Format: "text",
		},
	}
}

// Validate validates the configuration.
//
// Returns an error if:
//   - Digits or workers are not positive
//   - The invalid-bank policy is not abort or skip
//   - Logging or report formats are unknown
func (c *Config) Validate() error {
	if c.Solver.Digits < 1 {
		return fmt.Errorf("invalid solver digits: %d (must be >= 1)", c.Solver.Digits)
	}
	if c.Solver.Workers < 1 {
		return fmt.Errorf("invalid solver workers: %d (must be >= 1)", c.Solver.Workers)
	}
	if c.Solver.OnInvalid != OnInvalidAbort && c.Solver.OnInvalid != OnInvalidSkip {
		return fmt.Errorf("invalid on_invalid policy %q (must be abort or skip)", c.Solver.OnInvalid)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format %q (must be json or console)", c.Logging.Format)
	}

	if c.Report.Format != "text" && c.Report.Format != "json" {
		return errors.New("report format must be text or json")
	}

	return nil
}

// DigitsForPart maps a puzzle part to its battery count.
func DigitsForPart(part int) (int, error) {
	switch part {
	case 1:
		return PartOneDigits, nil
	case 2:
		return PartTwoDigits, nil
	default:
		return 0, fmt.Errorf("unknown puzzle part %d (must be 1 or 2)", part)
	}
}
