// internal/logging/config.go
package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level    zapcore.Level
	Format   string
	Sampling SamplingConfig
	Caller   CallerConfig
	Fields   map[string]string
}

// SamplingConfig controls log volume reduction. Each level listed in Levels
// gets its own sampler; unlisted levels are never sampled. Only debug, info
// and warn can be listed: zap's sampler passes trace through untouched.
type SamplingConfig struct {
	Enabled bool
	Tick    time.Duration
	Levels  map[zapcore.Level]LevelSamplingConfig
}

// LevelSamplingConfig defines sampling rate per level.
type LevelSamplingConfig struct {
	Initial    int
	Thereafter int
}

// CallerConfig controls caller information in logs. Skip counts the Logger
// frames between the call site and zap (the level method and log).
type CallerConfig struct {
	Enabled bool
	Skip    int
}

// NewDefaultConfig returns config suited to an interactive CLI run. A run logs
// at most a few lines per bank, so sampling is off unless asked for.
func NewDefaultConfig() *Config {
	return &Config{
		Level:  zapcore.WarnLevel,
		Format: "console",
		Sampling: SamplingConfig{
			Enabled: false,
			Tick:    time.Second,
			Levels:  DefaultLevelSamplingConfig(),
		},
		Caller: CallerConfig{
			Enabled: false,
			Skip:    2,
		},
		Fields: map[string]string{
			"service": "joltage",
		},
	}
}

// DefaultLevelSamplingConfig thins the per-bank debug lines of large inputs.
// Info and warn carry run summaries and skipped banks and are kept.
func DefaultLevelSamplingConfig() map[zapcore.Level]LevelSamplingConfig {
	return map[zapcore.Level]LevelSamplingConfig{
		zapcore.DebugLevel: {Initial: 200, Thereafter: 10},
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("format must be 'json' or 'console', got %q", c.Format)
	}
	if c.Sampling.Enabled {
		if c.Sampling.Tick <= 0 {
			return fmt.Errorf("sampling tick must be > 0 when sampling enabled")
		}
		for lvl, rate := range c.Sampling.Levels {
			if lvl < zapcore.DebugLevel || lvl >= zapcore.ErrorLevel {
				return fmt.Errorf("level %s cannot be sampled", levelName(lvl))
			}
			if rate.Initial < 1 || rate.Thereafter < 0 {
				return fmt.Errorf("invalid sampling rate for %s: initial %d, thereafter %d", lvl, rate.Initial, rate.Thereafter)
			}
		}
	}
	if c.Caller.Enabled && c.Caller.Skip < 0 {
		return fmt.Errorf("caller skip must be >= 0, got %d", c.Caller.Skip)
	}
	for k, v := range c.Fields {
		if k == "" {
			return fmt.Errorf("field key cannot be empty")
		}
		if v == "" {
			return fmt.Errorf("field %q has empty value", k)
		}
	}
	return nil
}
