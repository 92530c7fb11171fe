// internal/logging/sampling.go
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newCore builds the output core. With sampling enabled, every level in
// cfg.Levels is written through its own sampler so a flood of one level never
// eats the budget of another. All other enabled levels are written as is.
func newCore(enc zapcore.Encoder, out zapcore.WriteSyncer, enabled zapcore.LevelEnabler, cfg SamplingConfig) zapcore.Core {
	if !cfg.Enabled || len(cfg.Levels) == 0 {
		return zapcore.NewCore(enc, out, enabled)
	}

	sampled := make(map[zapcore.Level]bool, len(cfg.Levels))
	cores := make([]zapcore.Core, 0, len(cfg.Levels)+1)

	for lvl, rate := range cfg.Levels {
		if lvl < zapcore.DebugLevel || lvl >= zapcore.ErrorLevel {
			continue
		}
		sampled[lvl] = true

		only := onlyLevel(enabled, lvl)
		cores = append(cores, zapcore.NewSamplerWithOptions(
			zapcore.NewCore(enc.Clone(), out, only),
			cfg.Tick,
			rate.Initial,
			rate.Thereafter,
		))
	}

	rest := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return !sampled[l] && enabled.Enabled(l)
	})
	cores = append(cores, zapcore.NewCore(enc.Clone(), out, rest))

	return zapcore.NewTee(cores...)
}

// onlyLevel enables exactly lvl, and only when enabled allows it.
func onlyLevel(enabled zapcore.LevelEnabler, lvl zapcore.Level) zapcore.LevelEnabler {
	return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l == lvl && enabled.Enabled(l)
	})
}
