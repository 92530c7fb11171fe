// Package logging provides structured logging for the joltage CLI.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - JSON or console encoding on stderr, keeping stdout for the answer
//   - Automatic context field injection (run.id, input.path)
//   - Level-aware sampling (errors never sampled)
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	ctx := logging.WithRunID(ctx, uuid.NewString())
//	ctx = logging.WithInputPath(ctx, "input.txt")
//	logger.Info(ctx, "solving", zap.Int("digits", 12))
//
// # Testing
//
// Use TestLogger for test assertions:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "bank skipped", zap.Int("line", 3))
//	tl.AssertLogged(t, zapcore.InfoLevel, "bank skipped")
//	tl.AssertField(t, "bank skipped", "line", int64(3))
package logging
