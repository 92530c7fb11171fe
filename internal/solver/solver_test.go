package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/joltage/internal/bank"
	"github.com/fyrsmithlabs/joltage/internal/logging"
)

var sampleBanks = []string{
	"987654321111111",
	"811111111111119",
	"234234234234278",
	"818181911112111",
}

func newTestSolver(t *testing.T, opts Options) (*Solver, *logging.TestLogger, *Metrics) {
	t.Helper()

	tl := logging.NewTestLogger()
	metrics := NewMetrics(prometheus.NewRegistry())

	s, err := New(opts, tl.Logger, metrics)
	require.NoError(t, err)
	return s, tl, metrics
}

func TestRun_SampleInput(t *testing.T) {
	tests := []struct {
		name    string
		digits  int
		workers int
		want    string
	}{
		{name: "part one sequential", digits: 2, workers: 1, want: "357"},
		{name: "part two sequential", digits: 12, workers: 1, want: "3121910778619"},
		{name: "part one parallel", digits: 2, workers: 4, want: "357"},
		{name: "part two parallel", digits: 12, workers: 3, want: "3121910778619"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSolver(t, Options{Digits: tt.digits, Workers: tt.workers, OnInvalid: PolicyAbort})

			res, err := s.Run(context.Background(), sampleBanks)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Sum.String())
			assert.Equal(t, len(sampleBanks), res.Solved)
			assert.Zero(t, res.Skipped)
			assert.Equal(t, tt.digits, res.Digits)
		})
	}
}

func TestRun_ResultsKeepInputOrder(t *testing.T) {
	s, _, _ := newTestSolver(t, Options{Digits: 2, Workers: 4, OnInvalid: PolicyAbort})

	res, err := s.Run(context.Background(), sampleBanks)
	require.NoError(t, err)

	want := []string{"98", "89", "78", "92"}
	require.Len(t, res.Banks, len(want))
	for i, br := range res.Banks {
		assert.Equal(t, i+1, br.Line)
		assert.Equal(t, want[i], br.Value.String())
		assert.Equal(t, want[i], br.Selection.String())
		assert.NoError(t, br.Err)
	}
}

func TestRun_AbortReturnsLowestFailingLine(t *testing.T) {
	lines := []string{"12345", "12a45", "9", ""}
	s, _, metrics := newTestSolver(t, Options{Digits: 2, Workers: 4, OnInvalid: PolicyAbort})

	res, err := s.Run(context.Background(), lines)
	require.Error(t, err)
	assert.Nil(t, res)

	var be *BankError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 2, be.Line)
	assert.True(t, errors.Is(err, bank.ErrFormat))
	assert.Contains(t, err.Error(), "line 2")

	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.BanksTotal.WithLabelValues("failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.BanksTotal.WithLabelValues("solved")))
}

func TestRun_AbortOnShortBank(t *testing.T) {
	s, _, _ := newTestSolver(t, Options{Digits: 12, Workers: 1, OnInvalid: PolicyAbort})

	_, err := s.Run(context.Background(), []string{"987654321111111", "12345"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, bank.ErrInvalidArgument))

	var be *BankError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 2, be.Line)
}

func TestRun_SkipPolicy(t *testing.T) {
	lines := append([]string{"x1", ""}, sampleBanks...)
	s, tl, metrics := newTestSolver(t, Options{Digits: 2, Workers: 2, OnInvalid: PolicySkip})

	res, err := s.Run(context.Background(), lines)
	require.NoError(t, err)
	assert.Equal(t, "357", res.Sum.String())
	assert.Equal(t, 4, res.Solved)
	assert.Equal(t, 2, res.Skipped)
	assert.Error(t, res.Banks[0].Err)
	assert.Nil(t, res.Banks[0].Value)

	tl.AssertLogged(t, zapcore.WarnLevel, "bank skipped")
	tl.AssertField(t, "bank skipped", "line", int64(1))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.BanksTotal.WithLabelValues("skipped")))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.BanksTotal.WithLabelValues("solved")))
}

func TestRun_SkipLogsEveryBank(t *testing.T) {
	lines := make([]string, 250)
	for i := range lines {
		lines[i] = "x"
	}

	tests := []struct {
		name     string
		sampling bool
	}{
		{name: "default logger", sampling: false},
		{name: "sampling enabled", sampling: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := logging.NewDefaultConfig()
			cfg.Format = "json"
			cfg.Sampling.Enabled = tt.sampling

			logger, err := logging.NewLogger(cfg, zapcore.AddSync(&buf))
			require.NoError(t, err)

			s, err := New(Options{Digits: 2, Workers: 4, OnInvalid: PolicySkip}, logger, nil)
			require.NoError(t, err)

			res, err := s.Run(context.Background(), lines)
			require.NoError(t, err)
			assert.Equal(t, len(lines), res.Skipped)
			assert.Equal(t, "0", res.Sum.String())

			assert.Equal(t, len(lines), strings.Count(buf.String(), `"msg":"bank skipped"`))
			assert.Contains(t, buf.String(), `"line":250`)
		})
	}
}

func TestRun_Empty(t *testing.T) {
	s, _, metrics := newTestSolver(t, Options{Digits: 2, Workers: 1, OnInvalid: PolicyAbort})

	for _, lines := range [][]string{nil, {}} {
		res, err := s.Run(context.Background(), lines)
		assert.ErrorIs(t, err, ErrNoBanks)
		assert.Nil(t, res)
	}
	assert.Zero(t, testutil.CollectAndCount(metrics.BanksTotal))
}

func TestRun_ContextCancelled(t *testing.T) {
	s, _, _ := newTestSolver(t, Options{Digits: 2, Workers: 2, OnInvalid: PolicyAbort})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, sampleBanks)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_LargeSelectionsDoNotOverflow(t *testing.T) {
	line := strings.Repeat("9", 40)
	s, _, _ := newTestSolver(t, Options{Digits: 30, Workers: 1, OnInvalid: PolicyAbort})

	res, err := s.Run(context.Background(), []string{line, line})
	require.NoError(t, err)

	one := strings.Repeat("9", 30)
	want := "1" + strings.Repeat("9", 29) + "8"
	assert.Equal(t, one, res.Banks[0].Value.String())
	assert.Equal(t, want, res.Sum.String())
}

func TestRun_LogsCorrelation(t *testing.T) {
	s, tl, _ := newTestSolver(t, Options{Digits: 2, Workers: 1, OnInvalid: PolicyAbort})

	ctx := logging.WithRunID(context.Background(), "run-7")
	_, err := s.Run(ctx, sampleBanks)
	require.NoError(t, err)

	tl.AssertLogged(t, zapcore.InfoLevel, "solved")
	tl.AssertRunCorrelation(t, "solved")
	tl.AssertField(t, "solved", "sum", "357")
	tl.AssertLogged(t, logging.TraceLevel, "selection")
}

func TestSolveLine(t *testing.T) {
	s, _, _ := newTestSolver(t, Options{Digits: 2, Workers: 1, OnInvalid: PolicyAbort})

	sel, err := s.SolveLine(context.Background(), "12491121\n")
	require.NoError(t, err)
	assert.Equal(t, "92", sel.String())

	_, err = s.SolveLine(context.Background(), "1")
	assert.ErrorIs(t, err, bank.ErrInvalidArgument)
}

func TestMetrics_Observations(t *testing.T) {
	s, _, metrics := newTestSolver(t, Options{Digits: 2, Workers: 1, OnInvalid: PolicyAbort})

	_, err := s.Run(context.Background(), sampleBanks)
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RunDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.SelectDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.BankLength))
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero digits", Options{Digits: 0, Workers: 1, OnInvalid: PolicyAbort}},
		{"zero workers", Options{Digits: 2, Workers: 0, OnInvalid: PolicyAbort}},
		{"unknown policy", Options{Digits: 2, Workers: 1, OnInvalid: "retry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.opts, nil, nil)
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestNew_NilLoggerAndMetrics(t *testing.T) {
	s, err := New(Options{Digits: 2, Workers: 1, OnInvalid: PolicySkip}, nil, nil)
	require.NoError(t, err)

	res, err := s.Run(context.Background(), sampleBanks)
	require.NoError(t, err)
	assert.Equal(t, "357", res.Sum.String())
}

func TestBankError(t *testing.T) {
	inner := fmt.Errorf("wrapped: %w", bank.ErrFormat)
	err := &BankError{Line: 9, Err: inner}

	assert.Equal(t, "line 9: wrapped: bank: malformed line", err.Error())
	assert.ErrorIs(t, err, bank.ErrFormat)
}
