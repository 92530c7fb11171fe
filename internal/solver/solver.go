// Package solver runs the battery bank selection over a whole puzzle input
// and sums the joltages.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/joltage/internal/bank"
	"github.com/fyrsmithlabs/joltage/internal/logging"
)

// ErrNoBanks is returned by Run for an input without a single bank.
var ErrNoBanks = errors.New("solver: no banks in input")

// Policy decides what happens to a run when one bank cannot be solved.
type Policy string

const (
	// PolicyAbort fails the run with the error of the earliest bad line.
	PolicyAbort Policy = "abort"
	// PolicySkip leaves bad banks out of the sum and reports them as skipped.
	PolicySkip Policy = "skip"
)

// Options configures a Solver.
type Options struct {
	Digits    int
	Workers   int
	OnInvalid Policy
}

// Validate checks Options for errors.
func (o Options) Validate() error {
	if o.Digits < 1 {
		return fmt.Errorf("digits must be >= 1, got %d", o.Digits)
	}
	if o.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", o.Workers)
	}
	if o.OnInvalid != PolicyAbort && o.OnInvalid != PolicySkip {
		return fmt.Errorf("unknown invalid-bank policy %q", o.OnInvalid)
	}
	return nil
}

// BankError ties a bank failure to its 1-based input line.
type BankError struct {
	Line int
	Err  error
}

func (e *BankError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *BankError) Unwrap() error { return e.Err }

// BankResult is the outcome for one input line.
type BankResult struct {
	Line      int
	Selection bank.Selection
	Value     *big.Int // nil when Err is set
	Err       error
}

// Result aggregates a run. Banks holds one entry per input line, in order.
type Result struct {
	Digits  int
	Solved  int
	Skipped int
	Sum     *big.Int
	Banks   []BankResult
}

// Solver evaluates banks with a fixed battery count.
type Solver struct {
	opts    Options
	logger  *logging.Logger
	metrics *Metrics
}

// New creates a Solver. logger and metrics may be nil.
func New(opts Options, logger *logging.Logger, metrics *Metrics) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid solver options: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Solver{
		opts:    opts,
		logger:  logger.Named("solver"),
		metrics: metrics,
	}, nil
}

// SolveLine parses one raw line and selects its best batteries.
func (s *Solver) SolveLine(ctx context.Context, line string) (bank.Selection, error) {
	_, sel, err := s.solve(ctx, line)
	return sel, err
}

func (s *Solver) solve(ctx context.Context, line string) (bank.Sequence, bank.Selection, error) {
	seq, err := bank.ParseLine(line)
	if err != nil {
		return nil, nil, err
	}

	sel, err := bank.SelectMax(seq, s.opts.Digits)
	if err != nil {
		return seq, nil, err
	}

	if s.logger.Enabled(logging.TraceLevel) {
		s.logger.Trace(ctx, "selection",
			zap.Stringer("bank", seq),
			zap.Ints("indices", sel.Indices()),
		)
	}
	return seq, sel, nil
}

// Run solves every line and sums the joltages. Banks are independent, so up
// to Options.Workers of them are evaluated at once; the sum does not depend
// on evaluation order. Under PolicyAbort the returned error is the one from
// the lowest failing line. Run stops early only when ctx is cancelled.
func (s *Solver) Run(ctx context.Context, lines []string) (*Result, error) {
	if len(lines) == 0 {
		return nil, ErrNoBanks
	}

	start := time.Now()
	defer func() { s.metrics.recordRun(time.Since(start)) }()

	s.logger.Info(ctx, "solving",
		zap.Int("banks", len(lines)),
		zap.Int("digits", s.opts.Digits),
		zap.Int("workers", s.opts.Workers),
	)

	results := make([]BankResult, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, line := range lines {
		i, line := i, line
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.solveBank(gctx, i+1, line)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Digits: s.opts.Digits,
		Sum:    new(big.Int),
		Banks:  results,
	}
	for _, br := range results {
		if br.Err != nil {
			if s.opts.OnInvalid == PolicyAbort {
				return nil, &BankError{Line: br.Line, Err: br.Err}
			}
			res.Skipped++
			s.logger.Warn(ctx, "bank skipped",
				zap.Int("line", br.Line),
				zap.Error(br.Err),
			)
			continue
		}
		res.Solved++
		res.Sum.Add(res.Sum, br.Value)
	}

	s.logger.Info(ctx, "solved",
		zap.Int("solved", res.Solved),
		zap.Int("skipped", res.Skipped),
		zap.Stringer("sum", res.Sum),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (s *Solver) solveBank(ctx context.Context, lineNo int, line string) BankResult {
	start := time.Now()
	seq, sel, err := s.solve(ctx, line)
	elapsed := time.Since(start)

	if err != nil {
		result := "failed"
		if s.opts.OnInvalid == PolicySkip {
			result = "skipped"
		}
		s.metrics.recordBank(result, len(seq), elapsed)
		s.logger.Debug(ctx, "bank rejected", zap.Int("line", lineNo), zap.Error(err))
		return BankResult{Line: lineNo, Err: err}
	}

	value := sel.Int()
	s.metrics.recordBank("solved", len(seq), elapsed)
	s.logger.Debug(ctx, "bank solved",
		zap.Int("line", lineNo),
		zap.Stringer("joltage", value),
	)
	return BankResult{Line: lineNo, Selection: sel, Value: value}
}
