// Package harness drives measured trials of (workload, backend) pairs.
// Execution is strictly single-threaded and sequential: one pair runs to
// completion before the next begins, and within a trial Reset precedes
// Populate precedes Measure. Only the hot region is timed.
package harness

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ecsmark/ecsmark/backend"
	"github.com/ecsmark/ecsmark/workload"
)

// Options holds measurement parameters for a single pair.
type Options struct {
	// Trials is the number of measured trials (default 20).
	Trials int
	// Warmup is the number of discarded leading trials.
	Warmup int
	// Verify runs the workload's invariant check after the last trial
	// and records its logical end-state digest.
	Verify bool
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Trials <= 0 {
		o.Trials = 20
	}

	if o.Warmup < 0 {
		o.Warmup = 0
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return o
}

// Run executes one (workload, backend) pair and returns its timing
// distribution. Any error terminates the pair immediately: best-effort
// continuation would produce a score measuring a different amount of
// work than sibling backends, invalidating the comparison.
func Run(
	b backend.Backend,
	w workload.Workload,
	p workload.Params,
	opts Options,
) (Result, error) {
	opts = opts.withDefaults()
	pair := w.Name + "/" + b.Name()

	if err := p.Validate(); err != nil {
		return Result{}, fmt.Errorf("params for %s: %w", pair, err)
	}

	logger := opts.Logger.With(slog.String("pair", pair))
	logger.Info("running pair",
		slog.Int("trials", opts.Trials),
		slog.Int("warmup", opts.Warmup),
	)

	for i := 0; i < opts.Warmup; i++ {
		if _, err := trial(b, w, p); err != nil {
			return Result{}, fmt.Errorf("warmup %s: %w", pair, err)
		}
	}

	samples := make([]time.Duration, 0, opts.Trials)

	for i := 0; i < opts.Trials; i++ {
		elapsed, err := trial(b, w, p)
		if err != nil {
			return Result{}, fmt.Errorf("run %s: %w", pair, err)
		}

		samples = append(samples, elapsed)
	}

	result := newResult(w.Name, b.Name(), samples)
	result.InsertSemantics = b.DuplicateInsert().String()

	if opts.Verify {
		digest, err := w.Check(b, p)
		if err != nil {
			return Result{}, fmt.Errorf("verify %s: %w", pair, err)
		}

		result.Digest = digest
	}

	logger.Info("pair finished",
		slog.Duration("mean", result.Mean),
		slog.Duration("min", result.Min),
		slog.Duration("max", result.Max),
	)

	return result, nil
}

func trial(
	b backend.Backend,
	w workload.Workload,
	p workload.Params,
) (time.Duration, error) {
	if err := w.Setup(b, p); err != nil {
		return 0, fmt.Errorf("setup: %w", err)
	}

	start := time.Now()
	err := w.Hot(b, p)
	elapsed := time.Since(start)

	if err != nil {
		return 0, fmt.Errorf("hot region: %w", err)
	}

	return elapsed, nil
}
