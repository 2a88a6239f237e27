package orchestration

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fraccalc/internal/errors"
)

// Option configures EvaluateAll.
type Option func(*batchOptions)

type batchOptions struct {
	progress ProgressReporter
	observer BatchObserver
}

// WithProgress reports progress to r.
func WithProgress(r ProgressReporter) Option {
	return func(o *batchOptions) {
		if r != nil {
			o.progress = r
		}
	}
}

// WithBatchObserver records the batch duration in obs.
func WithBatchObserver(obs BatchObserver) Option {
	return func(o *batchOptions) { o.observer = obs }
}

// EvaluateAll evaluates exprs concurrently with at most workers goroutines
// and returns one result per expression, in input order.
//
// Arithmetic and syntax errors are recorded in the matching result and do
// not stop the batch. Cancellation of ctx does: expressions not yet started
// report the context error.
func EvaluateAll(ctx context.Context, ev Evaluator, exprs []string, workers int, opts ...Option) []ExpressionResult {
	o := batchOptions{progress: NullProgressReporter{}}
	for _, opt := range opts {
		opt(&o)
	}
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	results := make([]ExpressionResult, len(exprs))
	started := make([]bool, len(exprs))
	var completed atomic.Int64

	o.progress.Start(len(exprs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, expr := range exprs {
		if gctx.Err() != nil {
			break
		}
		idx, text := i, expr
		started[idx] = true
		g.Go(func() error {
			t0 := time.Now()
			res, err := ev.Evaluate(gctx, text)
			results[idx] = ExpressionResult{
				Index: idx, Expr: text, Result: res, Duration: time.Since(t0), Err: err,
			}
			o.progress.Advance(int(completed.Add(1)), len(exprs))
			if apperrors.IsContextError(err) {
				return err
			}
			return nil
		})
	}
	waitErr := g.Wait()
	o.progress.Stop()

	cause := ctx.Err()
	if cause == nil {
		cause = waitErr
	}
	if cause == nil {
		cause = context.Canceled
	}
	for i, expr := range exprs {
		if !started[i] {
			results[i] = ExpressionResult{Index: i, Expr: expr, Err: cause}
		}
	}

	if o.observer != nil {
		o.observer.ObserveBatch(time.Since(start))
	}
	return results
}

// Summary aggregates a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	// FirstErr is the error of the lowest-indexed failed expression.
	FirstErr error
}

// Summarize counts successes and failures.
func Summarize(results []ExpressionResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			if s.FirstErr == nil {
				s.FirstErr = r.Err
			}
			continue
		}
		s.Succeeded++
	}
	return s
}

// ExitCode maps a batch to a process exit status. Cancellation wins over
// expression errors, which are reported through the first failure.
func ExitCode(results []ExpressionResult) int {
	for _, r := range results {
		if apperrors.IsContextError(r.Err) {
			return apperrors.ExitCodeFor(r.Err)
		}
	}
	return apperrors.ExitCodeFor(Summarize(results).FirstErr)
}

// ReadExpressions reads one expression per line from r. Blank lines and
// lines starting with '#' are skipped.
func ReadExpressions(r io.Reader) ([]string, error) {
	var exprs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.WrapError(err, "reading expressions")
	}
	if len(exprs) == 0 {
		return nil, apperrors.ValidationError{Field: "input", Message: "no expressions found"}
	}
	return exprs, nil
}
