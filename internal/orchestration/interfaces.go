package orchestration

import (
	"context"
	"time"

	"github.com/agbru/fraccalc/internal/calc"
)

// Evaluator evaluates a single expression. *calc.Evaluator implements it.
type Evaluator interface {
	Evaluate(ctx context.Context, expr string) (calc.Result, error)
}

// ExpressionResult is the outcome of one line of a batch.
// It serves as the shared domain type between orchestration and presentation layers.
type ExpressionResult struct {
	// Index is the zero-based position of the expression in the batch.
	Index int
	// Expr is the expression text.
	Expr string
	// Result holds the value when Err is nil.
	Result calc.Result
	// Duration is the time taken to evaluate the expression.
	Duration time.Duration
	// Err is the evaluation error, or the cancellation cause for lines that
	// were never started.
	Err error
}

// ProgressReporter displays batch progress.
// This interface keeps spinners and other UI concerns out of the
// orchestration layer.
type ProgressReporter interface {
	// Start is called once before any expression is evaluated.
	Start(total int)
	// Advance is called after each expression completes, with the number of
	// expressions done so far. It may be called from several goroutines.
	Advance(done, total int)
	// Stop is called once after the batch has finished.
	Stop()
}

// NullProgressReporter is a no-op implementation of ProgressReporter,
// used for quiet mode and tests.
type NullProgressReporter struct{}

// Start does nothing.
func (NullProgressReporter) Start(int) {}

// Advance does nothing.
func (NullProgressReporter) Advance(int, int) {}

// Stop does nothing.
func (NullProgressReporter) Stop() {}

// BatchObserver receives the wall time of each batch. *metrics.Metrics
// implements it.
type BatchObserver interface {
	ObserveBatch(d time.Duration)
}
