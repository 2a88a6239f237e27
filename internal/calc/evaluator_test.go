package calc

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/fraction"
)

// recordingRecorder collects Observe calls.
type recordingRecorder struct {
	mu    sync.Mutex
	ops   []string
	fails int
}

func (r *recordingRecorder) Observe(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	if err != nil {
		r.fails++
	}
}

func TestEvaluate_Values(t *testing.T) {
	t.Parallel()
	tests := []struct {
		expr   string
		want   fraction.Fraction
		wantOp string
	}{
		{"3/4", fraction.New(3, 4), "value"},
		{"6/8", fraction.New(3, 4), "value"},
		{"0.25", fraction.New(1, 4), "value"},
		{"unity", fraction.Unity(), "value"},
		{"ZERO", fraction.Zero(), "value"},
		{"1/2 + 1/3", fraction.New(5, 6), "add"},
		{"1/2 - 1/3", fraction.New(1, 6), "sub"},
		{"2/3 * 3/4", fraction.New(1, 2), "mul"},
		{"1/2 / 1/4", fraction.New(2, 1), "div"},
		{"7/2 % 1", fraction.New(1, 2), "mod"},
		{"1 / 2", fraction.New(1, 2), "div"},
		{"1/2 - -1/2", fraction.Unity(), "sub"},
		{"- 3/4", fraction.New(-3, 4), "neg"},
		{"+ 3/4", fraction.New(3, 4), "plus"},
		{"! 3/4", fraction.New(4, 3), "recip"},
		{"!3/4", fraction.New(4, 3), "recip"},
		{"recip -2", fraction.New(-1, 2), "recip"},
		{"++ 3/4", fraction.New(7, 4), "inc"},
		{"inc 3/4", fraction.New(7, 4), "inc"},
		{"-- 3/4", fraction.New(-1, 4), "dec"},
		{"DEC 1", fraction.Zero(), "dec"},
	}
	e := NewEvaluator()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			res, err := e.Evaluate(context.Background(), tt.expr)
			require.NoError(t, err)
			require.False(t, res.IsBool)
			require.Equal(t, tt.want, res.Value)
			require.Equal(t, tt.wantOp, res.Op)
			require.Equal(t, tt.expr, res.Expr)
		})
	}
}

func TestEvaluate_Relational(t *testing.T) {
	t.Parallel()
	tests := []struct {
		expr string
		want bool
	}{
		{"2/4 == 1/2", true},
		{"2/4 != 1/2", false},
		{"1/3 < 1/2", true},
		{"1/2 <= 1/2", true},
		{"-1/2 > 1/3", false},
		{"unity >= zero", true},
	}
	e := NewEvaluator()
	for _, tt := range tests {
		res, err := e.Evaluate(context.Background(), tt.expr)
		require.NoError(t, err, tt.expr)
		require.True(t, res.IsBool, tt.expr)
		require.Equal(t, tt.want, res.Bool, tt.expr)
	}
}

func TestEvaluate_ArithmeticErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		expr   string
		target error
	}{
		{"1/2 / 0", fraction.ErrDivideByZero},
		{"1/2 % zero", fraction.ErrDivideByZero},
		{"! 0", fraction.ErrUndefinedReciprocal},
		{"recip zero", fraction.ErrUndefinedReciprocal},
	}
	e := NewEvaluator()
	for _, tt := range tests {
		_, err := e.Evaluate(context.Background(), tt.expr)
		require.ErrorIs(t, err, tt.target, tt.expr)

		var calcErr apperrors.CalculationError
		require.ErrorAs(t, err, &calcErr, tt.expr)
		require.Equal(t, tt.expr, calcErr.Expr)
		require.Equal(t, apperrors.ExitErrorArithmetic, apperrors.ExitCodeFor(err))
	}
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	t.Parallel()
	tests := []string{
		"",
		"   ",
		"abc",
		"1/0",
		"1/2 +",
		"1/2 ^ 1/3",
		"sqrt 4",
		"1 + 2 + 3",
		"+",
		"1/2 + *",
	}
	e := NewEvaluator()
	for _, expr := range tests {
		_, err := e.Evaluate(context.Background(), expr)
		var valErr apperrors.ValidationError
		require.ErrorAs(t, err, &valErr, "expr %q", expr)
		require.Equal(t, apperrors.ExitErrorInput, apperrors.ExitCodeFor(err))
	}

	_, err := e.Evaluate(context.Background(), "1/0 + 1")
	require.ErrorIs(t, err, fraction.ErrZeroDenominator)
}

func TestEvaluate_Ans(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()
	require.Equal(t, fraction.Zero(), e.Ans())

	res, err := e.Evaluate(context.Background(), "1/2 + 1/4")
	require.NoError(t, err)
	require.Equal(t, fraction.Zero(), e.Ans(), "Evaluate must not update ans")

	e.SetAns(res.Value)
	res, err = e.Evaluate(context.Background(), "ans * 4")
	require.NoError(t, err)
	require.Equal(t, fraction.New(3, 1), res.Value)
}

func TestEvaluate_CanceledContext(t *testing.T) {
	t.Parallel()
	rec := &recordingRecorder{}
	e := NewEvaluator(WithRecorder(rec))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Evaluate(ctx, "1/2 + 1/2")
	require.True(t, errors.Is(err, context.Canceled))
	require.Equal(t, []string{"canceled"}, rec.ops)
}

// cancelAfterFirstCheck is a context that reports cancellation from its
// second Err call on, simulating a deadline that passes mid-evaluation.
type cancelAfterFirstCheck struct {
	context.Context
	mu    sync.Mutex
	calls int
}

func (c *cancelAfterFirstCheck) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls > 1 {
		return context.DeadlineExceeded
	}
	return nil
}

func TestEvaluate_ContextExpiresDuringRemainder(t *testing.T) {
	t.Parallel()
	rec := &recordingRecorder{}
	e := NewEvaluator(WithRecorder(rec))

	ctx := &cancelAfterFirstCheck{Context: context.Background()}
	_, err := e.Evaluate(ctx, "1000000 % 1/3")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, apperrors.ExitErrorTimeout, apperrors.ExitCodeFor(err))
	require.Equal(t, []string{"canceled"}, rec.ops)
}

func TestEvaluate_LargeRemainder(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()

	res, err := e.Evaluate(context.Background(), "100000000000000000 % 7")
	require.NoError(t, err)
	require.Equal(t, fraction.New(5, 1), res.Value)

	_, err = e.Evaluate(context.Background(), "300000000000000 % 200000000000000")
	require.ErrorIs(t, err, fraction.ErrOutOfRange)
	require.Equal(t, apperrors.ExitErrorArithmetic, apperrors.ExitCodeFor(err))
}

func TestEvaluate_IntegerOutOfRange(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()

	_, err := e.Evaluate(context.Background(), "99999999999999999999 + 1")
	require.Error(t, err)
	require.Equal(t, apperrors.ExitErrorInput, apperrors.ExitCodeFor(err))
}

func TestEvaluate_RecorderAndTracer(t *testing.T) {
	t.Parallel()
	rec := &recordingRecorder{}
	e := NewEvaluator(
		WithRecorder(rec),
		WithTracerProvider(noop.NewTracerProvider()),
		WithLogger(nil),
	)

	_, _ = e.Evaluate(context.Background(), "1/2 + 1/3")
	_, _ = e.Evaluate(context.Background(), "1/2 / 0")
	_, _ = e.Evaluate(context.Background(), "nonsense")

	require.Equal(t, []string{"add", "div", "invalid"}, rec.ops)
	require.Equal(t, 2, rec.fails)
}

func TestResult_String(t *testing.T) {
	t.Parallel()
	require.Equal(t, "5 / 6", Result{Value: fraction.New(5, 6)}.String())
	require.Equal(t, "true", Result{Bool: true, IsBool: true}.String())
}

func TestOperators(t *testing.T) {
	t.Parallel()
	unary, binary := Operators()
	for _, op := range unary {
		_, ok := unaryOps[op]
		require.True(t, ok, "unary %q not registered", op)
	}
	for _, op := range binary {
		_, ok := binaryOps[op]
		require.True(t, ok, "binary %q not registered", op)
	}
	require.Len(t, unaryOps, len(unary))
	require.Len(t, binaryOps, len(binary))
}
