package calc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/fraction"
	"github.com/agbru/fraccalc/internal/logging"
)

const tracerName = "github.com/agbru/fraccalc/internal/calc"

// Recorder observes every evaluation. op is the operator label and err the
// evaluation error, nil on success.
type Recorder interface {
	Observe(op string, err error)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, error) {}

// Evaluator parses and evaluates expressions. It is safe for concurrent use.
// The value of ans is owned by the caller: Evaluate never updates it.
type Evaluator struct {
	tracer   trace.Tracer
	recorder Recorder
	logger   logging.Logger

	mu  sync.RWMutex
	ans fraction.Fraction
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRecorder sets the metrics hook.
func WithRecorder(r Recorder) Option {
	return func(e *Evaluator) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithTracerProvider sets the provider spans are created from.
// The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Evaluator) {
		if tp != nil {
			e.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithLogger sets the logger used for debug traces of each evaluation.
func WithLogger(l logging.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEvaluator returns an Evaluator with ans set to zero.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		tracer:   otel.Tracer(tracerName),
		recorder: nopRecorder{},
		logger:   logging.NewLogger(io.Discard, "calc"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ans returns the value the ans keyword currently refers to.
func (e *Evaluator) Ans() fraction.Fraction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ans
}

// SetAns changes the value of the ans keyword.
func (e *Evaluator) SetAns(f fraction.Fraction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ans.Set(&f)
}

// Evaluate parses and evaluates expr.
//
// Malformed input yields an apperrors.ValidationError; an arithmetic failure
// (division by zero, reciprocal of zero) yields an apperrors.CalculationError
// wrapping the fraction package error. The context is checked before any work
// is done and is passed on to operators that loop, so a long remainder
// computation stops with the context's error.
func (e *Evaluator) Evaluate(ctx context.Context, expr string) (res Result, err error) {
	ctx, span := e.tracer.Start(ctx, "calc.Evaluate",
		trace.WithAttributes(attribute.String("calc.expr", expr)))
	op := "invalid"
	defer func() {
		e.recorder.Observe(op, err)
		span.SetAttributes(attribute.String("calc.op", op))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("calc.result", res.String()))
		}
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		op = "canceled"
		return Result{Expr: expr}, err
	}

	tokens := strings.Fields(expr)
	res = Result{Expr: expr}
	switch len(tokens) {
	case 1:
		res, op, err = e.evalSingle(expr, tokens[0])
	case 2:
		res, op, err = e.evalUnary(expr, tokens[0], tokens[1])
	case 3:
		res, op, err = e.evalBinary(ctx, expr, tokens[0], tokens[1], tokens[2])
	default:
		return res, invalid(expr, "expected OPERAND, UNARY OPERAND or OPERAND OP OPERAND", nil)
	}
	if err == nil {
		e.logger.Debug("expression evaluated",
			logging.String("expr", expr), logging.String("op", op), logging.String("result", res.String()))
	}
	return res, err
}

func (e *Evaluator) evalSingle(expr, tok string) (Result, string, error) {
	// "!3/4" is accepted as shorthand for "! 3/4".
	if rest, ok := strings.CutPrefix(tok, "!"); ok && rest != "" {
		return e.evalUnary(expr, "!", rest)
	}
	x, err := e.operand(expr, tok)
	if err != nil {
		return Result{Expr: expr}, "invalid", err
	}
	return Result{Expr: expr, Op: "value", Value: x}, "value", nil
}

func (e *Evaluator) evalUnary(expr, opTok, operandTok string) (Result, string, error) {
	uop, ok := unaryOps[strings.ToLower(opTok)]
	if !ok {
		return Result{Expr: expr}, "invalid", invalid(expr, fmt.Sprintf("unknown unary operator %q", opTok), nil)
	}
	x, err := e.operand(expr, operandTok)
	if err != nil {
		return Result{Expr: expr}, uop.label, err
	}
	v, err := uop.apply(x)
	if err != nil {
		return Result{Expr: expr, Op: uop.label}, uop.label, apperrors.CalculationError{Expr: expr, Cause: err}
	}
	return Result{Expr: expr, Op: uop.label, Value: v}, uop.label, nil
}

func (e *Evaluator) evalBinary(ctx context.Context, expr, lhs, opTok, rhs string) (Result, string, error) {
	bop, ok := binaryOps[opTok]
	if !ok {
		return Result{Expr: expr}, "invalid", invalid(expr, fmt.Sprintf("unknown operator %q", opTok), nil)
	}
	x, err := e.operand(expr, lhs)
	if err != nil {
		return Result{Expr: expr}, bop.label, err
	}
	y, err := e.operand(expr, rhs)
	if err != nil {
		return Result{Expr: expr}, bop.label, err
	}
	if bop.compare != nil {
		return Result{Expr: expr, Op: bop.label, Bool: bop.compare(x, y), IsBool: true}, bop.label, nil
	}
	v, err := bop.arith(ctx, x, y)
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil && errors.Is(err, ctxErr) {
		return Result{Expr: expr}, "canceled", ctxErr
	}
	if err != nil {
		return Result{Expr: expr, Op: bop.label}, bop.label, apperrors.CalculationError{Expr: expr, Cause: err}
	}
	return Result{Expr: expr, Op: bop.label, Value: v}, bop.label, nil
}

// operand resolves a keyword or parses a literal.
func (e *Evaluator) operand(expr, tok string) (fraction.Fraction, error) {
	switch strings.ToLower(tok) {
	case "unity":
		return fraction.Unity(), nil
	case "zero":
		return fraction.Zero(), nil
	case "ans":
		return e.Ans(), nil
	}
	if isOperatorToken(tok) {
		return fraction.Fraction{}, invalid(expr, fmt.Sprintf("operator %q where an operand was expected", tok), nil)
	}
	f, err := fraction.Parse(tok)
	if err != nil {
		var pe *fraction.ParseError
		msg := err.Error()
		if errors.As(err, &pe) {
			msg = fmt.Sprintf("bad operand %q: %v", tok, pe.Err)
		}
		return fraction.Fraction{}, invalid(expr, msg, err)
	}
	return f, nil
}

func invalid(expr, msg string, cause error) error {
	return apperrors.ValidationError{Field: expr, Message: msg, Cause: cause}
}
