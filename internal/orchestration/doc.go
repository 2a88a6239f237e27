// Package orchestration evaluates batches of independent expressions
// concurrently and aggregates their outcomes. It decouples evaluation from
// presentation via the Evaluator and ProgressReporter interfaces.
package orchestration
