// Package apperrors defines the structured error types of fraccalc and the
// mapping from errors to process exit codes. It separates configuration
// problems, malformed expressions and arithmetic failures so the command line
// can report each one with its own exit status.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() method where a cause exists, so
// errors.Is() and errors.As() see through them.
package apperrors
