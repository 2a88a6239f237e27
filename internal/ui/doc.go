// Package ui provides theme and color support for the fraccalc command line.
// It defines color schemes, exposes ANSI escape code functions for consistent
// styling across the CLI and REPL, and renders the REPL banner with lipgloss.
//
// This package is a shared dependency for packages that need color output,
// keeping presentation concerns out of the evaluation code.
package ui
