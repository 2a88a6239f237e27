// Package format holds the text formatting helpers shared by the CLI and the
// REPL: durations, batch progress bars and decimal renderings of fractions.
package format
