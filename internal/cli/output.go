// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayResults], [DisplayBatchSummary].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatResult], [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fraccalc/internal/calc"
	"github.com/agbru/fraccalc/internal/format"
	"github.com/agbru/fraccalc/internal/orchestration"
	"github.com/agbru/fraccalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Quiet prints bare results, one per line.
	Quiet bool
	// Decimal adds a decimal rendering with this many places when positive.
	Decimal int
	// OutputFile is the path to save results to (empty for no file output).
	OutputFile string
}

// FormatResult returns the result text. Non-integral fractions are followed
// by "≈ d" when decimalPlaces is positive.
func FormatResult(res calc.Result, decimalPlaces int) string {
	s := res.String()
	if !res.IsBool && decimalPlaces > 0 && res.Value.Den() != 1 {
		s += " ≈ " + format.Decimal(res.Value, decimalPlaces)
	}
	return s
}

// FormatQuietResult formats a result for scripting: the bare fraction or bool.
func FormatQuietResult(res calc.Result) string {
	return res.String()
}

// DisplayResult writes one successful result.
func DisplayResult(out io.Writer, res calc.Result, config OutputConfig) {
	if config.Quiet {
		fmt.Fprintln(out, FormatQuietResult(res))
		return
	}
	color := ui.ColorBold() + ui.ColorBlue()
	if res.IsBool {
		color = ui.ColorYellow()
		if res.Bool {
			color = ui.ColorGreen()
		}
	}
	fmt.Fprintf(out, "%s%s%s = %s%s%s\n",
		ui.ColorGrey(), res.Expr, ui.ColorReset(),
		color, FormatResult(res, config.Decimal), ui.ColorReset())
}

// DisplayError writes a failed expression. In quiet mode the message is
// unadorned so it can be parsed.
func DisplayError(out io.Writer, expr string, err error, config OutputConfig) {
	if config.Quiet {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "%s%s%s: %sError: %v%s\n",
		ui.ColorGrey(), expr, ui.ColorReset(), ui.ColorRed(), err, ui.ColorReset())
}

// DisplayResults writes every batch result in input order. Results go to out
// and failures to errOut.
func DisplayResults(out, errOut io.Writer, results []orchestration.ExpressionResult, config OutputConfig) {
	for _, r := range results {
		if r.Err != nil {
			DisplayError(errOut, r.Expr, r.Err, config)
			continue
		}
		DisplayResult(out, r.Result, config)
	}
}

// DisplayBatchSummary writes the success count and the elapsed time.
func DisplayBatchSummary(out io.Writer, summary orchestration.Summary, elapsed time.Duration) {
	status := ui.ColorGreen() + "Success" + ui.ColorReset()
	if summary.Failed > 0 {
		status = fmt.Sprintf("%s%d failed%s", ui.ColorRed(), summary.Failed, ui.ColorReset())
	}
	fmt.Fprintf(out, "\n%d/%d expressions evaluated in %s%s%s. Status: %s.\n",
		summary.Succeeded, summary.Total,
		ui.ColorYellow(), format.FormatExecutionDuration(elapsed), ui.ColorReset(), status)
}

// WriteResultsToFile writes results to config.OutputFile, one
// "expr = result" line per expression, with failures as "expr: error".
func WriteResultsToFile(results []orchestration.ExpressionResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# fraccalc results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Expressions: %d\n\n", len(results))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(file, "%s: error: %v\n", r.Expr, r.Err)
			continue
		}
		fmt.Fprintf(file, "%s = %s\n", r.Expr, FormatResult(r.Result, config.Decimal))
	}
	return file.Close()
}
