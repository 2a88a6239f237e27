package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agbru/fraccalc/internal/cli"
	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/logging"
	"github.com/agbru/fraccalc/internal/orchestration"
	"github.com/agbru/fraccalc/internal/ui"
)

// runInputFile evaluates the expressions of --input. "-" reads a.In.
func (a *Application) runInputFile(ctx context.Context, out io.Writer) int {
	a.logger.Debug("mode selected", logging.String("mode", "batch"), logging.String("input", a.Config.InputFile))
	if a.Config.InputFile == "-" {
		return a.runReader(ctx, out, a.In)
	}
	f, err := os.Open(a.Config.InputFile)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	defer f.Close()
	return a.runReader(ctx, out, f)
}

// runReader reads one expression per line from r and evaluates them as a batch.
func (a *Application) runReader(ctx context.Context, out io.Writer, r io.Reader) int {
	exprs, err := orchestration.ReadExpressions(r)
	if err != nil {
		a.logger.Error("reading expressions", err)
		fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitCodeFor(err)
	}
	return a.runBatch(ctx, out, exprs, true)
}

// runBatch evaluates exprs under the run timeout, prints the results and
// returns the exit code of the batch. Batches read from input get an
// execution header, a progress spinner and a summary unless quiet.
func (a *Application) runBatch(ctx context.Context, out io.Writer, exprs []string, fromInput bool) int {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	verbose := fromInput && !a.Config.Quiet
	if verbose {
		cli.PrintExecutionConfig(a.Config, len(exprs), out)
	}

	opts := []orchestration.Option{orchestration.WithBatchObserver(a.metrics)}
	if verbose && isTerminal(a.ErrWriter) {
		opts = append(opts, orchestration.WithProgress(cli.NewSpinnerReporter(a.ErrWriter)))
	}

	start := time.Now()
	results := orchestration.EvaluateAll(ctx, a.evaluator, exprs, a.Config.Workers, opts...)
	elapsed := time.Since(start)

	outputCfg := cli.OutputConfig{
		Quiet:      a.Config.Quiet,
		Decimal:    a.Config.Decimal,
		OutputFile: a.Config.OutputFile,
	}
	cli.DisplayResults(out, a.ErrWriter, results, outputCfg)

	summary := orchestration.Summarize(results)
	if verbose {
		cli.DisplayBatchSummary(out, summary, elapsed)
	}
	if summary.Failed > 0 {
		a.logger.Debug("batch finished with failures",
			logging.Int("failed", summary.Failed), logging.Int("total", summary.Total))
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err := apperrors.TimeoutError{Operation: "batch", Limit: a.Config.Timeout}
		a.logger.Error("batch timed out", err)
		fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}

	if err := cli.WriteResultsToFile(results, outputCfg); err != nil {
		a.logger.Error("saving results", err, logging.String("path", outputCfg.OutputFile))
		fmt.Fprintf(a.ErrWriter, "%sError saving results: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	if outputCfg.OutputFile != "" && !a.Config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}

	return orchestration.ExitCode(results)
}
