// Package app wires configuration, logging, metrics and the evaluator into
// the fraccalc command and selects the mode to run.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agbru/fraccalc/internal/calc"
	"github.com/agbru/fraccalc/internal/cli"
	"github.com/agbru/fraccalc/internal/config"
	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/logging"
	"github.com/agbru/fraccalc/internal/metrics"
	"github.com/agbru/fraccalc/internal/server"
	"github.com/agbru/fraccalc/internal/ui"
)

// Application represents the fraccalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In supplies the REPL and "-" batch input. It defaults to os.Stdin.
	In io.Reader

	logger    logging.Logger
	metrics   *metrics.Metrics
	evaluator *calc.Evaluator
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "fraccalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter, In: os.Stdin}, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor || !isTerminal(out))
	a.setup()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()
	if a.Config.MetricsAddr != "" {
		srv := server.New(a.Config.MetricsAddr, a.evaluator, a.metrics, a.logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				a.logger.Error("metrics server stopped", err)
				fmt.Fprintf(a.ErrWriter, "%sWarning: %v%s\n", ui.ColorYellow(), err, ui.ColorReset())
			}
		}()
	}

	switch {
	case a.Config.REPL:
		return a.runREPL(ctx, out)
	case a.Config.InputFile != "":
		return a.runInputFile(ctx, out)
	case len(a.Config.Exprs) > 0:
		a.logger.Debug("mode selected", logging.String("mode", "expr"), logging.Int("count", len(a.Config.Exprs)))
		return a.runBatch(ctx, out, a.Config.Exprs, false)
	case isTerminal(a.In):
		return a.runREPL(ctx, out)
	default:
		a.logger.Debug("mode selected", logging.String("mode", "stdin"))
		return a.runReader(ctx, out, a.In)
	}
}

// setup configures logging and builds the metrics registry and the
// evaluator shared by every mode.
func (a *Application) setup() {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if a.ErrWriter == nil {
		a.ErrWriter = os.Stderr
	}
	if a.In == nil {
		a.In = os.Stdin
	}
	a.logger = logging.NewConsoleLogger(a.ErrWriter, "app", !isTerminal(a.ErrWriter))

	a.metrics = metrics.New()
	a.evaluator = calc.NewEvaluator(
		calc.WithRecorder(a.metrics),
		calc.WithLogger(a.logger),
	)
	if a.Config.ConfigFile != "" {
		a.logger.Debug("configuration file loaded", logging.String("path", a.Config.ConfigFile))
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive calculator on a.In.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	a.logger.Debug("mode selected", logging.String("mode", "repl"))
	repl := cli.NewREPL(a.evaluator, cli.REPLConfig{
		Timeout: a.Config.Timeout,
		Decimal: a.Config.Decimal,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.SetStatusSource(a.metrics)
	repl.Start(ctx)
	if errors.Is(ctx.Err(), context.Canceled) {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && ui.IsTerminal(f)
}
