// Package config parses and validates the fraccalc command line.
//
// Values are resolved with the priority:
// CLI flags > FRACCALC_* environment variables > TOML config file > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/logging"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "FRACCALC_"

const (
	// DefaultTimeout bounds a whole run, batch or single expression.
	DefaultTimeout = 1 * time.Minute
	// MaxDecimalPlaces is the largest accepted value for --decimal.
	MaxDecimalPlaces = 30
)

// Supported shells for --completion.
var completionShells = []string{"bash", "zsh", "fish", "powershell", "ps"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Exprs holds expressions given with -e/--expr. Positional arguments are
	// joined with spaces and appended as one more expression.
	Exprs []string
	// InputFile names a file of expressions, one per line. "-" reads stdin.
	InputFile string
	// OutputFile, when set, also writes the results to this file.
	OutputFile string
	// REPL starts the interactive calculator.
	REPL bool
	// Quiet prints bare results only.
	Quiet bool
	// Decimal, when positive, adds a decimal rendering with that many places.
	Decimal int
	// Workers caps the number of expressions evaluated concurrently.
	Workers int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// LogLevel is one of debug, info, warn, error (empty means warn).
	LogLevel string
	// NoColor disables ANSI colors in the output.
	NoColor bool
	// Completion selects a shell to print a completion script for.
	Completion string
	// ConfigFile is an optional TOML file with default values.
	ConfigFile string
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, "; ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// ParseConfig parses the command-line arguments and returns the resolved
// configuration. flag.ErrHelp is returned unchanged when -h is given so the
// caller can exit cleanly.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [expression]\n\n", programName)
		fmt.Fprintln(errorWriter, "Evaluates exact fraction expressions such as \"1/2 + 1/3\".")
		fmt.Fprintln(errorWriter)
		fmt.Fprintln(errorWriter, "Flags:")
		fs.PrintDefaults()
	}

	config := AppConfig{
		Workers: runtime.GOMAXPROCS(0),
		Timeout: DefaultTimeout,
	}
	var exprs stringList
	fs.Var(&exprs, "e", "Expression to evaluate (repeatable; shorthand).")
	fs.Var(&exprs, "expr", "Expression to evaluate (repeatable).")
	fs.StringVar(&config.InputFile, "input", "", "File of expressions, one per line (\"-\" for stdin).")
	fs.StringVar(&config.InputFile, "i", "", "File of expressions (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Also write results to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file (shorthand).")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive calculator.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Print bare results only (shorthand).")
	fs.IntVar(&config.Decimal, "decimal", 0, "Also print results as decimals with N places (0 disables).")
	fs.IntVar(&config.Workers, "workers", config.Workers, "Maximum number of expressions evaluated concurrently.")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Maximum duration of the whole run.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", "", "Log level: debug, info, warn or error.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")
	fs.StringVar(&config.ConfigFile, "config", "", "TOML file with default settings.")
	// Declared so -V/--version is accepted; handled before parsing.
	fs.Bool("version", false, "Print version information and exit.")
	fs.Bool("V", false, "Print version information and exit (shorthand).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	config.Exprs = exprs
	if fs.NArg() > 0 {
		config.Exprs = append(config.Exprs, strings.Join(fs.Args(), " "))
	}

	fromEnv := applyEnvOverrides(&config, fs)
	if config.ConfigFile != "" {
		if err := applyFileOverrides(&config, fs, fromEnv); err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, apperrors.NewConfigError("%v", err)
		}
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if c.Decimal < 0 || c.Decimal > MaxDecimalPlaces {
		return apperrors.NewConfigError("decimal places must be between 0 and %d, got %d", MaxDecimalPlaces, c.Decimal)
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.REPL && (len(c.Exprs) > 0 || c.InputFile != "" || c.OutputFile != "") {
		return apperrors.NewConfigError("--repl cannot be combined with expressions, --input or --output")
	}
	if c.InputFile != "" && len(c.Exprs) > 0 {
		return apperrors.NewConfigError("--input cannot be combined with expressions")
	}
	if c.Completion != "" && !isCompletionShell(c.Completion) {
		return apperrors.NewConfigError("unsupported completion shell %q (want one of %s)",
			c.Completion, strings.Join(completionShells, ", "))
	}
	return nil
}

func isCompletionShell(shell string) bool {
	shell = strings.ToLower(shell)
	for _, s := range completionShells {
		if s == shell {
			return true
		}
	}
	return false
}
