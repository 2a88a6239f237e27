// Package cli provides the command-line presentation of fraccalc: the
// interactive REPL, result output, batch progress and shell completion.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fraccalc/internal/calc"
	"github.com/agbru/fraccalc/internal/config"
	"github.com/agbru/fraccalc/internal/format"
	"github.com/agbru/fraccalc/internal/metrics"
	"github.com/agbru/fraccalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration of each evaluation.
	Timeout time.Duration
	// Decimal is the number of decimal places shown next to results (0 = off).
	Decimal int
}

// StatusSource provides the counters shown by the status command.
// *metrics.Metrics implements it.
type StatusSource interface {
	Snapshot() metrics.Snapshot
}

// REPL represents an interactive fraction calculator session.
type REPL struct {
	config    REPLConfig
	evaluator *calc.Evaluator
	status    StatusSource
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a new REPL instance evaluating with ev.
func NewREPL(ev *calc.Evaluator, config REPLConfig) *REPL {
	return &REPL{
		config:    config,
		evaluator: ev,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// SetStatusSource enables operation counters in the status command.
func (r *REPL) SetStatusSource(s StatusSource) {
	r.status = s
}

// Start runs the session until exit, EOF or cancellation of ctx.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nInterrupted.")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"frac> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || input == "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(ctx, input) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintln(r.out, ui.Banner("fraccalc · exact fraction calculator",
		"Type an expression such as 1/2 + 1/3, or 'help' for commands."))
}

// printHelp displays available commands and the expression grammar.
func (r *REPL) printHelp() {
	unary, binary := calc.Operators()
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<expression>%s   - Evaluate, e.g. 1/2 + 1/3, ! 3/4, 2/4 == 1/2\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sans%s            - Show the last result (usable as an operand)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdecimal <n>%s    - Show n decimal places next to results (0 disables)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s         - Display the session state\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s           - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "%sOperators:%s unary %s; binary %s\n", ui.ColorBold(), ui.ColorReset(),
		strings.Join(unary, " "), strings.Join(binary, " "))
	fmt.Fprintf(r.out, "%sOperands:%s p/q, p, decimals, %s\n", ui.ColorBold(), ui.ColorReset(), strings.Join(calc.Names, ", "))
}

// processCommand parses and executes one line.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])

	switch {
	case cmd == "help" || cmd == "h" || cmd == "?":
		r.printHelp()
	case cmd == "exit" || cmd == "quit":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	case cmd == "ans" && len(parts) == 1:
		fmt.Fprintf(r.out, "ans = %s%s%s\n", ui.ColorCyan(), r.formatValue(calc.Result{Value: r.evaluator.Ans()}), ui.ColorReset())
	case cmd == "decimal":
		r.cmdDecimal(parts[1:])
	case cmd == "status" || cmd == "st":
		r.cmdStatus()
	default:
		r.evaluate(ctx, input)
	}
	return true
}

func (r *REPL) formatValue(res calc.Result) string {
	return FormatResult(res, r.config.Decimal)
}

// evaluate runs one expression and stores value results in ans.
func (r *REPL) evaluate(ctx context.Context, expr string) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	start := time.Now()
	res, err := r.evaluator.Evaluate(ctx, expr)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	if !res.IsBool {
		r.evaluator.SetAns(res.Value)
	}

	color := ui.ColorGreen()
	if res.IsBool && !res.Bool {
		color = ui.ColorYellow()
	}
	fmt.Fprintf(r.out, "= %s%s%s  %s(%s)%s\n",
		color, r.formatValue(res), ui.ColorReset(),
		ui.ColorGrey(), format.FormatExecutionDuration(time.Since(start)), ui.ColorReset())
}

// cmdDecimal handles the "decimal" command.
func (r *REPL) cmdDecimal(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: decimal <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > config.MaxDecimalPlaces {
		fmt.Fprintf(r.out, "%sInvalid value: %s (want 0 to %d)%s\n", ui.ColorRed(), args[0], config.MaxDecimalPlaces, ui.ColorReset())
		return
	}
	r.config.Decimal = n
	if n == 0 {
		fmt.Fprintf(r.out, "Decimal display: %sdisabled%s\n", ui.ColorGreen(), ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Decimal display: %s%d places%s\n", ui.ColorGreen(), n, ui.ColorReset())
}

// cmdStatus displays the current session state.
func (r *REPL) cmdStatus() {
	decimal := "disabled"
	if r.config.Decimal > 0 {
		decimal = fmt.Sprintf("%d places", r.config.Decimal)
	}
	fmt.Fprintf(r.out, "\n%sCurrent session:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  ans:            %s%s%s\n", ui.ColorCyan(), r.evaluator.Ans(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Decimal:        %s%s%s\n", ui.ColorCyan(), decimal, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())

	if r.status != nil {
		snap := r.status.Snapshot()
		fmt.Fprintf(r.out, "  Evaluations:    %s%d%s (%d failed)\n", ui.ColorCyan(), snap.Operations, ui.ColorReset(), snap.Errors)
		ops := make([]string, 0, len(snap.PerOp))
		for op := range snap.PerOp {
			ops = append(ops, op)
		}
		sort.Strings(ops)
		for _, op := range ops {
			fmt.Fprintf(r.out, "    %-12s  %d\n", op, snap.PerOp[op])
		}
		fmt.Fprintf(r.out, "  Heap in use:    %s%.1f KiB%s, %d GC cycles\n",
			ui.ColorCyan(), float64(snap.HeapAlloc)/1024, ui.ColorReset(), snap.NumGC)
		fmt.Fprintf(r.out, "  Uptime:         %s%s%s\n", ui.ColorCyan(), format.FormatExecutionDuration(snap.Uptime), ui.ColorReset())
		if snap.System.MemTotal > 0 {
			fmt.Fprintf(r.out, "  System:         %sCPU %.1f%%, memory %.1f%% of %.1f GiB%s\n",
				ui.ColorCyan(), snap.System.CPUPercent, snap.System.MemPercent,
				float64(snap.System.MemTotal)/(1<<30), ui.ColorReset())
		}
	}
	fmt.Fprintln(r.out)
}
