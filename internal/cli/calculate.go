package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fraccalc/internal/config"
	"github.com/agbru/fraccalc/internal/ui"
)

// PrintExecutionConfig displays the batch about to run: how many expressions,
// the worker limit and the timeout.
func PrintExecutionConfig(cfg config.AppConfig, count int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%d%s expression(s) with %s%d%s worker(s) and a timeout of %s%s%s.\n",
		ui.ColorMagenta(), count, ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.Decimal > 0 {
		fmt.Fprintf(out, "Decimal approximations: %s%d%s places.\n", ui.ColorCyan(), cfg.Decimal, ui.ColorReset())
	}
	fmt.Fprintf(out, "\n--- Results ---\n")
}
