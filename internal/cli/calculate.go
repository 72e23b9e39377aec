package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fencecalc/internal/config"
	"github.com/agbru/fencecalc/internal/fence"
	"github.com/agbru/fencecalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the fence dimensions, timeout, and environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Counting %sW(%d, %d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Posts, cfg.Colors, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	if cfg.LastDigits > 0 {
		fmt.Fprintf(out, "Modular mode: keeping the last %s%d%s decimal digits.\n",
			ui.ColorCyan(), cfg.LastDigits, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single algorithm vs comparison).
//
// Parameters:
//   - calculators: The slice of calculators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(calculators []fence.Calculator, out io.Writer) {
	if len(calculators) == 0 {
		fmt.Fprintf(out, "Execution mode: no algorithm selected.\n")
		return
	}

	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = "Parallel comparison of all algorithms"
	} else {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
