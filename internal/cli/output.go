// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Example: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Example: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fencecalc/internal/format"
	"github.com/agbru/fencecalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full result value.
	Verbose bool
	// ShowValue enables the calculated value display when true (disabled by default).
	ShowValue bool
}

// WriteResultToFile writes a calculation result to a file.
//
// Parameters:
//   - result: The calculated coloring count.
//   - n: The number of fence posts.
//   - k: The number of colors.
//   - duration: The calculation duration.
//   - algo: The algorithm name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result *big.Int, n, k uint64, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# Fence Coloring Count Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Posts: %d\n", n)
	fmt.Fprintf(file, "# Colors: %d\n", k)
	fmt.Fprintf(file, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(file, "# Digits: %d\n", len(result.String()))
	fmt.Fprintf(file, "\n")

	// Write result
	fmt.Fprintf(file, "W(%d, %d) =\n%s\n", n, k, result.String())

	return nil
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line result suitable for scripting.
//
// Parameters:
//   - result: The calculated coloring count.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(result *big.Int) string {
	return result.String()
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - result: The calculated coloring count.
func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResult renders a calculation result to the terminal. Large values
// are truncated to their leading and trailing digits unless verbose mode is
// enabled, and the value itself is only shown when showValue is set.
//
// Parameters:
//   - result: The calculated coloring count.
//   - n: The number of fence posts.
//   - k: The number of colors.
//   - duration: The calculation duration.
//   - verbose: Shows the full value regardless of its size.
//   - details: Shows the detailed result analysis section.
//   - showValue: Enables display of the calculated value.
//   - out: The output writer.
func DisplayResult(result *big.Int, n, k uint64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	if result == nil {
		return
	}

	resultStr := result.String()
	numDigits := len(resultStr)

	fmt.Fprintf(out, "\nResult binary size: %s%d bits%s\n",
		ui.ColorCyan(), result.BitLen(), ui.ColorReset())

	if details {
		fmt.Fprintf(out, "\n--- Detailed result analysis ---\n")
		fmt.Fprintf(out, "Calculation time:  %s%s%s\n",
			ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits:  %s%s%s\n",
			ui.ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", numDigits)), ui.ColorReset())
	}

	if !showValue {
		return
	}

	fmt.Fprintf(out, "\n--- Calculated value ---\n")
	if verbose || numDigits <= TruncationLimit {
		fmt.Fprintf(out, "%sW(%d, %d) =%s %s\n",
			ui.ColorBold(), n, k, ui.ColorReset(), format.FormatNumberString(resultStr))
		return
	}

	head := resultStr[:DisplayEdges]
	tail := resultStr[numDigits-DisplayEdges:]
	fmt.Fprintf(out, "%sW(%d, %d) =%s %s...%s (truncated)\n",
		ui.ColorBold(), n, k, ui.ColorReset(), head, tail)
	fmt.Fprintf(out, "Tip: use %s-v%s to display all %s digits.\n",
		ui.ColorGreen(), ui.ColorReset(), format.FormatNumberString(fmt.Sprintf("%d", numDigits)))
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - result: The calculated coloring count.
//   - n: The number of fence posts.
//   - k: The number of colors.
//   - duration: The calculation duration.
//   - algo: The algorithm name.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result *big.Int, n, k uint64, duration time.Duration, algo string, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		// Use standard display
		DisplayResult(result, n, k, duration, config.Verbose, true, config.ShowValue, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(result, n, k, duration, algo, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
