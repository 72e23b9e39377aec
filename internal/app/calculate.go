package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/fencecalc/internal/cli"
	apperrors "github.com/agbru/fencecalc/internal/errors"
	"github.com/agbru/fencecalc/internal/fence"
	"github.com/agbru/fencecalc/internal/metrics"
	"github.com/agbru/fencecalc/internal/orchestration"
	"github.com/agbru/fencecalc/internal/sysmon"
	"github.com/agbru/fencecalc/internal/ui"
)

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Partial computation mode: last K digits only
	if a.Config.LastDigits > 0 {
		return a.runLastDigits(ctx, out)
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Get calculators to run
	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	collector := metrics.NewMemoryCollector()
	memBefore := collector.Snapshot()

	// Execute calculations
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun,
		a.Config.Posts, a.Config.Colors, a.Config.ToCalculationOptions(), progressReporter, progressOut)

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
	}

	exitCode := a.analyzeResultsWithOutput(results, outputCfg, out)

	if a.Config.Details && !a.Config.Quiet {
		a.printRunDetails(collector.Snapshot(), memBefore, out)
	}

	return exitCode
}

// printRunDetails shows memory and system statistics after a calculation.
func (a *Application) printRunDetails(after, before metrics.MemorySnapshot, out io.Writer) {
	cli.DisplayMemoryStats(after.HeapAlloc, after.TotalAlloc-before.TotalAlloc,
		after.NumGC-before.NumGC, after.PauseTotalNs-before.PauseTotalNs, out)

	stats := sysmon.Sample()
	fmt.Fprintf(out, "\nSystem load: CPU %.1f%%, memory %.1f%%\n", stats.CPUPercent, stats.MemPercent)
}

// runLastDigits computes only the last K decimal digits of W(n, k) using
// modular arithmetic, requiring O(K) memory regardless of n.
func (a *Application) runLastDigits(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	digits := a.Config.LastDigits
	n := a.Config.Posts
	k := a.Config.Colors

	mod := fence.DecimalModulus(digits)

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computing last %d digits of W(%d, %d)...\n", digits, n, k)
	}

	start := time.Now()
	result, err := fence.CountWaysMod(n, k, mod)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	// Format with leading zeros to exactly `digits` digits
	format := fmt.Sprintf("%%0%ds", digits)
	padded := fmt.Sprintf(format, result.String())

	if a.Config.Quiet {
		fmt.Fprintln(out, padded)
	} else {
		fmt.Fprintf(out, "Last %d digits of W(%d, %d): %s\n", digits, n, k, padded)
		fmt.Fprintf(out, "Computed in %s\n", elapsed.Round(time.Millisecond))
	}

	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Result)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Use standard analysis for non-quiet mode
	presOpts := orchestration.PresentationOptions{
		Posts:     a.Config.Posts,
		Colors:    a.Config.Colors,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, out)

	// Handle file output for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, a.Config.Posts, a.Config.Colors, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
