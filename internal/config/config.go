// Package config owns the application configuration: flag parsing,
// environment variable overrides, and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/fencecalc/internal/errors"
	"github.com/agbru/fencecalc/internal/fence"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "FENCECALC_"

// Defaults applied when neither a flag nor an environment variable is set.
const (
	DefaultPosts   = 10
	DefaultColors  = 2
	DefaultAlgo    = "matrix"
	DefaultTimeout = 1 * time.Minute
	DefaultListen  = ":8080"
)

// AppConfig holds the complete runtime configuration of the application.
type AppConfig struct {
	// Posts is the number of fence posts (n).
	Posts uint64
	// Colors is the number of available colors (k).
	Colors uint64
	// Algo selects the algorithm by factory name, or "all" for a comparison run.
	Algo string
	// Timeout bounds the total calculation time.
	Timeout time.Duration
	// LastDigits, when positive, switches to modular mode and computes only
	// the last K decimal digits of the count.
	LastDigits int
	// Verbose shows the full count value regardless of its size.
	Verbose bool
	// Details shows performance and memory statistics after the run.
	Details bool
	// Quiet suppresses everything except the final value (for scripting).
	Quiet bool
	// ShowValue enables display of the computed count (off by default since
	// counts for large n span thousands of digits).
	ShowValue bool
	// OutputFile is the path to save the result to (empty for no file output).
	OutputFile string
	// Completion selects a shell to generate a completion script for.
	Completion string
	// NoColor disables ANSI colors in all output.
	NoColor bool
	// Serve starts the HTTP API server instead of a one-shot calculation.
	Serve bool
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string
	// CancelCheckInterval tunes how often the iterative calculator polls for
	// cancellation. Zero selects the engine default.
	CancelCheckInterval int
}

// ToCalculationOptions converts the configuration into engine options.
func (c AppConfig) ToCalculationOptions() fence.Options {
	return fence.Options{CancelCheckInterval: c.CancelCheckInterval}
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for flags that were not set explicitly.
// Priority: CLI flags > environment variables > defaults.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for usage and parse errors.
//   - availableAlgos: The algorithm names accepted by --algo.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when --help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Uint64Var(&cfg.Posts, "n", DefaultPosts, "number of fence posts")
	fs.Uint64Var(&cfg.Colors, "k", DefaultColors, "number of available colors")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("algorithm to use (%v or \"all\")", availableAlgos))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "maximum execution time")
	fs.IntVar(&cfg.LastDigits, "last-digits", 0, "compute only the last K decimal digits of the count")
	fs.BoolVar(&cfg.Verbose, "v", false, "display the full count value")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "display the full count value")
	fs.BoolVar(&cfg.Details, "d", false, "show performance details")
	fs.BoolVar(&cfg.Details, "details", false, "show performance details")
	fs.BoolVar(&cfg.Quiet, "q", false, "quiet mode for scripts (value only)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "quiet mode for scripts (value only)")
	fs.BoolVar(&cfg.ShowValue, "c", false, "display the computed count")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "display the computed count")
	fs.StringVar(&cfg.OutputFile, "o", "", "output file path")
	fs.StringVar(&cfg.OutputFile, "output", "", "output file path")
	fs.StringVar(&cfg.Completion, "completion", "", "generate completion script (bash, zsh, fish, powershell)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&cfg.Serve, "serve", false, "start the HTTP API server")
	fs.StringVar(&cfg.ListenAddr, "listen", DefaultListen, "HTTP server listen address (with --serve)")
	fs.IntVar(&cfg.CancelCheckInterval, "check-interval", 0, "iterations between cancellation checks (0 = default)")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Counts the colorings of n fence posts with k colors where no more\n")
		fmt.Fprintf(errWriter, "than two consecutive posts share a color.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg, availableAlgos); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}

	return cfg, nil
}

// validate checks cross-field constraints that flag parsing cannot express.
func validate(cfg AppConfig, availableAlgos []string) error {
	if cfg.Algo != "all" {
		known := false
		for _, name := range availableAlgos {
			if cfg.Algo == name {
				known = true
				break
			}
		}
		if !known {
			return apperrors.NewConfigError("unknown algorithm %q (available: %v or \"all\")", cfg.Algo, availableAlgos)
		}
	}
	if cfg.LastDigits < 0 {
		return apperrors.NewConfigError("--last-digits must be non-negative, got %d", cfg.LastDigits)
	}
	if cfg.CancelCheckInterval < 0 {
		return apperrors.NewConfigError("--check-interval must be non-negative, got %d", cfg.CancelCheckInterval)
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Serve && cfg.ListenAddr == "" {
		return apperrors.NewConfigError("--listen must not be empty with --serve")
	}
	return nil
}
