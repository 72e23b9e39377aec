package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI color codes for error output. It decouples this
// package from the presentation layer, which owns the active theme.
type ColorProvider interface {
	// Red returns the escape code for error text.
	Red() string
	// Yellow returns the escape code for warning text.
	Yellow() string
	// Reset returns the escape code that clears formatting.
	Reset() string
}

// HandleCalculationError writes a human-readable diagnostic for a failed
// calculation and maps the error to the appropriate process exit code.
//
// Parameters:
//   - err: The error returned by the calculation.
//   - duration: How long the calculation ran before failing.
//   - out: The writer for the diagnostic message.
//   - colors: The color provider for the active theme.
//
// Returns:
//   - int: The exit code corresponding to the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sThe calculation timed out after %s.%s\n", colors.Yellow(), duration, colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sThe calculation was canceled.%s\n", colors.Yellow(), colors.Reset())
		return ExitErrorCanceled
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(out, "%sInvalid input: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	}

	var configErr ConfigError
	if errors.As(err, &configErr) {
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	return ExitErrorGeneric
}
