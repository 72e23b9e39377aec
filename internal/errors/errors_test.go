// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--posts"),
			expected: "invalid value 42 for flag --posts",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	cause := errors.New("matrix power interrupted")
	err := CalculationError{Cause: cause}

	if err.Error() != cause.Error() {
		t.Errorf("expected %q, got %q", cause.Error(), err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the original cause")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "posts", Message: "must be non-negative"}
	expected := `validation error for "posts": must be non-negative`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestOverflowError(t *testing.T) {
	t.Parallel()
	err := OverflowError{Posts: 200, Colors: 50}
	var overflowErr OverflowError
	if !errors.As(error(err), &overflowErr) {
		t.Fatal("expected error to be OverflowError type")
	}
	if overflowErr.Posts != 200 || overflowErr.Colors != 50 {
		t.Errorf("OverflowError fields = (%d, %d), want (200, 50)", overflowErr.Posts, overflowErr.Colors)
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "count", Limit: 5 * time.Second}
	expected := `operation "count" timed out after 5s`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	t.Run("nil error returns nil", func(t *testing.T) {
		if WrapError(nil, "context") != nil {
			t.Error("WrapError(nil) should return nil")
		}
	})

	t.Run("wrapped error preserves cause", func(t *testing.T) {
		cause := errors.New("root cause")
		wrapped := WrapError(cause, "while counting colorings for n=%d", 7)
		if !errors.Is(wrapped, cause) {
			t.Error("wrapped error should match the cause with errors.Is")
		}
		expected := "while counting colorings for n=7: root cause"
		if wrapped.Error() != expected {
			t.Errorf("expected %q, got %q", expected, wrapped.Error())
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped cancellation", WrapError(context.Canceled, "during matrix power"), true},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

// noColors is a ColorProvider that emits no escape codes.
type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"deadline maps to timeout code", context.DeadlineExceeded, ExitErrorTimeout},
		{"cancellation maps to canceled code", context.Canceled, ExitErrorCanceled},
		{"validation maps to config code", ValidationError{Field: "colors", Message: "negative"}, ExitErrorConfig},
		{"config error maps to config code", NewConfigError("bad flag"), ExitErrorConfig},
		{"generic error maps to generic code", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code := HandleCalculationError(tt.err, time.Second, io.Discard, noColors{})
			if code != tt.expected {
				t.Errorf("HandleCalculationError(%v) = %d, want %d", tt.err, code, tt.expected)
			}
		})
	}
}
