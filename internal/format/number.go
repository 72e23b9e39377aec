package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal number
// string. It accepts an optional leading sign and leaves non-numeric input
// unchanged.
//
// Parameters:
//   - s: The decimal string to format (e.g. "1234567").
//
// Returns:
//   - string: The grouped representation (e.g. "1,234,567").
func FormatNumberString(s string) string {
	sign := ""
	digits := s
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign = digits[:1]
		digits = digits[1:]
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return s
		}
	}
	if len(digits) <= 3 {
		return s
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// FormatBytes renders a byte count using binary units (KiB, MiB, ...).
//
// Parameters:
//   - n: The number of bytes.
//
// Returns:
//   - string: A human-readable size such as "1.5 MiB".
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
