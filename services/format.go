package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatUSD formats an amount in the fixed US presentation format the
// estimate uses everywhere, e.g. "$1,234.56". Always two decimal places,
// comma thousands grouping.
func FormatUSD(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// FormatHours renders labor hours with two decimals.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// VanTypeLabel renders a compatibility tag for display: first letter
// upper-cased, blank tags shown as "Unknown".
func VanTypeLabel(tag string) string {
	text := strings.TrimSpace(tag)
	if text == "" {
		return "Unknown"
	}
	first, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(first)) + text[size:]
}
