package services

import (
	"math"
	"strconv"
	"strings"
)

// yesTokens is the vocabulary of cell values treated as an affirmative
// compatibility mark.
var yesTokens = map[string]bool{
	"x":          true,
	"yes":        true,
	"y":          true,
	"true":       true,
	"1":          true,
	"compatible": true,
}

// AsNumber coerces a raw cell value to a finite number. Numeric input
// passes through unchanged unless it is NaN or infinite. String input is
// stripped of currency symbols, percent signs, commas, and whitespace
// before parsing. Anything unparseable coerces to 0; AsNumber never fails.
func AsNumber(value any) float64 {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case float32:
		return AsNumber(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		clean := strings.Map(func(r rune) rune {
			switch r {
			case '$', '%', ',', ' ', '\t':
				return -1
			}
			return r
		}, strings.TrimSpace(v))
		parsed, err := strconv.ParseFloat(clean, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// YesValue coerces a raw cell value to a compatibility flag. Numbers are
// truthy when positive; strings are truthy only when, after trimming and
// lowercasing, they equal one of the recognized affirmative tokens.
func YesValue(value any) bool {
	switch v := value.(type) {
	case float64:
		return v > 0
	case float32:
		return v > 0
	case int:
		return v > 0
	case int64:
		return v > 0
	case bool:
		return v
	case string:
		return yesTokens[Normalize(v)]
	default:
		return false
	}
}

// Normalize trims and lowercases header or cell text for matching.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
