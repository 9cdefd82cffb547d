// Package format converts between user-facing money/percent text and the
// decimal values the simulation engine works with. Text follows the Brazilian
// convention used by the presentation layer: "." groups thousands and ","
// separates decimals.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "R$"

// nbsp separates the symbol from the amount, as Intl's pt-BR formatter does.
const nbsp = "\u00a0"

// Currency returns a currency string with the real sign and thousands separators (e.g., "-R$ 1.234,56").
func Currency(amount float64) string {
	formatted := groupDigits(math.Abs(amount), 2)
	if amount < 0 && formatted != "0,00" {
		return "-" + CurrencySymbol + nbsp + formatted
	}
	return CurrencySymbol + nbsp + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1.234,56").
func NumericCurrency(amount float64) string {
	formatted := groupDigits(math.Abs(amount), 2)
	if amount < 0 && formatted != "0,00" {
		return "-" + formatted
	}
	return formatted
}

// Percentage formats percentage points with one decimal (15 -> "15,0%").
func Percentage(value float64) string {
	formatted := groupDigits(math.Abs(value), 1)
	if value < 0 && formatted != "0,0" {
		return "-" + formatted + "%"
	}
	return formatted + "%"
}

// groupDigits rounds half away from zero on the shortest decimal form of
// value, so 2.675 renders as 2,68 even though its binary value is below the tie.
func groupDigits(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	formatted := decimal.NewFromFloat(value).StringFixed(int32(decimals))
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte('.')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if decPart == "" {
		return intPart
	}
	return intPart + "," + decPart
}

// ParseCurrencyInput converts user-typed money such as "R$ 120.000,00" into a value.
// Everything except digits and separators is discarded. Dots are treated as
// thousands separators and the first comma as the decimal mark. Input that still does
// not form a number yields 0.
func ParseCurrencyInput(value string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, value)
	if cleaned == "" {
		return 0
	}

	normalized := strings.ReplaceAll(cleaned, ".", "")
	normalized = strings.Replace(normalized, ",", ".", 1)
	// Anything after a second comma is ignored: "1,2,3" reads as 1.2.
	if idx := strings.IndexByte(normalized, ','); idx >= 0 {
		normalized = normalized[:idx]
	}
	return parseDecimal(normalized, 0)
}

// ParsePercentInput converts "2,5" or "2.5" into 2.5, returning defaultValue for
// blank or malformed input.
func ParsePercentInput(value string, defaultValue float64) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	trimmed = strings.TrimSuffix(trimmed, "%")
	normalized := strings.ReplaceAll(strings.TrimSpace(trimmed), ",", ".")
	return parseDecimal(normalized, defaultValue)
}

func parseDecimal(value string, fallback float64) float64 {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fallback
	}
	f := d.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}
