package parsers

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CleanSymbol strips all whitespace and newline characters from a ticker.
// Some exports wrap or pad symbols inside quoted cells.
func CleanSymbol(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// ParseAmount coerces a numeric cell into a decimal. Thousands-separator
// commas are stripped first; anything unparsable (including the empty
// string) coerces to zero rather than failing the row, because a
// best-effort record beats dropping an otherwise valid trade.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// orEmpty substitutes a default for absent text fields.
func orEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
