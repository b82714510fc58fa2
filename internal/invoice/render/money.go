package render

import (
	"fmt"
	"strings"
)

// Currency symbols outside the PDF core font set get an ASCII stand-in.
// Only the textual prefix changes; the numeric value is never altered.
var asciiSymbols = map[string]string{
	"₹": "Rs.",
	"€": "EUR ",
	"£": "GBP ",
	"¥": "JPY ",
}

// FormatAmount renders a symbol-prefixed, two-decimal fixed-point string.
func FormatAmount(symbol string, v float64) string {
	return fmt.Sprintf("%s%.2f", safeSymbol(symbol), v)
}

// FormatSigned is FormatAmount with an explicit leading minus for
// negative values, used for the round-off figure.
func FormatSigned(symbol string, v float64) string {
	if v < 0 {
		return "-" + FormatAmount(symbol, -v)
	}
	return FormatAmount(symbol, v)
}

func safeSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "Rs."
	}
	if sub, ok := asciiSymbols[symbol]; ok {
		return sub
	}
	for _, r := range symbol {
		if r > 127 {
			return "Rs."
		}
	}
	return symbol
}

func formatQuantity(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func formatPercent(v float64) string {
	return formatQuantity(v) + "%"
}
