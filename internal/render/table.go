// Package render produces the plain-text tables and formatted values the CLI
// prints. No terminal library; column widths are computed by hand.
package render

import (
	"fmt"
	"strings"
)

// Table renders headers and rows as an aligned text table.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", w-len([]rune(cell))))
		}
		b.WriteByte('\n')
	}

	writeRow(headers)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteByte('\n')
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

// Currency formats an amount with the configured symbol and two decimals,
// with thousands separators: Currency("$", 1234.5) == "$1,234.50".
func Currency(symbol string, amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := symbol + b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}
