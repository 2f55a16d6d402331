package render

import (
	"strings"
	"testing"
)

func TestTableAlignment(t *testing.T) {
	out := Table([]string{"ID", "Category"}, [][]string{
		{"1", "Food"},
		{"12", "Transport"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header line wrong: %q", lines[0])
	}
	// All lines share the same width.
	for _, l := range lines[1:] {
		if len([]rune(l)) > len([]rune(lines[1])) {
			t.Errorf("misaligned line: %q", l)
		}
	}
	if !strings.Contains(lines[1], "--") {
		t.Errorf("expected separator line, got %q", lines[1])
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{5.5, "$5.50"},
		{1234.5, "$1,234.50"},
		{1234567.89, "$1,234,567.89"},
		{-42.1, "-$42.10"},
	}
	for _, tt := range tests {
		if got := Currency("$", tt.amount); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
