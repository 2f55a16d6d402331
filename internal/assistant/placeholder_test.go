package assistant

import (
	"testing"
	"time"
)

func TestResolvePlaceholders(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"plain year", "WHERE STRFTIME('%Y', date) = '{{CURRENT_YEAR}}'", "WHERE STRFTIME('%Y', date) = '2025'"},
		{"year minus one", "{{CURRENT_YEAR-1}}", "2024"},
		{"year plus two", "{{CURRENT_YEAR+2}}", "2027"},
		{"plain month", "{{CURRENT_MONTH}}", "06"},
		{"month plus one", "{{CURRENT_MONTH+1}}", "07"},
		{"month minus six wraps to december", "{{CURRENT_MONTH-6}}", "12"},
		{"month plus seven wraps to january", "{{CURRENT_MONTH+7}}", "01"},
		{"both tokens in one query", "'{{CURRENT_YEAR}}-{{CURRENT_MONTH}}'", "'2025-06'"},
		{"case sensitive", "{{current_year}}", "{{current_year}}"},
		{"no tokens", "SELECT SUM(amount) FROM expenses", "SELECT SUM(amount) FROM expenses"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlaceholders(tt.query, now)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePlaceholdersIdempotent(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	once := ResolvePlaceholders("{{CURRENT_YEAR}}-{{CURRENT_MONTH-1}}", now)
	twice := ResolvePlaceholders(once, now)
	if once != twice {
		t.Errorf("second pass changed output: %q vs %q", once, twice)
	}
}
