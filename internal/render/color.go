package render

import "os"

// ANSI escape helpers. Colors are suppressed when NO_COLOR is set.

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGrey   = "\033[90m"
)

var colorEnabled = os.Getenv("NO_COLOR") == ""

func colorize(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + ansiReset
}

func Red(s string) string    { return colorize(ansiRed, s) }
func Green(s string) string  { return colorize(ansiGreen, s) }
func Yellow(s string) string { return colorize(ansiYellow, s) }
func Cyan(s string) string   { return colorize(ansiCyan, s) }
func Grey(s string) string   { return colorize(ansiGrey, s) }
