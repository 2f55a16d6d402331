package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Placeholder tokens let the model write relative-date filters without knowing
// the current date: {{CURRENT_YEAR}}, {{CURRENT_MONTH}}, optionally suffixed
// with +N or -N. Tokens are matched literally and case-sensitively. The offset
// is parsed as a signed integer, never evaluated as an expression.
var (
	yearToken  = regexp.MustCompile(`\{\{CURRENT_YEAR([+-]\d+)?\}\}`)
	monthToken = regexp.MustCompile(`\{\{CURRENT_MONTH([+-]\d+)?\}\}`)
)

// ResolvePlaceholders rewrites date tokens in query text into concrete values
// for the given reference time. Year renders as a plain integer; month as a
// zero-padded two-digit string, wrapped into 1-12 so offsets past a year
// boundary still produce a valid month. Tokens with an unparseable offset fall
// back to the unmodified base value.
func ResolvePlaceholders(query string, now time.Time) string {
	year := now.Year()
	month := int(now.Month())

	query = yearToken.ReplaceAllStringFunc(query, func(match string) string {
		off, ok := tokenOffset(yearToken, match)
		if !ok {
			return strconv.Itoa(year)
		}
		return strconv.Itoa(year + off)
	})

	query = monthToken.ReplaceAllStringFunc(query, func(match string) string {
		m := month
		if off, ok := tokenOffset(monthToken, match); ok {
			m += off
		}
		// Wrap into 1..12; ((m-1) mod 12) stays correct for negatives.
		m = ((m-1)%12+12)%12 + 1
		return fmt.Sprintf("%02d", m)
	})

	return query
}

func tokenOffset(re *regexp.Regexp, match string) (int, bool) {
	groups := re.FindStringSubmatch(match)
	if len(groups) < 2 || groups[1] == "" {
		return 0, false
	}
	off, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, false
	}
	return off, true
}
