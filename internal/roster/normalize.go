package roster

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize turns a header cell into its matching key.
//
// Steps, in order: trim, NFKC (half-width katakana widen, full-width
// alphanumerics narrow), drop every whitespace rune, lower-case.
func Normalize(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(s)
}

// HeaderMatches reports whether two cells name the same header: their keys
// are equal or one contains the other. Blank cells never match.
func HeaderMatches(a, b string) bool {
	return keysMatch(Normalize(a), Normalize(b))
}

func keysMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// cleanCell trims a data cell. Excel's ="..." text-forcing wrapper is
// removed so leading-zero codes survive a CSV round trip.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = strings.TrimSpace(s[2 : len(s)-1])
	}
	return s
}

// cellAt returns the cleaned cell at col, or "" when col is Unset or past
// the end of the row.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return cleanCell(row[col])
}
