package models

import (
	"regexp"
	"strings"

	"github.com/guttosm/nsepulse/internal/apperrors"
)

// symbolPattern admits exchange tickers such as "RELIANCE", "M&M" or "BAJAJ-AUTO".
var symbolPattern = regexp.MustCompile(`^[A-Z0-9&._-]{1,20}$`)

// ValidSymbol reports whether s is a well-formed ticker once normalized.
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(NormalizeSymbol(s))
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseSymbol normalizes s and returns a MalformedInputError when it is not a ticker.
func ParseSymbol(s string) (string, error) {
	sym := NormalizeSymbol(s)
	if !symbolPattern.MatchString(sym) {
		return "", apperrors.Malformed("symbol", s, "expected 1-20 characters of A-Z, 0-9, &, ., _ or -")
	}
	return sym, nil
}
