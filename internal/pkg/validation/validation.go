package validation

import (
	"regexp"
	"strings"
)

const (
	CustomerNameMin = 2
	CustomerNameMax = 80
)

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeName trims and collapses internal whitespace.
func NormalizeName(s string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizeKind uppercases a security kind the way the catalog stores it.
func NormalizeKind(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidCustomerName reports whether a normalized name fits the 2..80 rune bounds.
func IsValidCustomerName(name string) bool {
	n := len([]rune(name))
	return n >= CustomerNameMin && n <= CustomerNameMax
}

// IsValidQuantity reports whether an allocation quantity is positive.
func IsValidQuantity(q int) bool {
	return q >= 1
}

var maturityRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidMaturity reports whether s is a canonical YYYY-MM-DD date string.
func IsValidMaturity(s string) bool {
	return maturityRe.MatchString(s)
}
