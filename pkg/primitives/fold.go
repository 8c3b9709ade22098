package primitives

import "golang.org/x/text/cases"

// Fold returns the full Unicode case-folded form of s.
// A new caser is built per call because cases.Caser is not safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// FoldEqual reports whether a and b are equal under full Unicode case folding.
func FoldEqual(a, b string) bool {
	return Fold(a) == Fold(b)
}
