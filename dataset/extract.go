package dataset

import "regexp"

// floatPattern matches decimal floats (optional sign, optional integer
// part, fractional part) or bare integers, in that preference order.
var floatPattern = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)

// ExtractFloats combs through a string and returns every substring matching
// the float grammar, in left-to-right order. It returns an empty slice when
// the string contains no digits.
//
// The loader uses the first match of a dataset file path as the tumbling
// rate label. Note that when applied to full paths this also picks up
// numbers in directory names.
func ExtractFloats(s string) []string {
	return floatPattern.FindAllString(s, -1)
}
