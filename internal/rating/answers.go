package rating

import "strings"

// NormalizeAnswer canonicalizes a submitted or stored answer for comparison:
// surrounding whitespace is trimmed, letters are lowercased, runs of internal
// whitespace collapse to a single space, and a comma between digits is read
// as a decimal point ("3,14" matches "3.14"). Both sides of a comparison must
// go through this same function for verdicts to be consistent.
func NormalizeAnswer(answer string) string {
	fields := strings.Fields(strings.ToLower(answer))
	joined := strings.Join(fields, " ")

	var b strings.Builder
	b.Grow(len(joined))
	runes := []rune(joined)
	for i, r := range runes {
		if r == ',' && i > 0 && i < len(runes)-1 && isDigit(runes[i-1]) && isDigit(runes[i+1]) {
			b.WriteRune('.')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AnswersMatch reports whether a submitted answer matches the stored one
// after normalization.
func AnswersMatch(submitted, expected string) bool {
	return NormalizeAnswer(submitted) == NormalizeAnswer(expected)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
