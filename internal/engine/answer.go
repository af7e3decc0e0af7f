package engine

import "strings"

// MatchesAnswer reports whether given equals any candidate after
// normalisation.
//
// Normalisation rules:
// - Leading and trailing whitespace is trimmed
// - Runs of whitespace collapse to a single space
// - Comparison is case-insensitive
func MatchesAnswer(given string, candidates []string) bool {
	given = normalizeAnswer(given)
	if given == "" {
		return false
	}
	for _, c := range candidates {
		if strings.EqualFold(given, normalizeAnswer(c)) {
			return true
		}
	}
	return false
}

func normalizeAnswer(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// JoinWords builds the sentence a word selection spells out.
func JoinWords(words []string) string {
	return normalizeAnswer(strings.Join(words, " "))
}
