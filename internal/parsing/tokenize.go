// Package parsing provides text normalization for the matching engine.
package parsing

import "strings"

// minTokenLength is the shortest token kept after normalization. Shorter
// fragments ("a", "of", "js" typos from punctuation splits) add noise to
// overlap ratios.
const minTokenLength = 3

// Tokenize normalizes free text into comparable tokens: lower-case,
// non-alphanumeric characters replaced with spaces, split on whitespace
// runs, tokens of length <= 2 dropped. Pure function.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)

	var sb strings.Builder
	sb.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}

	fields := strings.Fields(sb.String())
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// TokenSet returns the unique tokens of text as a lookup set.
func TokenSet(text string) map[string]bool {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
