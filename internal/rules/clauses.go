package rules

import (
	"strings"
	"unicode"
)

// clause is one negation scope: a run of tokens between clause boundaries.
type clause []string

// boundaries end a negation scope in addition to punctuation.
var boundaries = map[string]bool{"but": true, "and": true, "although": true, "though": true, "however": true}

// splitClauses lowercases text, strips apostrophes, and splits it into clauses
// on sentence punctuation and coordinating words.
func splitClauses(text string) []clause {
	var out []clause
	var cur clause
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}

	var word strings.Builder
	endWord := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()
		if boundaries[w] {
			flush()
			return
		}
		cur = append(cur, w)
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case r == '\'' || r == '’':
			// can't -> cant
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word.WriteRune(r)
		case r == '.' || r == '!' || r == '?' || r == ';' || r == ',' || r == '\n':
			endWord()
			flush()
		default:
			endWord()
		}
	}
	endWord()
	flush()
	return out
}

// tokens flattens text into one token list, keeping boundary words.
func tokens(text string) []string {
	var out []string
	var word strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r == '\'' || r == '’':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word.WriteRune(r)
		default:
			if word.Len() > 0 {
				out = append(out, word.String())
				word.Reset()
			}
		}
	}
	if word.Len() > 0 {
		out = append(out, word.String())
	}
	return out
}

// containsPhrase reports whether the token sequence of phrase occurs in toks.
func containsPhrase(toks []string, phrase string) bool {
	return indexPhrase(toks, strings.Fields(phrase), 0) >= 0
}

// indexPhrase returns the first index >= from where want occurs in toks, or -1.
func indexPhrase(toks, want []string, from int) int {
	if len(want) == 0 {
		return -1
	}
outer:
	for i := from; i+len(want) <= len(toks); i++ {
		for j, w := range want {
			if toks[i+j] != w {
				continue outer
			}
		}
		return i
	}
	return -1
}

func normalized(text string) string {
	return strings.Join(tokens(text), " ")
}
