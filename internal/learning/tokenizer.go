/*
Package learning implements the curation engine for the insight-hub
knowledge base: tokenization, keyword categorization, lexical similarity
(Jaccard + containment), duplicate clustering and merging, and session-age
archival.

The engine is pure in-memory: it operates on a store.Collection loaded by the
caller and never touches disk itself. A curation pass is a single transform;
the CLI layer owns the load/save lifecycle and its atomicity.
*/
package learning

import (
	"strings"
	"unicode"
)

// minTokenLen is the minimum rune length for a token to survive
// normalization. Single-character tokens carry no signal.
const minTokenLen = 2

// stopwords are dropped during tokenization: articles, prepositions, and a
// few verbs-of-being that dominate free text without carrying meaning.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"in": {}, "on": {}, "at": {}, "of": {}, "for": {}, "to": {},
	"with": {}, "from": {}, "by": {}, "as": {}, "into": {}, "over": {},
	"and": {}, "or": {}, "not": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"it": {}, "its": {}, "this": {}, "that": {}, "when": {},
}

// Tokenize turns free text into a normalized bag of words: lower-cased,
// punctuation stripped, split on whitespace, short tokens and stopwords
// dropped. Deterministic and pure; the categorizer and the similarity
// engine both depend on identical token sets for comparable scores.
func Tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range splitWords(text) {
		if len([]rune(word)) < minTokenLen {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		tokens[word] = struct{}{}
	}
	return tokens
}

// splitWords lower-cases text, replaces punctuation with spaces, and splits
// on whitespace. Unlike Tokenize it keeps duplicates, short tokens, and
// stopwords; the search scorer uses it for query terms.
func splitWords(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// WordCount returns the number of whitespace-separated words in s. Used for
// primary selection during merges, where "longer content" means more words,
// not more bytes.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
