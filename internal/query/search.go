package query

import (
	"sort"
	"strings"

	"github.com/ankushdixit/insight-hub/internal/learning"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// Field weights for relevance scoring, strictly decreasing: a hit on the
// category outweighs a hit in the tags, which outweighs content, which
// outweighs context.
const (
	categoryWeight = 3.0
	tagWeight      = 2.0
	contentWeight  = 1.0
	contextWeight  = 0.5
)

// Result is one search hit with its relevance score.
type Result struct {
	Learning *store.Learning `json:"learning"`
	Score    float64         `json:"score"`
}

// Search scores every active learning against the free-text query and
// returns hits ordered by descending score, ties broken by most recent
// timestamp. A query token matches a field when it is a substring of one of
// the field's normalized tokens, so "auth" matches "authentication". Each
// matched query token contributes its field weight once per field.
func Search(col *store.Collection, queryText string) []Result {
	terms := queryTerms(queryText)
	if len(terms) == 0 {
		return []Result{}
	}

	results := []Result{}
	for _, l := range col.Active() {
		score := scoreLearning(l, terms)
		if score > 0 {
			results = append(results, Result{Learning: l, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Learning.Timestamp.After(results[j].Learning.Timestamp)
	})
	return results
}

func scoreLearning(l *store.Learning, terms []string) float64 {
	categoryTokens := learning.Tokenize(l.Category)
	contentTokens := learning.Tokenize(l.Content)
	contextTokens := learning.Tokenize(l.Context)
	tagTokens := make(map[string]struct{})
	for _, tag := range l.Tags {
		for t := range learning.Tokenize(tag) {
			tagTokens[t] = struct{}{}
		}
	}

	score := 0.0
	for _, term := range terms {
		if containsTerm(categoryTokens, term) {
			score += categoryWeight
		}
		if containsTerm(tagTokens, term) {
			score += tagWeight
		}
		if containsTerm(contentTokens, term) {
			score += contentWeight
		}
		if containsTerm(contextTokens, term) {
			score += contextWeight
		}
	}
	return score
}

func containsTerm(tokens map[string]struct{}, term string) bool {
	for t := range tokens {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}

// queryTerms normalizes the query the same way learnings are tokenized, so
// scores stay comparable; duplicates are dropped while preserving order.
func queryTerms(queryText string) []string {
	seen := make(map[string]bool)
	var terms []string
	for t := range learning.Tokenize(queryText) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)
	return terms
}
