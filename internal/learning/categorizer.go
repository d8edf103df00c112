package learning

import (
	"strings"

	"github.com/ankushdixit/insight-hub/internal/store"
)

// Categorize assigns a learning its category by keyword scoring: tokenize
// content plus tags, count signal-keyword matches per category, and pick the
// category with the highest count. Ties fall to the earlier category in the
// fixed priority order (store.Categories); zero matches fall through to
// best_practices, the lowest-priority member.
//
// A keyword matches when it is a substring of any normalized token, so
// "auth" matches "authentication". Deterministic: the same (content, tags)
// always yields the same category.
func Categorize(content string, tags []string, keywords map[string][]string) string {
	tokens := Tokenize(content)
	for _, tag := range tags {
		for t := range Tokenize(tag) {
			tokens[t] = struct{}{}
		}
	}

	best := store.CategoryBestPractices
	bestScore := 0
	for _, cat := range store.Categories {
		score := matchCount(tokens, keywords[cat])
		// Strict > keeps the earlier (higher-priority) category on ties.
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}
	return best
}

// matchCount counts how many of the keywords occur as a substring of at
// least one token. Each keyword counts at most once.
func matchCount(tokens map[string]struct{}, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		for t := range tokens {
			if strings.Contains(t, kw) {
				n++
				break
			}
		}
	}
	return n
}
