package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ankushdixit/insight-hub/internal/store"
)

func TestCategorizeSecurity(t *testing.T) {
	got := Categorize("SQL injection via unsanitized auth token input", nil, defaultKeywords)

	assert.Equal(t, store.CategorySecurity, got)
}

func TestCategorizePerformance(t *testing.T) {
	got := Categorize("batch the queries to cut latency and memory allocation", nil, defaultKeywords)

	assert.Equal(t, store.CategoryPerformanceInsights, got)
}

func TestCategorizeUsesTags(t *testing.T) {
	// Content alone is neutral; tags carry the signal.
	got := Categorize("remember to check this before release", []string{"vulnerability", "cors"}, defaultKeywords)

	assert.Equal(t, store.CategorySecurity, got)
}

func TestCategorizeTieFallsToHigherPriority(t *testing.T) {
	// One security keyword (auth) and one gotchas keyword (bug): the tie
	// resolves to security, the earlier category in priority order.
	got := Categorize("auth bug", nil, defaultKeywords)

	assert.Equal(t, store.CategorySecurity, got)
}

func TestCategorizeFallback(t *testing.T) {
	got := Categorize("zebra giraffe elephant", nil, defaultKeywords)

	assert.Equal(t, store.CategoryBestPractices, got)
}

func TestCategorizePartialKeywordMatch(t *testing.T) {
	// "auth" must match "authentication".
	got := Categorize("authentication middleware ordering", nil, defaultKeywords)

	assert.Equal(t, store.CategorySecurity, got)
}

func TestCategorizeDeterministic(t *testing.T) {
	content := "cache invalidation is slow under write-heavy load"
	tags := []string{"cache", "redis"}

	first := Categorize(content, tags, defaultKeywords)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Categorize(content, tags, defaultKeywords))
	}
}
