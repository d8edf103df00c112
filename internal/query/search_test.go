package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankushdixit/insight-hub/internal/store"
)

func TestSearchFieldWeights(t *testing.T) {
	col := store.NewCollection()
	// "security" appears in a different field of each entry.
	col.Learnings[store.CategorySecurity] = []*store.Learning{
		entry("Lcat", "validate all inputs", store.CategorySecurity, 1, testBase),
	}
	col.Learnings[store.CategoryGotchas] = []*store.Learning{
		entry("Ltag", "check the proxy settings", store.CategoryGotchas, 1, testBase, "security"),
		entry("Lcontent", "security headers are case sensitive", store.CategoryGotchas, 1, testBase),
	}
	ctx := entry("Lcontext", "headers must be set before the body", store.CategoryGotchas, 1, testBase)
	ctx.Context = "security review of the gateway"
	col.Learnings[store.CategoryGotchas] = append(col.Learnings[store.CategoryGotchas], ctx)

	results := Search(col, "security")

	require.Len(t, results, 4)
	assert.Equal(t, "Lcat", results[0].Learning.ID)
	assert.Equal(t, 3.0, results[0].Score)
	assert.Equal(t, "Ltag", results[1].Learning.ID)
	assert.Equal(t, 2.0, results[1].Score)
	assert.Equal(t, "Lcontent", results[2].Learning.ID)
	assert.Equal(t, 1.0, results[2].Score)
	assert.Equal(t, "Lcontext", results[3].Learning.ID)
	assert.Equal(t, 0.5, results[3].Score)
}

func TestSearchPartialTokenMatch(t *testing.T) {
	col := store.NewCollection()
	col.Learnings[store.CategorySecurity] = []*store.Learning{
		entry("L1", "authentication middleware must run first", store.CategorySecurity, 1, testBase),
	}

	results := Search(col, "auth")

	require.Len(t, results, 1)
	assert.Equal(t, contentWeight, results[0].Score, "auth matches authentication in content only")
}

func TestSearchMultipleTermsAccumulate(t *testing.T) {
	col := store.NewCollection()
	col.Learnings[store.CategoryPerformanceInsights] = []*store.Learning{
		entry("L1", "cache lookups dominate the latency profile", store.CategoryPerformanceInsights, 1, testBase, "cache"),
	}

	results := Search(col, "cache latency")

	require.Len(t, results, 1)
	// cache: tag 2.0 + content 1.0; latency: content 1.0.
	assert.Equal(t, 4.0, results[0].Score)
}

func TestSearchTiesBreakOnRecency(t *testing.T) {
	col := store.NewCollection()
	col.Learnings[store.CategoryGotchas] = []*store.Learning{
		entry("Lold", "goroutine leaks from missing cancel", store.CategoryGotchas, 1, testBase),
		entry("Lnew", "goroutine starvation under mutex contention", store.CategoryGotchas, 2, testBase.Add(time.Hour)),
	}

	results := Search(col, "goroutine")

	require.Len(t, results, 2)
	assert.Equal(t, "Lnew", results[0].Learning.ID, "equal scores order by most recent timestamp")
	assert.Equal(t, "Lold", results[1].Learning.ID)
}

func TestSearchNoHits(t *testing.T) {
	col := testCollection()

	results := Search(col, "kubernetes")

	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchEmptyQuery(t *testing.T) {
	col := testCollection()

	assert.Empty(t, Search(col, ""))
	assert.Empty(t, Search(col, "   the a an  "))
}

func TestSearchExcludesArchived(t *testing.T) {
	col := testCollection()

	results := Search(col, "proxy workaround")

	assert.Empty(t, results)
}
