package learning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankushdixit/insight-hub/internal/store"
)

func TestAddValidation(t *testing.T) {
	e := NewEngine(Config{})
	col := store.NewCollection()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var invalid *store.InvalidInputError

	_, err := e.Add(col, "   ", "", nil, 1, "", now)
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "content", invalid.Field)

	_, err = e.Add(col, "valid content", "", nil, -1, "", now)
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "session", invalid.Field)

	_, err = e.Add(col, "valid content", "nonsense", nil, 1, "", now)
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "category", invalid.Field)

	assert.Equal(t, 0, col.ActiveCount(), "no mutation on rejected input")
	assert.Equal(t, 0, col.Metadata.TotalCaptured)
}

func TestAddDefaultsToUncategorized(t *testing.T) {
	e := NewEngine(Config{})
	col := store.NewCollection()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	l, err := e.Add(col, "  trailing space content  ", "", []string{" Go ", "go", "CLI"}, 4, " some context ", now)
	require.NoError(t, err)

	assert.Equal(t, store.CategoryUncategorized, l.Category)
	assert.Equal(t, "trailing space content", l.Content)
	assert.Equal(t, "some context", l.Context)
	assert.Equal(t, []string{"go", "cli"}, l.Tags)
	assert.NotEmpty(t, l.ID)
	assert.Len(t, col.Learnings[store.CategoryUncategorized], 1)
	assert.Equal(t, 1, col.Metadata.TotalCaptured)
}

func TestAddExplicitCategory(t *testing.T) {
	e := NewEngine(Config{})
	col := store.NewCollection()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	l, err := e.Add(col, "rotate jwt signing keys", store.CategorySecurity, nil, 2, "", now)
	require.NoError(t, err)

	assert.Equal(t, store.CategorySecurity, l.Category)
	assert.Len(t, col.Learnings[store.CategorySecurity], 1)
}

func TestAddGeneratesUniqueIDs(t *testing.T) {
	e := NewEngine(Config{})
	col := store.NewCollection()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		l, err := e.Add(col, "content number "+string(rune('a'+i%26)), "", nil, 1, "", now)
		require.NoError(t, err)
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
}

func TestCurateFullPass(t *testing.T) {
	e := NewEngine(Config{})
	col := store.NewCollection()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// Uncategorized capture that should land in security.
	_, err := e.Add(col, "never log auth tokens in plaintext", "", nil, 100, "", now)
	require.NoError(t, err)

	// Near-duplicate pair in best_practices.
	_, err = e.Add(col, "use pytest for testing", store.CategoryBestPractices, []string{"pytest"}, 99, "", now)
	require.NoError(t, err)
	_, err = e.Add(col, "use pytest for testing python applications effectively", store.CategoryBestPractices, nil, 100, "", now.Add(time.Minute))
	require.NoError(t, err)

	// Stale entry, session far behind.
	_, err = e.Add(col, "review migrations before merging", store.CategoryBestPractices, nil, 10, "", now)
	require.NoError(t, err)

	report := e.Curate(col, 100, now.Add(time.Hour))

	assert.Equal(t, 4, report.BeforeCount)
	assert.Equal(t, 1, report.CategorizationChanges)
	assert.Equal(t, 1, report.MergedCount)
	assert.Equal(t, 1, report.ArchivedCount)
	assert.Equal(t, 2, report.AfterCount)

	// Uncategorized bucket emptied, entry recategorized to security.
	assert.Empty(t, col.Learnings[store.CategoryUncategorized])
	require.Len(t, col.Learnings[store.CategorySecurity], 1)

	// The longer pytest entry survived with the other's tag.
	bucket := col.Learnings[store.CategoryBestPractices]
	require.Len(t, bucket, 1)
	assert.Equal(t, "use pytest for testing python applications effectively", bucket[0].Content)
	assert.Contains(t, bucket[0].Tags, "pytest")
	require.Len(t, bucket[0].MergeHistory, 1)

	require.NotNil(t, col.Metadata.LastCurated)
	assert.Equal(t, 1, col.Metadata.CurationRuns)
}

func TestCurateIdempotent(t *testing.T) {
	e := NewEngine(Config{})
	col := store.NewCollection()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := e.Add(col, "use pytest for testing", "", []string{"pytest"}, 1, "", now)
	require.NoError(t, err)
	_, err = e.Add(col, "use pytest for testing python applications effectively", "", nil, 2, "", now)
	require.NoError(t, err)
	_, err = e.Add(col, "auth tokens must be encrypted at rest", "", nil, 2, "", now)
	require.NoError(t, err)

	first := e.Curate(col, 2, now)
	assert.Equal(t, 1, first.MergedCount)

	second := e.Curate(col, 2, now.Add(time.Hour))
	assert.Equal(t, 0, second.MergedCount, "second pass must find nothing to merge")
	assert.Equal(t, 0, second.CategorizationChanges)
	assert.Equal(t, 0, second.ArchivedCount)
	assert.Equal(t, second.BeforeCount, second.AfterCount)
	assert.Equal(t, 2, col.Metadata.CurationRuns)
}

func TestCurateUsesHighestSessionWhenUnset(t *testing.T) {
	e := NewEngine(Config{})
	col := store.NewCollection()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := e.Add(col, "old workaround for the proxy", store.CategoryTechnicalDebt, nil, 1, "", now)
	require.NoError(t, err)
	_, err = e.Add(col, "new hack for the scheduler", store.CategoryTechnicalDebt, nil, 60, "", now)
	require.NoError(t, err)

	report := e.Curate(col, 0, now)

	// Current session inferred as 60; 60-1=59 > 50 archives the old entry.
	assert.Equal(t, 1, report.ArchivedCount)
}

func TestIngestSkipsDuplicates(t *testing.T) {
	e := NewEngine(Config{})
	col := store.NewCollection()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	texts := []string{
		"use pytest for testing python applications effectively",
		"use pytest for testing",
		"",
		"auth tokens must be encrypted at rest",
	}
	added, skipped, err := e.Ingest(col, texts, 5, now)
	require.NoError(t, err)

	assert.Len(t, added, 2)
	assert.Equal(t, 1, skipped, "contained near-duplicate screened out")
	assert.Equal(t, 2, col.ActiveCount())

	// Ingest categorizes on the way in.
	for _, l := range added {
		assert.True(t, store.IsValidCategory(l.Category))
	}
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" Go ", "go", "", "CLI", "cli", "testing"})
	assert.Equal(t, []string{"go", "cli", "testing"}, got)

	assert.Nil(t, normalizeTags(nil))
}
