package search

import (
	"testing"
	"time"

	"github.com/ankushdixit/insight-hub/internal/store"
)

func indexedCollection(t *testing.T) (*Indexer, *store.Collection) {
	t.Helper()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	col := store.NewCollection()
	col.Learnings[store.CategorySecurity] = []*store.Learning{
		{
			ID:        "L1",
			Content:   "validate jwt signatures on every request",
			Category:  store.CategorySecurity,
			Tags:      []string{"jwt", "api"},
			Session:   3,
			Timestamp: base,
		},
	}
	col.Learnings[store.CategoryGotchas] = []*store.Learning{
		{
			ID:        "L2",
			Content:   "slice append may share backing arrays",
			Category:  store.CategoryGotchas,
			Session:   4,
			Timestamp: base,
		},
	}
	col.Learnings[store.CategoryPerformanceInsights] = []*store.Learning{
		{
			ID:        "L3",
			Content:   "jwt parsing shows up in the cpu profile",
			Category:  store.CategoryPerformanceInsights,
			Session:   5,
			Timestamp: base,
		},
	}
	col.Archived = []*store.Learning{
		{ID: "L4", Content: "old jwt workaround", Category: store.CategoryTechnicalDebt, Session: 1, Timestamp: base},
	}

	idx, err := NewIndexer()
	if err != nil {
		t.Fatalf("NewIndexer failed: %v", err)
	}
	t.Cleanup(func() { idx.Close() })

	if err := idx.IndexCollection(col); err != nil {
		t.Fatalf("IndexCollection failed: %v", err)
	}
	return idx, col
}

func TestIndexCollectionCountsActiveOnly(t *testing.T) {
	idx, _ := indexedCollection(t)

	n, err := idx.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3 (archived entries stay out of the index)", n)
	}
}

func TestSearchBM25(t *testing.T) {
	idx, _ := indexedCollection(t)

	results, err := idx.SearchBM25("jwt signatures", 10)
	if err != nil {
		t.Fatalf("SearchBM25 failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected hits for 'jwt signatures'")
	}
	if results[0].ID != "L1" {
		t.Errorf("top hit = %s, want L1", results[0].ID)
	}
	if results[0].Category != store.CategorySecurity {
		t.Errorf("top hit category = %s, want security", results[0].Category)
	}
	if len(results[0].Tags) != 2 {
		t.Errorf("top hit tags = %v, want [jwt api]", results[0].Tags)
	}
	if results[0].Session != 3 {
		t.Errorf("top hit session = %d, want 3", results[0].Session)
	}
}

func TestSearchBM25NoHits(t *testing.T) {
	idx, _ := indexedCollection(t)

	results, err := idx.SearchBM25("kubernetes", 10)
	if err != nil {
		t.Fatalf("SearchBM25 failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no hits, got %d", len(results))
	}
}

func TestSearchByCategory(t *testing.T) {
	idx, _ := indexedCollection(t)

	results, err := idx.SearchByCategory("jwt", store.CategoryPerformanceInsights, 10)
	if err != nil {
		t.Fatalf("SearchByCategory failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d hits, want 1", len(results))
	}
	if results[0].ID != "L3" {
		t.Errorf("hit = %s, want L3", results[0].ID)
	}
}

func TestSearchHybrid(t *testing.T) {
	idx, col := indexedCollection(t)

	results, err := idx.SearchHybrid(col, "jwt", 10, DefaultFusionConfig)
	if err != nil {
		t.Fatalf("SearchHybrid failed: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("got %d hits, want at least 2", len(results))
	}
	// L1 hits jwt in tags and content; it must outrank the content-only L3.
	if results[0].ID != "L1" {
		t.Errorf("top hit = %s, want L1", results[0].ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted by score at %d", i)
		}
	}
}

func TestSearchHybridLimit(t *testing.T) {
	idx, col := indexedCollection(t)

	results, err := idx.SearchHybrid(col, "jwt", 1, DefaultFusionConfig)
	if err != nil {
		t.Fatalf("SearchHybrid failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d hits, want 1", len(results))
	}
}

func TestNormalizeScores(t *testing.T) {
	in := []Result{
		{ID: "a", Score: 2.0},
		{ID: "b", Score: 6.0},
		{ID: "c", Score: 4.0},
	}
	out := normalizeScores(in)

	if out[0].Score != 0.0 || out[1].Score != 1.0 || out[2].Score != 0.5 {
		t.Errorf("unexpected normalized scores: %v, %v, %v", out[0].Score, out[1].Score, out[2].Score)
	}
	if in[0].Score != 2.0 {
		t.Error("normalizeScores must not mutate its input")
	}

	equal := normalizeScores([]Result{{ID: "a", Score: 3.0}, {ID: "b", Score: 3.0}})
	if equal[0].Score != 1.0 || equal[1].Score != 1.0 {
		t.Errorf("equal scores should normalize to 1.0, got %v, %v", equal[0].Score, equal[1].Score)
	}
}
