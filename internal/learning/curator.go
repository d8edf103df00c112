package learning

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ankushdixit/insight-hub/internal/store"
)

// Report summarizes what a curation pass did (or, for a dry run, would do).
type Report struct {
	BeforeCount           int  `json:"before_count"`
	AfterCount            int  `json:"after_count"`
	MergedCount           int  `json:"merged_count"`
	ArchivedCount         int  `json:"archived_count"`
	CategorizationChanges int  `json:"categorization_changes"`
	DryRun                bool `json:"dry_run,omitempty"`
}

// Engine runs captures and curation passes over a collection. It holds no
// collection state itself; every operation takes the collection explicitly,
// so a fresh load always precedes a pass.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given config; zero-valued fields fall
// back to defaults.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Add captures a new learning into the collection and returns it. The input
// is validated before any mutation: content must be non-empty and an
// explicitly requested category must be a member of the fixed set. Without a
// category the learning lands in the transient uncategorized bucket until
// the next curation pass.
func (e *Engine) Add(col *store.Collection, content, category string, tags []string, session int, context string, now time.Time) (*store.Learning, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &store.InvalidInputError{Field: "content", Message: "must not be empty"}
	}
	if session < 0 {
		return nil, &store.InvalidInputError{Field: "session", Message: "must not be negative"}
	}
	if category != "" && !store.IsValidCategory(category) {
		return nil, &store.InvalidInputError{
			Field:   "category",
			Message: category + " is not one of: " + strings.Join(store.Categories, ", "),
		}
	}
	if category == "" {
		category = store.CategoryUncategorized
	}

	l := &store.Learning{
		ID:        newID(col),
		Content:   content,
		Category:  category,
		Tags:      normalizeTags(tags),
		Session:   session,
		Timestamp: now,
		Context:   strings.TrimSpace(context),
	}

	col.Learnings[category] = append(col.Learnings[category], l)
	col.Metadata.TotalCaptured++
	return l, nil
}

// Ingest captures a batch of raw text blocks (one candidate learning each),
// screening every candidate against the existing learnings of its would-be
// category with the same similarity measures curation uses. Near-duplicates
// are skipped, not merged; merging remains curation's job. Returns the
// learnings added and the number skipped.
func (e *Engine) Ingest(col *store.Collection, texts []string, session int, now time.Time) ([]*store.Learning, int, error) {
	var added []*store.Learning
	skipped := 0

	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		category := Categorize(text, nil, e.cfg.Keywords)
		if e.duplicateOf(col, category, text) {
			skipped++
			continue
		}

		l, err := e.Add(col, text, category, nil, session, "", now)
		if err != nil {
			return added, skipped, err
		}
		added = append(added, l)
	}

	return added, skipped, nil
}

// duplicateOf checks text against the bucket it would land in, plus the
// uncategorized bucket, since both are candidates for a future merge.
func (e *Engine) duplicateOf(col *store.Collection, category, text string) bool {
	for _, l := range col.Learnings[category] {
		if e.cfg.IsDuplicate(text, l.Content) {
			return true
		}
	}
	for _, l := range col.Learnings[store.CategoryUncategorized] {
		if e.cfg.IsDuplicate(text, l.Content) {
			return true
		}
	}
	return false
}

// Curate runs one full curation pass over the collection, in order:
// re-categorize entries without a valid category, merge duplicate clusters
// within each category, archive stale entries, update metadata. The pass is
// idempotent: a second run over the result detects nothing further to do.
//
// currentSession anchors archival; pass 0 to use the highest active session.
// The collection is mutated in place; the caller decides whether the result
// is persisted (and clones first for a dry run).
func (e *Engine) Curate(col *store.Collection, currentSession int, now time.Time) Report {
	report := Report{BeforeCount: col.ActiveCount()}

	if currentSession <= 0 {
		currentSession = currentSessionOf(col)
	}

	report.CategorizationChanges = e.recategorize(col)

	for _, cat := range store.Categories {
		bucket := col.Learnings[cat]
		if len(bucket) < 2 {
			continue
		}

		// Similarity over content only; tags stay out of the token sets so
		// tag merges cannot push a pair over the threshold on a later run.
		tokens := make([]map[string]struct{}, len(bucket))
		for i, l := range bucket {
			tokens[i] = Tokenize(l.Content)
		}

		pairs := e.cfg.candidatePairs(tokens)
		kept, merged := mergeBucket(bucket, pairs, now)
		if merged > 0 {
			log.Debug("merged duplicates", "category", cat, "count", merged)
			col.Learnings[cat] = kept
			report.MergedCount += merged
		}
	}

	report.ArchivedCount = archive(col, currentSession, e.cfg.ArchiveAfterSessions)

	report.AfterCount = col.ActiveCount()
	col.Metadata.LastCurated = &now
	col.Metadata.CurationRuns++
	return report
}

// recategorize assigns a fixed category to every active learning that lacks
// a valid one. Returns the number of assignments.
func (e *Engine) recategorize(col *store.Collection) int {
	changes := 0
	for cat, bucket := range col.Learnings {
		if store.IsValidCategory(cat) {
			continue
		}
		for _, l := range bucket {
			l.Category = Categorize(l.Content, l.Tags, e.cfg.Keywords)
			col.Learnings[l.Category] = append(col.Learnings[l.Category], l)
			changes++
		}
		delete(col.Learnings, cat)
	}
	return changes
}

// newID generates a short learning id, collision-checked against the whole
// collection (active, archived, and merged-away ids).
func newID(col *store.Collection) string {
	for {
		id := "L" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		if !col.HasID(id) {
			return id
		}
	}
}

// normalizeTags lower-cases, trims, and de-duplicates tags, preserving
// first-seen order.
func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
