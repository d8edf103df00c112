/*
Package store handles loading, saving, and validating the insight-hub
knowledge base.

The knowledge base is one JSON document (default ~/.insight-hub.json) holding
every captured learning. It is read whole and written whole; there are no
partial updates. Writes are atomic (temp file + rename) with a .bak backup of
the previous version.

Schema:

	{
	  "version": 1,
	  "learnings": {
	    "security": [
	      {
	        "id": "L1a2b3c4d",
	        "content": "JWT refresh tokens must be rotated on every use",
	        "category": "security",
	        "tags": ["jwt", "auth"],
	        "session": 12,
	        "timestamp": "2026-08-01T10:00:00Z",
	        "context": "found while reviewing the login flow",
	        "merge_history": [
	          {"merged_id": "L9f8e7d6c", "merged_at": "...", "reason": "containment 1.00"}
	        ]
	      }
	    ]
	  },
	  "archived": [],
	  "metadata": {"last_curated": "...", "total_captured": 42, "curation_runs": 3}
	}
*/
package store

import (
	"os"
	"path/filepath"
	"time"
)

// SchemaVersion is the current store document version.
const SchemaVersion = 1

// Fixed category set. Priority order (used for categorization tie-breaks)
// is the declaration order below; CategoryBestPractices is last and doubles
// as the fallback when no category keyword matches.
const (
	CategorySecurity             = "security"
	CategoryGotchas              = "gotchas"
	CategoryArchitecturePatterns = "architecture_patterns"
	CategoryPerformanceInsights  = "performance_insights"
	CategoryTechnicalDebt        = "technical_debt"
	CategoryBestPractices        = "best_practices"

	// CategoryUncategorized is a transient state for learnings captured
	// without an explicit category. It is never valid after a curation pass.
	CategoryUncategorized = "uncategorized"
)

// Categories lists the fixed category set in priority order.
var Categories = []string{
	CategorySecurity,
	CategoryGotchas,
	CategoryArchitecturePatterns,
	CategoryPerformanceInsights,
	CategoryTechnicalDebt,
	CategoryBestPractices,
}

// IsValidCategory reports whether s is a member of the fixed category set.
func IsValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// MergeRecord is one provenance entry on a learning that absorbed another.
type MergeRecord struct {
	// MergedID is the id of the learning that was folded in.
	MergedID string `json:"merged_id"`

	// MergedAt is the curation run time of the merge.
	MergedAt time.Time `json:"merged_at"`

	// Reason describes the triggering similarity, e.g. "jaccard 0.71".
	Reason string `json:"reason"`
}

// Learning is a single captured development insight.
type Learning struct {
	// ID is a short stable identifier, immutable after creation.
	ID string `json:"id"`

	// Content is the substantive free-text insight. Never empty.
	Content string `json:"content"`

	// Category is a member of the fixed category set (or "uncategorized"
	// before the first curation pass touches this learning).
	Category string `json:"category"`

	// Tags is a set of lowercase short strings. Order is preserved for
	// display but irrelevant for comparison.
	Tags []string `json:"tags,omitempty"`

	// Session is the session number in which this was captured. Immutable.
	Session int `json:"session"`

	// Timestamp is the creation time. Immutable.
	Timestamp time.Time `json:"timestamp"`

	// Context is an optional free-text note. Immutable once set.
	Context string `json:"context,omitempty"`

	// MergeHistory records every learning folded into this one. Append-only.
	MergeHistory []MergeRecord `json:"merge_history,omitempty"`
}

// HasTag reports whether the learning carries the given (lowercase) tag.
func (l *Learning) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the learning.
func (l *Learning) Clone() *Learning {
	c := *l
	c.Tags = append([]string(nil), l.Tags...)
	c.MergeHistory = append([]MergeRecord(nil), l.MergeHistory...)
	return &c
}

// Metadata holds aggregate bookkeeping for the collection.
type Metadata struct {
	// LastCurated is when the last (non-dry) curation pass completed.
	LastCurated *time.Time `json:"last_curated,omitempty"`

	// TotalCaptured counts every learning ever added, including ones later
	// merged away or archived.
	TotalCaptured int `json:"total_captured"`

	// CurationRuns counts completed non-dry curation passes.
	CurationRuns int `json:"curation_runs"`
}

// Collection is the full knowledge base: active learnings bucketed by
// category, archived learnings, and aggregate metadata.
type Collection struct {
	Version   int                    `json:"version"`
	Learnings map[string][]*Learning `json:"learnings"`
	Archived  []*Learning            `json:"archived,omitempty"`
	Metadata  Metadata               `json:"metadata"`
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		Version:   SchemaVersion,
		Learnings: make(map[string][]*Learning),
	}
}

// ActiveCount returns the number of active (non-archived) learnings.
func (c *Collection) ActiveCount() int {
	n := 0
	for _, bucket := range c.Learnings {
		n += len(bucket)
	}
	return n
}

// Active returns all active learnings in category-priority order, with the
// uncategorized bucket (if any) last. Order within a bucket is preserved.
func (c *Collection) Active() []*Learning {
	out := make([]*Learning, 0, c.ActiveCount())
	for _, cat := range Categories {
		out = append(out, c.Learnings[cat]...)
	}
	out = append(out, c.Learnings[CategoryUncategorized]...)
	return out
}

// FindActive returns the active learning with the given id, or nil.
func (c *Collection) FindActive(id string) *Learning {
	for _, bucket := range c.Learnings {
		for _, l := range bucket {
			if l.ID == id {
				return l
			}
		}
	}
	return nil
}

// FindArchived returns the archived learning with the given id, or nil.
func (c *Collection) FindArchived(id string) *Learning {
	for _, l := range c.Archived {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// FindMergedInto returns the learning whose merge history contains the given
// id, or nil. Checks active learnings first, then archived.
func (c *Collection) FindMergedInto(id string) *Learning {
	for _, l := range c.Active() {
		for _, rec := range l.MergeHistory {
			if rec.MergedID == id {
				return l
			}
		}
	}
	for _, l := range c.Archived {
		for _, rec := range l.MergeHistory {
			if rec.MergedID == id {
				return l
			}
		}
	}
	return nil
}

// HasID reports whether the id exists anywhere in the collection: active,
// archived, or recorded in any merge history.
func (c *Collection) HasID(id string) bool {
	return c.FindActive(id) != nil || c.FindArchived(id) != nil || c.FindMergedInto(id) != nil
}

// Clone returns a deep copy of the collection. Used by dry-run curation so
// the loaded document is never mutated.
func (c *Collection) Clone() *Collection {
	out := &Collection{
		Version:  c.Version,
		Metadata: c.Metadata,
	}
	if c.Metadata.LastCurated != nil {
		t := *c.Metadata.LastCurated
		out.Metadata.LastCurated = &t
	}
	out.Learnings = make(map[string][]*Learning, len(c.Learnings))
	for cat, bucket := range c.Learnings {
		copied := make([]*Learning, len(bucket))
		for i, l := range bucket {
			copied[i] = l.Clone()
		}
		out.Learnings[cat] = copied
	}
	if c.Archived != nil {
		out.Archived = make([]*Learning, len(c.Archived))
		for i, l := range c.Archived {
			out.Archived[i] = l.Clone()
		}
	}
	return out
}

// DefaultPath returns the default store location (~/.insight-hub.json).
// The INSIGHT_HUB_STORE environment variable overrides it.
func DefaultPath() string {
	if p := os.Getenv("INSIGHT_HUB_STORE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".insight-hub.json"
	}
	return filepath.Join(home, ".insight-hub.json")
}
