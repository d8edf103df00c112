/*
Package query implements read-side operations over the knowledge base:
filtering, relevance-ranked search, statistics, and the session timeline.

All operations see active learnings only, except Get, which also resolves
archived and merged-away ids.
*/
package query

import (
	"sort"

	"github.com/ankushdixit/insight-hub/internal/store"
)

// FilterOptions narrows a listing. Zero-valued fields are inactive; set
// fields are AND-ed together.
type FilterOptions struct {
	Category string
	Tag      string
	Session  int
	// BySession must be set for Session to apply, since 0 is a valid
	// session number.
	BySession bool
}

// Filter returns the active learnings matching every set filter, in
// category-priority order. No match yields an empty slice, not an error.
func Filter(col *store.Collection, opts FilterOptions) []*store.Learning {
	out := []*store.Learning{}
	for _, l := range col.Active() {
		if opts.Category != "" && l.Category != opts.Category {
			continue
		}
		if opts.Tag != "" && !l.HasTag(opts.Tag) {
			continue
		}
		if opts.BySession && l.Session != opts.Session {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Origin says where Get found a learning.
type Origin string

const (
	OriginActive   Origin = "active"
	OriginArchived Origin = "archived"
	// OriginMerged means the requested id was absorbed by a merge; the
	// returned learning is the primary that carries its provenance.
	OriginMerged Origin = "merged"
)

// Get resolves a learning id anywhere in the collection. Archived learnings
// stay retrievable here even though every other query excludes them.
func Get(col *store.Collection, id string) (*store.Learning, Origin, error) {
	if l := col.FindActive(id); l != nil {
		return l, OriginActive, nil
	}
	if l := col.FindArchived(id); l != nil {
		return l, OriginArchived, nil
	}
	if l := col.FindMergedInto(id); l != nil {
		return l, OriginMerged, nil
	}
	return nil, "", &store.NotFoundError{ID: id}
}

// TimelineEntry is one session's group in the timeline view.
type TimelineEntry struct {
	Session    int              `json:"session"`
	Learnings  []*store.Learning `json:"learnings"`
	TotalCount int              `json:"total_count"`
}

// Timeline groups active learnings by session, most recent session first.
// Each group carries up to previewCount learnings; TotalCount reports the
// full group size. sessionWindow limits the output to the N most recent
// sessions (0 = all).
func Timeline(col *store.Collection, sessionWindow, previewCount int) []TimelineEntry {
	if previewCount <= 0 {
		previewCount = 3
	}

	bySession := make(map[int][]*store.Learning)
	for _, l := range col.Active() {
		bySession[l.Session] = append(bySession[l.Session], l)
	}

	sessions := make([]int, 0, len(bySession))
	for s := range bySession {
		sessions = append(sessions, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sessions)))

	if sessionWindow > 0 && len(sessions) > sessionWindow {
		sessions = sessions[:sessionWindow]
	}

	entries := make([]TimelineEntry, 0, len(sessions))
	for _, s := range sessions {
		group := bySession[s]
		preview := group
		if len(preview) > previewCount {
			preview = preview[:previewCount]
		}
		entries = append(entries, TimelineEntry{
			Session:    s,
			Learnings:  preview,
			TotalCount: len(group),
		})
	}
	return entries
}
