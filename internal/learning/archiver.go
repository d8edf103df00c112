package learning

import (
	"github.com/ankushdixit/insight-hub/internal/store"
)

// archive moves active learnings older than the configured session age out
// of the category buckets and into the archived list. One-directional:
// nothing un-archives. Returns the number of learnings moved.
//
// "Older" is strict: with the default age of 50 and current session 100,
// sessions 1–49 are archived and session 50 stays active.
func archive(col *store.Collection, currentSession, maxAge int) int {
	moved := 0
	for cat, bucket := range col.Learnings {
		kept := bucket[:0:0]
		for _, l := range bucket {
			if currentSession-l.Session > maxAge {
				col.Archived = append(col.Archived, l)
				moved++
			} else {
				kept = append(kept, l)
			}
		}
		if len(kept) == 0 {
			delete(col.Learnings, cat)
		} else {
			col.Learnings[cat] = kept
		}
	}
	return moved
}

// currentSessionOf returns the highest session number among active
// learnings, the fallback when the caller does not supply one.
func currentSessionOf(col *store.Collection) int {
	max := 0
	for _, l := range col.Active() {
		if l.Session > max {
			max = l.Session
		}
	}
	return max
}
