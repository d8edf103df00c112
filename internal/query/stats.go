package query

import (
	"sort"

	"github.com/ankushdixit/insight-hub/internal/store"
)

// CategoryCount is one category's share of the active collection.
type CategoryCount struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// TagCount is one tag's frequency across active learnings.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Stats aggregates the active collection.
type Stats struct {
	Total          int             `json:"total"`
	Archived       int             `json:"archived"`
	Categories     []CategoryCount `json:"categories"`
	TopTags        []TagCount      `json:"top_tags"`
	RecentSessions int             `json:"recent_sessions"`
	RecentCount    int             `json:"recent_count"`
}

// Statistics computes counts per category (with percentage of total), the
// topN most frequent tags, and how many learnings were captured within the
// recentSessions most recent session numbers.
func Statistics(col *store.Collection, topN, recentSessions int) Stats {
	if topN <= 0 {
		topN = 10
	}
	if recentSessions <= 0 {
		recentSessions = 5
	}

	stats := Stats{
		Total:          col.ActiveCount(),
		Archived:       len(col.Archived),
		RecentSessions: recentSessions,
	}

	for _, cat := range store.Categories {
		count := len(col.Learnings[cat])
		if count == 0 {
			continue
		}
		pct := 0.0
		if stats.Total > 0 {
			pct = float64(count) / float64(stats.Total) * 100
		}
		stats.Categories = append(stats.Categories, CategoryCount{
			Category: cat,
			Count:    count,
			Percent:  pct,
		})
	}
	if n := len(col.Learnings[store.CategoryUncategorized]); n > 0 {
		pct := float64(n) / float64(stats.Total) * 100
		stats.Categories = append(stats.Categories, CategoryCount{
			Category: store.CategoryUncategorized,
			Count:    n,
			Percent:  pct,
		})
	}

	tagCounts := make(map[string]int)
	maxSession := 0
	for _, l := range col.Active() {
		for _, tag := range l.Tags {
			tagCounts[tag]++
		}
		if l.Session > maxSession {
			maxSession = l.Session
		}
	}

	tags := make([]TagCount, 0, len(tagCounts))
	for tag, count := range tagCounts {
		tags = append(tags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > topN {
		tags = tags[:topN]
	}
	stats.TopTags = tags

	cutoff := maxSession - recentSessions + 1
	for _, l := range col.Active() {
		if l.Session >= cutoff {
			stats.RecentCount++
		}
	}

	return stats
}
