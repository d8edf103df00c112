package learning

import (
	"fmt"
	"sort"
	"time"

	"github.com/ankushdixit/insight-hub/internal/store"
)

// mergeBucket clusters the duplicate-candidate pairs of one category bucket
// and folds every non-primary cluster member into its primary. Returns the
// surviving entries (bucket order preserved) and the number of learnings
// merged away.
//
// Primary selection: longest content by word count, ties broken by earliest
// timestamp, then by smallest id. The primary's content, category, session,
// timestamp, and context are untouched; only its tags and merge history
// grow.
func mergeBucket(bucket []*store.Learning, pairs []candidatePair, now time.Time) ([]*store.Learning, int) {
	if len(pairs) == 0 {
		return bucket, 0
	}

	uf := newUnionFind(len(bucket))
	for _, p := range pairs {
		uf.union(p.i, p.j)
	}

	clusters := make(map[int][]int)
	for i := range bucket {
		root := uf.find(i)
		clusters[root] = append(clusters[root], i)
	}

	// Strongest candidate edge incident to each index; its kind and score
	// become the merge reason for that member.
	bestEdge := make(map[int]candidatePair)
	for _, p := range pairs {
		for _, idx := range [2]int{p.i, p.j} {
			cur, ok := bestEdge[idx]
			if !ok || p.score > cur.score {
				bestEdge[idx] = p
			}
		}
	}

	removed := make(map[int]bool)
	merged := 0

	for _, members := range clusters {
		if len(members) < 2 {
			continue
		}

		primary := members[0]
		for _, idx := range members[1:] {
			if betterPrimary(bucket[idx], bucket[primary]) {
				primary = idx
			}
		}

		// Deterministic absorption order: bucket position.
		sort.Ints(members)
		for _, idx := range members {
			if idx == primary {
				continue
			}
			absorb(bucket[primary], bucket[idx], bestEdge[idx], now)
			removed[idx] = true
			merged++
		}
	}

	kept := bucket[:0:0]
	for i, l := range bucket {
		if !removed[i] {
			kept = append(kept, l)
		}
	}
	return kept, merged
}

// betterPrimary reports whether a should be preferred over b as the cluster
// primary.
func betterPrimary(a, b *store.Learning) bool {
	wa, wb := WordCount(a.Content), WordCount(b.Content)
	if wa != wb {
		return wa > wb
	}
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.ID < b.ID
}

// absorb folds other into primary: tag union plus a provenance record. The
// absorbed learning's id stays resolvable through the primary's merge
// history only.
func absorb(primary, other *store.Learning, edge candidatePair, now time.Time) {
	for _, tag := range other.Tags {
		if !primary.HasTag(tag) {
			primary.Tags = append(primary.Tags, tag)
		}
	}

	// Provenance from learnings the absorbed entry had itself absorbed is
	// carried over so their ids remain resolvable.
	primary.MergeHistory = append(primary.MergeHistory, other.MergeHistory...)

	primary.MergeHistory = append(primary.MergeHistory, store.MergeRecord{
		MergedID: other.ID,
		MergedAt: now,
		Reason:   fmt.Sprintf("%s %.2f", edge.kind, edge.score),
	})
}
