package search

import (
	"sort"

	"github.com/ankushdixit/insight-hub/internal/query"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// FusionConfig defines weights for hybrid score fusion.
type FusionConfig struct {
	WeightedWeight float64
	BM25Weight     float64
}

// DefaultFusionConfig leans on the weighted lexical scorer (70%) with BM25
// filling in fuzzier matches (30%).
var DefaultFusionConfig = FusionConfig{
	WeightedWeight: 0.7,
	BM25Weight:     0.3,
}

// SearchHybrid fuses the query layer's weighted lexical scores with BM25
// relevance. Both score sets are normalized to [0, 1] before fusion so the
// weights are meaningful across queries.
func (i *Indexer) SearchHybrid(col *store.Collection, queryText string, limit int, config FusionConfig) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	bm25Results, err := i.SearchBM25(queryText, limit*2)
	if err != nil {
		return nil, err
	}
	bm25Results = normalizeScores(bm25Results)

	weighted := normalizeScores(toResults(query.Search(col, queryText), limit*2))

	fused := fuseScores(weighted, bm25Results, config)

	sort.Slice(fused, func(a, b int) bool {
		if fused[a].Score != fused[b].Score {
			return fused[a].Score > fused[b].Score
		}
		return fused[a].ID < fused[b].ID
	})

	if len(fused) > limit {
		fused = fused[:limit]
	}
	return fused, nil
}

// toResults converts query layer results into search results.
func toResults(hits []query.Result, limit int) []Result {
	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Result, 0, len(hits))
	for _, h := range hits {
		out = append(out, Result{
			ID:       h.Learning.ID,
			Content:  h.Learning.Content,
			Category: h.Learning.Category,
			Tags:     h.Learning.Tags,
			Session:  h.Learning.Session,
			Score:    h.Score,
		})
	}
	return out
}

// fuseScores combines the two result sets using weighted fusion. A learning
// present in only one set keeps that set's (weighted) contribution.
func fuseScores(weighted, bm25 []Result, config FusionConfig) []Result {
	weightedMap := make(map[string]Result, len(weighted))
	for _, r := range weighted {
		weightedMap[r.ID] = r
	}
	bm25Map := make(map[string]Result, len(bm25))
	for _, r := range bm25 {
		bm25Map[r.ID] = r
	}

	ids := make(map[string]bool)
	for id := range weightedMap {
		ids[id] = true
	}
	for id := range bm25Map {
		ids[id] = true
	}

	fused := make([]Result, 0, len(ids))
	for id := range ids {
		wr, hasWeighted := weightedMap[id]
		br, hasBM25 := bm25Map[id]

		var score float64
		var base Result
		switch {
		case hasWeighted && hasBM25:
			score = config.WeightedWeight*wr.Score + config.BM25Weight*br.Score
			base = wr
		case hasWeighted:
			score = config.WeightedWeight * wr.Score
			base = wr
		default:
			score = config.BM25Weight * br.Score
			base = br
		}

		base.Score = score
		fused = append(fused, base)
	}
	return fused
}

// normalizeScores rescales scores to [0, 1]. Equal scores all become 1.0.
func normalizeScores(results []Result) []Result {
	if len(results) == 0 {
		return results
	}

	minScore, maxScore := results[0].Score, results[0].Score
	for _, r := range results {
		if r.Score < minScore {
			minScore = r.Score
		}
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	normalized := make([]Result, len(results))
	for i, r := range results {
		normalized[i] = r
		if maxScore == minScore {
			normalized[i].Score = 1.0
		} else {
			normalized[i].Score = (r.Score - minScore) / (maxScore - minScore)
		}
	}
	return normalized
}
