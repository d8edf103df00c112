package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
)

// SearchBM25 performs BM25 keyword search over the indexed learnings.
func (i *Indexer) SearchBM25(queryText string, limit int) ([]Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	searchQuery := bleve.NewMatchQuery(queryText)
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, limit, 0, false)
	searchRequest.Fields = []string{"content", "category", "tags", "session"}

	results, err := i.bleveIndex.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(results), nil
}

// SearchByCategory performs BM25 search scoped to a single category.
func (i *Indexer) SearchByCategory(queryText, category string, limit int) ([]Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(queryText)
	categoryQuery := bleve.NewTermQuery(category)
	categoryQuery.SetField("category")

	conjunction := bleve.NewConjunctionQuery(matchQuery, categoryQuery)
	searchRequest := bleve.NewSearchRequestOptions(conjunction, limit, 0, false)
	searchRequest.Fields = []string{"content", "category", "tags", "session"}

	results, err := i.bleveIndex.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(results), nil
}

// convertBleveResults converts Bleve hits to our Result format.
func convertBleveResults(results *bleve.SearchResult) []Result {
	out := make([]Result, 0, len(results.Hits))
	for _, hit := range results.Hits {
		content, _ := hit.Fields["content"].(string)
		category, _ := hit.Fields["category"].(string)
		tagsRaw, _ := hit.Fields["tags"].(string)
		session, _ := hit.Fields["session"].(float64)

		var tags []string
		if tagsRaw != "" {
			tags = strings.Fields(tagsRaw)
		}

		out = append(out, Result{
			ID:       hit.ID,
			Content:  content,
			Category: category,
			Tags:     tags,
			Session:  int(session),
			Score:    hit.Score,
		})
	}
	return out
}
