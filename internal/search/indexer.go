package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/charmbracelet/log"

	"github.com/ankushdixit/insight-hub/internal/store"
)

// Indexer manages the BM25 search index over active learnings.
type Indexer struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
}

// NewIndexer creates an in-memory Bleve index. The store document is small
// enough that rebuilding the index per invocation beats maintaining a
// persistent one alongside it.
func NewIndexer() (*Indexer, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return &Indexer{bleveIndex: index}, nil
}

// buildIndexMapping creates the Bleve index mapping for learning documents.
func buildIndexMapping() mapping.IndexMapping {
	learningMapping := bleve.NewDocumentMapping()

	contentField := bleve.NewTextFieldMapping()
	learningMapping.AddFieldMappingsAt("content", contentField)

	categoryField := bleve.NewTextFieldMapping()
	learningMapping.AddFieldMappingsAt("category", categoryField)

	tagsField := bleve.NewTextFieldMapping()
	learningMapping.AddFieldMappingsAt("tags", tagsField)

	contextField := bleve.NewTextFieldMapping()
	learningMapping.AddFieldMappingsAt("context", contextField)

	// Session is stored for retrieval, not searched.
	sessionField := bleve.NewNumericFieldMapping()
	sessionField.IncludeInAll = false
	learningMapping.AddFieldMappingsAt("session", sessionField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", learningMapping)
	return indexMapping
}

// IndexCollection indexes every active learning in the collection.
func (i *Indexer) IndexCollection(col *store.Collection) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.bleveIndex.NewBatch()
	for _, l := range col.Active() {
		doc := map[string]interface{}{
			"content":  l.Content,
			"category": l.Category,
			"tags":     strings.Join(l.Tags, " "),
			"context":  l.Context,
			"session":  l.Session,
		}
		if err := batch.Index(l.ID, doc); err != nil {
			log.Warn("failed to index learning", "id", l.ID, "err", err)
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index learnings: %w", err)
	}
	return nil
}

// Count returns the number of indexed learnings.
func (i *Indexer) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	n, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return n, nil
}

// Close closes the index and releases resources.
func (i *Indexer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.bleveIndex != nil {
		return i.bleveIndex.Close()
	}
	return nil
}
