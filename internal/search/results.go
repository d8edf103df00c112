/*
Package search implements full-text search over the knowledge base.

It provides a BM25 index (Bleve, in-memory) over active learnings and a
hybrid mode that fuses BM25 relevance with the query layer's weighted
lexical score. The weighted scorer remains the default ranking contract;
BM25 and hybrid are alternative modes for fuzzier recall.
*/
package search

// Result represents a single search hit with its relevance score.
type Result struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Session  int      `json:"session"`
	Score    float64  `json:"score"`
}
