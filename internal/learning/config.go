package learning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ankushdixit/insight-hub/internal/store"
)

// Config holds the curation engine's tunables. Zero values are replaced by
// defaults; the structure is immutable during a run.
type Config struct {
	// JaccardThreshold marks a pair as duplicate candidates when their
	// Jaccard similarity reaches it.
	JaccardThreshold float64

	// ContainmentThreshold marks a pair as duplicate candidates when the
	// smaller token set is mostly contained in the larger one.
	ContainmentThreshold float64

	// ArchiveAfterSessions is the session-age beyond which a learning is
	// moved out of the active set.
	ArchiveAfterSessions int

	// Keywords maps each category to its signal keywords. Swapping the
	// table is a config change, not a code change.
	Keywords map[string][]string
}

// Default thresholds. Tuned against the content-only token policy; changing
// the tokenizer invalidates them.
const (
	DefaultJaccardThreshold     = 0.6
	DefaultContainmentThreshold = 0.8
	DefaultArchiveAfterSessions = 50
)

// defaultKeywords is the built-in category signal table.
var defaultKeywords = map[string][]string{
	store.CategorySecurity: {
		"auth", "token", "jwt", "oauth", "password", "secret", "credential",
		"vulnerability", "cors", "injection", "xss", "csrf", "sanitize",
		"encrypt", "tls", "ssl", "permission", "privilege",
	},
	store.CategoryGotchas: {
		"gotcha", "surprise", "unexpected", "silently", "actually", "careful",
		"warning", "tricky", "subtle", "breaks", "fails", "wrong", "bug",
		"edge", "race", "nil", "null", "undefined", "deadlock",
	},
	store.CategoryArchitecturePatterns: {
		"architecture", "pattern", "layer", "module", "boundary", "interface",
		"dependency", "coupling", "abstraction", "design", "structure",
		"component", "service", "middleware", "handler", "pipeline",
	},
	store.CategoryPerformanceInsights: {
		"performance", "slow", "fast", "latency", "throughput", "memory",
		"allocation", "cache", "benchmark", "profile", "optimize", "batch",
		"index", "query", "pool",
	},
	store.CategoryTechnicalDebt: {
		"debt", "todo", "hack", "workaround", "temporary", "legacy",
		"refactor", "cleanup", "deprecated", "duplicate", "outdated",
		"brittle", "fragile",
	},
	store.CategoryBestPractices: {
		"practice", "convention", "standard", "prefer", "always", "never",
		"should", "recommend", "idiomatic", "test", "testing", "lint",
		"review", "document", "naming",
	},
}

// DefaultConfig returns the engine defaults with the built-in keyword table.
func DefaultConfig() Config {
	return Config{
		JaccardThreshold:     DefaultJaccardThreshold,
		ContainmentThreshold: DefaultContainmentThreshold,
		ArchiveAfterSessions: DefaultArchiveAfterSessions,
		Keywords:             defaultKeywords,
	}
}

// withDefaults fills zero-valued fields from the defaults.
func (c Config) withDefaults() Config {
	if c.JaccardThreshold <= 0 {
		c.JaccardThreshold = DefaultJaccardThreshold
	}
	if c.ContainmentThreshold <= 0 {
		c.ContainmentThreshold = DefaultContainmentThreshold
	}
	if c.ArchiveAfterSessions <= 0 {
		c.ArchiveAfterSessions = DefaultArchiveAfterSessions
	}
	if c.Keywords == nil {
		c.Keywords = defaultKeywords
	}
	return c
}

// LoadKeywords reads a category→keywords override table from a YAML file:
//
//	security: [auth, token, cors]
//	gotchas: [surprise, silently]
//
// Every key must be a member of the fixed category set. Categories absent
// from the file keep their built-in keywords.
func LoadKeywords(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword table: %w", err)
	}

	var overrides map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse keyword table: %w", err)
	}

	merged := make(map[string][]string, len(defaultKeywords))
	for cat, words := range defaultKeywords {
		merged[cat] = words
	}
	for cat, words := range overrides {
		if !store.IsValidCategory(cat) {
			return nil, fmt.Errorf("keyword table: unknown category %q", cat)
		}
		merged[cat] = words
	}
	return merged, nil
}
