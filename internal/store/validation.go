package store

import "fmt"

// Validate checks the collection against the schema: required fields present,
// ids unique across active and archived entries, bucket keys drawn from the
// fixed category set (plus the transient uncategorized bucket).
func Validate(col *Collection) error {
	if col == nil {
		return fmt.Errorf("nil collection")
	}
	if col.Learnings == nil {
		return fmt.Errorf("missing 'learnings' field")
	}

	seen := make(map[string]bool)

	for cat, bucket := range col.Learnings {
		if !IsValidCategory(cat) && cat != CategoryUncategorized {
			return fmt.Errorf("unknown category bucket %q", cat)
		}
		for _, l := range bucket {
			if err := validateLearning(l, seen); err != nil {
				return fmt.Errorf("category %s: %w", cat, err)
			}
		}
	}

	for _, l := range col.Archived {
		if err := validateLearning(l, seen); err != nil {
			return fmt.Errorf("archived: %w", err)
		}
	}

	return nil
}

func validateLearning(l *Learning, seen map[string]bool) error {
	if l == nil {
		return fmt.Errorf("nil learning entry")
	}
	if l.ID == "" {
		return fmt.Errorf("learning with empty id")
	}
	if seen[l.ID] {
		return fmt.Errorf("duplicate id %s", l.ID)
	}
	seen[l.ID] = true

	if l.Content == "" {
		return fmt.Errorf("learning %s: empty content", l.ID)
	}
	if l.Session < 0 {
		return fmt.Errorf("learning %s: negative session %d", l.ID, l.Session)
	}
	if l.Timestamp.IsZero() {
		return fmt.Errorf("learning %s: missing timestamp", l.ID)
	}
	return nil
}
