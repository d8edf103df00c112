package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Load reads and validates the store document at path.
func Load(path string) (*Collection, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &StoreNotFoundError{
				Path: path,
				Hint: "Run 'insight-hub add' to capture your first learning",
			}
		}
		return nil, fmt.Errorf("failed to access store: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &PermissionError{
				Path: path,
				Op:   "read",
				Fix:  fmt.Sprintf("Run: chmod 644 %s", path),
			}
		}
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	var col Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return nil, &CorruptStoreError{
			Path:    path,
			Message: fmt.Sprintf("JSON parse error: %v", err),
			Hint:    "Restore from .bak file if available",
		}
	}

	if col.Learnings == nil {
		col.Learnings = make(map[string][]*Learning)
	}

	if err := Validate(&col); err != nil {
		return nil, &CorruptStoreError{
			Path:    path,
			Message: err.Error(),
			Hint:    "Restore from .bak file if available, or fix the document by hand",
		}
	}

	return &col, nil
}

// LoadOrInit reads the store document at path, creating an empty collection
// when the file does not exist yet.
func LoadOrInit(path string) (*Collection, error) {
	col, err := Load(path)
	if err != nil {
		var notFound *StoreNotFoundError
		if errors.As(err, &notFound) {
			return NewCollection(), nil
		}
		return nil, err
	}
	return col, nil
}
