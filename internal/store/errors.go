package store

import "fmt"

// StoreNotFoundError indicates the store document does not exist yet.
type StoreNotFoundError struct {
	Path string
	Hint string
}

func (e *StoreNotFoundError) Error() string {
	return fmt.Sprintf("store not found: %s\n\n💡 %s", e.Path, e.Hint)
}

// CorruptStoreError indicates the store document failed to parse or violates
// the schema. The on-disk file is left untouched so it can be recovered
// manually or reset.
type CorruptStoreError struct {
	Path    string
	Message string
	Hint    string
}

func (e *CorruptStoreError) Error() string {
	msg := fmt.Sprintf("corrupt store: %s\n", e.Path)
	if e.Message != "" {
		msg += e.Message + "\n"
	}
	if e.Hint != "" {
		msg += "💡 " + e.Hint
	}
	return msg
}

// NotFoundError indicates an id-based lookup miss.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("learning not found: %s", e.ID)
}

// InvalidInputError indicates a rejected capture or query input. Nothing is
// mutated when this is returned.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PermissionError indicates the store path cannot be read or written.
type PermissionError struct {
	Path string
	Op   string // "read" or "write"
	Fix  string // suggested fix command
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied (cannot %s store): %s\n💡 Fix: %s", e.Op, e.Path, e.Fix)
}
