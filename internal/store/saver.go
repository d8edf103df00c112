package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Save writes the collection to path with schema validation, a backup of the
// previous version, and an atomic replace. On any failure before the final
// rename, the existing on-disk document is untouched.
func Save(col *Collection, path string) error {
	if err := Validate(col); err != nil {
		return fmt.Errorf("refusing to save invalid collection: %w", err)
	}

	if err := checkWritePermission(path); err != nil {
		return err
	}

	// Backup existing document. First run has nothing to back up.
	if err := backup(path); err != nil {
		log.Warn("failed to create backup", "path", path, "err", err)
	}

	data, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	return atomicWrite(path, data)
}

func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.WriteFile(path+".bak", data, 0644)
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}

// checkWritePermission verifies the store path is writable before any
// mutation is attempted.
func checkWritePermission(path string) error {
	if info, err := os.Stat(path); err == nil && info.Mode().Perm()&0200 == 0 {
		return &PermissionError{
			Path: path,
			Op:   "write",
			Fix:  fmt.Sprintf("Run: chmod u+w %s", path),
		}
	}
	return nil
}
