/*
Package history implements a persistent log of curation runs.

Every non-dry curation pass appends one row describing what it did, so the
growth and shrinkage of the knowledge base stays auditable. The log lives in
a SQLite database at ~/.insight-hub/history.db using modernc.org/sqlite (a
pure Go, CGo-free implementation).

The log is best-effort: if the database cannot be opened, the store disables
itself and every operation becomes a no-op rather than failing the curation
that triggered it.
*/
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// RunRecord describes one curation run.
type RunRecord struct {
	// RunAt is when the run completed.
	RunAt time.Time `json:"run_at"`

	// BeforeCount and AfterCount are active learning counts around the run.
	BeforeCount int `json:"before_count"`
	AfterCount  int `json:"after_count"`

	// MergedCount is how many learnings were folded into primaries.
	MergedCount int `json:"merged_count"`

	// ArchivedCount is how many learnings were moved to the archive.
	ArchivedCount int `json:"archived_count"`

	// Recategorized is how many learnings received a category.
	Recategorized int `json:"recategorized"`
}

// Store defines the curation-run log operations.
type Store interface {
	// Init opens the database and runs migrations.
	Init() error

	// RecordRun appends one curation run to the log.
	RecordRun(rec RunRecord) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]RunRecord, error)

	// Close closes the database connection.
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
}

// NewStore creates a run log at the default location
// (~/.insight-hub/history.db), creating the directory if needed.
func NewStore() *SQLiteStore {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("failed to get home directory", "err", err)
		return &SQLiteStore{enabled: false}
	}
	return NewStoreAt(filepath.Join(home, ".insight-hub", "history.db"))
}

// NewStoreAt creates a run log at an explicit path.
func NewStoreAt(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath:  dbPath,
		enabled: true,
	}
}

// Init opens the database and runs migrations. On failure the store is
// disabled and subsequent operations become no-ops.
func (s *SQLiteStore) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.dbPath), 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.enabled = false
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.enabled = false
			log.Warn("history disabled", "err", initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.enabled = false
			log.Warn("history disabled", "err", initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.enabled = false
			log.Warn("history disabled", "err", initErr)
			return
		}
	})

	return initErr
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	s.db = nil
	return nil
}
