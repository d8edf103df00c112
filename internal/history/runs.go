package history

import (
	"time"

	"github.com/charmbracelet/log"
)

// RecordRun appends one curation run to the log. Failures are logged, not
// returned; the run log must never fail a curation.
func (s *SQLiteStore) RecordRun(rec RunRecord) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO curation_runs (run_at, before_count, after_count, merged_count, archived_count, recategorized)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		rec.RunAt.Format(time.RFC3339),
		rec.BeforeCount,
		rec.AfterCount,
		rec.MergedCount,
		rec.ArchivedCount,
		rec.Recategorized,
	)
	if err != nil {
		log.Warn("failed to record curation run", "err", err)
	}
	return nil
}

// ListRuns returns the most recent curation runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]RunRecord, error) {
	if !s.enabled || s.db == nil {
		return []RunRecord{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT run_at, before_count, after_count, merged_count, archived_count, recategorized
		FROM curation_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		log.Warn("failed to query curation runs", "err", err)
		return []RunRecord{}, nil
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var runAt string
		if err := rows.Scan(
			&runAt,
			&rec.BeforeCount,
			&rec.AfterCount,
			&rec.MergedCount,
			&rec.ArchivedCount,
			&rec.Recategorized,
		); err != nil {
			log.Warn("failed to scan run row", "err", err)
			continue
		}
		if t, err := time.Parse(time.RFC3339, runAt); err == nil {
			rec.RunAt = t
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
