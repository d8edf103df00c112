package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndListRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s := NewStoreAt(dbPath)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	runs := []RunRecord{
		{RunAt: base, BeforeCount: 10, AfterCount: 8, MergedCount: 1, ArchivedCount: 1, Recategorized: 2},
		{RunAt: base.Add(time.Hour), BeforeCount: 8, AfterCount: 8},
	}
	for _, rec := range runs {
		if err := s.RecordRun(rec); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	got, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListRuns returned %d records, want 2", len(got))
	}
	// Newest first.
	if !got[0].RunAt.Equal(base.Add(time.Hour)) {
		t.Errorf("first record RunAt = %v, want %v", got[0].RunAt, base.Add(time.Hour))
	}
	if got[1].BeforeCount != 10 || got[1].MergedCount != 1 {
		t.Errorf("unexpected oldest record: %+v", got[1])
	}
}

func TestListRunsLimit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s := NewStoreAt(dbPath)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := s.RecordRun(RunRecord{RunAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	got, err := s.ListRuns(3)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("ListRuns returned %d records, want 3", len(got))
	}
}

func TestInitCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deep", "history.db")
	s := NewStoreAt(dbPath)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("db directory not created: %v", err)
	}
}

func TestGracefulDegradation(t *testing.T) {
	// Parent path is a regular file, so the directory cannot be created.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s := NewStoreAt(filepath.Join(blocker, "sub", "history.db"))
	if err := s.Init(); err == nil {
		t.Fatal("expected Init error, got nil")
	}

	// Disabled store: everything is a no-op, nothing fails.
	if err := s.RecordRun(RunRecord{RunAt: time.Now()}); err != nil {
		t.Errorf("RecordRun on disabled store failed: %v", err)
	}
	got, err := s.ListRuns(10)
	if err != nil {
		t.Errorf("ListRuns on disabled store failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("disabled store returned %d records, want 0", len(got))
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close on disabled store failed: %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s := NewStoreAt(dbPath)
	if err := s.Init(); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer s.Close()

	if err := s.RecordRun(RunRecord{RunAt: time.Now()}); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
}
