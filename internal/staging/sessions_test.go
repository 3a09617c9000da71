package staging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"slidecast/internal/logging"
)

func TestCleanStaleInvalidPaths(t *testing.T) {
	for _, dir := range []string{"", "   ", "/nonexistent/path/12345"} {
		result := CleanStale(dir, time.Hour, logging.NewNop())
		if len(result.Removed) != 0 || len(result.Errors) != 0 {
			t.Errorf("expected empty result for path %q", dir)
		}
	}
}

func TestCleanStaleRemovesOldSessions(t *testing.T) {
	workDir := t.TempDir()

	oldDir := filepath.Join(workDir, "old-session")
	if err := os.Mkdir(oldDir, 0o755); err != nil {
		t.Fatalf("create old dir: %v", err)
	}
	oldTime := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(oldDir, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	recentDir := filepath.Join(workDir, "recent-session")
	if err := os.Mkdir(recentDir, 0o755); err != nil {
		t.Fatalf("create recent dir: %v", err)
	}

	result := CleanStale(workDir, time.Hour, logging.NewNop())

	if len(result.Removed) != 1 {
		t.Fatalf("expected 1 removed, got %d", len(result.Removed))
	}
	if result.Removed[0] != oldDir {
		t.Errorf("expected %s removed, got %s", oldDir, result.Removed[0])
	}
	if _, err := os.Stat(oldDir); !os.IsNotExist(err) {
		t.Error("old session should have been removed")
	}
	if _, err := os.Stat(recentDir); err != nil {
		t.Error("recent session should still exist")
	}
}

func TestCleanStaleLeavesFilesAlone(t *testing.T) {
	workDir := t.TempDir()

	lockFile := filepath.Join(workDir, "render.lock")
	if err := os.WriteFile(lockFile, nil, 0o644); err != nil {
		t.Fatalf("create lock file: %v", err)
	}
	oldTime := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(lockFile, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	result := CleanStale(workDir, time.Hour, logging.NewNop())

	if len(result.Removed) != 0 {
		t.Errorf("expected no removals for files, got %d", len(result.Removed))
	}
	if _, err := os.Stat(lockFile); err != nil {
		t.Error("lock file should not have been removed")
	}
}

func TestListSessionsInvalidPaths(t *testing.T) {
	for _, path := range []string{"", "/nonexistent/path/12345"} {
		sessions, err := ListSessions(path)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", path, err)
		}
		if sessions != nil {
			t.Errorf("expected nil for path %q, got %v", path, sessions)
		}
	}
}

func TestListSessionsReportsSizeAndIgnoresFiles(t *testing.T) {
	workDir := t.TempDir()

	session := filepath.Join(workDir, "session-1")
	if err := os.MkdirAll(filepath.Join(session, "frames"), 0o755); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := os.WriteFile(filepath.Join(session, "frames", "f_000000.jpg"), []byte("12345"), 0o644); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if err := os.WriteFile(filepath.Join(workDir, "render.lock"), nil, 0o644); err != nil {
		t.Fatalf("write lock: %v", err)
	}

	sessions, err := ListSessions(workDir)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Name != "session-1" {
		t.Errorf("unexpected name %q", sessions[0].Name)
	}
	if sessions[0].Size != 5 {
		t.Errorf("size = %d, want 5", sessions[0].Size)
	}
	if sessions[0].ModTime.IsZero() {
		t.Error("mod time should be set")
	}
}
