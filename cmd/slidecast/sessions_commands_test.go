package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSessionsListAndClean(t *testing.T) {
	env := setupCLITestEnv(t)

	workDir := filepath.Join(env.baseDir, "work")
	staleSession := filepath.Join(workDir, "0b6a7c1e-stale")
	if err := os.MkdirAll(filepath.Join(staleSession, "frames"), 0o755); err != nil {
		t.Fatalf("create session: %v", err)
	}
	oldTime := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(staleSession, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	out, err := runCLI(t, "--config", env.configPath, "sessions", "list")
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	requireContains(t, out, "0b6a7c1e-stale")
	requireContains(t, out, "1 session(s)")

	out, err = runCLI(t, "--config", env.configPath, "sessions", "clean", "--older-than", "24h")
	if err != nil {
		t.Fatalf("sessions clean: %v", err)
	}
	requireContains(t, out, "Removed 1 session(s)")

	if _, err := os.Stat(staleSession); !os.IsNotExist(err) {
		t.Fatal("stale session should have been removed")
	}

	out, err = runCLI(t, "--config", env.configPath, "sessions", "list")
	if err != nil {
		t.Fatalf("sessions list after clean: %v", err)
	}
	requireContains(t, out, "No session directories found")
}
