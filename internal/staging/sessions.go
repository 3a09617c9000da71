package staging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"slidecast/internal/logging"
)

// SessionInfo describes one session directory left in the work dir.
type SessionInfo struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// CleanResult reports the outcome of a stale session sweep.
type CleanResult struct {
	Removed []string
	Errors  []CleanError
}

// CleanError pairs a session path with its removal error.
type CleanError struct {
	Path  string
	Error error
}

// ListSessions returns the session directories under the work dir with
// their age and on-disk size. Kept frames from --keep-frames runs and
// sessions abandoned by crashed runs both show up here.
func ListSessions(workDir string) ([]SessionInfo, error) {
	workDir = strings.TrimSpace(workDir)
	if workDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []SessionInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(workDir, entry.Name())
		size, _ := dirSize(path)
		sessions = append(sessions, SessionInfo{
			Name:    entry.Name(),
			Path:    path,
			ModTime: info.ModTime(),
			Size:    size,
		})
	}
	return sessions, nil
}

// CleanStale removes session directories older than maxAge and reports
// what was removed. Files in the work dir, including the render lock, are
// left alone.
func CleanStale(workDir string, maxAge time.Duration, logger *slog.Logger) CleanResult {
	result := CleanResult{}

	workDir = strings.TrimSpace(workDir)
	if workDir == "" {
		return result
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanError{Path: workDir, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(workDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanError{Path: path, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			result.Errors = append(result.Errors, CleanError{Path: path, Error: err})
			if logger != nil {
				logger.Warn("failed to remove stale session",
					logging.String("path", path),
					logging.Error(err))
			}
			continue
		}
		result.Removed = append(result.Removed, path)
		if logger != nil {
			logger.Info("removed stale session",
				logging.String("path", path),
				logging.Duration("age", time.Since(info.ModTime()).Truncate(time.Second)))
		}
	}
	return result
}

// dirSize totals the file sizes under path, best effort.
func dirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
