package staging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"slidecast/internal/config"
	"slidecast/internal/logging"
	"slidecast/internal/services"
)

// Workspace is a locked per-run scratch area under the configured work
// directory. Frames and the intermediate MP4 live here until the run moves
// the result to its final destination.
type Workspace struct {
	cfg    *config.Config
	logger *slog.Logger

	lockPath   string
	lock       *flock.Flock
	sessionDir string
	framesDir  string
}

// NewWorkspace creates the work directory tree, takes the render lock, and
// allocates a unique session directory. A second concurrent run fails fast
// instead of stepping on the first run's frames.
func NewWorkspace(cfg *config.Config, logger *slog.Logger) (*Workspace, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "staging", "ensure directories", "cannot create work directories", err)
	}

	lockPath := filepath.Join(cfg.Paths.WorkDir, "render.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrBusy, "staging", "acquire lock", "cannot acquire render lock", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrBusy, "staging", "acquire lock",
			fmt.Sprintf("another render holds %s", lockPath), nil)
	}

	sessionDir := filepath.Join(cfg.Paths.WorkDir, uuid.NewString())
	framesDir := filepath.Join(sessionDir, "frames")
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		_ = lock.Unlock()
		return nil, services.Wrap(services.ErrConfiguration, "staging", "create session", "cannot create session directory", err)
	}

	logger = logging.NewComponentLogger(logger, "staging")
	logger.Debug("workspace ready",
		logging.String("session", sessionDir),
		logging.String("lock", lockPath))

	return &Workspace{
		cfg:        cfg,
		logger:     logger,
		lockPath:   lockPath,
		lock:       lock,
		sessionDir: sessionDir,
		framesDir:  framesDir,
	}, nil
}

// FramesDir returns the directory render output should be written to.
func (w *Workspace) FramesDir() string {
	return w.framesDir
}

// Path returns a session-local path for the given file name.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.sessionDir, name)
}

// Cleanup releases the render lock and removes the session directory.
// When keepFrames is set the session directory survives for inspection.
func (w *Workspace) Cleanup(keepFrames bool) {
	if w.lock != nil {
		if err := w.lock.Unlock(); err != nil {
			w.logger.Warn("failed to release render lock", logging.Error(err))
		}
		w.lock = nil
	}
	if keepFrames {
		w.logger.Info("keeping session directory", logging.String("session", w.sessionDir))
		return
	}
	if err := os.RemoveAll(w.sessionDir); err != nil {
		w.logger.Warn("failed to remove session directory",
			logging.String("session", w.sessionDir),
			logging.Error(err))
	}
}
