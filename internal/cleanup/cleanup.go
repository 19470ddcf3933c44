package cleanup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

var logger = slog.Default()

// SetLogger overrides the cleanup logger (useful for CLI configured logging).
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Tracker tracks partially written files that must not survive an
// interrupted or failed run
type Tracker struct {
	files map[string]struct{}
	mu    sync.Mutex
}

// NewTracker creates a new cleanup tracker
func NewTracker() *Tracker {
	return &Tracker{
		files: make(map[string]struct{}),
	}
}

// Register adds a file path to the cleanup list
func (t *Tracker) Register(path string) {
	if path == "" || path == "-" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files[path] = struct{}{}
}

// Unregister removes a file path from the cleanup list
func (t *Tracker) Unregister(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.files, path)
}

// Pending returns the registered paths in lexical order
func (t *Tracker) Pending() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	files := make([]string, 0, len(t.files))
	for path := range t.files {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// CreateTemp creates a registered temporary file next to dest, so that a
// later Commit is a same-filesystem rename.
func (t *Tracker) CreateTemp(dest string) (*os.File, error) {
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	t.Register(f.Name())
	return f, nil
}

// Commit closes f and renames it onto dest. On failure the temporary file is
// left registered for Cleanup.
func (t *Tracker) Commit(f *os.File, dest string) error {
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", f.Name(), err)
	}
	if err := os.Rename(f.Name(), dest); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	t.Unregister(f.Name())
	return nil
}

// Cleanup removes all registered files
func (t *Tracker) Cleanup() {
	t.mu.Lock()
	files := make([]string, 0, len(t.files))
	for path := range t.files {
		files = append(files, path)
	}
	t.files = make(map[string]struct{})
	t.mu.Unlock()

	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			// Best effort cleanup - errors are non-critical
			logger.Warn("cleanup_failed", "file", path, "error", err)
		}
	}
}
