// Package runlock enforces single-instance pipeline execution. Two
// concurrent runs would race on the state journal and on intermediate files
// beside the sources, so a run refuses to start while another holds the lock.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld reports that another pipeline run holds the lock.
var ErrHeld = errors.New("another docmill run is already in progress")

// Lock is an advisory file lock scoped to one pipeline run.
type Lock struct {
	path string
	lock *flock.Flock
}

// New prepares a lock file under dir.
func New(dir string) *Lock {
	path := filepath.Join(dir, "docmill.lock")
	return &Lock{path: path, lock: flock.New(path)}
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// Acquire takes the lock without blocking. A held lock yields ErrHeld.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrHeld
	}
	return nil
}

// Release drops the lock. Safe to call when the lock was never acquired.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}
