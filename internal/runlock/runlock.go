// Package runlock enforces single-instance execution. reshelf assumes it is
// the sole writer to the directories it manages during a run; the advisory
// lock keeps two concurrent runs from violating that assumption.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld indicates another reshelf process holds the lock.
var ErrHeld = errors.New("another reshelf run is already in progress")

// Lock is an acquired run lock.
type Lock struct {
	path  string
	flock *flock.Flock
}

// Acquire takes the run lock without blocking. It fails with ErrHeld when a
// concurrent run owns it.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	fileLock := flock.New(path)
	ok, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrHeld, path)
	}
	return &Lock{path: path, flock: fileLock}, nil
}

// Release gives up the lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}
