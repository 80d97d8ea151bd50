package dedup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an advisory file lock next to the marker file.
// Two runs sharing a marker would otherwise race on it and double-dispatch.
type RunLock struct {
	fl *flock.Flock
}

func NewRunLock(markerPath string) *RunLock {
	return &RunLock{fl: flock.New(markerPath + ".lock")}
}

// TryAcquire returns false without blocking when another run holds the lock.
func (l *RunLock) TryAcquire() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to lock %s: %w", l.fl.Path(), err)
	}
	return ok, nil
}

func (l *RunLock) Release() error {
	return l.fl.Unlock()
}
