package pipeline

import (
	"fmt"
	"os"
	"strconv"
)

// Lock is a simple lock-file guard preventing two publish runs from racing
// on the same staging directory. Acquisition fails fast; there is no
// waiting or stale-lock takeover.
type Lock struct {
	path string
}

// NewLock creates a lock guard at the given path.
func NewLock(path string) *Lock { return &Lock{path: path} }

// Acquire creates the lock file exclusively, recording the owning pid.
func (l *Lock) Acquire() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("another publish appears to be running (lock file %s exists)", l.path)
		}
		return fmt.Errorf("failed to create lock file %s: %w", l.path, err)
	}
	_, werr := f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

// Release removes the lock file. A missing file is not an error.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file %s: %w", l.path, err)
	}
	return nil
}
