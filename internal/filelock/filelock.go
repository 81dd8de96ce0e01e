// Package filelock provides advisory file locking so that a CLI command and
// an open TUI never interleave writes to the same storage slot.
package filelock

import (
	"fmt"
	"os"
)

const lockFileMode = 0o600

// Lock acquires an exclusive advisory lock on the file at path,
// creating it if it does not exist. The returned function releases
// the lock and must be called when the critical section is done.
//
// Only one process can hold the lock at a time; other callers block
// until the lock is available.
func Lock(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return nil, err
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}

// With runs fn while holding the lock at path. An unlock failure is
// reported only when fn itself succeeded.
func With(path string, fn func() error) error {
	unlock, err := Lock(path)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	fnErr := fn()
	unlockErr := unlock()
	if fnErr != nil {
		return fnErr
	}
	if unlockErr != nil {
		return fmt.Errorf("releasing lock: %w", unlockErr)
	}
	return nil
}
