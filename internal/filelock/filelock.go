// Package filelock serializes writers of the config directory across
// processes with an advisory lock file.
package filelock

import (
	"errors"
	"fmt"
	"os"
)

const lockFileMode = 0o600

// Lock takes an exclusive advisory lock on the file at path, creating it if
// needed, and blocks until the lock is free. Call the returned function to
// release it.
func Lock(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}

	return func() error {
		return errors.Join(unlockFile(f), f.Close())
	}, nil
}

// With runs fn while holding the lock at path. Errors from fn and from
// releasing the lock are both reported.
func With(path string, fn func() error) (err error) {
	unlock, err := Lock(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, unlock())
	}()
	return fn()
}
