package filelock

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSerializesWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".config.lock")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := With(path, func() error {
				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()

				time.Sleep(2 * time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestWithReturnsCallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".config.lock")
	boom := errors.New("boom")

	err := With(path, func() error { return boom })
	require.ErrorIs(t, err, boom)

	// The lock was released.
	unlock, err := Lock(path)
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestLockMissingDir(t *testing.T) {
	_, err := Lock(filepath.Join(t.TempDir(), "nope", ".lock"))
	assert.ErrorContains(t, err, "opening lock file")
}
