package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("user-1"), lm.GetLock("user-1"))
	assert.NotSame(t, lm.GetLock("user-1"), lm.GetLock("user-2"))
}

func TestWithLock_SerializesSameKey(t *testing.T) {
	lm := NewLockManager()

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			err := lm.WithLock("user-1", func() error {
				counter++
				return nil
			})
			require.NoError(t, err)
		}()
	}

	wg.Wait()
	assert.Equal(t, workers, counter)
}
