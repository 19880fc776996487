package numbers

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenSet(t *testing.T) {
	s := NewSeenSet()

	assert.True(t, s.Add(1))
	assert.False(t, s.Add(1))
	assert.True(t, s.Add(2))
	assert.True(t, s.Add(MaxNumber))
	assert.True(t, s.Add(0))

	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(3))
	assert.Equal(t, 4, s.Len())
}

func TestSeenSetConcurrentAdd(t *testing.T) {
	s := NewSeenSet()

	const goroutines = 16
	const numbers = 2000

	var inserted atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < numbers; i++ {
				if s.Add(Number(i)) {
					inserted.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	// Every number was offered 16 times; exactly one offer wins each time
	require.Equal(t, int64(numbers), inserted.Load())
	assert.Equal(t, numbers, s.Len())
}
