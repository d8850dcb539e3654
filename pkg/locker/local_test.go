package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_MutualExclusion(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	const goroutines = 50
	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "user:1")
			if err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, l.Len(), "entries must be released after use")
}

func TestLocal_DifferentKeysIndependent(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	r1, err := l.Acquire(ctx, "user:1")
	require.NoError(t, err)
	defer r1()

	done := make(chan struct{})
	go func() {
		r2, err := l.Acquire(ctx, "user:2")
		if err == nil {
			r2()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key must not block")
	}
}

func TestLocal_ContextCancel(t *testing.T) {
	l := NewLocal()

	release, err := l.Acquire(context.Background(), "user:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "user:1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release() // 重复释放无副作用
	assert.Equal(t, 0, l.Len())
}
