package media

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewWorkerPool(t *testing.T) {
	pool := NewWorkerPool(3, 4, setupTestLogger())
	defer pool.Stop()

	assert.Equal(t, 3, pool.workerCount)
	assert.Equal(t, 4, cap(pool.jobs))

	// invalid counts default to one worker
	fallback := NewWorkerPool(0, -1, setupTestLogger())
	defer fallback.Stop()
	assert.Equal(t, 1, fallback.workerCount)
	assert.Equal(t, 0, cap(fallback.jobs))
}

func TestWorkerPool_RunsJobs(t *testing.T) {
	pool := NewWorkerPool(2, 2, setupTestLogger())
	defer pool.Stop()

	var count atomic.Int32
	done := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		require.NoError(t, pool.Submit(context.Background(), func() {
			count.Add(1)
			done <- struct{}{}
		}))
	}
	for i := 0; i < 10; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("job did not run")
		}
	}
	assert.Equal(t, int32(10), count.Load())
}

func TestWorkerPool_BoundedConcurrency(t *testing.T) {
	pool := NewWorkerPool(2, 8, setupTestLogger())
	defer pool.Stop()

	var running, peak atomic.Int32
	release := make(chan struct{})
	finished := make(chan struct{}, 6)
	for i := 0; i < 6; i++ {
		require.NoError(t, pool.Submit(context.Background(), func() {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-release
			running.Add(-1)
			finished <- struct{}{}
		}))
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	for i := 0; i < 6; i++ {
		<-finished
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestWorkerPool_SubmitHonoursContext(t *testing.T) {
	pool := NewWorkerPool(1, 0, setupTestLogger())
	defer pool.Stop()

	block := make(chan struct{})
	defer close(block)
	require.NoError(t, pool.Submit(context.Background(), func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Submit(ctx, func() {})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorkerPool_RecoversPanics(t *testing.T) {
	pool := NewWorkerPool(1, 1, setupTestLogger())
	defer pool.Stop()

	require.NoError(t, pool.Submit(context.Background(), func() { panic("boom") }))

	done := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), func() { close(done) }))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive a panic")
	}
}

func TestWorkerPool_Stop(t *testing.T) {
	pool := NewWorkerPool(1, 1, setupTestLogger())
	pool.Stop()

	err := pool.Submit(context.Background(), func() {})

	assert.ErrorIs(t, err, ErrPoolStopped)
}
