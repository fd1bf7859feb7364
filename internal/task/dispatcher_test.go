package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(2, 8, time.Second)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		d.Submit("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	d.Shutdown(ctx)

	assert.Equal(t, int32(5), ran.Load())
}

func TestDispatcherIsolatesFailures(t *testing.T) {
	d := NewDispatcher(1, 8, time.Second)

	var ran atomic.Int32
	d.Submit("boom", func(ctx context.Context) error {
		return errors.New("downstream unavailable")
	})
	d.Submit("panic", func(ctx context.Context) error {
		panic("unexpected")
	})
	d.Submit("after", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	d.Shutdown(ctx)

	// A failing or panicking job must not stop later jobs from running.
	assert.Equal(t, int32(1), ran.Load())
}

func TestDispatcherJobTimeout(t *testing.T) {
	d := NewDispatcher(1, 2, 50*time.Millisecond)

	done := make(chan error, 1)
	d.Submit("slow", func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	})

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("job context was never cancelled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	d.Shutdown(ctx)
}

func TestDispatcherRejectsAfterShutdown(t *testing.T) {
	d := NewDispatcher(1, 2, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	d.Shutdown(ctx)

	var ran atomic.Int32
	d.Submit("late", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), ran.Load())
}
