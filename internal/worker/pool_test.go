package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_ResultsAlignWithInputOrder(t *testing.T) {
	t.Parallel()

	errSecond := errors.New("second failed")
	jobs := []func(context.Context) error{
		func(context.Context) error { time.Sleep(20 * time.Millisecond); return nil },
		func(context.Context) error { return errSecond },
		func(context.Context) error { return nil },
	}

	results := NewPool(3).Run(context.Background(), jobs)
	if len(results) != 3 {
		t.Fatalf("expected 3 result slots, got %d", len(results))
	}
	if results[0] != nil || results[2] != nil {
		t.Fatalf("unexpected failures: %v", results)
	}
	if !errors.Is(results[1], errSecond) {
		t.Fatalf("slot 1 = %v, want %v", results[1], errSecond)
	}
}

func TestRun_BoundedParallelism(t *testing.T) {
	t.Parallel()

	const size = 2
	var running, peak int32
	var mu sync.Mutex

	job := func(context.Context) error {
		cur := atomic.AddInt32(&running, 1)
		mu.Lock()
		if cur > peak {
			peak = cur
		}
		mu.Unlock()
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}

	jobs := make([]func(context.Context) error, 6)
	for i := range jobs {
		jobs[i] = job
	}
	NewPool(size).Run(context.Background(), jobs)

	if peak > size {
		t.Fatalf("observed %d concurrent jobs, cap is %d", peak, size)
	}
}

func TestRun_CancelStopsDispatch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var executed int32

	jobs := make([]func(context.Context) error, 5)
	jobs[0] = func(context.Context) error {
		atomic.AddInt32(&executed, 1)
		cancel()
		// hold the only slot until cancellation propagates
		time.Sleep(50 * time.Millisecond)
		return nil
	}
	for i := 1; i < len(jobs); i++ {
		jobs[i] = func(context.Context) error {
			atomic.AddInt32(&executed, 1)
			return nil
		}
	}

	results := NewPool(1).Run(ctx, jobs)

	if got := atomic.LoadInt32(&executed); got != 1 {
		t.Fatalf("expected only the first job to run, %d ran", got)
	}
	for i := 1; i < len(results); i++ {
		if !errors.Is(results[i], context.Canceled) {
			t.Fatalf("slot %d = %v, want context.Canceled", i, results[i])
		}
	}
}

func TestNewPool_DefaultSize(t *testing.T) {
	t.Parallel()
	if got := NewPool(0); got.size < 1 {
		t.Fatalf("default pool size %d", got.size)
	}
	if got := NewPool(-3); got.size < 1 {
		t.Fatalf("default pool size %d", got.size)
	}
}
