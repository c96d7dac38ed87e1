// Package worker runs independent highlight jobs with bounded parallelism.
// Every job is read-only over the shared inputs and writes to its own output
// paths, so the pool needs no coordination beyond the concurrency cap.
package worker

import (
	"context"
	"runtime"
	"sync"
)

// DefaultSize caps parallel transcodes; ffmpeg already saturates several
// cores per job.
func DefaultSize() int {
	n := runtime.NumCPU()
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

type Pool struct {
	size int
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultSize()
	}
	return &Pool{size: size}
}

// Run executes every job and returns one error slot per job, aligned with
// the input order. Once ctx is cancelled no new jobs are dispatched; their
// slots carry the context error. Jobs already running observe ctx
// themselves.
func (p *Pool) Run(ctx context.Context, jobs []func(context.Context) error) []error {
	results := make([]error, len(jobs))
	sem := make(chan struct{}, p.size)
	var wg sync.WaitGroup

	for i, job := range jobs {
		select {
		case <-ctx.Done():
			results[i] = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, job func(context.Context) error) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = job(ctx)
		}(i, job)
	}

	wg.Wait()
	return results
}
