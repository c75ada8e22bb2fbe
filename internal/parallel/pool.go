package parallel

import (
	"context"
	"runtime"
	"sync"

	"github.com/nibzard/tododiff/internal/todotxt"
)

// chunkSize is the number of lines a worker parses per job. Small inputs
// degrade to a single chunk.
const chunkSize = 256

// Pool parses todo.txt lines with bounded concurrency while preserving
// input order: task i always comes from line i.
type Pool struct {
	workers int
}

// NewPool creates a parse pool. If workers is 0 or negative, GOMAXPROCS
// workers are used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers reports the configured concurrency.
func (p *Pool) Workers() int {
	return p.workers
}

// ParseLines parses every line into a task. Parsing itself never fails;
// the only error is context cancellation, in which case the partially
// filled result is discarded.
func (p *Pool) ParseLines(ctx context.Context, lines []string) ([]todotxt.Task, error) {
	tasks := make([]todotxt.Task, len(lines))
	if len(lines) == 0 {
		return tasks, ctx.Err()
	}

	type chunk struct {
		start, end int
	}
	chunks := make(chan chunk)
	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range chunks {
				// Disjoint index ranges, no locking needed.
				for i := c.start; i < c.end; i++ {
					tasks[i] = todotxt.Parse(lines[i])
				}
			}
		}()
	}

	var cancelled bool
feed:
	for start := 0; start < len(lines); start += chunkSize {
		end := start + chunkSize
		if end > len(lines) {
			end = len(lines)
		}
		select {
		case chunks <- chunk{start: start, end: end}:
		case <-ctx.Done():
			cancelled = true
			break feed
		}
	}
	close(chunks)
	wg.Wait()

	if cancelled {
		return nil, ctx.Err()
	}
	return tasks, nil
}
