// Package parallel provides a small helper for splitting index ranges
// across CPU cores. The dataset generator uses it to synthesize frame
// containers concurrently.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, items) across up to NumCPU workers and runs fn on
// each contiguous (start, end) range. fn must be safe to call concurrently
// for disjoint ranges. Parallelize returns once every range has completed.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// ceiling division so the last worker picks up the remainder
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially over the whole range when
// items is at or below threshold, and parallelizes otherwise. Small
// workloads are not worth the goroutine overhead.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}
