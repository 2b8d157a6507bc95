package cubedcarac

import (
	"runtime"
	"sync"

	"github.com/golang/geo/r3"
)

// computeRowsParallel shards cell rows over workers. Each worker owns a
// contiguous block of rows and its own issue slice; slices are merged in
// row order so the result matches the serial path.
func computeRowsParallel(m *Metrics, nodes []r3.Vector, workers int) []*NumericDomainError {
	rows := m.Cells()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > rows {
		workers = rows
	}

	per, rem := rows/workers, rows%workers
	DebugLogOnce("Launching %d workers (rows: %d each, +1 for first %d workers)", workers, per, rem)

	local := make([][]*NumericDomainError, workers)
	var wg sync.WaitGroup
	start := 0
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		if n == 0 {
			continue
		}
		wg.Add(1)
		go func(wid, i0, i1 int) {
			defer wg.Done()
			local[wid] = computeRows(m, nodes, i0, i1)
		}(w, start, start+n)
		start += n
	}
	wg.Wait()

	var issues []*NumericDomainError
	for _, l := range local {
		issues = append(issues, l...)
	}
	return issues
}

// DefaultWorkers is the worker count used when Parallel is set.
func DefaultWorkers() int { return imax(1, runtime.NumCPU()) }
