// Package wavefront implements §4.F's path-tracer driver and §3's
// PathSegment array: the generate/intersect/shade/compact loop that stands
// in for the spec's massively-parallel SPMD launches (§5), here mapped onto
// a goroutine worker pool. Grounded on the teacher's pkg/renderer worker
// pool (tile-task fan-out via channel + WaitGroup), generalized from
// per-tile pixel work to per-path wavefront stages.
package wavefront

import "runtime"

// parallelFor runs fn(i) for i in [0, n) across a bounded pool of
// goroutines, one logical worker per path or per pixel per §5's scheduling
// model, synchronizing at the call's return (the stage boundary).
func parallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	done := make(chan struct{}, workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			done <- struct{}{}
			continue
		}
		if end > n {
			end = n
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				fn(i)
			}
			done <- struct{}{}
		}(start, end)
	}
	for w := 0; w < workers; w++ {
		<-done
	}
}
