// Package gravity evaluates pairwise Newtonian accelerations over a body
// system, parallelized across a fixed number of workers.
package gravity

import "github.com/san-kum/nbodylab/internal/nbody"

// Engine computes net gravitational accelerations with a symmetric all-pairs
// sweep: each unordered pair (i, j), i<j, is visited exactly once and its
// contribution applied to both bodies. Cost is O(n^2) per invocation.
type Engine struct {
	Workers int
	Policy  Policy
}

func New(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{Workers: workers, Policy: PartitionBalanced}
}

type workerResult struct {
	id  int
	acc []nbody.Vec3
}

// Accelerations overwrites every body's Acc with the net acceleration from
// all other bodies. Workers are spawned fresh per invocation; each reads a
// private snapshot of positions and masses and writes only its own buffer,
// so no shared state is touched concurrently. Buffers are reduced in
// worker-id order, which keeps the float summation order independent of
// goroutine completion order (bit-identical results across runs).
//
// Coincident bodies divide by zero and propagate Inf/NaN; that is accepted
// degenerate input, not an error. A panicking worker takes the process down:
// a step's computation is all-or-nothing.
func (e *Engine) Accelerations(sys nbody.System) {
	n := len(sys)
	for i := range sys {
		sys[i].Acc = nbody.Vec3{}
	}
	if n < 2 {
		return
	}

	pos := make([]nbody.Vec3, n)
	mass := make([]float64, n)
	for i := range sys {
		pos[i] = sys[i].Pos
		mass[i] = sys[i].Mass
	}

	ranges := Partition(n, e.Workers, e.Policy)
	out := make(chan workerResult, len(ranges))

	for id, r := range ranges {
		go func(id int, r Range) {
			acc := make([]nbody.Vec3, n)
			for i := r.Start; i < r.End; i++ {
				for j := i + 1; j < n; j++ {
					rij := pos[i].Sub(pos[j])
					d := rij.Norm()
					inv3 := 1.0 / (d * d * d)
					acc[i] = acc[i].Sub(rij.Scale(mass[j] * inv3))
					acc[j] = acc[j].Add(rij.Scale(mass[i] * inv3))
				}
			}
			out <- workerResult{id: id, acc: acc}
		}(id, r)
	}

	buffers := make([][]nbody.Vec3, len(ranges))
	for range ranges {
		res := <-out
		buffers[res.id] = res.acc
	}

	for _, buf := range buffers {
		for i := range sys {
			sys[i].Acc = sys[i].Acc.Add(buf[i])
		}
	}
}
