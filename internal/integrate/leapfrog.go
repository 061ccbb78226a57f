// Package integrate advances a body system in time.
package integrate

import (
	"github.com/san-kum/nbodylab/internal/gravity"
	"github.com/san-kum/nbodylab/internal/nbody"
)

// Leapfrog is the velocity-Verlet scheme: a position update using the
// current acceleration, one force evaluation at the new positions, then a
// velocity update averaging old and new accelerations. Second order,
// symplectic, one force evaluation per step.
type Leapfrog struct {
	engine *gravity.Engine
}

func NewLeapfrog(engine *gravity.Engine) *Leapfrog {
	return &Leapfrog{engine: engine}
}

// Prime seeds accelerations from the initial positions. Must run once
// before the first Step.
func (l *Leapfrog) Prime(sys nbody.System) {
	l.engine.Accelerations(sys)
}

// Step advances every body by dt in place. All three spatial components
// follow the same update rule.
func (l *Leapfrog) Step(sys nbody.System, dt float64) {
	for i := range sys {
		b := &sys[i]
		b.PrevAcc = b.Acc
		b.Pos = b.Pos.Add(b.Vel.Scale(dt)).Add(b.PrevAcc.Scale(0.5 * dt * dt))
	}

	l.engine.Accelerations(sys)

	halfDt := 0.5 * dt
	for i := range sys {
		b := &sys[i]
		b.Vel = b.Vel.Add(b.PrevAcc.Add(b.Acc).Scale(halfDt))
		b.PrevAcc = b.Acc
	}
}
