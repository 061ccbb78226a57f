package integrate

import (
	"math"
	"testing"

	"github.com/san-kum/nbodylab/internal/energy"
	"github.com/san-kum/nbodylab/internal/gravity"
	"github.com/san-kum/nbodylab/internal/nbody"
)

func newLeapfrog(workers int) *Leapfrog {
	return NewLeapfrog(gravity.New(workers))
}

func TestStepUpdatesAllAxes(t *testing.T) {
	// Bodies separated along each axis in turn; attraction must move them
	// on that axis. No axis is special-cased.
	axes := []struct {
		name string
		sep  nbody.Vec3
		get  func(nbody.Vec3) float64
	}{
		{"x", nbody.Vec3{X: 1}, func(v nbody.Vec3) float64 { return v.X }},
		{"y", nbody.Vec3{Y: 1}, func(v nbody.Vec3) float64 { return v.Y }},
		{"z", nbody.Vec3{Z: 1}, func(v nbody.Vec3) float64 { return v.Z }},
	}

	for _, ax := range axes {
		t.Run(ax.name, func(t *testing.T) {
			sys := nbody.System{
				{Mass: 1.0},
				{Mass: 1.0, Pos: ax.sep},
			}
			l := newLeapfrog(2)
			l.Prime(sys)

			dt := 1e-2
			for i := 0; i < 10; i++ {
				l.Step(sys, dt)
			}

			if ax.get(sys[0].Pos) <= 0 {
				t.Errorf("body 0 did not move toward body 1 on %s: %v", ax.name, sys[0].Pos)
			}
			if ax.get(sys[1].Vel) >= 0 {
				t.Errorf("body 1 did not accelerate toward body 0 on %s: %v", ax.name, sys[1].Vel)
			}
		})
	}
}

func TestStepBookkeeping(t *testing.T) {
	sys := nbody.Binary()
	l := newLeapfrog(2)
	l.Prime(sys)
	l.Step(sys, 1e-3)

	for i := range sys {
		if sys[i].PrevAcc != sys[i].Acc {
			t.Errorf("body %d: PrevAcc %v != Acc %v after step", i, sys[i].PrevAcc, sys[i].Acc)
		}
	}
}

func TestFreeBodyMovesLinearly(t *testing.T) {
	sys := nbody.System{{Mass: 1.0, Vel: nbody.Vec3{X: 1, Y: 2, Z: 3}}}
	l := newLeapfrog(1)
	l.Prime(sys)

	dt := 1e-2
	for i := 0; i < 100; i++ {
		l.Step(sys, dt)
	}

	want := nbody.Vec3{X: 1, Y: 2, Z: 3}
	if d := sys[0].Pos.Sub(want).Norm(); d > 1e-9 {
		t.Errorf("free body at %v, want %v", sys[0].Pos, want)
	}
	if sys[0].Acc != (nbody.Vec3{}) {
		t.Errorf("free body acceleration %v, want zero", sys[0].Acc)
	}
}

func TestCircularOrbitEnergyDrift(t *testing.T) {
	// One full period of the unit-separation binary at dt=1e-3 must keep
	// relative energy drift under 1e-3.
	sys := nbody.Binary()
	monitor := energy.Monitor{}
	total0 := monitor.Compute(sys).Total

	l := newLeapfrog(2)
	l.Prime(sys)

	dt := 1e-3
	period := 2 * math.Pi / math.Sqrt2
	steps := int(period / dt)
	for i := 0; i < steps; i++ {
		l.Step(sys, dt)
	}

	total := monitor.Compute(sys).Total
	drift := math.Abs((total - total0) / total0)
	if drift > 1e-3 {
		t.Errorf("energy drift %.3e exceeds 1e-3 over one period", drift)
	}

	// The orbit should come back near its starting separation too.
	sep := sys[1].Pos.Sub(sys[0].Pos).Norm()
	if math.Abs(sep-1) > 1e-2 {
		t.Errorf("separation %v after one period, want ~1", sep)
	}
}
