// Package energy computes total mechanical energy for drift diagnostics.
package energy

import "github.com/san-kum/nbodylab/internal/nbody"

// Report is a snapshot of system energy. Total = Kinetic + Potential.
type Report struct {
	Total     float64
	Kinetic   float64
	Potential float64
}

// Monitor computes energy reports. It never mutates the system and is
// idempotent for an unchanged system.
//
// The default kinetic term is sum 0.5*m*|v|, the speed rather than the
// squared speed; a regression test pins it. Classic switches to the
// textbook 0.5*m*|v|^2. Drift numbers change between the two.
type Monitor struct {
	Classic bool
}

func (m Monitor) Compute(sys nbody.System) Report {
	var r Report

	for i := range sys {
		if m.Classic {
			r.Kinetic += 0.5 * sys[i].Mass * sys[i].Vel.NormSq()
		} else {
			r.Kinetic += 0.5 * sys[i].Mass * sys[i].Vel.Norm()
		}
	}

	for i := 0; i < len(sys); i++ {
		for j := i + 1; j < len(sys); j++ {
			d := sys[i].Pos.Sub(sys[j].Pos).Norm()
			r.Potential -= sys[i].Mass * sys[j].Mass / d
		}
	}

	r.Total = r.Kinetic + r.Potential
	return r
}
