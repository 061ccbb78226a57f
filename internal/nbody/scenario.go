package nbody

import "math"

// Binary returns two unit masses on a circular mutual orbit with unit
// separation. With G folded into the mass unit the angular velocity is
// sqrt(2), giving an orbital period of 2*pi/sqrt(2).
func Binary() System {
	v := math.Sqrt2 / 2
	return System{
		{Mass: 1.0, Pos: Vec3{X: -0.5}, Vel: Vec3{Y: -v}},
		{Mass: 1.0, Pos: Vec3{X: 0.5}, Vel: Vec3{Y: v}},
	}
}

// Ring places n unit masses evenly on a unit circle in the XY plane with
// tangential velocity 0.5.
func Ring(n int) System {
	sys := make(System, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2.0 * math.Pi / float64(n)
		sys[i] = Body{
			Mass: 1.0,
			Pos:  Vec3{X: math.Cos(angle), Y: math.Sin(angle)},
			Vel:  Vec3{X: -math.Sin(angle) * 0.5, Y: math.Cos(angle) * 0.5},
		}
	}
	return sys
}
