package nbody

import "math"

// Vec3 is a 3-component double-precision vector.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) NormSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.NormSq())
}

// Body is one point mass. Acc holds the acceleration at the current step,
// PrevAcc the one from the step before; both are needed by the leapfrog
// update. Masses are in units with G folded in.
type Body struct {
	Mass    float64
	Pos     Vec3
	Vel     Vec3
	Acc     Vec3
	PrevAcc Vec3
}

// System is the fixed set of bodies for a run. Index i refers to the same
// body for the whole simulation; bodies are never added or removed.
type System []Body

func (s System) Clone() System {
	c := make(System, len(s))
	copy(c, s)
	return c
}
