package physics

import "math"

// Vec3i is an integer grid coordinate.
type Vec3i struct{ X, Y, Z int }

// Vec3 is a world-space vector.
type Vec3 struct{ X, Y, Z float64 }

func (v Vec3i) Sub(o Vec3i) Vec3i { return Vec3i{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z} }

func (v Vec3i) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Scale converts a grid displacement to world units.
func (v Vec3i) Scale(f float64) Vec3 {
	return Vec3{X: float64(v.X) * f, Y: float64(v.Y) * f, Z: float64(v.Z) * f}
}

// Length is the Euclidean norm.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
