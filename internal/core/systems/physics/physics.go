package physics

import "math"

// Small vector helpers shared by probes and scenes.

// Finite reports whether every component of v is a finite number.
func Finite(v Vec3) bool {
	return FiniteScalar(v[0]) && FiniteScalar(v[1]) && FiniteScalar(v[2])
}

// FiniteScalar reports whether f is neither NaN nor infinite.
func FiniteScalar(f float32) bool {
	d := float64(f)
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}

// DistanceSq returns the squared distance between a and b.
func DistanceSq(a, b Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Horizontal drops the vertical component of v.
func Horizontal(v Vec3) Vec3 { return Vec3{v[0], v[1], 0} }

// Lerp returns the point at fraction t along the segment from a to b.
func Lerp(a, b Vec3, t float32) Vec3 { return a.Add(b.Sub(a).Mul(t)) }

// Round rounds half away from zero.
func Round(f float32) float32 { return float32(math.Round(float64(f))) }
