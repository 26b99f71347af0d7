// Package geo implements the spherical geometry kernel that the leg
// assembler and ribbon extruder build on: great-circle intercepts,
// turning circles, DME intersections, tangent-line reconstruction, and
// the small dense linear solves the ribbon extruder's mitred joints
// need. Everything here operates on a sphere of fixed radius EarthRadiusNM
// (Non-goal: true WGS-84 ellipsoidal geodesy).
package geo

import (
	"math"

	"golang.org/x/exp/constraints"
)

// EarthRadiusNM is the fixed spherical-earth radius used throughout the
// kernel, in nautical miles.
const EarthRadiusNM = 3443.9184665

// NMToFeet converts nautical miles to feet.
const NMToFeet = 6076.12

// Tolerance bounds degenerate input: a vector magnitude (on a unit
// sphere) below this is treated as "no meaningful direction". It is
// centralized here so host applications can retune it for their float
// precision.
const Tolerance = 0.3 / EarthRadiusNM

// Vec3 is a triplet of float64s used for all spherical math. Distances
// are rescaled by EarthRadiusNM only at the boundary where a result is
// handed back to a caller in nautical miles or feet.
type Vec3 struct {
	X, Y, Z float64
}

func NewVec3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Neg() Vec3       { return Vec3{-a.X, -a.Y, -a.Z} }
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) MagSq() float64 {
	return a.Dot(a)
}

func (a Vec3) Mag() float64 {
	return math.Sqrt(a.MagSq())
}

// Normalize returns the unit vector along a. It fails with ErrDegenerate
// when a's magnitude squared is below Tolerance squared, i.e. its
// magnitude is below Tolerance (sub-nautical-mile on a unit sphere): callers trap this as "no well-defined direction" rather
// than dividing by a near-zero length.
func (a Vec3) Normalize() (Vec3, error) {
	m2 := a.MagSq()
	if m2 < Tolerance*Tolerance {
		return Vec3{}, ErrDegenerate
	}
	m := math.Sqrt(m2)
	return Vec3{a.X / m, a.Y / m, a.Z / m}, nil
}

// Clamp restricts x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// normalizeAngle reduces a radian angle to [0, 2pi).
func normalizeAngle(a float64) float64 {
	const twoPi = 2 * math.Pi
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
