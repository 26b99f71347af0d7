// Package pathbuilder implements the path builder (component P): it
// consumes an ordered leg list plus an aircraft configuration and
// emits a per-leg grouping of 3D flight-path points, splicing in
// turns, intercepts, and a vertical profile as it goes.
package pathbuilder

import "github.com/procspec/navproc/pkg/legs"

// PointDensity is points emitted per revolution per nautical mile of
// turn radius.
const PointDensity = 32

// MaxInterceptDistanceNM bounds how far a radial/DME intersection may
// land from its reference before it is rejected as unreachable.
const MaxInterceptDistanceNM = 128

// CIRadiusNM is the nominal turn radius used for CI/VI course
// intercepts, where no aircraft-specific radius is meaningful yet.
const CIRadiusNM = 2

// RFToleranceNM bounds how far (in nm) off a DME arc the current position may
// sit before AF splices in a go_to_dme intercept first.
const RFToleranceNM = 0.1

// AircraftConfig carries the few performance numbers the vertical
// profile and turn construction need.
type AircraftConfig struct {
	MinTurnRadiusNM float64
	ClimbGradient   float64 // ft climbed per ft flown
	DescentGradient float64 // ft descended per ft flown (positive)
}

// StartState optionally seeds the first point of a build.
type StartState struct {
	LatDeg, LonDeg float64
	CourseRad      float64
	AltFt          float64
}

// PathPoint is one point of the emitted flight path. Course is always
// true north; AltFt is NegInf until the vertical profile resolves it.
type PathPoint struct {
	LatRad, LonRad   float64
	InboundCourseRad float64
	AltFt            float64
}

// LegPoints is one leg's committed points, in flight order.
type LegPoints struct {
	Leg    legs.Leg
	Points []PathPoint
}

// Result is a completed build: the per-leg grouping (what the ribbon
// extruder consumes) plus the flattened point stream.
type Result struct {
	PerLeg []LegPoints
	Flat   []PathPoint
}
