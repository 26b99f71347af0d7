// Package legs defines the ARINC-424 leg model: the typed data that a
// procedure's route is built from (waypoints, courses, altitude and
// speed restrictions, and the 23 path-terminator leg variants) plus the
// per-leg metadata (LegInfo) shared across all of them.
package legs

import "math"

// Waypoint is a named geographic point. Names are unique within
// (Region); runway-threshold waypoints are additionally unique within
// (Airport, Name). NavDB owns all Waypoints for its lifetime; legs only
// ever hold a pointer to one, never a copy.
type Waypoint struct {
	Name       string
	LatDeg     float64
	LonDeg     float64
	Region     string
	AirportRef string
}

// Course is a bearing, optionally referenced to magnetic north. Value
// is stored in degrees (source data uses tenths-of-degree encoding,
// divided by ten at parse time); it is not range-reduced to [0, 360).
type Course struct {
	ValueDeg   float64
	IsTrueNorth bool
}

func (c Course) Radians() float64 { return c.ValueDeg * math.Pi / 180 }

// DistOrTimeUnit distinguishes the two ways an ARINC leg's "distance"
// field can be encoded.
type DistOrTimeUnit int

const (
	UnitNauticalMiles DistOrTimeUnit = iota
	UnitMinutes
)

// DistOrTime is a tagged scalar: either a distance in nautical miles or
// a duration in minutes (used by hold legs' leg-length fields).
type DistOrTime struct {
	Unit  DistOrTimeUnit
	Value float64
}

// Radial is a named bearing from a station, with an optional distance
// along it.
type Radial struct {
	Origin   *Waypoint
	Bearing  Course
	Distance float64 // nm; 0 if unset
	HasDist  bool
}

// RadialDME is a radial with a mandatory DME distance (used by AF arc
// legs to name the arc's center; RF legs name theirs by a Center fix).
type RadialDME struct {
	Origin   *Waypoint
	Bearing  Course
	DistNM   float64
}

// AltitudeRestrictionKind enumerates the sum type's tags.
type AltitudeRestrictionKind int

const (
	AltAt AltitudeRestrictionKind = iota
	AltAtOrAbove
	AltAtOrBelow
	AltBetween
	AltGlideslopeAt
	AltGlideslopeIntercept
	AltStepDownAt
	AltStepDownAbove
	AltStepDownBelow
)

// AltitudeRestriction is a sum type over the nine ARINC-424 altitude
// descriptor shapes. The constraint solver pattern-matches on Kind and
// never stringly-switches.
type AltitudeRestriction struct {
	Kind AltitudeRestrictionKind

	Altitude    float64 // ft MSL; primary altitude for every kind
	Secondary   float64 // ft MSL; "below" of Between, or StepDown's secondary
	AboveFlag   bool    // for glideslope variants: is Altitude an "at or above"?
}

func At(alt float64) AltitudeRestriction { return AltitudeRestriction{Kind: AltAt, Altitude: alt} }
func AtOrAbove(alt float64) AltitudeRestriction {
	return AltitudeRestriction{Kind: AltAtOrAbove, Altitude: alt}
}
func AtOrBelow(alt float64) AltitudeRestriction {
	return AltitudeRestriction{Kind: AltAtOrBelow, Altitude: alt}
}
func Between(above, below float64) AltitudeRestriction {
	return AltitudeRestriction{Kind: AltBetween, Altitude: above, Secondary: below}
}
func GlideslopeAt(msl, alt float64, above bool) AltitudeRestriction {
	return AltitudeRestriction{Kind: AltGlideslopeAt, Altitude: alt, Secondary: msl, AboveFlag: above}
}
func GlideslopeIntercept(intcAlt, alt float64, above bool) AltitudeRestriction {
	return AltitudeRestriction{Kind: AltGlideslopeIntercept, Altitude: alt, Secondary: intcAlt, AboveFlag: above}
}
func StepDownAt(alt, secondary float64) AltitudeRestriction {
	return AltitudeRestriction{Kind: AltStepDownAt, Altitude: alt, Secondary: secondary}
}
func StepDownAbove(alt, secondary float64) AltitudeRestriction {
	return AltitudeRestriction{Kind: AltStepDownAbove, Altitude: alt, Secondary: secondary}
}
func StepDownBelow(alt, secondary float64) AltitudeRestriction {
	return AltitudeRestriction{Kind: AltStepDownBelow, Altitude: alt, Secondary: secondary}
}

// SpeedRestrictionKind enumerates the three speed descriptor shapes.
type SpeedRestrictionKind int

const (
	SpeedAt SpeedRestrictionKind = iota
	SpeedAtOrAbove
	SpeedAtOrBelow
)

type SpeedRestriction struct {
	Kind  SpeedRestrictionKind
	Knots float64
}

// ProcedureKind distinguishes the three procedure families a leg can
// belong to.
type ProcedureKind int

const (
	SID ProcedureKind = iota
	STAR
	Approach
)

// TurnDirection governs the direction turned to enter a leg (not the
// direction turned off the previous one).
type TurnDirection int

const (
	TurnUnspecified TurnDirection = iota
	TurnLeft
	TurnRight
)

// LegInfo carries the metadata shared by every leg variant: sequencing,
// procedure identity, turn discipline, and the restrictions that the
// altitude-constraint solver and path builder consume.
type LegInfo struct {
	Seq      int
	Kind     ProcedureKind
	Qualifier string
	ProcID   string
	TransID  string

	TurnDir        TurnDirection
	Overfly        bool
	FirstMissed    bool
	MissedApproachPoint bool
	InitialApproachFix  bool
	FinalApproachFix    bool

	Alt         *AltitudeRestriction
	Speed       *SpeedRestriction
	GlideAngleDeg *float64
}
