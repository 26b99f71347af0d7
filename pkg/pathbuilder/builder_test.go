package pathbuilder

import (
	"math"
	"testing"

	"github.com/procspec/navproc/pkg/geo"
	"github.com/procspec/navproc/pkg/legs"
)

func wp(name string, latDeg, lonDeg float64) *legs.Waypoint {
	return &legs.Waypoint{Name: name, LatDeg: latDeg, LonDeg: lonDeg}
}

func trueCrs(deg float64) legs.Course { return legs.Course{ValueDeg: deg, IsTrueNorth: true} }

func defaultCfg() AircraftConfig {
	return AircraftConfig{MinTurnRadiusNM: 3, ClimbGradient: 0.05, DescentGradient: 0.05}
}

func nearFix(t *testing.T, got PathPoint, w *legs.Waypoint, tolNM float64) {
	t.Helper()
	a := geo.ToXYZ(got.LatRad, got.LonRad)
	b := geo.ToXYZ(geo.Radians(w.LatDeg), geo.Radians(w.LonDeg))
	distNM := geo.CircleDistance(a, b) * geo.EarthRadiusNM
	if distNM > tolNM {
		t.Errorf("point far from %s: %.3f nm", w.Name, distNM)
	}
}

func TestBuildTFChain(t *testing.T) {
	a := wp("A", 40.0, -80.0)
	b := wp("B", 40.0, -79.8)
	c := wp("C", 40.0, -79.6)

	orderedLegs := []legs.Leg{
		&legs.IFLeg{LegInfo: legs.LegInfo{Seq: 1}, Fix: a},
		&legs.TFLeg{LegInfo: legs.LegInfo{Seq: 2}, Fix: b},
		&legs.TFLeg{LegInfo: legs.LegInfo{Seq: 3}, Fix: c},
	}

	res, err := Build(orderedLegs, defaultCfg(), nil, true, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.PerLeg) != 3 {
		t.Fatalf("expected 3 legs, got %d", len(res.PerLeg))
	}
	last := res.Flat[len(res.Flat)-1]
	nearFix(t, last, c, 0.1)
}

func TestBuildCFSuppliedCourse(t *testing.T) {
	a := wp("A", 40.0, -80.0)
	b := wp("B", 40.1, -79.8)

	orderedLegs := []legs.Leg{
		&legs.IFLeg{LegInfo: legs.LegInfo{Seq: 1}, Fix: a},
		&legs.CFLeg{LegInfo: legs.LegInfo{Seq: 2}, Fix: b, Course: trueCrs(45)},
	}

	res, err := Build(orderedLegs, defaultCfg(), nil, true, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	last := res.Flat[len(res.Flat)-1]
	nearFix(t, last, b, 0.1)
}

func TestBuildDFStraightWhenNotOverflying(t *testing.T) {
	a := wp("A", 40.0, -80.0)
	b := wp("B", 40.2, -79.7)

	orderedLegs := []legs.Leg{
		&legs.IFLeg{LegInfo: legs.LegInfo{Seq: 1}, Fix: a},
		&legs.DFLeg{LegInfo: legs.LegInfo{Seq: 2}, Fix: b},
	}

	res, err := Build(orderedLegs, defaultCfg(), nil, true, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	last := res.Flat[len(res.Flat)-1]
	nearFix(t, last, b, 0.1)
}

func TestBuildDFArcsWhenOverflying(t *testing.T) {
	a := wp("A", 40.0, -80.0)
	b := wp("B", 40.0, -79.8)
	c := wp("C", 40.3, -79.5)

	orderedLegs := []legs.Leg{
		&legs.IFLeg{LegInfo: legs.LegInfo{Seq: 1}, Fix: a},
		// TF into B with Overfly set puts the builder in the overfly
		// state the DF leg below must check before arcing to C.
		&legs.TFLeg{LegInfo: legs.LegInfo{Seq: 2, Overfly: true}, Fix: b},
		&legs.DFLeg{LegInfo: legs.LegInfo{Seq: 3}, Fix: c},
	}

	res, err := Build(orderedLegs, defaultCfg(), nil, true, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	last := res.Flat[len(res.Flat)-1]
	nearFix(t, last, c, 0.1)
	if len(res.PerLeg[2].Points) < 2 {
		t.Errorf("expected a turn_towards arc ahead of the fix point, got %d points", len(res.PerLeg[2].Points))
	}
}

func TestBuildCAAscendsToExactAltitude(t *testing.T) {
	a := wp("A", 40.0, -80.0)
	start := &StartState{LatDeg: 40.0, LonDeg: -80.0, CourseRad: geo.Radians(90), AltFt: 1000}

	orderedLegs := []legs.Leg{
		&legs.IFLeg{LegInfo: legs.LegInfo{Seq: 1}, Fix: a},
		&legs.CALeg{LegInfo: legs.LegInfo{Seq: 2, Alt: legsAt(5000)}, Course: trueCrs(90), TargetAlt: 5000},
	}

	res, err := Build(orderedLegs, defaultCfg(), start, true, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	lastLeg := res.PerLeg[len(res.PerLeg)-1]
	lastPt := lastLeg.Points[len(lastLeg.Points)-1]
	if math.Abs(lastPt.AltFt-5000) > 1 {
		t.Errorf("expected terminal altitude 5000, got %v", lastPt.AltFt)
	}
}

func legsAt(alt float64) *legs.AltitudeRestriction {
	r := legs.At(alt)
	return &r
}

func TestBuildRFArc(t *testing.T) {
	center := wp("CTR", 40.0, -80.0)
	centerPos := geo.ToXYZ(geo.Radians(center.LatDeg), geo.Radians(center.LonDeg))

	startPos := geo.GoDistFrom(centerPos, geo.Radians(0), 6)
	startLat, startLon := geo.ToLatLon(startPos)
	start := &StartState{LatDeg: geo.Degrees(startLat), LonDeg: geo.Degrees(startLon), CourseRad: geo.Radians(90), AltFt: 3000}

	fixPos := geo.GoDistFrom(centerPos, geo.Radians(90), 6)
	fixLat, fixLon := geo.ToLatLon(fixPos)
	fix := wp("FX", geo.Degrees(fixLat), geo.Degrees(fixLon))

	orderedLegs := []legs.Leg{
		&legs.RFLeg{LegInfo: legs.LegInfo{Seq: 1, TurnDir: legs.TurnRight}, Fix: fix, Center: center, DistanceNM: 6},
	}

	res, err := Build(orderedLegs, defaultCfg(), start, false, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	last := res.Flat[len(res.Flat)-1]
	nearFix(t, last, fix, 0.1)

	for i, p := range res.Flat {
		pos := geo.ToXYZ(p.LatRad, p.LonRad)
		r := geo.CircleDistance(pos, centerPos) * geo.EarthRadiusNM
		if math.Abs(r-6) > 0.2 {
			t.Errorf("point %d off the arc radius: %.3f nm", i, r)
		}
	}
}

func TestBuildAFOffRingIntercept(t *testing.T) {
	station := wp("DME", 40.0, -80.0)
	stationPos := geo.ToXYZ(geo.Radians(station.LatDeg), geo.Radians(station.LonDeg))

	// Start a couple nm inside the 6nm ring, heading outward, so AF must
	// first splice a go_to_dme intercept before arcing to the fix.
	startPos := geo.GoDistFrom(stationPos, geo.Radians(0), 4)
	startLat, startLon := geo.ToLatLon(startPos)
	start := &StartState{LatDeg: geo.Degrees(startLat), LonDeg: geo.Degrees(startLon), CourseRad: geo.Radians(0), AltFt: 4000}

	fixPos := geo.GoDistFrom(stationPos, geo.Radians(270), 6)
	fixLat, fixLon := geo.ToLatLon(fixPos)
	fix := wp("ARC1", geo.Degrees(fixLat), geo.Degrees(fixLon))

	orderedLegs := []legs.Leg{
		&legs.AFLeg{
			LegInfo: legs.LegInfo{Seq: 1, TurnDir: legs.TurnRight},
			Fix:     fix,
			Radial:  legs.RadialDME{Origin: station, Bearing: trueCrs(270), DistNM: 6},
		},
	}

	res, err := Build(orderedLegs, defaultCfg(), start, false, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	last := res.Flat[len(res.Flat)-1]
	nearFix(t, last, fix, 0.1)
}
