package pathbuilder

import (
	"math"

	"github.com/procspec/navproc/pkg/altitude"
	"github.com/procspec/navproc/pkg/declination"
	"github.com/procspec/navproc/pkg/geo"
	"github.com/procspec/navproc/pkg/legs"
)

// absorbingKinds is the set of leg kinds permitted to follow a CI/VI
// and absorb its pending intercept.
var absorbingKinds = map[legs.Kind]bool{
	legs.KindAF: true, legs.KindCF: true, legs.KindFA: true,
	legs.KindFC: true, legs.KindFD: true, legs.KindFM: true, legs.KindIF: true,
}

// build carries the central mutable state of one Build invocation:
// the current position/course/altitude, the latent overfly/intercepting
// flags, and the points accumulated so far.
type build struct {
	cfg  AircraftConfig
	decl *declination.Source

	curCourse float64 // true, radians
	curAlt    float64
	curPos    geo.Vec3
	haveCur   bool

	overfly      bool
	intercepting bool
	pendingLeg   *LegPoints // CI/VI bucket held back until the next leg commits

	ascending bool
	env       []altitude.Envelope

	result []LegPoints
}

// Build assembles orderedLegs into per-leg flight-path points. courses
// are converted through decl at the point they are flown; ascending
// selects the altitude-constraint sweep direction (true for
// departures, false for arrivals/approaches).
func Build(orderedLegs []legs.Leg, cfg AircraftConfig, start *StartState, ascending bool, decl *declination.Source) (Result, error) {
	if len(orderedLegs) == 0 {
		return Result{}, ErrInvalid
	}

	b := &build{cfg: cfg, decl: decl, ascending: ascending, env: altitude.Solve(orderedLegs, ascending)}
	b.seed(orderedLegs, start)

	for i, leg := range orderedLegs {
		startPos, startAlt := b.curPos, b.curAlt
		pts, err := b.dispatch(leg, i, orderedLegs)
		if err != nil {
			return Result{}, &LegError{Index: i, Kind: leg.Kind().String(), Err: err}
		}

		lp := LegPoints{Leg: leg, Points: pts}
		b.applyVerticalProfile(&lp, i, startPos, startAlt)

		if len(lp.Points) > 0 {
			last := lp.Points[len(lp.Points)-1]
			b.curPos = geo.ToXYZ(last.LatRad, last.LonRad)
			b.curCourse = last.InboundCourseRad
			b.curAlt = last.AltFt
			b.haveCur = true
		}

		switch leg.Kind() {
		case legs.KindCI, legs.KindVI:
			b.intercepting = true
			b.pendingLeg = &lp
			continue
		}

		if b.intercepting {
			if !absorbingKinds[leg.Kind()] {
				return Result{}, &LegError{Index: i, Kind: leg.Kind().String(), Err: ErrBadSequence}
			}
			b.result = append(b.result, *b.pendingLeg)
			b.pendingLeg = nil
			b.intercepting = false
		}
		b.result = append(b.result, lp)
	}

	if b.intercepting && b.pendingLeg != nil {
		// CI/VI was the final leg with no absorbing successor; flush it
		// anyway rather than silently dropping its geometry.
		b.result = append(b.result, *b.pendingLeg)
	}

	var flat []PathPoint
	for _, lp := range b.result {
		flat = append(flat, lp.Points...)
	}
	return Result{PerLeg: b.result, Flat: flat}, nil
}

func (b *build) seed(orderedLegs []legs.Leg, start *StartState) {
	if start != nil {
		b.curPos = geo.ToXYZ(geo.Radians(start.LatDeg), geo.Radians(start.LonDeg))
		b.curCourse = start.CourseRad
		b.curAlt = start.AltFt
		b.haveCur = true
		return
	}

	first := orderedLegs[0]
	switch l := first.(type) {
	case *legs.HFLeg:
		b.seedFromFix(l.Fix, l.Course)
	case *legs.FCLeg:
		b.seedFromFix(l.Start, l.Course)
	case *legs.FALeg:
		b.seedFromFix(l.Start, l.Course)
	case *legs.FDLeg:
		b.seedFromFix(l.Start, l.Course)
	case *legs.PILeg:
		b.seedFromFix(l.Fix, l.Course)
	}
	// otherwise: no seed; IF is expected to seed on its own dispatch.
}

func (b *build) seedFromFix(fix *legs.Waypoint, crs legs.Course) {
	if fix == nil {
		return
	}
	b.curPos = geo.ToXYZ(geo.Radians(fix.LatDeg), geo.Radians(fix.LonDeg))
	b.curCourse = b.trueCourse(fix, crs)
	b.haveCur = true
}

// trueCourse runs a leg's course through the declination adapter at
// the given reference point.
func (b *build) trueCourse(at *legs.Waypoint, c legs.Course) float64 {
	if b.decl == nil || at == nil {
		return c.Radians()
	}
	return b.decl.TrueCourse(at.LatDeg, at.LonDeg, b.curAlt, c)
}

func shorterIsClockwise(inbound, outbound float64) bool {
	return geo.AngleBetween(inbound, outbound) <= math.Pi
}

func clockwiseFor(info *legs.LegInfo, inbound, outbound float64) bool {
	switch info.TurnDir {
	case legs.TurnRight:
		return true
	case legs.TurnLeft:
		return false
	default:
		return shorterIsClockwise(inbound, outbound)
	}
}

func newPoint(pos geo.Vec3, course float64) PathPoint {
	lat, lon := geo.ToLatLon(pos)
	return PathPoint{LatRad: lat, LonRad: lon, InboundCourseRad: course, AltFt: math.Inf(-1)}
}

func waypointPos(w *legs.Waypoint) geo.Vec3 {
	return geo.ToXYZ(geo.Radians(w.LatDeg), geo.Radians(w.LonDeg))
}

func arcPointsToPath(pts []geo.ArcPoint) []PathPoint {
	out := make([]PathPoint, len(pts))
	for i, p := range pts {
		lat, lon := geo.ToLatLon(p.Pos)
		out[i] = PathPoint{LatRad: lat, LonRad: lon, InboundCourseRad: p.Course, AltFt: math.Inf(-1)}
	}
	return out
}
