package pathbuilder

import (
	"math"

	"github.com/procspec/navproc/pkg/geo"
	"github.com/procspec/navproc/pkg/legs"
)

// dispatch produces one leg's raw geometry (altitude unresolved; that's
// applyVerticalProfile's job) and advances b.curPos/b.curCourse/b.overfly
// to the leg's exit state.
func (b *build) dispatch(leg legs.Leg, i int, all []legs.Leg) ([]PathPoint, error) {
	info := leg.Info()

	switch l := leg.(type) {
	case *legs.IFLeg:
		return b.dispatchIF(l)
	case *legs.TFLeg:
		return b.dispatchTF(l, info)
	case *legs.CFLeg:
		return b.dispatchCF(l, info)
	case *legs.DFLeg:
		return b.dispatchDF(l, info)
	case *legs.FALeg:
		return b.dispatchFA(l, info)
	case *legs.FCLeg:
		return b.dispatchFC(l, info)
	case *legs.FDLeg:
		return b.dispatchFD(l, info)
	case *legs.FMLeg:
		return b.dispatchFM(l, info)
	case *legs.CALeg:
		return b.dispatchClimbTurn(info, l.Course, l.TargetAlt)
	case *legs.VALeg:
		return b.dispatchClimbTurn(info, l.Course, l.TargetAlt)
	case *legs.CDLeg:
		return b.dispatchDMETurn(info, l.Course, l.DistanceNM, l.DMEStation)
	case *legs.VDLeg:
		return b.dispatchDMETurn(info, l.Course, l.DistanceNM, l.DMEStation)
	case *legs.CILeg:
		return b.dispatchIntercept(info, l.Course)
	case *legs.VILeg:
		return b.dispatchIntercept(info, l.Course)
	case *legs.CRLeg:
		return b.dispatchRadial(info, l.Course, l.Radial)
	case *legs.VRLeg:
		return b.dispatchRadial(info, l.Course, l.Radial)
	case *legs.RFLeg:
		return b.dispatchRF(l, info)
	case *legs.AFLeg:
		return b.dispatchAF(l, info)
	case *legs.VMLeg:
		return b.dispatchVM(l, info)
	case *legs.HFLeg:
		return b.dispatchHF(l)
	case *legs.HALeg, *legs.HMLeg, *legs.PILeg:
		return nil, ErrUnimplemented
	default:
		return nil, ErrUnimplemented
	}
}

// dispatchIF plants the leg's fix. If a CI/VI intercept is in progress
// its pending arc already carries the aircraft to this position, so IF
// contributes no geometry of its own beyond absorbing the hold.
func (b *build) dispatchIF(l *legs.IFLeg) ([]PathPoint, error) {
	if l.Fix == nil {
		return nil, legs.ErrMissingFix
	}
	pos := waypointPos(l.Fix)
	if b.intercepting {
		b.curPos = pos
		return nil, nil
	}
	b.curPos = pos
	b.haveCur = true
	return []PathPoint{newPoint(pos, b.curCourse)}, nil
}

func (b *build) dispatchTF(l *legs.TFLeg, info *legs.LegInfo) ([]PathPoint, error) {
	if l.Fix == nil {
		return nil, legs.ErrMissingFix
	}
	fix := waypointPos(l.Fix)
	crs, err := geo.CourseBetween(b.curPos, fix)
	if err != nil {
		return nil, err
	}
	pts, err := b.toFixTrack(info, fix, crs)
	if err != nil {
		return nil, err
	}
	pts = append(pts, newPoint(fix, crs))
	b.curPos = fix
	b.curCourse = crs
	b.overfly = info.Overfly
	return pts, nil
}

func (b *build) dispatchCF(l *legs.CFLeg, info *legs.LegInfo) ([]PathPoint, error) {
	if l.Fix == nil {
		return nil, legs.ErrMissingFix
	}
	fix := waypointPos(l.Fix)
	crs := b.trueCourse(l.Fix, l.Course)
	pts, err := b.toFixTrack(info, fix, crs)
	if err != nil {
		return nil, err
	}
	pts = append(pts, newPoint(fix, crs))
	b.curPos = fix
	b.curCourse = crs
	b.overfly = info.Overfly
	return pts, nil
}

// dispatchDF has no leg-start line to splice onto. If the aircraft is
// currently in the overfly state, it first flies a turn_towards arc to
// the fix; otherwise it heads straight there.
func (b *build) dispatchDF(l *legs.DFLeg, info *legs.LegInfo) ([]PathPoint, error) {
	if l.Fix == nil {
		return nil, legs.ErrMissingFix
	}
	fix := waypointPos(l.Fix)
	var pts []PathPoint
	if b.overfly {
		cw := shorterIsClockwise(b.curCourse, mustCourse(geo.CourseBetween(b.curPos, fix)))
		arc, ok := geo.TurnTowards(b.curPos, b.curCourse, fix, b.cfg.MinTurnRadiusNM, PointDensity, cw)
		if ok && len(arc) > 0 {
			pts = arcPointsToPath(arc)
			last := arc[len(arc)-1]
			b.curPos = last.Pos
			b.curCourse = last.Course
		}
	}
	finalCrs, err := geo.CourseBetween(b.curPos, fix)
	if err != nil {
		finalCrs = b.curCourse
	}
	pts = append(pts, newPoint(fix, finalCrs))
	b.curPos = fix
	b.curCourse = finalCrs
	b.overfly = info.Overfly
	return pts, nil
}

func mustCourse(c float64, err error) float64 {
	if err != nil {
		return 0
	}
	return c
}

// dispatchFA splices onto the start fix's course line, then flies it
// straight for exactly the ground distance the configured climb
// gradient needs to reach TargetAlt.
func (b *build) dispatchFA(l *legs.FALeg, info *legs.LegInfo) ([]PathPoint, error) {
	if l.Start == nil {
		return nil, legs.ErrMissingFix
	}
	start := waypointPos(l.Start)
	crs := b.trueCourse(l.Start, l.Course)
	pts, err := b.toFixTrack(info, start, crs)
	if err != nil {
		return nil, err
	}
	distNM := climbDistanceNM(b.curAlt, l.TargetAlt, b.cfg.ClimbGradient)
	end := geo.GoDistFrom(b.curPos, crs, distNM)
	p := newPoint(end, crs)
	p.AltFt = l.TargetAlt
	pts = append(pts, p)
	b.curPos = end
	b.curCourse = crs
	b.overfly = true
	return pts, nil
}

func climbDistanceNM(curAlt, targetAlt, gradient float64) float64 {
	if gradient <= 0 {
		return 0
	}
	deltaFt := targetAlt - curAlt
	if deltaFt <= 0 {
		return 0
	}
	return (deltaFt / gradient) / geo.NMToFeet
}

func (b *build) dispatchFC(l *legs.FCLeg, info *legs.LegInfo) ([]PathPoint, error) {
	if l.Start == nil {
		return nil, legs.ErrMissingFix
	}
	start := waypointPos(l.Start)
	crs := b.trueCourse(l.Start, l.Course)
	pts, err := b.toFixTrack(info, start, crs)
	if err != nil {
		return nil, err
	}
	end := geo.GoDistFrom(b.curPos, crs, l.DistanceNM)
	pts = append(pts, newPoint(end, crs))
	b.curPos = end
	b.curCourse = crs
	b.overfly = true
	return pts, nil
}

func (b *build) dispatchFD(l *legs.FDLeg, info *legs.LegInfo) ([]PathPoint, error) {
	if l.Start == nil || l.DMEStation == nil {
		return nil, legs.ErrMissingFix
	}
	start := waypointPos(l.Start)
	crs := b.trueCourse(l.Start, l.Course)
	pts, err := b.toFixTrack(info, start, crs)
	if err != nil {
		return nil, err
	}
	station := waypointPos(l.DMEStation)
	end, err := geo.GoToDME(b.curPos, crs, station, l.DistanceNM, b.curAlt)
	if err != nil {
		return nil, err
	}
	pts = append(pts, newPoint(end, crs))
	b.curPos = end
	b.curCourse = crs
	b.overfly = true
	return pts, nil
}

// dispatchFM splices onto the start fix's course and then runs off the
// end of the procedure: there is no terminator, the pilot flies the
// heading until instructed otherwise.
func (b *build) dispatchFM(l *legs.FMLeg, info *legs.LegInfo) ([]PathPoint, error) {
	if l.Start == nil {
		return nil, legs.ErrMissingFix
	}
	start := waypointPos(l.Start)
	crs := b.trueCourse(l.Start, l.Course)
	pts, err := b.toFixTrack(info, start, crs)
	if err != nil {
		return nil, err
	}
	b.overfly = false
	return pts, nil
}

// dispatchVM is a heading with an optional fix for reference. When the
// fix is present it splices onto that course line like TF/CF; with no
// fix at all it is purely the turn onto the heading.
func (b *build) dispatchVM(l *legs.VMLeg, info *legs.LegInfo) ([]PathPoint, error) {
	crs := b.courseAtCur(l.Course)
	if l.Fix != nil {
		fix := waypointPos(l.Fix)
		pts, err := b.toFixTrack(info, fix, crs)
		if err != nil {
			return nil, err
		}
		pts = append(pts, newPoint(fix, crs))
		b.curPos = fix
		b.curCourse = crs
		b.overfly = false
		return pts, nil
	}
	pts, err := b.turnToCrs(info, crs)
	if err != nil {
		return nil, err
	}
	b.overfly = false
	return pts, nil
}

// courseAtCur runs a course through declination at the current
// position, for legs with no fix of their own to reference (CA/VA/CD/
// VD/CI/VI/CR/VR/VM all specify course relative to wherever the
// aircraft already is).
func (b *build) courseAtCur(c legs.Course) float64 {
	if b.decl == nil {
		return c.Radians()
	}
	lat, lon := geo.ToLatLon(b.curPos)
	return b.decl.TrueCourse(geo.Degrees(lat), geo.Degrees(lon), b.curAlt, c)
}

// dispatchClimbTurn covers CA/VA: turn onto course, then fly straight
// until the climb gradient reaches TargetAlt.
func (b *build) dispatchClimbTurn(info *legs.LegInfo, course legs.Course, targetAlt float64) ([]PathPoint, error) {
	crs := b.courseAtCur(course)
	pts, err := b.turnToCrs(info, crs)
	if err != nil {
		return nil, err
	}
	distNM := climbDistanceNM(b.curAlt, targetAlt, b.cfg.ClimbGradient)
	end := geo.GoDistFrom(b.curPos, crs, distNM)
	p := newPoint(end, crs)
	p.AltFt = targetAlt
	pts = append(pts, p)
	b.curPos = end
	b.curCourse = crs
	b.overfly = true
	return pts, nil
}

// dispatchDMETurn covers CD/VD: turn onto course, then fly to the DME
// distance from station.
func (b *build) dispatchDMETurn(info *legs.LegInfo, course legs.Course, distNM float64, station *legs.Waypoint) ([]PathPoint, error) {
	if station == nil {
		return nil, legs.ErrMissingFix
	}
	crs := b.courseAtCur(course)
	pts, err := b.turnToCrs(info, crs)
	if err != nil {
		return nil, err
	}
	stationPos := waypointPos(station)
	end, err := geo.GoToDME(b.curPos, crs, stationPos, distNM, b.curAlt)
	if err != nil {
		return nil, err
	}
	pts = append(pts, newPoint(end, crs))
	b.curPos = end
	b.curCourse = crs
	b.overfly = true
	return pts, nil
}

// dispatchIntercept covers CI/VI: turn onto course and stop. The caller
// in Build holds the result back as b.pendingLeg until the next leg
// commits.
func (b *build) dispatchIntercept(info *legs.LegInfo, course legs.Course) ([]PathPoint, error) {
	crs := b.courseAtCur(course)
	pts, err := b.turnToCrs(info, crs)
	if err != nil {
		return nil, err
	}
	b.overfly = false
	return pts, nil
}

// dispatchRadial covers CR/VR: turn onto course, then run to the
// intersection with the named radial.
func (b *build) dispatchRadial(info *legs.LegInfo, course legs.Course, radial legs.Radial) ([]PathPoint, error) {
	if radial.Origin == nil {
		return nil, legs.ErrMissingRadial
	}
	crs := b.courseAtCur(course)
	pts, err := b.turnToCrs(info, crs)
	if err != nil {
		return nil, err
	}
	origin := waypointPos(radial.Origin)
	radialCrs := b.trueCourse(radial.Origin, radial.Bearing)
	isect, err := geo.Intersection(b.curPos, b.curCourse, origin, radialCrs)
	if err != nil {
		return nil, err
	}
	if geo.CircleDistance(isect, b.curPos)*geo.EarthRadiusNM > MaxInterceptDistanceNM {
		return nil, ErrInterceptTooFar
	}
	pts = append(pts, newPoint(isect, crs))
	b.curPos = isect
	b.curCourse = crs
	b.overfly = true
	return pts, nil
}

// dispatchRF arcs from the current position to Fix around Center,
// respecting the leg's mandatory turn direction.
func (b *build) dispatchRF(l *legs.RFLeg, info *legs.LegInfo) ([]PathPoint, error) {
	if l.Fix == nil || l.Center == nil {
		return nil, legs.ErrMissingFix
	}
	center := waypointPos(l.Center)
	fix := waypointPos(l.Fix)
	cw := info.TurnDir == legs.TurnRight
	arc, err := geo.ArcBetweenPoints(center, b.curPos, fix, cw, PointDensity)
	if err != nil {
		return nil, err
	}
	pts := arcPointsToPath(arc)
	if len(pts) > 0 {
		pts[len(pts)-1] = newPoint(fix, pts[len(pts)-1].InboundCourseRad)
	}
	b.curPos = fix
	if len(arc) > 0 {
		b.curCourse = arc[len(arc)-1].Course
	}
	b.overfly = true
	return pts, nil
}

// dispatchAF first intercepts the DME arc (if the aircraft isn't
// already sitting on it within RFToleranceNM), then arcs to Fix.
func (b *build) dispatchAF(l *legs.AFLeg, info *legs.LegInfo) ([]PathPoint, error) {
	if l.Fix == nil || l.Radial.Origin == nil {
		return nil, legs.ErrMissingFix
	}
	origin := waypointPos(l.Radial.Origin)
	fix := waypointPos(l.Fix)

	var pts []PathPoint
	curDistNM := geo.CircleDistance(b.curPos, origin) * geo.EarthRadiusNM
	if math.Abs(curDistNM-l.Radial.DistNM) > RFToleranceNM {
		onRing, err := geo.GoToDME(b.curPos, b.curCourse, origin, l.Radial.DistNM, b.curAlt)
		if err != nil {
			return nil, err
		}
		pts = append(pts, newPoint(onRing, b.curCourse))
		b.curPos = onRing
	}

	cw := info.TurnDir == legs.TurnRight
	arc, err := geo.ArcBetweenPoints(origin, b.curPos, fix, cw, PointDensity)
	if err != nil {
		return nil, err
	}
	pts = append(pts, arcPointsToPath(arc)...)
	if len(pts) > 0 {
		pts[len(pts)-1] = newPoint(fix, pts[len(pts)-1].InboundCourseRad)
	}
	b.curPos = fix
	if len(arc) > 0 {
		b.curCourse = arc[len(arc)-1].Course
	}
	b.overfly = info.Overfly
	return pts, nil
}

func (b *build) dispatchHF(l *legs.HFLeg) ([]PathPoint, error) {
	if l.Fix == nil {
		return nil, legs.ErrMissingFix
	}
	pos := waypointPos(l.Fix)
	crs := b.trueCourse(l.Fix, l.Course)
	b.curPos = pos
	b.curCourse = crs
	return []PathPoint{newPoint(pos, crs)}, nil
}
