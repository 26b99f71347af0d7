package pathbuilder

import (
	"math"

	"github.com/procspec/navproc/pkg/geo"
	"github.com/procspec/navproc/pkg/legs"
)

// toFixTrack splices from the current position/course onto the line
// through start on course crs, appending whatever intermediate points
// are needed into pts. info governs turn direction and overfly.
func (b *build) toFixTrack(info *legs.LegInfo, start geo.Vec3, crs float64) ([]PathPoint, error) {
	var pts []PathPoint
	courseDiff := geo.AngleBetween(b.curCourse, crs)
	if courseDiff > math.Pi {
		courseDiff = 2*math.Pi - courseDiff
	}

	onLine := geo.PointDistToLine(b.curPos, start, crs) < geo.Tolerance
	if onLine && (!b.overfly) && courseDiff <= geo.Radians(2) {
		return pts, nil
	}

	if isect, err := geo.Intersection(b.curPos, b.curCourse, start, crs); err == nil {
		distNM := geo.CircleDistance(isect, start) * geo.EarthRadiusNM
		if (!b.overfly || courseDiff < geo.Radians(5)) && distNM <= MaxInterceptDistanceNM {
			pts = append(pts, newPoint(isect, crs))
			b.curPos = isect
			b.curCourse = crs
			return pts, nil
		}
	}

	cw := clockwiseFor(info, b.curCourse, crs)
	arc, err := geo.TurnToCourseTowards(b.curPos, b.curCourse, start, crs, b.cfg.MinTurnRadiusNM, PointDensity, cw)
	if err != nil {
		arc, err = geo.TurnToCourseTowards(b.curPos, b.curCourse, start, crs, b.cfg.MinTurnRadiusNM, PointDensity, !cw)
	}
	if err == nil && len(arc) > 0 {
		pts = append(pts, arcPointsToPath(arc)...)
		last := arc[len(arc)-1]
		b.curPos = last.Pos
		b.curCourse = last.Course
		return pts, nil
	}

	if !b.overfly {
		return nil, geo.ErrDegenerate
	}
	foot, ferr := geo.PointBisectLine(b.curPos, start, crs)
	if ferr != nil {
		return nil, ferr
	}
	pts = append(pts, newPoint(foot, crs))
	b.curPos = foot
	b.curCourse = crs
	return pts, nil
}

// turnToCrs skips small heading changes and otherwise splices a
// CIRadiusNM turn onto crs.
func (b *build) turnToCrs(info *legs.LegInfo, crs float64) ([]PathPoint, error) {
	diff := geo.AngleBetween(b.curCourse, crs)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	if diff < geo.Radians(2) {
		b.curCourse = crs
		return nil, nil
	}

	cw := clockwiseFor(info, b.curCourse, crs)
	arc, err := geo.TurnFrom(b.curPos, b.curCourse, crs, CIRadiusNM, PointDensity, cw)
	if err != nil {
		return nil, err
	}
	pts := arcPointsToPath(arc)
	if len(arc) > 0 {
		last := arc[len(arc)-1]
		b.curPos = last.Pos
		b.curCourse = last.Course
	}
	return pts, nil
}
