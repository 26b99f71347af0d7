package geo

import "math"

// Frame is the orthonormal basis returned by TurningCircle: l is the
// foot of center on the small circle's plane, v1 points from the sphere
// origin to center, v2 points from l to start, and v3 = v1 x v2
// (negated for clockwise turns so that increasing theta always moves in
// the direction of flight). Radius3D is the 3D (chord) radius of the
// small circle, i.e. |start - l|.
type Frame struct {
	L, V1, V2, V3 Vec3
	Radius3D      float64
}

// TurningCircle builds the frame for the turn of constant angular
// radius around center (a unit sphere point) that begins at start.
func TurningCircle(center, start Vec3, clockwise bool) (Frame, error) {
	v1, err := center.Normalize()
	if err != nil {
		return Frame{}, ErrDegenerate
	}
	l := v1.Scale(v1.Dot(start))
	v2, err := start.Sub(l).Normalize()
	if err != nil {
		return Frame{}, ErrDegenerate
	}
	v3 := v1.Cross(v2)
	if clockwise {
		v3 = v3.Neg()
	}
	return Frame{L: l, V1: v1, V2: v2, V3: v3, Radius3D: start.Sub(l).Mag()}, nil
}

// ArcPoint is one generated point of a turn or DME arc: a unit sphere
// position plus the true course of travel at that point.
type ArcPoint struct {
	Pos    Vec3
	Course float64
}

func (f Frame) positionAt(theta float64) Vec3 {
	ct, st := math.Cos(theta), math.Sin(theta)
	return f.L.Add(f.V2.Scale(f.Radius3D * ct)).Add(f.V3.Scale(f.Radius3D * st))
}

func (f Frame) tangentAt(theta float64) (Vec3, error) {
	ct, st := math.Cos(theta), math.Sin(theta)
	raw := f.V2.Scale(-f.Radius3D * st).Add(f.V3.Scale(f.Radius3D * ct))
	return raw.Normalize()
}

func (f Frame) courseAt(theta float64) float64 {
	pos := f.positionAt(theta)
	t, err := f.tangentAt(theta)
	if err != nil {
		return 0
	}
	return CourseFromTangent(pos, t)
}

// ArcPoints tessellates turnAngleRad radians of the turn defined by
// center/start/clockwise, emitting ceil(density * turnAngle/(2pi) *
// radiusNM) points. The starting point is never emitted; the final
// point (at turnAngleRad) always is.
func ArcPoints(center, start Vec3, turnAngleRad, density float64, clockwise bool) ([]ArcPoint, error) {
	frame, err := TurningCircle(center, start, clockwise)
	if err != nil {
		return nil, err
	}

	radiusRad := math.Asin(Clamp(frame.Radius3D, -1, 1))
	radiusNM := radiusRad * EarthRadiusNM
	n := int(math.Ceil(density * turnAngleRad / (2 * math.Pi) * radiusNM))
	if n < 1 {
		n = 1
	}

	pts := make([]ArcPoint, 0, n)
	for i := 1; i <= n; i++ {
		theta := turnAngleRad * float64(i) / float64(n)
		pos := frame.positionAt(theta)
		tangent, terr := frame.tangentAt(theta)
		if terr != nil {
			continue
		}
		pts = append(pts, ArcPoint{Pos: pos, Course: CourseFromTangent(pos, tangent)})
	}
	return pts, nil
}

func turnCenterCourse(inboundCrs float64, clockwise bool) float64 {
	if clockwise {
		return inboundCrs + math.Pi/2
	}
	return inboundCrs - math.Pi/2
}

// shiftAngle monotonizes a course value relative to inboundCrs so that a
// bisection search over increasing theta sees a monotone-increasing
// target function, per the turn-direction discipline: right turns
// increase course from inbound, left turns decrease it.
func shiftAngle(c, inboundCrs float64, clockwise bool) float64 {
	if clockwise {
		if c < inboundCrs {
			c += 2 * math.Pi
		}
		return c
	}
	if c > inboundCrs {
		c -= 2 * math.Pi
	}
	return -c
}

// TurnFrom constructs the circle tangent to inboundCrs at start with the
// given radius, then bisects the arc angle whose outbound tangent
// matches outboundCrs (50 iterations).
func TurnFrom(start Vec3, inboundCrs, outboundCrs, radiusNM, density float64, clockwise bool) ([]ArcPoint, error) {
	center := GoDistFrom(start, turnCenterCourse(inboundCrs, clockwise), radiusNM)
	frame, err := TurningCircle(center, start, clockwise)
	if err != nil {
		return nil, err
	}

	target := shiftAngle(outboundCrs, inboundCrs, clockwise)
	lo, hi := 0.0, 2*math.Pi
	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2
		g := shiftAngle(frame.courseAt(mid), inboundCrs, clockwise)
		if g < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	theta := (lo + hi) / 2
	return ArcPoints(center, start, theta, density, clockwise)
}

// angularDiff returns the smallest absolute difference between two
// course angles, in [0, pi].
func angularDiff(a, b float64) float64 {
	d := normalizeAngle(a - b)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// TurnTowards finds the arc at which the outbound course equals the
// course from the arc endpoint towards dest. There is no closed-form
// monotone target here, so it scans 720 samples and keeps the best fit;
// it gives up (returns ok=false) when the best sample is more than one
// degree off, letting the caller degrade to a straight line.
func TurnTowards(start Vec3, inboundCrs float64, dest Vec3, radiusNM, density float64, clockwise bool) (pts []ArcPoint, ok bool) {
	center := GoDistFrom(start, turnCenterCourse(inboundCrs, clockwise), radiusNM)
	frame, err := TurningCircle(center, start, clockwise)
	if err != nil {
		return nil, false
	}

	const samples = 720
	bestDiff := math.Inf(1)
	bestTheta := 0.0
	for i := 1; i <= samples; i++ {
		theta := 2 * math.Pi * float64(i) / float64(samples)
		pos := frame.positionAt(theta)
		required, err := CourseBetween(pos, dest)
		if err != nil {
			continue
		}
		diff := angularDiff(frame.courseAt(theta), required)
		if diff < bestDiff {
			bestDiff = diff
			bestTheta = theta
		}
	}

	if bestDiff > Radians(1) {
		return nil, false
	}
	arc, err := ArcPoints(center, start, bestTheta, density, clockwise)
	if err != nil {
		return nil, false
	}
	return arc, true
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg / 180 * math.Pi }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// solveTrig solves A*cos(theta) + B*sin(theta) = C for theta, returning
// both roots in [0, 2pi). It fails with ErrNoIntersection when |C|
// exceeds the amplitude k = sqrt(A^2+B^2).
func solveTrig(A, B, C float64) (theta1, theta2 float64, err error) {
	k := math.Sqrt(A*A + B*B)
	if k < Tolerance {
		return 0, 0, ErrDegenerate
	}
	if math.Abs(C) > k {
		return 0, 0, ErrNoIntersection
	}
	phi := math.Atan2(B, A)
	acosVal := math.Acos(Clamp(C/k, -1, 1))
	return normalizeAngle(phi + acosVal), normalizeAngle(phi - acosVal), nil
}

// GoToDME returns the point reached flying from start along crs at
// which the ground distance to station equals the ground-projection of
// the slant-range dmeNM at altitude altFt. It fails with ErrDegenerate
// if altFt exceeds the slant range, and with ErrNoIntersection if the
// course never reaches that ground distance from the station.
func GoToDME(start Vec3, crs float64, station Vec3, dmeNM, altFt float64) (Vec3, error) {
	dmeFt := dmeNM * NMToFeet
	if altFt > dmeFt {
		return Vec3{}, ErrDegenerate
	}
	groundFt := math.Sqrt(dmeFt*dmeFt - altFt*altFt)
	groundRad := (groundFt / NMToFeet) / EarthRadiusNM

	tangent := SphereTangent(start, crs)
	A := start.Dot(station)
	B := tangent.Dot(station)
	C := math.Cos(groundRad)

	t1, t2, err := solveTrig(A, B, C)
	if err != nil {
		return Vec3{}, err
	}
	theta := t1
	if t2 < theta {
		theta = t2
	}
	return GoDistFrom(start, crs, theta*EarthRadiusNM), nil
}

// TurnToCourseTowards produces a turning arc of at least minRadiusNM
// that terminates on the great circle through radialOrigin on course
// radialCrs. If the minimum-radius circle already reaches past that
// line, the first crossing is found analytically; otherwise the trial
// radius is doubled until the circle reaches the line and then bisected
// down to the tangent radius, and the result is delegated to TurnFrom.
func TurnToCourseTowards(start Vec3, inboundCrs float64, radialOrigin Vec3, radialCrs, minRadiusNM, density float64, clockwise bool) ([]ArcPoint, error) {
	centerCrs := turnCenterCourse(inboundCrs, clockwise)

	distAtRadius := func(radius float64) float64 {
		center := GoDistFrom(start, centerCrs, radius)
		return PointDistToLine(center, radialOrigin, radialCrs) * EarthRadiusNM
	}

	if d0 := distAtRadius(minRadiusNM); minRadiusNM >= d0 {
		return turnCircleLineCrossing(start, centerCrs, minRadiusNM, radialOrigin, radialCrs, density, clockwise)
	}

	lo, hi := minRadiusNM, minRadiusNM
	for {
		hi *= 2
		if hi >= distAtRadius(hi) {
			break
		}
		lo = hi
		if hi > 2000 {
			return nil, ErrNoIntersection
		}
	}
	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2
		if mid >= distAtRadius(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return TurnFrom(start, inboundCrs, radialCrs, hi, density, clockwise)
}

func turnCircleLineCrossing(start Vec3, centerCrs, radiusNM float64, radialOrigin Vec3, radialCrs, density float64, clockwise bool) ([]ArcPoint, error) {
	center := GoDistFrom(start, centerCrs, radiusNM)
	frame, err := TurningCircle(center, start, clockwise)
	if err != nil {
		return nil, err
	}
	n := radialOrigin.Cross(SphereTangent(radialOrigin, radialCrs))
	nUnit, err := n.Normalize()
	if err != nil {
		return nil, ErrDegenerate
	}

	A := frame.Radius3D * frame.V2.Dot(nUnit)
	B := frame.Radius3D * frame.V3.Dot(nUnit)
	C := -frame.L.Dot(nUnit)
	t1, t2, err := solveTrig(A, B, C)
	if err != nil {
		return nil, err
	}
	theta := math.Min(t1, t2)
	if theta <= 1e-12 {
		theta = math.Max(t1, t2)
	}
	return ArcPoints(center, start, theta, density, clockwise)
}
