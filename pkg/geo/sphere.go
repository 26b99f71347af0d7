package geo

import "math"

// ToXYZ converts a latitude/longitude in radians to a unit position
// vector on the sphere.
func ToXYZ(latRad, lonRad float64) Vec3 {
	cl := math.Cos(latRad)
	return Vec3{cl * math.Cos(lonRad), cl * math.Sin(lonRad), math.Sin(latRad)}
}

// ToLatLon is the inverse of ToXYZ; v is assumed to be (approximately) a
// unit vector.
func ToLatLon(v Vec3) (latRad, lonRad float64) {
	return math.Asin(Clamp(v.Z, -1, 1)), math.Atan2(v.Y, v.X)
}

// localFrame returns the unit north and east tangent vectors at p (p is
// assumed unit). north points toward increasing latitude, east toward
// increasing longitude; (east, north, p) form a right-handed orthonormal
// frame.
func localFrame(p Vec3) (north, east Vec3) {
	lat, lon := ToLatLon(p)
	sl, cl := math.Sin(lat), math.Cos(lat)
	eq := Vec3{math.Cos(lon), math.Sin(lon), 0}
	north = Vec3{0, 0, 1}.Scale(cl).Sub(eq.Scale(sl))
	east = north.Cross(p)
	return north, east
}

// SphereTangent returns the unit tangent vector at p heading along the
// true course crs (radians).
func SphereTangent(p Vec3, crs float64) Vec3 {
	north, east := localFrame(p)
	return north.Scale(math.Cos(crs)).Add(east.Scale(math.Sin(crs)))
}

// CourseFromTangent is the inverse of SphereTangent: it recovers the
// true course (in [0, 2pi)) of the unit tangent vector t at p.
func CourseFromTangent(p, t Vec3) float64 {
	north, _ := localFrame(p)
	c := Clamp(t.Dot(north), -1, 1)
	crs := math.Acos(c)
	if north.Cross(t).Dot(p) > 0 {
		crs = 2*math.Pi - crs
	}
	return normalizeAngle(crs)
}

// CourseBetween returns the true course flown from a to b along the
// great circle connecting them. It fails with ErrDegenerate when the
// projection of b onto a's tangent plane has magnitude-squared below
// Tolerance squared (a and b coincide or are antipodal); callers should
// substitute the last known good course in that case.
func CourseBetween(a, b Vec3) (float64, error) {
	proj := b.Sub(a.Scale(b.Dot(a)))
	t, err := proj.Normalize()
	if err != nil {
		return 0, ErrDegenerate
	}
	return CourseFromTangent(a, t), nil
}

// PointDistToLine returns the angular (radian) distance of p from the
// great circle through origin on course crs.
func PointDistToLine(p, origin Vec3, crs float64) float64 {
	n := origin.Cross(SphereTangent(origin, crs))
	return math.Abs(math.Asin(Clamp(p.Dot(n), -1, 1)))
}

// PointBisectLine returns the orthogonal projection of p onto the great
// circle through origin on course crs, i.e. the closest point on that
// circle to p.
func PointBisectLine(p, origin Vec3, crs float64) (Vec3, error) {
	n := origin.Cross(SphereTangent(origin, crs))
	proj := p.Sub(n.Scale(p.Dot(n)))
	return proj.Normalize()
}

// Intersection returns the point where the great circle through a on
// course aCrs first crosses the great circle through b on course bCrs,
// "first" meaning the one reached first flying from a along aCrs. It
// fails with ErrNoIntersection when the two circles coincide (parallel
// planes).
func Intersection(a Vec3, aCrs float64, b Vec3, bCrs float64) (Vec3, error) {
	na := a.Cross(SphereTangent(a, aCrs))
	nb := b.Cross(SphereTangent(b, bCrs))
	line := na.Cross(nb)
	res, err := line.Normalize()
	if err != nil {
		return Vec3{}, ErrNoIntersection
	}

	ta := SphereTangent(a, aCrs)
	angleOf := func(v Vec3) float64 {
		return normalizeAngle(math.Atan2(v.Dot(ta), v.Dot(a)))
	}

	if angleOf(res) <= angleOf(res.Neg()) {
		return res, nil
	}
	return res.Neg(), nil
}

// GoDistFrom returns the point reached flying from start along crs for
// distNM nautical miles.
func GoDistFrom(start Vec3, crs, distNM float64) Vec3 {
	t := SphereTangent(start, crs)
	d := distNM / EarthRadiusNM
	return start.Scale(math.Cos(d)).Add(t.Scale(math.Sin(d)))
}

// CircleDistance returns the great-circle (angular, radian) distance
// between two unit position vectors.
func CircleDistance(a, b Vec3) float64 {
	return math.Abs(math.Acos(Clamp(a.Dot(b), -1, 1)))
}

// AngleBetween returns the oriented difference b-a in [0, 2pi).
func AngleBetween(a, b float64) float64 {
	return normalizeAngle(b - a)
}

// ToXYZEarth returns the position of (latRad, lonRad, altFt) at radius
// EarthRadiusNM+alt in a left-handed coordinate system, the convention
// the ribbon extruder emits so that a viewer can consume the mesh
// directly: (R cos(lat)cos(lon), R sin(lat), -R cos(lat)sin(lon)).
func ToXYZEarth(latRad, lonRad, altFt float64) Vec3 {
	r := EarthRadiusNM + altFt/NMToFeet
	cl := math.Cos(latRad)
	return Vec3{
		r * cl * math.Cos(lonRad),
		r * math.Sin(latRad),
		-r * cl * math.Sin(lonRad),
	}
}
