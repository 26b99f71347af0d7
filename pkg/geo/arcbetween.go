package geo

import "math"

// ArcBetweenPoints tessellates the arc of the circle centered at
// center, starting at start, that ends at end (both assumed to lie on
// the circle to within Tolerance), respecting the mandatory turn
// direction clockwise. Used by RF and AF legs, whose terminator is
// another point on the same DME/radius arc rather than a course match.
func ArcBetweenPoints(center, start, end Vec3, clockwise bool, density float64) ([]ArcPoint, error) {
	frame, err := TurningCircle(center, start, clockwise)
	if err != nil {
		return nil, err
	}
	rel := end.Sub(frame.L)
	theta := math.Atan2(frame.V3.Dot(rel), frame.V2.Dot(rel))
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return ArcPoints(center, start, theta, density, clockwise)
}
