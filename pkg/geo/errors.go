package geo

import "errors"

// ErrDegenerate is returned by primitives given ill-conditioned input:
// antipodal points, a zero-length direction, or a projection whose
// magnitude falls below Tolerance. Callers are expected to recover
// locally (substitute the last known course, or fall back to a
// perpendicular-foot point) rather than propagate it to the user.
var ErrDegenerate = errors.New("geo: degenerate geometric input")

// ErrSingular is returned by SolveMatrix3 when the system's determinant
// is below Tolerance.
var ErrSingular = errors.New("geo: singular matrix")

// ErrNoIntersection is returned when two great circles or a circle and a
// radial do not meet within the accepted search range.
var ErrNoIntersection = errors.New("geo: no intersection found")
