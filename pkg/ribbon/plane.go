package ribbon

import "github.com/procspec/navproc/pkg/geo"

// plane is an oriented plane stored as the equation dot(X, normal) = d.
type plane struct {
	normal geo.Vec3
	d      float64
}

func planeThrough(point, normal geo.Vec3) plane {
	return plane{normal: normal, d: point.Dot(normal)}
}

// solvePlanes intersects three planes at a point. Returns geo.ErrSingular
// (via SolveMatrix3) when they don't meet at a single point — a section
// whose tangent barely changes from its neighbor's leaves the matrix
// ill-conditioned.
func solvePlanes(p1, p2, p3 plane) (geo.Vec3, error) {
	a := [3][3]float64{
		{p1.normal.X, p1.normal.Y, p1.normal.Z},
		{p2.normal.X, p2.normal.Y, p2.normal.Z},
		{p3.normal.X, p3.normal.Y, p3.normal.Z},
	}
	rhs := [3]float64{p1.d, p2.d, p3.d}
	sol, err := geo.SolveMatrix3(a, rhs)
	if err != nil {
		return geo.Vec3{}, err
	}
	return geo.NewVec3(sol[0], sol[1], sol[2]), nil
}
