package geo

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SolveMatrix3 solves the dense 3x3 linear system A*x = rhs using gonum,
// failing with ErrSingular when the determinant is below Tolerance (the
// ribbon extruder's mitred-joint solves hit this when two section faces
// are nearly coplanar).
func SolveMatrix3(a [3][3]float64, rhs [3]float64) ([3]float64, error) {
	data := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data[i*3+j] = a[i][j]
		}
	}
	m := mat.NewDense(3, 3, data)
	if math.Abs(mat.Det(m)) < Tolerance {
		return [3]float64{}, ErrSingular
	}

	b := mat.NewVecDense(3, rhs[:])
	var x mat.VecDense
	if err := x.SolveVec(m, b); err != nil {
		return [3]float64{}, ErrSingular
	}
	return [3]float64{x.AtVec(0), x.AtVec(1), x.AtVec(2)}, nil
}
