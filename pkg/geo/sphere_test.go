package geo

import (
	"math"
	"testing"
)

func near(a, b, eps float64) bool { return math.Abs(a-b) < eps }

func TestToXYZRoundTrip(t *testing.T) {
	for _, lat := range []float64{0, 0.1, -0.1, 1.3, -1.3} {
		for _, lon := range []float64{0, 0.1, -0.1, 2, -2, 3.1} {
			v := ToXYZ(lat, lon)
			gotLat, gotLon := ToLatLon(v)
			if !near(gotLat, lat, 1e-12) {
				t.Errorf("lat=%v lon=%v: got lat %v", lat, lon, gotLat)
			}
			if !near(gotLon, lon, 1e-12) {
				t.Errorf("lat=%v lon=%v: got lon %v", lat, lon, gotLon)
			}
		}
	}
}

func TestSphereTangentOrthogonality(t *testing.T) {
	for _, lat := range []float64{0, 0.5, -0.7} {
		for _, lon := range []float64{0, 1, -2} {
			p := ToXYZ(lat, lon)
			for _, crs := range []float64{0, 1, 3, 5} {
				tan := SphereTangent(p, crs)
				if !near(tan.Dot(p), 0, 1e-12) {
					t.Errorf("p=%v crs=%v: tangent not orthogonal to p, dot=%v", p, crs, tan.Dot(p))
				}
				if !near(tan.Mag(), 1, 1e-12) {
					t.Errorf("p=%v crs=%v: tangent not unit, mag=%v", p, crs, tan.Mag())
				}
			}
		}
	}
}

func TestCourseRoundTrip(t *testing.T) {
	for _, lat := range []float64{0, 0.4, -0.9} {
		for _, lon := range []float64{0, 1, -1} {
			p := ToXYZ(lat, lon)
			for _, crs := range []float64{0, 0.5, math.Pi, math.Pi + 0.3, 2*math.Pi - 0.01} {
				tan := SphereTangent(p, crs)
				got := CourseFromTangent(p, tan)
				if !near(got, crs, 1e-9) {
					t.Errorf("p=%v crs=%v: round trip got %v", p, crs, got)
				}
			}
		}
	}
}

func TestTurningCircleFrame(t *testing.T) {
	center := ToXYZ(Radians(10), Radians(20))
	start := ToXYZ(Radians(10.2), Radians(20))
	for _, cw := range []bool{true, false} {
		f, err := TurningCircle(center, start, cw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d := math.Abs(f.V1.Dot(f.V2)); d > Tolerance {
			t.Errorf("v1.v2 = %v", d)
		}
		if d := math.Abs(f.V1.Dot(f.V3)); d > Tolerance {
			t.Errorf("v1.v3 = %v", d)
		}
		if d := math.Abs(f.V2.Dot(f.V3)); d > Tolerance {
			t.Errorf("v2.v3 = %v", d)
		}
	}
}

func TestArcEndpointOnCircle(t *testing.T) {
	center := ToXYZ(Radians(10), Radians(20))
	start := ToXYZ(Radians(10.2), Radians(20))
	pts, err := ArcPoints(center, start, Radians(90), 32, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) == 0 {
		t.Fatal("expected at least one point")
	}
	f, _ := TurningCircle(center, start, false)
	last := pts[len(pts)-1]
	d := last.Pos.Sub(f.L).Mag()
	if !near(d, f.Radius3D, 1e-10) {
		t.Errorf("endpoint not on circle: got radius %v, want %v", d, f.Radius3D)
	}
}

func TestGoToDMEDistance(t *testing.T) {
	start := ToXYZ(0, 0)
	station := ToXYZ(0, Radians(1))
	const dme = 60.0  // nm slant
	const alt = 6000.0 // ft
	p, err := GoToDME(start, Radians(90), station, dme, alt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	groundFt := math.Sqrt(dme*dme*NMToFeet*NMToFeet - alt*alt)
	wantChord := groundFt / NMToFeet / EarthRadiusNM
	gotChord := CircleDistance(p, station)
	if !near(gotChord, wantChord, 1e-6) {
		t.Errorf("got angular distance %v, want %v", gotChord, wantChord)
	}
}

func TestSolveMatrix3(t *testing.T) {
	a := [3][3]float64{
		{2, 0, 0},
		{0, 3, 0},
		{0, 0, 4},
	}
	x, err := SolveMatrix3(a, [3]float64{4, 9, 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [3]float64{2, 3, 2}
	for i := range want {
		if !near(x[i], want[i], 1e-9) {
			t.Errorf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}

	singular := [3][3]float64{{1, 2, 3}, {2, 4, 6}, {1, 1, 1}}
	if _, err := SolveMatrix3(singular, [3]float64{1, 2, 3}); err != ErrSingular {
		t.Errorf("expected ErrSingular, got %v", err)
	}
}
