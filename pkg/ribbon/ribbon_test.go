package ribbon

import (
	"math"
	"testing"

	"github.com/procspec/navproc/pkg/geo"
	"github.com/procspec/navproc/pkg/legs"
	"github.com/procspec/navproc/pkg/pathbuilder"
)

func straightPoints(n int) []pathbuilder.PathPoint {
	pts := make([]pathbuilder.PathPoint, n)
	lat := geo.Radians(40.0)
	for i := 0; i < n; i++ {
		lon := geo.Radians(-80.0 + float64(i)*0.1)
		pts[i] = pathbuilder.PathPoint{LatRad: lat, LonRad: lon, InboundCourseRad: geo.Radians(90), AltFt: 5000}
	}
	return pts
}

func TestBuildEmptyLegYieldsEmptyMesh(t *testing.T) {
	meshes := Build([]pathbuilder.LegPoints{{Leg: &legs.TFLeg{}, Points: nil}}, Dimensions{WidthFt: DefaultWidthFt, HeightFt: DefaultHeightFt})
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	if len(meshes[0].Quads) != 0 {
		t.Errorf("expected no quads for an empty leg, got %d", len(meshes[0].Quads))
	}
}

func TestBuildStraightLegHasCapsAndWalls(t *testing.T) {
	pts := straightPoints(4)
	lp := pathbuilder.LegPoints{Leg: &legs.TFLeg{}, Points: pts}
	meshes := Build([]pathbuilder.LegPoints{lp}, Dimensions{WidthFt: DefaultWidthFt, HeightFt: DefaultHeightFt})
	m := meshes[0]

	// 2 caps + 4 side quads per wall * 3 walls (4 points -> 3 segments).
	wantQuads := 2 + 4*3
	if len(m.Quads) != wantQuads {
		t.Fatalf("expected %d quads, got %d", wantQuads, len(m.Quads))
	}
}

func TestRectCornersRespectDimensions(t *testing.T) {
	dims := Dimensions{WidthFt: DefaultWidthFt, HeightFt: DefaultHeightFt}
	p1 := geo.ToXYZEarth(geo.Radians(40), geo.Radians(-80), 5000)
	p2 := geo.ToXYZEarth(geo.Radians(40), geo.Radians(-79.9), 5000)
	sec, err := buildSection(p1, p1, p2, dims)
	if err != nil {
		t.Fatalf("buildSection: %v", err)
	}
	gotW := sec.corners.TR.Sub(sec.corners.TL).Mag()
	wantW := dims.WidthFt / geo.NMToFeet
	if math.Abs(gotW-wantW) > 1e-6 {
		t.Errorf("corridor width: got %v nm, want %v nm", gotW, wantW)
	}
}

func TestMitreFallsBackOnSingularSolve(t *testing.T) {
	dims := Dimensions{WidthFt: DefaultWidthFt, HeightFt: DefaultHeightFt}
	p1 := geo.ToXYZEarth(geo.Radians(40), geo.Radians(-80), 5000)
	p2 := geo.ToXYZEarth(geo.Radians(40), geo.Radians(-79.9), 5000)
	sec, err := buildSection(p1, p1, p2, dims)
	if err != nil {
		t.Fatalf("buildSection: %v", err)
	}
	// Identical consecutive sections: matching-side planes coincide, so
	// the mitre solve should fall back cleanly rather than panic.
	c := mitreCorners(sec, sec)
	if c.TL == (geo.Vec3{}) {
		t.Errorf("expected a non-zero fallback corner")
	}
}
