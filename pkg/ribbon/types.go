// Package ribbon implements the ribbon extruder (component R): it lifts
// a built leg's flight-path points into a parallel-transport frame and
// emits a mitred polygonal corridor mesh, one per leg.
package ribbon

import (
	"github.com/procspec/navproc/pkg/geo"
	"github.com/procspec/navproc/pkg/legs"
	"github.com/procspec/navproc/pkg/pathbuilder"
)

// DefaultWidthFt and DefaultHeightFt are the corridor's cross-section,
// full width/height in feet.
const (
	DefaultWidthFt  = 500
	DefaultHeightFt = 250
)

// Dimensions is the corridor cross-section, in feet.
type Dimensions struct {
	WidthFt  float64
	HeightFt float64
}

func (d Dimensions) halfWidthNM() float64  { return (d.WidthFt / 2) / geo.NMToFeet }
func (d Dimensions) halfHeightNM() float64 { return (d.HeightFt / 2) / geo.NMToFeet }

// Quad is one emitted polygon, four coplanar-ish corners in winding
// order.
type Quad struct {
	A, B, C, D geo.Vec3
}

// Mesh is one leg's corridor: the front cap, the walls between every
// consecutive pair of sections, and the closing cap at the last point.
type Mesh struct {
	Leg   legs.Leg
	Quads []Quad
}

// Build extrudes a corridor mesh per leg. A leg with fewer than two
// points (a degenerate or empty dispatch) yields an empty mesh rather
// than an error — the caller already knows its point count.
func Build(perLeg []pathbuilder.LegPoints, dims Dimensions) []Mesh {
	out := make([]Mesh, len(perLeg))
	for i, lp := range perLeg {
		out[i] = buildLegMesh(lp, dims)
	}
	return out
}
