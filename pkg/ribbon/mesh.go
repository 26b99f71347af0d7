package ribbon

import (
	"github.com/procspec/navproc/pkg/geo"
	"github.com/procspec/navproc/pkg/pathbuilder"
)

// buildLegMesh extrudes one leg's points into its corridor: a front
// cap at the first point, a wall between every consecutive pair of
// sections (mitred at interior joints), and a closing cap at the last
// point.
func buildLegMesh(lp pathbuilder.LegPoints, dims Dimensions) Mesh {
	pts := lp.Points
	if len(pts) < 2 {
		return Mesh{Leg: lp.Leg}
	}

	positions := make([]geo.Vec3, len(pts))
	for i, p := range pts {
		positions[i] = geo.ToXYZEarth(p.LatRad, p.LonRad, p.AltFt)
	}

	n := len(positions)
	sections := make([]section, n-1) // one per consecutive pair, rectangle at p_i
	for i := 0; i < n-1; i++ {
		s, err := buildSection(positions[i], positions[i], positions[i+1], dims)
		if err != nil {
			// Degenerate segment (coincident points): reuse the previous
			// frame so the corridor doesn't collapse at this joint.
			if i == 0 {
				s = section{pos: positions[i]}
			} else {
				s = sections[i-1]
				s.pos = positions[i]
				s.corners = rectCorners(s.pos, s.normal, s.binormal, dims.halfWidthNM(), dims.halfHeightNM())
				s.top = planeThrough(s.corners.TL, s.normal)
				s.left = planeThrough(s.corners.TL, s.binormal)
				s.bottom = planeThrough(s.corners.BR, s.normal)
				s.right = planeThrough(s.corners.BR, s.binormal)
			}
		}
		sections[i] = s
	}

	// cornerSets[i] is the (possibly mitred) corner set used at point i.
	cornerSets := make([]corners, n)
	cornerSets[0] = sections[0].corners
	for i := 1; i < n-1; i++ {
		cornerSets[i] = mitreCorners(sections[i-1], sections[i])
	}
	// Closing cap: reuse the last section's frame, recentered at the
	// final point.
	last := sections[n-2]
	cornerSets[n-1] = rectCorners(positions[n-1], last.normal, last.binormal, dims.halfWidthNM(), dims.halfHeightNM())

	var quads []Quad
	quads = append(quads, rectQuad(cornerSets[0]))
	for i := 0; i < n-1; i++ {
		quads = append(quads, wallQuads(cornerSets[i], cornerSets[i+1])...)
	}
	quads = append(quads, rectQuad(cornerSets[n-1]))

	return Mesh{Leg: lp.Leg, Quads: quads}
}

// mitreCorners solves each of the current section's four corners
// against its own top/bottom and left/right planes plus the previous
// section's matching side plane (left for TL/BL, right for TR/BR — the
// side whose orientation actually shifts across a turn). A singular
// solve falls back to the current section's unmitred corner.
func mitreCorners(prev, cur section) corners {
	tl, err := solvePlanes(cur.top, cur.left, prev.left)
	if err != nil {
		tl = cur.corners.TL
	}
	tr, err := solvePlanes(cur.top, cur.right, prev.right)
	if err != nil {
		tr = cur.corners.TR
	}
	br, err := solvePlanes(cur.bottom, cur.right, prev.right)
	if err != nil {
		br = cur.corners.BR
	}
	bl, err := solvePlanes(cur.bottom, cur.left, prev.left)
	if err != nil {
		bl = cur.corners.BL
	}
	return corners{TL: tl, TR: tr, BR: br, BL: bl}
}

// rectQuad is the flat end cap at a single corner set: front cap at
// the first section, closing cap at the last.
func rectQuad(c corners) Quad {
	return Quad{A: c.TL, B: c.TR, C: c.BR, D: c.BL}
}

// wallQuads connects corner set a to corner set b with the corridor's
// four side faces.
func wallQuads(a, b corners) []Quad {
	return []Quad{
		{A: a.TL, B: a.TR, C: b.TR, D: b.TL}, // top
		{A: a.TR, B: a.BR, C: b.BR, D: b.TR}, // right
		{A: a.BR, B: a.BL, C: b.BL, D: b.BR}, // bottom
		{A: a.BL, B: a.TL, C: b.TL, D: b.BL}, // left
	}
}
