package ribbon

import "github.com/procspec/navproc/pkg/geo"

// corners names a section rectangle's four points by position relative
// to normal (up) and binormal (right).
type corners struct {
	TL, TR, BR, BL geo.Vec3
}

// section is one rectangle of the corridor, with the oriented planes
// its four sides lie in. top/bottom are expressed in terms of normal,
// left/right in terms of binormal, following spec's top_left/bottom_right
// convention.
type section struct {
	pos                geo.Vec3
	tangent, normal, binormal geo.Vec3
	corners            corners
	top, bottom, left, right plane
}

// buildFrame derives the tangent/normal/binormal triad for the segment
// p1->p2: tangent along the segment, normal Gram-Schmidt-orthogonalised
// off of (p1+p2) against tangent, binormal completing the right-handed
// triad.
func buildFrame(p1, p2 geo.Vec3) (tangent, normal, binormal geo.Vec3, err error) {
	tangent, err = p2.Sub(p1).Normalize()
	if err != nil {
		return
	}
	raw := p1.Add(p2)
	raw = raw.Sub(tangent.Scale(raw.Dot(tangent)))
	normal, err = raw.Normalize()
	if err != nil {
		return
	}
	binormal = tangent.Cross(normal)
	return
}

// rectCorners builds the four corners of the rectangle centered at pos
// in the plane spanned by normal/binormal.
func rectCorners(pos, normal, binormal geo.Vec3, halfW, halfH float64) corners {
	w := binormal.Scale(halfW)
	h := normal.Scale(halfH)
	return corners{
		TL: pos.Add(h).Sub(w),
		TR: pos.Add(h).Add(w),
		BR: pos.Sub(h).Add(w),
		BL: pos.Sub(h).Sub(w),
	}
}

// buildSection derives a full section (frame, unmitred corners, and
// side planes) for the rectangle centered at pos using the p1->p2 frame.
func buildSection(pos, p1, p2 geo.Vec3, dims Dimensions) (section, error) {
	tangent, normal, binormal, err := buildFrame(p1, p2)
	if err != nil {
		return section{}, err
	}
	c := rectCorners(pos, normal, binormal, dims.halfWidthNM(), dims.halfHeightNM())
	return section{
		pos: pos, tangent: tangent, normal: normal, binormal: binormal,
		corners: c,
		top:     planeThrough(c.TL, normal),
		left:    planeThrough(c.TL, binormal),
		bottom:  planeThrough(c.BR, normal),
		right:   planeThrough(c.BR, binormal),
	}, nil
}
