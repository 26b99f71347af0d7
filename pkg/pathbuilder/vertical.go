package pathbuilder

import (
	"math"

	"github.com/procspec/navproc/pkg/geo"
	"github.com/procspec/navproc/pkg/legs"
)

// applyVerticalProfile fills in the AltFt placeholders dispatch left on
// lp.Points. A leg that already nailed its own terminal altitude (FA,
// CA/VA) is left alone beyond interpolating what comes before it; every
// other leg picks a gradient (the glide angle if the leg carries one,
// else the configured climb/descent rate), clamps the distance-scaled
// target to this leg's altitude envelope, and fills the rest of its
// points along that line.
func (b *build) applyVerticalProfile(lp *LegPoints, i int, startPos geo.Vec3, startAlt float64) {
	pts := lp.Points
	n := len(pts)
	if n == 0 {
		return
	}

	dists := cumulativeDistFt(startPos, pts)
	totalDist := dists[n-1]

	last := &pts[n-1]
	info := lp.Leg.Info()

	envelope := b.env[i]
	targetAlt := last.AltFt
	if math.IsInf(targetAlt, -1) {
		grad := b.gradientFor(info)
		raw := startAlt + grad*totalDist
		clamped := geo.Clamp(raw, envelope.Above, envelope.Below)

		achieved := 0.0
		if totalDist > 0 {
			achieved = (clamped - startAlt) / totalDist
		}
		if b.ascending {
			grad = math.Max(b.cfg.ClimbGradient, achieved)
		} else {
			grad = math.Min(-b.cfg.DescentGradient, achieved)
		}
		targetAlt = geo.Clamp(startAlt+grad*totalDist, envelope.Above, envelope.Below)
		last.AltFt = targetAlt
	}

	lo, hi := startAlt, targetAlt
	if lo > hi {
		lo, hi = hi, lo
	}
	for j := 0; j < n; j++ {
		if !math.IsInf(pts[j].AltFt, -1) {
			continue
		}
		frac := 0.0
		if totalDist > 0 {
			frac = dists[j] / totalDist
		}
		pts[j].AltFt = geo.Clamp(startAlt+frac*(targetAlt-startAlt), lo, hi)
	}
	pts[n-1].AltFt = targetAlt
}

// gradientFor prefers a leg's own glide angle (final-approach legs);
// otherwise it uses the configured climb rate while ascending and the
// configured descent rate otherwise, both in ft of altitude per ft of
// ground track.
func (b *build) gradientFor(info *legs.LegInfo) float64 {
	if info.GlideAngleDeg != nil {
		return -math.Tan(geo.Radians(*info.GlideAngleDeg))
	}
	if b.ascending {
		return b.cfg.ClimbGradient
	}
	return -b.cfg.DescentGradient
}

// cumulativeDistFt returns, for each point in pts, the great-circle
// ground distance in feet from start through that point.
func cumulativeDistFt(start geo.Vec3, pts []PathPoint) []float64 {
	out := make([]float64, len(pts))
	prev := start
	total := 0.0
	for i, p := range pts {
		cur := geo.ToXYZ(p.LatRad, p.LonRad)
		total += geo.CircleDistance(prev, cur) * geo.EarthRadiusNM * geo.NMToFeet
		out[i] = total
		prev = cur
	}
	return out
}
