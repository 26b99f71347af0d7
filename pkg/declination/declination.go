// Package declination adapts an injected magnetic-variation capability
// (the coefficient model itself is an external collaborator; its file
// format is treated as opaque) to the true-course conversions the path
// builder needs, with a coarse one-degree grid cache in front of it.
package declination

import (
	"math"

	"github.com/procspec/navproc/pkg/legs"
)

// Model is the injected magnetic-model capability: declination in
// radians, east-positive, at a point/altitude/epoch.
type Model interface {
	Declination(latDeg, lonDeg, altFt, year float64) float64
}

// Source is what the path builder consumes: true-course conversion.
// Grid-cached in front of an arbitrary Model.
type Source struct {
	model Model
	year  float64
	cache map[cellKey]float64
}

type cellKey struct {
	latCell, lonCell int
}

// NewSource builds a Source over model, evaluated at the given decimal
// year (e.g. 2026.5), with an empty grid cache.
func NewSource(model Model, year float64) *Source {
	return &Source{model: model, year: year, cache: make(map[cellKey]float64)}
}

// TrueCourse returns c converted to a true-north bearing in radians. If
// c already flags true north, it is returned unchanged (converted to
// radians); otherwise the cached declination at (lat, lon, alt) is
// added.
func (s *Source) TrueCourse(latDeg, lonDeg, altFt float64, c legs.Course) float64 {
	if c.IsTrueNorth {
		return c.Radians()
	}
	return c.Radians() + s.declinationAt(latDeg, lonDeg, altFt)
}

// declinationAt rounds to the containing one-degree cell before
// querying the underlying model, caching the result. The grid is a
// simplification of the model's true resolution: adjacent path points
// a few nm apart fall in the same cell far more often than not, so the
// cache turns a per-point model call into an amortized one-per-cell
// call without needing to know anything about the model's internal
// interpolation.
func (s *Source) declinationAt(latDeg, lonDeg, altFt float64) float64 {
	key := cellKey{
		latCell: int(math.Floor(latDeg)),
		lonCell: int(math.Floor(lonDeg)),
	}
	if v, ok := s.cache[key]; ok {
		return v
	}
	centerLat := float64(key.latCell) + 0.5
	centerLon := float64(key.lonCell) + 0.5
	v := s.model.Declination(centerLat, centerLon, altFt, s.year)
	s.cache[key] = v
	return v
}
