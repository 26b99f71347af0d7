package declination

import (
	"math"
	"testing"

	"github.com/procspec/navproc/pkg/legs"
)

type constModel struct {
	calls int
	deg   float64
}

func (m *constModel) Declination(lat, lon, alt, year float64) float64 {
	m.calls++
	return m.deg
}

func TestTrueNorthPassThrough(t *testing.T) {
	m := &constModel{deg: 0.5}
	s := NewSource(m, 2026.5)
	c := legs.Course{ValueDeg: 90, IsTrueNorth: true}
	got := s.TrueCourse(10, 20, 3000, c)
	if math.Abs(got-c.Radians()) > 1e-12 {
		t.Errorf("got %v, want %v", got, c.Radians())
	}
	if m.calls != 0 {
		t.Errorf("model should not be called for true-north course, got %d calls", m.calls)
	}
}

func TestMagneticAddsDeclination(t *testing.T) {
	m := &constModel{deg: legs.Course{ValueDeg: 3}.Radians()}
	s := NewSource(m, 2026.5)
	c := legs.Course{ValueDeg: 90}
	got := s.TrueCourse(10, 20, 3000, c)
	want := c.Radians() + m.deg
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGridCaching(t *testing.T) {
	m := &constModel{deg: 0.1}
	s := NewSource(m, 2026.5)
	c := legs.Course{ValueDeg: 10}

	s.TrueCourse(10.1, 20.1, 0, c)
	s.TrueCourse(10.2, 20.9, 0, c)
	s.TrueCourse(10.9, 20.4, 0, c)
	if m.calls != 1 {
		t.Errorf("expected single model call within one grid cell, got %d", m.calls)
	}

	s.TrueCourse(11.1, 20.1, 0, c)
	if m.calls != 2 {
		t.Errorf("expected a second model call in a new grid cell, got %d", m.calls)
	}
}
