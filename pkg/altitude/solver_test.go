package altitude

import (
	"math"
	"testing"

	"github.com/procspec/navproc/pkg/legs"
)

func withAlt(r legs.AltitudeRestriction) *legs.IFLeg {
	info := legs.LegInfo{Alt: &r}
	return &legs.IFLeg{LegInfo: info}
}

func bare() *legs.IFLeg { return &legs.IFLeg{} }

func TestSolveAscendingCarriesLowerBound(t *testing.T) {
	chain := []legs.Leg{
		withAlt(legs.AtOrAbove(2000)),
		bare(),
		withAlt(legs.AtOrAbove(5000)),
		bare(),
	}
	env := Solve(chain, true)
	if env[1].Above != 2000 {
		t.Errorf("leg 1 should inherit lower bound 2000, got %v", env[1].Above)
	}
	if env[3].Above != 5000 {
		t.Errorf("leg 3 should inherit lower bound 5000, got %v", env[3].Above)
	}
}

func TestSolveInitialBoundsAreInfinite(t *testing.T) {
	env := Solve([]legs.Leg{bare()}, true)
	if !math.IsInf(env[0].Above, -1) {
		t.Errorf("expected -Inf lower bound, got %v", env[0].Above)
	}
	if !math.IsInf(env[0].Below, 1) {
		t.Errorf("expected +Inf upper bound, got %v", env[0].Below)
	}
}

func TestSolveClampsInconsistentEnvelope(t *testing.T) {
	chain := []legs.Leg{
		withAlt(legs.AtOrAbove(9000)),
		withAlt(legs.AtOrBelow(4000)),
	}
	env := Solve(chain, true)
	if env[1].Above > env[1].Below {
		t.Fatalf("postprocess should have clamped, got above=%v below=%v", env[1].Above, env[1].Below)
	}
	if env[1].Below != env[1].Above {
		t.Errorf("expected below clamped up to above (%v), got %v", env[1].Above, env[1].Below)
	}
}

func TestSolveBetweenSetsBothBounds(t *testing.T) {
	chain := []legs.Leg{withAlt(legs.Between(8000, 10000))}
	env := Solve(chain, true)
	if env[0].Above != 8000 || env[0].Below != 10000 {
		t.Errorf("got above=%v below=%v, want 8000/10000", env[0].Above, env[0].Below)
	}
}

func TestSolveGlideslopeSetsLowerBoundRegardlessOfAboveFlag(t *testing.T) {
	chain := []legs.Leg{withAlt(legs.GlideslopeAt(1800, 3000, false))}
	env := Solve(chain, false)
	if env[0].Above != 3000 {
		t.Errorf("glideslope restriction should set the lower bound even with AboveFlag false, got %v", env[0].Above)
	}
}

func TestSolveDescendingReversesSweepDirection(t *testing.T) {
	chain := []legs.Leg{
		bare(),
		withAlt(legs.AtOrAbove(3000)),
		bare(),
	}
	env := Solve(chain, false)
	if env[0].Above != 3000 {
		t.Errorf("descending sweep should carry lower bound backward to leg 0, got %v", env[0].Above)
	}
}
