// Package altitude implements the constraint solver (component A): it
// walks an ordered leg list once forward and once backward to produce
// per-leg (above, below) altitude envelopes from the scattered
// restrictions attached to individual legs.
package altitude

import (
	"math"

	"github.com/procspec/navproc/pkg/legs"
)

// Envelope is the (above, below) altitude bound for one leg, in feet.
type Envelope struct {
	Above float64
	Below float64
}

// Solve walks orderedLegs once forward and once in reverse, carrying
// the most recent lower bound (ascending forward, descending in
// reverse direction) and the most recent upper bound in the opposite
// sweep. Initial bounds are +/-Inf. Wherever a leg's resolved Above
// exceeds its Below, Below is clamped up to Above: the lower bound
// wins, since these only arise from inconsistently-authored procedures
// (an ascending leg inside an overall descent or vice versa).
func Solve(orderedLegs []legs.Leg, ascending bool) []Envelope {
	n := len(orderedLegs)
	env := make([]Envelope, n)
	for i := range env {
		env[i] = Envelope{Above: math.Inf(-1), Below: math.Inf(1)}
	}

	lowerSweep(orderedLegs, env, ascending)
	upperSweep(orderedLegs, env, ascending)

	for i := range env {
		if env[i].Above > env[i].Below {
			env[i].Below = env[i].Above
		}
	}
	return env
}

// lowerSweep walks forward when ascending, reverse otherwise, carrying
// cur_min: each leg inherits the most recent lower bound from the
// restriction it encounters.
func lowerSweep(orderedLegs []legs.Leg, env []Envelope, ascending bool) {
	curMin := math.Inf(-1)
	forEachIndex(len(orderedLegs), ascending, func(i int) {
		if r := orderedLegs[i].Info().Alt; r != nil {
			if v, ok := lowerBoundOf(r); ok {
				curMin = v
			}
		}
		env[i].Above = curMin
	})
}

// upperSweep walks in the opposite direction of lowerSweep, carrying
// cur_max for upper bounds.
func upperSweep(orderedLegs []legs.Leg, env []Envelope, ascending bool) {
	curMax := math.Inf(1)
	forEachIndex(len(orderedLegs), !ascending, func(i int) {
		if r := orderedLegs[i].Info().Alt; r != nil {
			if v, ok := upperBoundOf(r); ok {
				curMax = v
			}
		}
		env[i].Below = curMax
	})
}

func forEachIndex(n int, forward bool, f func(i int)) {
	if forward {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}
	for i := n - 1; i >= 0; i-- {
		f(i)
	}
}

func lowerBoundOf(r *legs.AltitudeRestriction) (float64, bool) {
	switch r.Kind {
	case legs.AltAt, legs.AltAtOrAbove, legs.AltStepDownAbove, legs.AltStepDownAt:
		return r.Altitude, true
	case legs.AltBetween:
		return r.Altitude, true
	case legs.AltGlideslopeAt, legs.AltGlideslopeIntercept:
		return r.Altitude, true
	default:
		return 0, false
	}
}

func upperBoundOf(r *legs.AltitudeRestriction) (float64, bool) {
	switch r.Kind {
	case legs.AltAt, legs.AltAtOrBelow, legs.AltStepDownBelow, legs.AltStepDownAt:
		return r.Altitude, true
	case legs.AltBetween:
		return r.Secondary, true
	default:
		return 0, false
	}
}
