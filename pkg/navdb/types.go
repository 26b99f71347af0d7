// Package navdb loads the ARINC-424-derived navigation database
// (fixes, navaids, airport metadata, per-airport CIFP procedures) that
// the path builder consumes. NavDB construction is the only component
// in the pipeline that touches I/O; once Open returns, a DB is
// immutable and safe to share across concurrent builds.
package navdb

import (
	"github.com/procspec/navproc/pkg/legs"
	"github.com/procspec/navproc/pkg/util"
)

// fixKey identifies a fix or navaid by its (name, region) pair, the
// same two-column reference every CIFP leg record carries.
type fixKey struct {
	Name, Region string
}

// Runway is a single runway's threshold waypoint plus the heading and
// length metadata a real CIFP deck's RWY records carry.
type Runway struct {
	Ident      string
	Threshold  *legs.Waypoint
	HeadingDeg float64
	LengthFt   float64
}

// Hold is a station-keeping holding pattern published independently of
// any procedure leg (a CIFP HOLD record), distinct from the HF/HA/HM
// leg kinds that can appear inside a procedure.
type Hold struct {
	Fix       *legs.Waypoint
	Course    legs.Course
	LegLength legs.DistOrTime
	TurnDir   legs.TurnDirection
}

// SID is a departure procedure: a runway-keyed body (or a single
// all-runways body when IsAllRwys) plus enroute transitions, each an
// insertion-ordered leg list in CIFP sequence-number order.
type SID struct {
	Ident      string
	Airport    string
	IsAllRwys  bool
	Rwys       *util.OrderedMap[[]legs.Leg]
	Transitions *util.OrderedMap[[]legs.Leg]
}

// STAR has the identical shape to SID.
type STAR struct {
	Ident       string
	Airport     string
	IsAllRwys   bool
	Rwys        *util.OrderedMap[[]legs.Leg]
	Transitions *util.OrderedMap[[]legs.Leg]
}

// Approach is a final approach procedure: a single leg list plus its
// enroute transitions. The CIFP loader does not fill in Runway; it is
// left blank.
type Approach struct {
	Ident       string
	Airport     string
	Runway      string
	Legs        []legs.Leg
	Transitions *util.OrderedMap[[]legs.Leg]
}

// AirportData is the (sids, stars, approaches) triple returned by
// DB.Airport, each an insertion-ordered map from procedure identifier
// to its procedure, preserving CIFP file order.
type AirportData struct {
	ICAO           string
	Region         string
	LatDeg, LonDeg float64
	ElevFt         float64
	TransitionAlt   float64
	TransitionLevel float64

	Runways map[string]*Runway
	Holds   map[string]*Hold

	SIDs       *util.OrderedMap[*SID]
	STARs      *util.OrderedMap[*STAR]
	Approaches *util.OrderedMap[*Approach]
}

// DB is the loaded, read-only navigation database. Multiple build
// invocations may read the same *DB concurrently.
type DB struct {
	fixes       map[fixKey]*legs.Waypoint
	navaids     map[fixKey]*legs.Waypoint
	airports    map[string]*AirportData
	thresholds  map[string]map[string]*legs.Waypoint // airport -> runway ident -> threshold, from earth_nav.dat type-4 records
}

func (db *DB) runwayThresholds(airport, runway string) (*legs.Waypoint, bool) {
	m, ok := db.thresholds[airport]
	if !ok {
		return nil, false
	}
	wp, ok := m[runway]
	return wp, ok
}

// Airport looks up a loaded airport's procedures by ICAO identifier.
func (db *DB) Airport(icao string) (*AirportData, bool) {
	a, ok := db.airports[icao]
	return a, ok
}

func newLegListMap() *util.OrderedMap[[]legs.Leg] {
	return util.NewOrderedMap[[]legs.Leg]()
}
