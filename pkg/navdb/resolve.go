package navdb

import "github.com/procspec/navproc/pkg/legs"

// airportWaypoint synthesizes the pseudo-waypoint NavDB returns when a
// leg record's descriptor marks its fix as an airport or heliport
// reference (descriptor char 'A'/'H') rather than a plain fix/navaid.
func airportWaypoint(a *AirportData) *legs.Waypoint {
	return &legs.Waypoint{Name: a.ICAO, LatDeg: a.LatDeg, LonDeg: a.LonDeg, Region: a.Region, AirportRef: a.ICAO}
}

// resolveWaypoint implements the named-reference resolution rule: an
// 'A'/'H' descriptor resolves to the airport itself; a 'G' descriptor
// resolves against the airport's runway-threshold table, falling back
// to the airport's own coordinates on miss; anything else is a plain
// fix/navaid lookup by (name, region).
func (db *DB) resolveWaypoint(name, region string, descriptor byte, airport *AirportData) (*legs.Waypoint, error) {
	switch descriptor {
	case 'A', 'H':
		return airportWaypoint(airport), nil
	case 'G':
		if rwy, ok := airport.Runways[name]; ok && rwy.Threshold != nil {
			return rwy.Threshold, nil
		}
		return airportWaypoint(airport), nil
	default:
		key := fixKey{Name: name, Region: region}
		if wp, ok := db.fixes[key]; ok {
			return wp, nil
		}
		if wp, ok := db.navaids[key]; ok {
			return wp, nil
		}
		return nil, &ReferenceError{Name: name, Region: region}
	}
}
