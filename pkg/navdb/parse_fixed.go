package navdb

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/procspec/navproc/pkg/legs"
	"github.com/procspec/navproc/pkg/util"
)

// scanRecords skips the fixed 3-line header every earth_*.dat file
// carries and yields whitespace-split fields for each subsequent
// non-blank line, stopping at the "99" terminator line.
func scanRecords(r io.Reader, f func(fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; i < 3 && sc.Scan(); i++ {
		// header lines discarded
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "99" {
			break
		}
		fields := strings.Fields(line)
		if err := f(fields); err != nil {
			return err
		}
	}
	return sc.Err()
}

// navaidTypes is the set of earth_nav.dat type codes this core
// recognizes as navaids (NDB, VOR, ILS localizers, DME); any other type
// code, markers included, is skipped.
var navaidTypes = map[string]bool{
	"2": true, "3": true, "4": true, "5": true, "12": true, "13": true,
}

const navaidTypeRunwayThreshold = "4"

// loadFixes parses earth_fix.dat: (lat, lon, name, region) columns.
func loadFixes(r io.Reader) (map[fixKey]*legs.Waypoint, error) {
	out := make(map[fixKey]*legs.Waypoint)
	err := scanRecords(r, func(fields []string) error {
		if len(fields) < 4 {
			return &ParseError{File: "earth_fix.dat", Err: errShortRecord}
		}
		lat, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return &ParseError{File: "earth_fix.dat", Err: err}
		}
		lon, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return &ParseError{File: "earth_fix.dat", Err: err}
		}
		name, region := fields[2], fields[3]
		out[fixKey{Name: name, Region: region}] = &legs.Waypoint{
			Name: name, LatDeg: lat, LonDeg: lon, Region: region,
		}
		return nil
	})
	return out, err
}

// loadNavaids parses earth_nav.dat: type, lat, lon, elev, freq, range,
// bearing, ident, airport, runway, region columns (trailing name
// fields ignored). Type-4 records (ILS localizers) additionally carry
// the airport/runway they serve and register their fix as that
// runway's threshold, resolved later once the airport's RWY records
// are parsed.
func loadNavaids(r io.Reader) (map[fixKey]*legs.Waypoint, map[string]map[string]*legs.Waypoint, error) {
	out := make(map[fixKey]*legs.Waypoint)
	thresholds := make(map[string]map[string]*legs.Waypoint)

	err := scanRecords(r, func(fields []string) error {
		if len(fields) < 8 {
			return nil // short/unsupported record kind, skip rather than abort the whole file
		}
		kind := fields[0]
		if !navaidTypes[kind] {
			return nil
		}
		lat, latErr := strconv.ParseFloat(fields[1], 64)
		lon, lonErr := strconv.ParseFloat(fields[2], 64)
		if latErr != nil || lonErr != nil {
			return &ParseError{File: "earth_nav.dat", Err: errShortRecord}
		}
		ident := fields[7]
		region := ""
		if len(fields) > 10 {
			region = fields[10]
		}
		wp := &legs.Waypoint{Name: ident, LatDeg: lat, LonDeg: lon, Region: region}
		out[fixKey{Name: ident, Region: region}] = wp

		if kind == navaidTypeRunwayThreshold && len(fields) > 9 {
			airport, runway := fields[8], fields[9]
			if thresholds[airport] == nil {
				thresholds[airport] = make(map[string]*legs.Waypoint)
			}
			thresholds[airport][runway] = wp
		}
		return nil
	})
	return out, thresholds, err
}

// loadAirportMeta parses earth_aptmeta.dat: (icao, region, lat, lon,
// elev, _, _, _, ta, tl); tl may carry an "FLxx" prefix meaning
// xx*100 ft.
func loadAirportMeta(r io.Reader) (map[string]*AirportData, error) {
	out := make(map[string]*AirportData)
	err := scanRecords(r, func(fields []string) error {
		if len(fields) < 10 {
			return &ParseError{File: "earth_aptmeta.dat", Err: errShortRecord}
		}
		icao, region := fields[0], fields[1]
		lat, latErr := strconv.ParseFloat(fields[2], 64)
		lon, lonErr := strconv.ParseFloat(fields[3], 64)
		elev, elevErr := strconv.ParseFloat(fields[4], 64)
		ta, taErr := parseAltitudeField(fields[8])
		tl, tlErr := parseAltitudeField(fields[9])
		if latErr != nil || lonErr != nil || elevErr != nil || taErr != nil || tlErr != nil {
			return &ParseError{File: "earth_aptmeta.dat", Err: errShortRecord}
		}
		out[icao] = &AirportData{
			ICAO: icao, Region: region, LatDeg: lat, LonDeg: lon, ElevFt: elev,
			TransitionAlt: ta, TransitionLevel: tl,
			Runways:    make(map[string]*Runway),
			Holds:      make(map[string]*Hold),
			SIDs:       util.NewOrderedMap[*SID](),
			STARs:      util.NewOrderedMap[*STAR](),
			Approaches: util.NewOrderedMap[*Approach](),
		}
		return nil
	})
	return out, err
}

// parseAltitudeField parses a plain feet value, or an "FLxxx" flight
// level (multiplied by 100).
func parseAltitudeField(s string) (float64, error) {
	if len(s) > 2 && strings.EqualFold(s[:2], "FL") {
		v, err := strconv.ParseFloat(s[2:], 64)
		return v * 100, err
	}
	return strconv.ParseFloat(s, 64)
}
