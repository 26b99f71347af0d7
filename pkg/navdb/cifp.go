package navdb

import (
	"strconv"
	"strings"

	"github.com/procspec/navproc/pkg/legs"
)

// rawRecord is one semicolon-terminated CIFP line split into its kind
// tag and comma-separated payload fields.
type rawRecord struct {
	Kind   string
	Fields []string
}

// splitCIFP breaks a CIFP file's contents into records on the ";\n"
// terminator and each record into KIND / COMMA-FIELDS.
func splitCIFP(data string) []rawRecord {
	var out []rawRecord
	for _, chunk := range strings.Split(data, ";\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		kind, payload, ok := strings.Cut(chunk, ":")
		if !ok {
			continue
		}
		out = append(out, rawRecord{Kind: kind, Fields: strings.Split(payload, ",")})
	}
	return out
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// sidBodyQualifiers / sidTransQualifiers / starBodyQualifiers /
// starTransQualifiers classify a procedure record's qualifier column
// into the runway-keyed body group or the enroute-transition group.
var sidBodyQualifiers = set("0", "1", "2", "4", "F", "M", "T", "V")
var sidTransQualifiers = set("3", "6", "S")
var starBodyQualifiers = set("2", "5", "3", "6", "8", "9", "M", "S")
var starTransQualifiers = set("1", "4", "7", "F")

func set(vals ...string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// expandRunwayIdent expands "ALL" to every airport runway and a
// trailing "B" parallel-runway suffix (e.g. "RW27B") to both L/R
// members; any other identifier passes through unchanged.
func expandRunwayIdent(ident string, airport *AirportData) []string {
	if ident == "ALL" {
		var all []string
		for rwy := range airport.Runways {
			all = append(all, rwy)
		}
		return all
	}
	if strings.HasSuffix(ident, "B") {
		base := strings.TrimSuffix(ident, "B")
		return []string{base + "L", base + "R"}
	}
	return []string{ident}
}

// loadCIFP parses one airport's CIFP file and populates its runways,
// holds, and procedures in place. Per the failure policy, any parse
// error aborts this single airport's load; the caller is expected to
// continue with the rest of the directory.
func (db *DB) loadCIFP(airport *AirportData, data string) error {
	records := splitCIFP(data)

	// RWY records are parsed first so leg records referencing a "G"
	// (runway) descriptor resolve against a populated table.
	for _, rec := range records {
		if rec.Kind != "RWY" {
			continue
		}
		if err := db.applyRunwayRecord(airport, rec.Fields); err != nil {
			return err
		}
	}

	for _, rec := range records {
		if rec.Kind != "HOLD" {
			continue
		}
		if err := db.applyHoldRecord(airport, rec.Fields); err != nil {
			return err
		}
	}

	type groupKey struct {
		kind, qualifier, procID, transID string
	}
	groups := make(map[groupKey][]legRecord)
	var order []groupKey

	for _, rec := range records {
		var kind legs.ProcedureKind
		switch rec.Kind {
		case "SID":
			kind = legs.SID
		case "STAR":
			kind = legs.STAR
		case "APPCH":
			kind = legs.Approach
		default:
			continue // RWY, HOLD, PRDAT, or unrecognized — not a leg record
		}

		qualifier, procID, transID := field(rec.Fields, 1), field(rec.Fields, 2), field(rec.Fields, 3)
		key := groupKey{kind: rec.Kind, qualifier: qualifier, procID: procID, transID: transID}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], legRecord{kind: kind, fields: rec.Fields})
	}

	for _, key := range order {
		recs := groups[key]
		sortLegRecords(recs)
		built, err := db.buildLegList(airport, recs)
		if err != nil {
			return err
		}
		markFirstMissed(built)

		switch key.kind {
		case "SID":
			if err := db.attachSIDGroup(airport, key.qualifier, key.procID, key.transID, built); err != nil {
				return err
			}
		case "STAR":
			if err := db.attachSTARGroup(airport, key.qualifier, key.procID, key.transID, built); err != nil {
				return err
			}
		case "APPCH":
			db.attachApproachGroup(airport, key.qualifier, key.procID, key.transID, built)
		}
	}
	return nil
}

type legRecord struct {
	kind   legs.ProcedureKind
	fields []string
}

func sortLegRecords(recs []legRecord) {
	seq := func(r legRecord) int {
		n, _ := strconv.Atoi(field(r.fields, 0))
		return n
	}
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && seq(recs[j-1]) > seq(recs[j]); j-- {
			recs[j-1], recs[j] = recs[j], recs[j-1]
		}
	}
}

func markFirstMissed(built []legs.Leg) {
	for _, l := range built {
		if l.Info().MissedApproachPoint {
			l.Info().FirstMissed = true
			return
		}
	}
}

func (db *DB) attachSIDGroup(airport *AirportData, qualifier, procID, transID string, built []legs.Leg) error {
	s, ok := airport.SIDs.Get(procID)
	if !ok {
		s = &SID{Ident: procID, Airport: airport.ICAO, Rwys: newLegListMap(), Transitions: newLegListMap()}
		airport.SIDs.Set(procID, s)
	}
	switch {
	case sidBodyQualifiers[qualifier]:
		for _, rwy := range expandRunwayIdent(transID, airport) {
			if rwy == "ALL" || rwy == "" {
				s.IsAllRwys = true
			}
			s.Rwys.Set(rwy, built)
		}
	case sidTransQualifiers[qualifier]:
		s.Transitions.Set(transID, built)
	}
	return nil
}

func (db *DB) attachSTARGroup(airport *AirportData, qualifier, procID, transID string, built []legs.Leg) error {
	s, ok := airport.STARs.Get(procID)
	if !ok {
		s = &STAR{Ident: procID, Airport: airport.ICAO, Rwys: newLegListMap(), Transitions: newLegListMap()}
		airport.STARs.Set(procID, s)
	}
	switch {
	case starBodyQualifiers[qualifier]:
		for _, rwy := range expandRunwayIdent(transID, airport) {
			if rwy == "ALL" || rwy == "" {
				s.IsAllRwys = true
			}
			s.Rwys.Set(rwy, built)
		}
	case starTransQualifiers[qualifier]:
		s.Transitions.Set(transID, built)
	}
	return nil
}

func (db *DB) attachApproachGroup(airport *AirportData, qualifier, procID, transID string, built []legs.Leg) {
	a, ok := airport.Approaches.Get(procID)
	if !ok {
		a = &Approach{Ident: procID, Airport: airport.ICAO, Transitions: newLegListMap()}
		airport.Approaches.Set(procID, a)
	}
	if qualifier == "A" {
		a.Transitions.Set(transID, built)
		return
	}
	a.Legs = built
}

// applyRunwayRecord parses an "RWY:ident,heading_tenths,length_ft"
// record into the airport's runway table, pulling the threshold
// waypoint from any matching ILS-derived navaid fix registered during
// earth_nav.dat loading (falling back to a nil Threshold, which
// resolveWaypoint substitutes the airport's own coordinates for).
func (db *DB) applyRunwayRecord(airport *AirportData, fields []string) error {
	ident := field(fields, 0)
	if ident == "" {
		return &ParseError{File: "CIFP/" + airport.ICAO + ".dat", Err: errShortRecord}
	}
	headingTenths, err := strconv.ParseFloat(field(fields, 1), 64)
	if err != nil {
		return &ParseError{File: "CIFP/" + airport.ICAO + ".dat", Err: err}
	}
	lengthFt, err := strconv.ParseFloat(field(fields, 2), 64)
	if err != nil {
		return &ParseError{File: "CIFP/" + airport.ICAO + ".dat", Err: err}
	}

	rwy := &Runway{Ident: ident, HeadingDeg: headingTenths / 10, LengthFt: lengthFt}
	if threshold, ok := db.runwayThresholds(airport.ICAO, ident); ok {
		rwy.Threshold = threshold
	}
	airport.Runways[ident] = rwy
	return nil
}

func (db *DB) applyHoldRecord(airport *AirportData, fields []string) error {
	name, region := field(fields, 0), field(fields, 1)
	wp, err := db.resolveWaypoint(name, region, 0, airport)
	if err != nil {
		return err
	}
	crs := parseCourseField(field(fields, 2))
	leglen := parseDistOrTimeField(field(fields, 3))
	turnDir := legs.TurnUnspecified
	switch field(fields, 4) {
	case "L":
		turnDir = legs.TurnLeft
	case "R":
		turnDir = legs.TurnRight
	}
	airport.Holds[name] = &Hold{Fix: wp, Course: crs, LegLength: leglen, TurnDir: turnDir}
	return nil
}
