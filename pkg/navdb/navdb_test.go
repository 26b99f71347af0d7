package navdb

import (
	"strings"
	"testing"

	"github.com/procspec/navproc/pkg/legs"
)

const fixHeader = "I\n1100 Version\nfixes\n"

func TestLoadFixes(t *testing.T) {
	data := fixHeader + "47.500000000 -122.300000000 ALPHA K1\n99\n"
	got, err := loadFixes(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wp, ok := got[fixKey{Name: "ALPHA", Region: "K1"}]
	if !ok {
		t.Fatal("ALPHA not loaded")
	}
	if wp.LatDeg != 47.5 || wp.LonDeg != -122.3 {
		t.Errorf("got lat/lon %v/%v", wp.LatDeg, wp.LonDeg)
	}
}

func TestLoadAirportMeta(t *testing.T) {
	data := fixHeader + "KSEA K1 47.450 -122.309 433 0 0 0 18000 FL180\n99\n"
	got, err := loadAirportMeta(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := got["KSEA"]
	if !ok {
		t.Fatal("KSEA not loaded")
	}
	if a.TransitionAlt != 18000 {
		t.Errorf("got TA %v, want 18000", a.TransitionAlt)
	}
	if a.TransitionLevel != 18000 {
		t.Errorf("got TL %v, want FL180 = 18000", a.TransitionLevel)
	}
}

func TestSplitCIFP(t *testing.T) {
	data := "RWY:16L,1595,11901;\nSID:10,0,HAWKZ4,RW16L,,,,A   ,,,,IF,,,,,,,,,,,,,,,,,,,;\n"
	recs := splitCIFP(data)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Kind != "RWY" {
		t.Errorf("got kind %q", recs[0].Kind)
	}
	if recs[1].Kind != "SID" {
		t.Errorf("got kind %q", recs[1].Kind)
	}
}

func TestExpandRunwayIdent(t *testing.T) {
	airport := &AirportData{Runways: map[string]*Runway{"16L": {}, "16R": {}, "34L": {}, "34R": {}}}
	all := expandRunwayIdent("ALL", airport)
	if len(all) != 4 {
		t.Errorf("got %d runways for ALL, want 4", len(all))
	}
	parallel := expandRunwayIdent("RW16B", airport)
	if len(parallel) != 2 || parallel[0] != "RW16L" || parallel[1] != "RW16R" {
		t.Errorf("got %v for RW16B", parallel)
	}
	single := expandRunwayIdent("16L", airport)
	if len(single) != 1 || single[0] != "16L" {
		t.Errorf("got %v for plain ident", single)
	}
}

func TestParseAltRestriction(t *testing.T) {
	r, err := parseAltRestriction("B", "9000", "7000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Kind != legs.AltBetween || r.Altitude != 9000 || r.Secondary != 7000 {
		t.Errorf("got %+v", r)
	}

	if _, err := parseAltRestriction("Q", "1000", "2000"); err == nil {
		t.Error("expected error for unrecognized altitude code")
	}
}

func TestResolveCenterFixUsesColumn30And31(t *testing.T) {
	db := &DB{
		fixes:   map[fixKey]*legs.Waypoint{},
		navaids: map[fixKey]*legs.Waypoint{{Name: "CTR1", Region: "K2"}: {Name: "CTR1", LatDeg: 47.6, LonDeg: -122.1}},
	}
	airport := &AirportData{ICAO: "KSEA", LatDeg: 47.45, LonDeg: -122.3, Runways: map[string]*Runway{}}

	fields := make([]string, 32)
	fields[colFixRegion] = "K1" // primary fix's region: must NOT be used for the center fix
	fields[colCenterFix] = "CTR1"
	fields[colCenterFixRegion] = "K2"

	wp, err := db.resolveCenterFix(airport, fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wp == nil || wp.Name != "CTR1" {
		t.Fatalf("got %+v, want CTR1", wp)
	}
}

func TestResolveWaypointFallsBackToAirport(t *testing.T) {
	db := &DB{fixes: map[fixKey]*legs.Waypoint{}, navaids: map[fixKey]*legs.Waypoint{}}
	airport := &AirportData{ICAO: "KSEA", LatDeg: 47.45, LonDeg: -122.3, Runways: map[string]*Runway{}}
	wp, err := db.resolveWaypoint("16L", "", 'G', airport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wp.LatDeg != airport.LatDeg || wp.LonDeg != airport.LonDeg {
		t.Errorf("expected fallback to airport coordinates, got %+v", wp)
	}
}
