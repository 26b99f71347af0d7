// Command navproc drives the navigation-database-to-geometry pipeline
// end to end: it loads a NavDB directory, looks up one procedure, and
// builds its flight-path points and (optionally) its ribbon mesh.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/procspec/navproc/pkg/altitude"
	"github.com/procspec/navproc/pkg/declination"
	"github.com/procspec/navproc/pkg/legs"
	"github.com/procspec/navproc/pkg/log"
	"github.com/procspec/navproc/pkg/navdb"
	"github.com/procspec/navproc/pkg/pathbuilder"
	"github.com/procspec/navproc/pkg/ribbon"
	"github.com/procspec/navproc/pkg/util"
)

var (
	dbDir        = flag.String("db", "", "NavDB directory (earth_fix.dat, earth_nav.dat, earth_aptmeta.dat, CIFP/)")
	logLevel     = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	airportFlag  = flag.String("airport", "", "ICAO airport identifier")
	sidFlag      = flag.String("sid", "", "SID identifier to build")
	starFlag     = flag.String("star", "", "STAR identifier to build")
	approachFlag = flag.String("approach", "", "approach identifier to build")
	runwayFlag   = flag.String("runway", "", "runway to select within the chosen procedure's runway-keyed body")
	transFlag    = flag.String("transition", "", "transition identifier to prepend, if any")
	objOut       = flag.String("obj", "", "write the built ribbon mesh to this OBJ-like file, if set")
)

// zeroDeclination is the trivial stand-in for the magnetic-model
// coefficient table, which this core treats as an external
// collaborator (see Non-goals). It reports no variation anywhere,
// which is enough to exercise the pipeline without that dependency.
type zeroDeclination struct{}

func (zeroDeclination) Declination(latDeg, lonDeg, altFt, year float64) float64 { return 0 }

func main() {
	flag.Parse()
	lg := log.New(*logLevel, "")

	if *dbDir == "" || *airportFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: navproc -db <dir> -airport <ICAO> [-sid|-star|-approach <ident>] [-runway ...] [-transition ...]")
		os.Exit(2)
	}

	errLog := &util.ErrorLogger{}
	db, err := navdb.Open(*dbDir, lg, errLog)
	if err != nil {
		lg.Errorf("navdb.Open: %v", err)
		os.Exit(1)
	}
	if errLog.HaveErrors() {
		errLog.PrintErrors(lg)
	}

	airport, ok := db.Airport(*airportFlag)
	if !ok {
		lg.Errorf("unknown airport %s", *airportFlag)
		os.Exit(1)
	}

	orderedLegs, ascending, err := selectProcedure(airport)
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}

	cfg := pathbuilder.AircraftConfig{MinTurnRadiusNM: 3, ClimbGradient: 0.05, DescentGradient: 0.05}
	decl := declination.NewSource(zeroDeclination{}, 2026.5)

	result, err := pathbuilder.Build(orderedLegs, cfg, nil, ascending, decl)
	if err != nil {
		lg.Errorf("build: %v", err)
		os.Exit(1)
	}
	fmt.Printf("%d legs, %d points\n", len(result.PerLeg), len(result.Flat))

	env := altitude.Solve(orderedLegs, ascending)
	for i, e := range env {
		fmt.Printf("  leg %2d (%-2s): above=%v below=%v\n", i, orderedLegs[i].Kind(), e.Above, e.Below)
	}

	if *objOut != "" {
		meshes := ribbon.Build(result.PerLeg, ribbon.Dimensions{WidthFt: ribbon.DefaultWidthFt, HeightFt: ribbon.DefaultHeightFt})
		if err := os.WriteFile(*objOut, []byte(ribbon.WriteOBJ(meshes)), 0o644); err != nil {
			lg.Errorf("writing %s: %v", *objOut, err)
			os.Exit(1)
		}
	}
}

// selectProcedure resolves exactly one of -sid/-star/-approach into an
// ordered leg list, optionally prefixed by -transition, and reports
// the altitude-sweep direction that procedure family implies.
func selectProcedure(airport *navdb.AirportData) ([]legs.Leg, bool, error) {
	switch {
	case *sidFlag != "":
		sid, ok := airport.SIDs.Get(*sidFlag)
		if !ok {
			return nil, false, fmt.Errorf("unknown SID %s", *sidFlag)
		}
		return assembleProcedure(sid.Rwys, sid.Transitions, sid.IsAllRwys), true, nil
	case *starFlag != "":
		star, ok := airport.STARs.Get(*starFlag)
		if !ok {
			return nil, false, fmt.Errorf("unknown STAR %s", *starFlag)
		}
		return assembleProcedure(star.Rwys, star.Transitions, star.IsAllRwys), false, nil
	case *approachFlag != "":
		appch, ok := airport.Approaches.Get(*approachFlag)
		if !ok {
			return nil, false, fmt.Errorf("unknown approach %s", *approachFlag)
		}
		return prependTransition(appch.Legs, appch.Transitions), false, nil
	default:
		return nil, false, fmt.Errorf("specify exactly one of -sid, -star, or -approach")
	}
}

func assembleProcedure(rwys, transitions *util.OrderedMap[[]legs.Leg], isAllRwys bool) []legs.Leg {
	var body []legs.Leg
	if isAllRwys {
		if vs := rwys.Values(); len(vs) > 0 {
			body = vs[0]
		}
	} else if *runwayFlag != "" {
		if b, ok := rwys.Get(*runwayFlag); ok {
			body = b
		}
	} else if vs := rwys.Values(); len(vs) > 0 {
		body = vs[0]
	}
	return prependTransition(body, transitions)
}

func prependTransition(body []legs.Leg, transitions *util.OrderedMap[[]legs.Leg]) []legs.Leg {
	if *transFlag == "" {
		return body
	}
	t, ok := transitions.Get(*transFlag)
	if !ok {
		return body
	}
	out := make([]legs.Leg, 0, len(t)+len(body))
	out = append(out, t...)
	out = append(out, body...)
	return out
}
