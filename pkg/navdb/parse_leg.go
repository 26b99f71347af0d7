package navdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/procspec/navproc/pkg/legs"
)

// Column indices into a leg record's comma-separated fields, per the
// fixed CIFP grammar this core understands.
const (
	colSeq             = 0
	colQualifier       = 1
	colProcID          = 2
	colTransID         = 3
	colFixIdent        = 4
	colFixRegion       = 5
	colDescriptor      = 8
	colTurnDir         = 9
	colLegType         = 11
	colRcmdIdent       = 13
	colRcmdRegion      = 14
	colTheta           = 18
	colRho             = 19
	colCourse          = 20
	colDistTime        = 21
	colAltKind         = 22
	colAlt1            = 23
	colAlt2            = 24
	colSpeedKind       = 26
	colSpeed           = 27
	colGlideAngle      = 28
	colCenterFix       = 30
	colCenterFixRegion = 31
)

func parseCourseField(s string) legs.Course {
	if s == "" {
		return legs.Course{}
	}
	trueNorth := strings.HasSuffix(s, "T")
	s = strings.TrimSuffix(s, "T")
	tenths, _ := strconv.ParseFloat(s, 64)
	return legs.Course{ValueDeg: tenths / 10, IsTrueNorth: trueNorth}
}

// parseDistOrTimeField parses col21: a tenths-nm distance, or a
// tenths-minute time prefixed with "T".
func parseDistOrTimeField(s string) legs.DistOrTime {
	if s == "" {
		return legs.DistOrTime{}
	}
	if strings.HasPrefix(s, "T") {
		tenths, _ := strconv.ParseFloat(s[1:], 64)
		return legs.DistOrTime{Unit: legs.UnitMinutes, Value: tenths / 10}
	}
	tenths, _ := strconv.ParseFloat(s, 64)
	return legs.DistOrTime{Unit: legs.UnitNauticalMiles, Value: tenths / 10}
}

func parseDistanceNM(s string) float64 {
	d := parseDistOrTimeField(s)
	return d.Value
}

// parseAltitudeNumeric parses a plain feet value or "FLxxx" (flight
// level, *100 ft); unlike parseAltitudeField (earth_aptmeta.dat) this
// tolerates an empty field, returning 0.
func parseAltitudeNumeric(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return parseAltitudeField(s)
}

// altitude description codes recognized by this core. ARINC-424 uses
// a denser real-world code set; this mapping covers the nine
// AltitudeRestriction shapes the leg model exposes.
const (
	altCodeAt                 = "@"
	altCodeAtOrAbove          = "+"
	altCodeAtOrBelow          = "-"
	altCodeBetween            = "B"
	altCodeGlideslopeAt       = "G"
	altCodeGlideslopeAtAbove  = "H"
	altCodeGlideslopeIntc     = "I"
	altCodeGlideslopeIntcAbv  = "J"
	altCodeStepDownAt         = "C"
	altCodeStepDownAbove      = "Y"
	altCodeStepDownBelow      = "Z"
)

func parseAltRestriction(kind, alt1s, alt2s string) (*legs.AltitudeRestriction, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, nil
	}
	alt1, err := parseAltitudeNumeric(alt1s)
	if err != nil {
		return nil, err
	}
	alt2, err := parseAltitudeNumeric(alt2s)
	if err != nil {
		return nil, err
	}

	var r legs.AltitudeRestriction
	switch kind {
	case altCodeAt:
		r = legs.At(alt1)
	case altCodeAtOrAbove:
		r = legs.AtOrAbove(alt1)
	case altCodeAtOrBelow:
		r = legs.AtOrBelow(alt1)
	case altCodeBetween:
		r = legs.Between(alt1, alt2)
	case altCodeGlideslopeAt:
		r = legs.GlideslopeAt(alt2, alt1, false)
	case altCodeGlideslopeAtAbove:
		r = legs.GlideslopeAt(alt2, alt1, true)
	case altCodeGlideslopeIntc:
		r = legs.GlideslopeIntercept(alt2, alt1, false)
	case altCodeGlideslopeIntcAbv:
		r = legs.GlideslopeIntercept(alt2, alt1, true)
	case altCodeStepDownAt:
		r = legs.StepDownAt(alt1, alt2)
	case altCodeStepDownAbove:
		r = legs.StepDownAbove(alt1, alt2)
	case altCodeStepDownBelow:
		r = legs.StepDownBelow(alt1, alt2)
	default:
		return nil, errUnknownAltitudeCode
	}
	return &r, nil
}

func parseSpeedRestriction(kind, speedS string) (*legs.SpeedRestriction, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, nil
	}
	speed, err := strconv.ParseFloat(speedS, 64)
	if err != nil {
		return nil, err
	}
	var r legs.SpeedRestriction
	r.Knots = speed
	switch kind {
	case altCodeAt:
		r.Kind = legs.SpeedAt
	case altCodeAtOrAbove:
		r.Kind = legs.SpeedAtOrAbove
	case altCodeAtOrBelow:
		r.Kind = legs.SpeedAtOrBelow
	default:
		return nil, errUnknownSpeedCode
	}
	return &r, nil
}

// buildLegInfo fills the metadata shared by every variant from the
// record's fixed columns.
func buildLegInfo(kind legs.ProcedureKind, fields []string) (legs.LegInfo, error) {
	seq, err := strconv.Atoi(field(fields, colSeq))
	if err != nil {
		return legs.LegInfo{}, err
	}
	descriptor := field(fields, colDescriptor)
	for len(descriptor) < 4 {
		descriptor += " "
	}

	info := legs.LegInfo{
		Seq:       seq,
		Kind:      kind,
		Qualifier: field(fields, colQualifier),
		ProcID:    field(fields, colProcID),
		TransID:   field(fields, colTransID),
		Overfly:   descriptor[1] == 'Y',
	}
	switch field(fields, colTurnDir) {
	case "L":
		info.TurnDir = legs.TurnLeft
	case "R":
		info.TurnDir = legs.TurnRight
	}
	switch descriptor[3] {
	case 'I':
		info.InitialApproachFix = true
	case 'F':
		info.FinalApproachFix = true
	case 'M':
		info.MissedApproachPoint = true
	}

	alt, err := parseAltRestriction(field(fields, colAltKind), field(fields, colAlt1), field(fields, colAlt2))
	if err != nil {
		return legs.LegInfo{}, fmt.Errorf("%w: %s", err, spew.Sdump(fields))
	}
	info.Alt = alt

	speed, err := parseSpeedRestriction(field(fields, colSpeedKind), field(fields, colSpeed))
	if err != nil {
		return legs.LegInfo{}, err
	}
	info.Speed = speed

	if g := field(fields, colGlideAngle); g != "" {
		hundredths, err := strconv.ParseFloat(g, 64)
		if err != nil {
			return legs.LegInfo{}, err
		}
		deg := hundredths / 100
		info.GlideAngleDeg = &deg
	}
	return info, nil
}

// buildLegList parses a sequence-sorted group of leg records into the
// leg sum type, one concrete variant per the table in the leg model.
func (db *DB) buildLegList(airport *AirportData, recs []legRecord) ([]legs.Leg, error) {
	out := make([]legs.Leg, 0, len(recs))
	for _, rec := range recs {
		l, err := db.buildLeg(airport, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (db *DB) resolvePrimaryFix(airport *AirportData, fields []string) (*legs.Waypoint, error) {
	descriptor := field(fields, colDescriptor)
	var dtype byte
	if len(descriptor) > 0 {
		dtype = descriptor[0]
	}
	ident := field(fields, colFixIdent)
	if ident == "" {
		return nil, nil
	}
	return db.resolveWaypoint(ident, field(fields, colFixRegion), dtype, airport)
}

func (db *DB) resolveRecommendedFix(airport *AirportData, fields []string) (*legs.Waypoint, error) {
	ident := field(fields, colRcmdIdent)
	if ident == "" {
		return nil, nil
	}
	return db.resolveWaypoint(ident, field(fields, colRcmdRegion), 0, airport)
}

func (db *DB) buildLeg(airport *AirportData, rec legRecord) (legs.Leg, error) {
	fields := rec.fields
	info, err := buildLegInfo(rec.kind, fields)
	if err != nil {
		return nil, err
	}

	fix, err := db.resolvePrimaryFix(airport, fields)
	if err != nil {
		return nil, err
	}
	rcmd, err := db.resolveRecommendedFix(airport, fields)
	if err != nil {
		return nil, err
	}
	course := parseCourseField(field(fields, colCourse))

	switch strings.ToUpper(field(fields, colLegType)) {
	case "IF":
		return &legs.IFLeg{LegInfo: info, Fix: fix}, nil
	case "TF":
		return &legs.TFLeg{LegInfo: info, Fix: fix}, nil
	case "CF":
		return &legs.CFLeg{LegInfo: info, Fix: fix, Course: course, Recommended: rcmd}, nil
	case "DF":
		return &legs.DFLeg{LegInfo: info, Fix: fix, Recommended: rcmd}, nil
	case "FA":
		alt, _ := parseAltitudeNumeric(field(fields, colAlt1))
		return &legs.FALeg{LegInfo: info, Start: fix, Course: course, TargetAlt: alt, Recommended: rcmd}, nil
	case "FC":
		return &legs.FCLeg{LegInfo: info, Start: fix, Course: course, DistanceNM: parseDistanceNM(field(fields, colDistTime))}, nil
	case "FD":
		return &legs.FDLeg{LegInfo: info, Start: fix, Course: course, DistanceNM: parseDistanceNM(field(fields, colDistTime)), DMEStation: rcmd}, nil
	case "FM":
		return &legs.FMLeg{LegInfo: info, Start: fix, Course: course, Recommended: rcmd}, nil
	case "CA":
		alt, _ := parseAltitudeNumeric(field(fields, colAlt1))
		return &legs.CALeg{LegInfo: info, Course: course, TargetAlt: alt}, nil
	case "CD":
		return &legs.CDLeg{LegInfo: info, Course: course, DistanceNM: parseDistanceNM(field(fields, colDistTime)), DMEStation: rcmd}, nil
	case "CI":
		return &legs.CILeg{LegInfo: info, Course: course, Recommended: rcmd}, nil
	case "CR":
		return &legs.CRLeg{LegInfo: info, Course: course, Radial: buildRadial(fields, rcmd)}, nil
	case "RF":
		center, err := db.resolveCenterFix(airport, fields)
		if err != nil {
			return nil, err
		}
		return &legs.RFLeg{LegInfo: info, Fix: fix, DistanceNM: parseDistanceNM(field(fields, colDistTime)), Center: center}, nil
	case "AF":
		return &legs.AFLeg{LegInfo: info, Fix: fix, Radial: buildRadialDME(fields, rcmd)}, nil
	case "VA":
		alt, _ := parseAltitudeNumeric(field(fields, colAlt1))
		return &legs.VALeg{LegInfo: info, Course: course, TargetAlt: alt}, nil
	case "VD":
		return &legs.VDLeg{LegInfo: info, Course: course, DistanceNM: parseDistanceNM(field(fields, colDistTime)), DMEStation: rcmd}, nil
	case "VI":
		return &legs.VILeg{LegInfo: info, Course: course, Recommended: rcmd}, nil
	case "VM":
		return &legs.VMLeg{LegInfo: info, Fix: fix, Course: course}, nil
	case "VR":
		return &legs.VRLeg{LegInfo: info, Course: course, Radial: buildRadial(fields, rcmd)}, nil
	case "PI":
		alt, _ := parseAltitudeNumeric(field(fields, colAlt1))
		return &legs.PILeg{LegInfo: info, Fix: fix, Course: course, DistanceNM: parseDistanceNM(field(fields, colDistTime)), TargetAlt: alt}, nil
	case "HA":
		alt, _ := parseAltitudeNumeric(field(fields, colAlt1))
		return &legs.HALeg{LegInfo: info, Fix: fix, Course: course, LegLength: parseDistOrTimeField(field(fields, colDistTime)), TargetAlt: alt}, nil
	case "HF":
		return &legs.HFLeg{LegInfo: info, Fix: fix, Course: course, LegLength: parseDistOrTimeField(field(fields, colDistTime))}, nil
	case "HM":
		return &legs.HMLeg{LegInfo: info, Fix: fix, Course: course, LegLength: parseDistOrTimeField(field(fields, colDistTime))}, nil
	default:
		return nil, errUnknownLegKind
	}
}

func buildRadial(fields []string, origin *legs.Waypoint) legs.Radial {
	theta := parseCourseField(field(fields, colTheta))
	rho := field(fields, colRho)
	if rho == "" {
		return legs.Radial{Origin: origin, Bearing: theta}
	}
	tenths, _ := strconv.ParseFloat(rho, 64)
	return legs.Radial{Origin: origin, Bearing: theta, Distance: tenths / 10, HasDist: true}
}

func buildRadialDME(fields []string, origin *legs.Waypoint) legs.RadialDME {
	theta := parseCourseField(field(fields, colTheta))
	tenths, _ := strconv.ParseFloat(field(fields, colRho), 64)
	return legs.RadialDME{Origin: origin, Bearing: theta, DistNM: tenths / 10}
}

func (db *DB) resolveCenterFix(airport *AirportData, fields []string) (*legs.Waypoint, error) {
	ident := field(fields, colCenterFix)
	if ident == "" {
		return nil, nil
	}
	return db.resolveWaypoint(ident, field(fields, colCenterFixRegion), 0, airport)
}
