package aup

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 26, 9, 0, 0, 0, time.UTC)

func TestParseTimeRange(t *testing.T) {
	text := `
	Fairly standard preamble
	14:3012:45ES D123
	GND
	5000 ft
	`
	restrictions := ParseRestrictionsAt(text, testNow)

	if len(restrictions) != 1 {
		t.Fatalf("expected 1 restriction, got %d", len(restrictions))
	}

	r := restrictions[0]
	if r.Name != "ES D123" {
		t.Errorf("expected name 'ES D123', got '%s'", r.Name)
	}
	expectedFrom := time.Date(2025, time.June, 26, 12, 45, 0, 0, time.UTC)
	if !r.From.Equal(expectedFrom) {
		t.Errorf("expected from '%s', got '%s'", expectedFrom, r.From)
	}
	expectedTo := time.Date(2025, time.June, 26, 14, 30, 0, 0, time.UTC)
	if !r.To.Equal(expectedTo) {
		t.Errorf("expected to '%s', got '%s'", expectedTo, r.To)
	}
	if r.Altitude != "5000" {
		t.Errorf("expected altitude '5000', got '%s'", r.Altitude)
	}
	if r.AltitudeType != Feet {
		t.Errorf("expected altitude type '%s', got '%s'", Feet, r.AltitudeType)
	}
	if r.Comment != "" {
		t.Errorf("expected empty comment, got '%s'", r.Comment)
	}
}

func TestParseDateRange(t *testing.T) {
	text := `
	12 maj 14 maj MIL ACFT ES D514
	FL 95
	`
	restrictions := ParseRestrictionsAt(text, testNow)

	if len(restrictions) != 1 {
		t.Fatalf("expected 1 restriction, got %d", len(restrictions))
	}

	r := restrictions[0]
	if r.Name != "ES D514" {
		t.Errorf("expected name 'ES D514', got '%s'", r.Name)
	}
	expectedFrom := time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC)
	if !r.From.Equal(expectedFrom) {
		t.Errorf("expected from '%s', got '%s'", expectedFrom, r.From)
	}
	expectedTo := time.Date(2025, time.May, 14, 23, 59, 0, 0, time.UTC)
	if !r.To.Equal(expectedTo) {
		t.Errorf("expected to '%s', got '%s'", expectedTo, r.To)
	}
	if r.Altitude != "95" {
		t.Errorf("expected altitude '95', got '%s'", r.Altitude)
	}
	if r.AltitudeType != FlightLevel {
		t.Errorf("expected altitude type '%s', got '%s'", FlightLevel, r.AltitudeType)
	}
	if r.Comment != "FLYG" {
		t.Errorf("expected comment 'FLYG', got '%s'", r.Comment)
	}
}

func TestParseSwedishMonths(t *testing.T) {
	text := `
	30 okt 2 nov ES R77
	1500 ft
	`
	restrictions := ParseRestrictionsAt(text, testNow)

	if len(restrictions) != 1 {
		t.Fatalf("expected 1 restriction, got %d", len(restrictions))
	}
	if restrictions[0].From.Month() != time.October {
		t.Errorf("expected from month October, got %s", restrictions[0].From.Month())
	}
	if restrictions[0].To.Month() != time.November {
		t.Errorf("expected to month November, got %s", restrictions[0].To.Month())
	}
}

func TestParseSupReference(t *testing.T) {
	text := `
	ES SUP 299/25D309
	FL100
	`
	restrictions := ParseRestrictionsAt(text, testNow)

	if len(restrictions) != 1 {
		t.Fatalf("expected 1 restriction, got %d", len(restrictions))
	}

	r := restrictions[0]
	// SUP references are named by the bare area code, no "ES " prefix.
	if r.Name != "D309" {
		t.Errorf("expected name 'D309', got '%s'", r.Name)
	}
	if r.Altitude != "100" {
		t.Errorf("expected altitude '100', got '%s'", r.Altitude)
	}
	if r.AltitudeType != FlightLevel {
		t.Errorf("expected altitude type '%s', got '%s'", FlightLevel, r.AltitudeType)
	}
	expectedFrom := time.Date(2025, time.June, 26, 0, 0, 0, 0, time.UTC)
	if !r.From.Equal(expectedFrom) {
		t.Errorf("expected from '%s', got '%s'", expectedFrom, r.From)
	}
	expectedTo := time.Date(2025, time.June, 26, 23, 59, 0, 0, time.UTC)
	if !r.To.Equal(expectedTo) {
		t.Errorf("expected to '%s', got '%s'", expectedTo, r.To)
	}
}

func TestParseSupReferenceWithDates(t *testing.T) {
	text := `
	10 jan 12 jan ES SUP 16/26R384 ACFT
	2500 ft
	`
	restrictions := ParseRestrictionsAt(text, testNow)

	if len(restrictions) != 1 {
		t.Fatalf("expected 1 restriction, got %d", len(restrictions))
	}

	r := restrictions[0]
	if r.Name != "R384" {
		t.Errorf("expected name 'R384', got '%s'", r.Name)
	}
	expectedFrom := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	if !r.From.Equal(expectedFrom) {
		t.Errorf("expected from '%s', got '%s'", expectedFrom, r.From)
	}
	if r.Comment != "FLYG" {
		t.Errorf("expected comment 'FLYG', got '%s'", r.Comment)
	}
}

func TestParseSupDateVariantCodeOnFollowingLine(t *testing.T) {
	text := `
	10 jan 12 jan ES SUP
	R384 Kiruna
	2500 ft
	`
	restrictions := ParseRestrictionsAt(text, testNow)

	if len(restrictions) != 1 {
		t.Fatalf("expected 1 restriction, got %d", len(restrictions))
	}

	r := restrictions[0]
	if r.Name != "R384" {
		t.Errorf("expected name 'R384', got '%s'", r.Name)
	}
	if r.Altitude != "2500" {
		t.Errorf("expected altitude '2500', got '%s'", r.Altitude)
	}
	if r.AltitudeType != Feet {
		t.Errorf("expected altitude type '%s', got '%s'", Feet, r.AltitudeType)
	}
}

func TestParseSkipsSupTimeMatch(t *testing.T) {
	// The time-range pattern matches inside this SUP line; it must not
	// become a restriction named "ES SUP".
	restrictions := ParseRestrictionsAt("14:3012:45ES SUP 12/25", testNow)
	if len(restrictions) != 0 {
		t.Errorf("expected 0 restrictions, got %d", len(restrictions))
	}
}

func TestParseAltitudeLookaheadBounded(t *testing.T) {
	text := `
	14:3012:45ES D123
	filler one
	filler two
	filler three
	5000 ft
	`
	restrictions := ParseRestrictionsAt(text, testNow)

	if len(restrictions) != 1 {
		t.Fatalf("expected 1 restriction, got %d", len(restrictions))
	}
	// The altitude sits beyond the lookahead window, so the default applies.
	if restrictions[0].Altitude != "0" {
		t.Errorf("expected altitude '0', got '%s'", restrictions[0].Altitude)
	}
	if restrictions[0].AltitudeType != Feet {
		t.Errorf("expected altitude type '%s', got '%s'", Feet, restrictions[0].AltitudeType)
	}
}

func TestParseMultiple(t *testing.T) {
	text := `
	14:3012:45ES D123
	5000 ft
	16:0015:00ES R45A
	FL 65
	`
	restrictions := ParseRestrictionsAt(text, testNow)

	if len(restrictions) != 2 {
		t.Fatalf("expected 2 restrictions, got %d", len(restrictions))
	}
	if restrictions[0].Altitude != "5000" || restrictions[0].AltitudeType != Feet {
		t.Errorf("expected first altitude 5000 ft, got %s %s", restrictions[0].Altitude, restrictions[0].AltitudeType)
	}
	if restrictions[1].Name != "ES R45A" {
		t.Errorf("expected second name 'ES R45A', got '%s'", restrictions[1].Name)
	}
	if restrictions[1].Altitude != "65" || restrictions[1].AltitudeType != FlightLevel {
		t.Errorf("expected second altitude FL 65, got %s %s", restrictions[1].Altitude, restrictions[1].AltitudeType)
	}
}

func TestParseNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"\r\n\r\n",
		"complete nonsense",
		"ES",
		"14:30",
		"99:99ES",
		strings.Repeat("a:b:c\n", 1000),
	}
	for _, input := range inputs {
		restrictions := ParseRestrictionsAt(input, testNow)
		if len(restrictions) > strings.Count(input, "\n")+1 {
			t.Errorf("more restrictions than input lines for %q", input)
		}
	}
}
