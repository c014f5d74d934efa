package aup

import (
	"fmt"
	"strings"
)

// Directive lines carry feed metadata, not restriction data.
const RefreshDirectivePrefix = "REFRESH_"

// Placeholder emitted when the vLARA feed yields no data lines. TopSky
// expects at least one peer-origin line, so an always-inactive dummy entry
// far in the future stands in.
const VLARADummyLine = "VLARA:350101:350101:0:1000:1001:0:100:VLARA:"

// TopSkyLine serializes the restriction into the colon-delimited TopSky
// area activation format:
//
//	name:fromDate:toDate:0:fromTime:toTime:0:altitude:comment
//
// Dates are yyMMdd, times HHmm, both UTC. Flight levels are written in feet
// without a unit suffix, so an FL value gains two trailing zeros.
func (r Restriction) TopSkyLine() string {
	alt := r.Altitude
	if r.AltitudeType == FlightLevel {
		alt += "00"
	}
	return fmt.Sprintf("%s:%s:%s:0:%s:%s:0:%s:%s",
		r.Name,
		r.From.UTC().Format("060102"),
		r.To.UTC().Format("060102"),
		r.From.UTC().Format("1504"),
		r.To.UTC().Format("1504"),
		alt,
		r.Comment,
	)
}

// AltitudeString renders the altitude for display, e.g. "FL100" or "5000ft".
func (r Restriction) AltitudeString() string {
	if r.AltitudeType == FlightLevel {
		return "FL" + r.Altitude
	}
	return r.Altitude + "ft"
}

// SplitFeedLines splits a TopSky feed document into trimmed lines, dropping
// blanks and "#" comments.
func SplitFeedLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	return lines
}

// DataLines keeps only colon-delimited data lines, discarding refresh
// directives.
func DataLines(lines []string) []string {
	data := []string{}
	for _, line := range lines {
		if strings.Contains(line, ":") && !strings.HasPrefix(line, RefreshDirectivePrefix) {
			data = append(data, line)
		}
	}
	return data
}
