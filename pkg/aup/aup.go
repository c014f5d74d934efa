package aup

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

/*
The LFV AIS "Daily Use Plan" publishes the airspace restrictions for the
Swedish FIR once per operational day. The PDF extracts to text in column
order, so a restriction arrives as a line of the form
"14:3012:45ES D123" (closing time, opening time, area) with the altitude
on one of the following lines.

https://aro.lfv.se/Editorial/View/GeneralDocument?torLinkId=337&type=AIS&folderId=77
*/

// Three-letter month abbreviations as printed in the use plan. The report
// is in Swedish, hence maj and okt.
var SwedishMonths = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"maj": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"okt": time.October,
	"nov": time.November,
	"dec": time.December,
}

type AltitudeType string

const (
	FlightLevel AltitudeType = "FL"
	Feet        AltitudeType = "ft"
)

// A published airspace restriction window.
type Restriction struct {
	Name         string       `json:"name"`
	From         time.Time    `json:"from"`
	To           time.Time    `json:"to"`
	Altitude     string       `json:"altitude"`
	AltitudeType AltitudeType `json:"altitudeType"`
	Comment      string       `json:"comment"`
}

// Same-day restriction, closing time printed before opening time.
const TimeRangeRegexp = `(\d{2}:\d{2})(\d{2}:\d{2})ES\s+([A-Z0-9]+[A-Za-z0-9/]*)`

// Multi-day restriction bounded by two day/month pairs.
const DateRangeRegexp = `(?i)(\d{1,2})\s+(jan|feb|mar|apr|maj|jun|jul|aug|sep|okt|nov|dec)\s*(\d{1,2})\s+(jan|feb|mar|apr|maj|jun|jul|aug|sep|okt|nov|dec).*?ES\s+([A-Z0-9]+[A-Za-z0-9/]*)`

// NOTAM supplement reference, e.g. "ES SUP 299/25D309". The area code
// follows the SUP number; the SUP number itself is a document reference.
const SupRefRegexp = `(?i)ES\s+SUP\s+\d+/\d+\s*([DR]\d+[A-Za-z]*)`

// A bare danger/restricted area code (D123, R384A).
const AreaCodeRegexp = `(?i)([DR]\d+[A-Za-z]*)`

var (
	timeRangeRegex   = regexp.MustCompile(TimeRangeRegexp)
	dateRangeRegex   = regexp.MustCompile(DateRangeRegexp)
	supRefRegex      = regexp.MustCompile(SupRefRegexp)
	areaCodeRegex    = regexp.MustCompile(AreaCodeRegexp)
	feetRegex        = regexp.MustCompile(`(?i)^(\d+)\s*ft$`)
	flightLevelRegex = regexp.MustCompile(`(?i)FL\s*(\d+)`)
)

// Military/civil aircraft activity markers that annotate a restriction.
var activityMarkers = []string{"ACFT", "CIV", "MIL", "TT"}

// ParseRestrictions scans extracted use plan text for restrictions. It never
// fails: lines that match no known shape are skipped so that one mangled
// record cannot suppress the rest of the report. Same-day restrictions are
// placed on today's UTC date.
func ParseRestrictions(text string) []Restriction {
	return ParseRestrictionsAt(text, time.Now().UTC())
}

// ParseRestrictionsAt is ParseRestrictions with an explicit "today".
func ParseRestrictionsAt(text string, now time.Time) []Restriction {
	restrictions := []Restriction{}
	lines := splitLines(text)
	now = now.UTC()

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		timeMatch := timeRangeRegex.FindStringSubmatch(line)
		dateMatch := dateRangeRegex.FindStringSubmatch(line)

		if supMatch := supRefRegex.FindStringSubmatch(line); supMatch != nil {
			// The restriction is named by the embedded area code, not prefixed.
			var from, to time.Time
			if dateMatch != nil {
				from, to = dateRangeBounds(dateMatch, now.Year())
			} else {
				// A SUP reference without its own date range applies to the
				// day of the plan it appears in.
				from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
				to = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, time.UTC)
			}
			altitude, altitudeType := findAltitude(lines, i, 3)
			restrictions = append(restrictions, Restriction{
				Name:         supMatch[1],
				From:         from,
				To:           to,
				Altitude:     altitude,
				AltitudeType: altitudeType,
				Comment:      findComment(lines, i, 3),
			})
			continue
		}

		// The time-range pattern can match spuriously inside a SUP
		// reference line. Those are not restrictions.
		if timeMatch != nil && timeMatch[3] == "SUP" {
			continue
		}

		if dateMatch != nil && dateMatch[5] == "SUP" {
			// Date-range SUP variant: the area code may sit on this line or
			// within the next few lines of the reference block.
			following := strings.Join(lines[i:min(i+4, len(lines))], " ")
			code := areaCodeRegex.FindString(line)
			if code == "" {
				code = areaCodeRegex.FindString(following)
			}
			if code != "" {
				from, to := dateRangeBounds(dateMatch, now.Year())
				altitude, altitudeType := findAltitude(lines, i, 4)
				restrictions = append(restrictions, Restriction{
					Name:         code,
					From:         from,
					To:           to,
					Altitude:     altitude,
					AltitudeType: altitudeType,
					Comment:      findComment(lines, i, 4),
				})
			}
			continue
		}

		var name string
		var from, to time.Time

		switch {
		case timeMatch != nil:
			name = "ES " + timeMatch[3]
			from, to = timeRangeBounds(timeMatch, now)
		case dateMatch != nil:
			name = "ES " + dateMatch[5]
			from, to = dateRangeBounds(dateMatch, now.Year())
		default:
			continue
		}

		comment := ""
		if hasActivityMarker(line) {
			comment = "FLYG"
		}

		altitude, altitudeType := findAltitude(lines, i, 3)

		restrictions = append(restrictions, Restriction{
			Name:         name,
			From:         from,
			To:           to,
			Altitude:     altitude,
			AltitudeType: altitudeType,
			Comment:      comment,
		})
	}

	return restrictions
}

// Normalize line endings, trim and drop empty lines.
func splitLines(text string) []string {
	flat := strings.ReplaceAll(text, "\r\n", "\n")
	flat = strings.ReplaceAll(flat, "\r", "\n")

	lines := []string{}
	for _, line := range strings.Split(flat, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// The extract lists the closing time before the opening time.
func timeRangeBounds(match []string, now time.Time) (time.Time, time.Time) {
	toStr := match[1]
	fromStr := match[2]

	fromH, _ := strconv.Atoi(fromStr[:2])
	fromM, _ := strconv.Atoi(fromStr[3:5])
	toH, _ := strconv.Atoi(toStr[:2])
	toM, _ := strconv.Atoi(toStr[3:5])

	from := time.Date(now.Year(), now.Month(), now.Day(), fromH, fromM, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), toH, toM, 0, 0, time.UTC)
	return from, to
}

// A date range runs from midnight on the first day to 23:59 on the second.
// The report never states a year; both dates are taken as the current one.
func dateRangeBounds(match []string, year int) (time.Time, time.Time) {
	fromDay, _ := strconv.Atoi(match[1])
	toDay, _ := strconv.Atoi(match[3])
	fromMonth := SwedishMonths[strings.ToLower(match[2])]
	toMonth := SwedishMonths[strings.ToLower(match[4])]

	from := time.Date(year, fromMonth, fromDay, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, toMonth, toDay, 23, 59, 0, 0, time.UTC)
	return from, to
}

func hasActivityMarker(text string) bool {
	for _, marker := range activityMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Cross-reference blocks spread their annotations over several lines, so
// the activity markers are searched through the same window as the altitude.
func findComment(lines []string, i int, window int) string {
	joined := strings.Join(lines[i:min(i+1+window, len(lines))], " ")
	if hasActivityMarker(joined) {
		return "FLYG"
	}
	return ""
}

// Scan the lines following index i for an altitude token, either
// "<digits> ft" or "FL <digits>". The window is bounded so that an altitude
// belonging to the next restriction is never picked up.
func findAltitude(lines []string, i int, window int) (string, AltitudeType) {
	for j := i + 1; j < min(i+1+window, len(lines)); j++ {
		if m := feetRegex.FindStringSubmatch(lines[j]); m != nil {
			return m[1], Feet
		}
		if m := flightLevelRegex.FindStringSubmatch(lines[j]); m != nil {
			return m[1], FlightLevel
		}
	}
	return "0", Feet
}
