// Package hours classifies a venue's weekly opening-hours text against the
// current instant in a civil timezone.
package hours

import (
	"regexp"
	"strings"
	"time"
)

// State is the open/closed classification for a venue right now.
type State string

const (
	StateOpen    State = "open"
	StateClosed  State = "closed"
	StateUnknown State = "unknown"
)

// DefaultTimezone is the civil zone used when the host does not supply one.
const DefaultTimezone = "America/Los_Angeles"

var (
	timeTokenPattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*([AaPp][Mm])?`)
	open24Pattern    = regexp.MustCompile(`(?i)open 24 hours`)
	closedPattern    = regexp.MustCompile(`(?i)^closed$`)
)

// minuteRange is a window within a single day, in minutes since midnight.
// start > end crosses midnight; start == end means open 24 hours.
type minuteRange struct {
	start int
	end   int
}

type daySchedule struct {
	state   State
	ranges  []minuteRange
	display string
}

// Resolve classifies the venue's weekly hours at now in loc. Missing or
// unparseable schedule text yields StateUnknown, never StateClosed.
func Resolve(weekly []string, now time.Time, loc *time.Location) State {
	parsed := parseToday(weekly, now, loc)
	if parsed == nil {
		return StateUnknown
	}
	if parsed.state != "" {
		return parsed.state
	}
	if openAt(parsed.ranges, nowMinutes(now, loc)) {
		return StateOpen
	}
	return StateClosed
}

// Rank orders states for open-now sorting: open first, closed last.
func Rank(state State) int {
	switch state {
	case StateOpen:
		return 0
	case StateUnknown:
		return 1
	default:
		return 2
	}
}

// Label renders the fixed display string for a state.
func Label(state State) string {
	switch state {
	case StateOpen:
		return "Open now"
	case StateClosed:
		return "Closed now"
	default:
		return "Hours unknown"
	}
}

// TodayDisplay returns the raw schedule text for today, or "" when no entry
// exists.
func TodayDisplay(weekly []string, now time.Time, loc *time.Location) string {
	parsed := parseToday(weekly, now, loc)
	if parsed == nil {
		return ""
	}
	return parsed.display
}

func parseToday(weekly []string, now time.Time, loc *time.Location) *daySchedule {
	entry := todayEntry(weekly, now, loc)
	if entry == "" {
		return nil
	}
	return parseDayEntry(entry)
}

// todayEntry finds the weekday-prefixed line matching today in loc.
func todayEntry(weekly []string, now time.Time, loc *time.Location) string {
	if len(weekly) == 0 {
		return ""
	}
	prefix := strings.ToLower(now.In(safeLocation(loc)).Weekday().String()) + ":"
	for _, line := range weekly {
		if strings.HasPrefix(strings.ToLower(normalizeText(line)), prefix) {
			return line
		}
	}
	return ""
}

func parseDayEntry(entry string) *daySchedule {
	normalized := normalizeText(entry)
	splitIdx := strings.Index(normalized, ":")
	if splitIdx < 0 {
		return nil
	}
	schedule := strings.TrimSpace(normalized[splitIdx+1:])
	if schedule == "" {
		return nil
	}
	if open24Pattern.MatchString(schedule) {
		return &daySchedule{state: StateOpen, display: schedule}
	}
	if closedPattern.MatchString(schedule) {
		return &daySchedule{state: StateClosed, display: schedule}
	}

	var ranges []minuteRange
	for _, part := range strings.Split(schedule, ",") {
		segment := strings.TrimSpace(part)
		startText, endText, ok := splitRange(segment)
		if !ok {
			continue
		}
		// The end token carries the explicit AM/PM marker more often
		// than the start; a start without its own marker inherits the
		// end's.
		end := parseTimeToken(endText, "")
		if end == nil {
			continue
		}
		start := parseTimeToken(startText, end.period)
		if start == nil {
			continue
		}
		ranges = append(ranges, minuteRange{start: start.minutes, end: end.minutes})
	}
	if len(ranges) == 0 {
		return &daySchedule{state: StateUnknown, display: schedule}
	}
	return &daySchedule{ranges: ranges, display: schedule}
}

// splitRange splits "10 AM - 5 PM" into its two time tokens.
func splitRange(segment string) (string, string, bool) {
	idx := strings.Index(segment, "-")
	if idx <= 0 || idx >= len(segment)-1 {
		return "", "", false
	}
	start := strings.TrimSpace(segment[:idx])
	end := strings.TrimSpace(segment[idx+1:])
	if start == "" || end == "" {
		return "", "", false
	}
	return start, end, true
}

type timeToken struct {
	minutes int
	period  string
}

// parseTimeToken parses a 12-hour token like "9", "9:30 AM", or "5pm". A
// token without an explicit AM/PM marker resolves against fallbackPeriod;
// without either it is unparseable.
func parseTimeToken(token, fallbackPeriod string) *timeToken {
	cleaned := strings.ReplaceAll(normalizeText(token), ".", "")
	match := timeTokenPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return nil
	}
	hour := atoiLoose(match[1])
	minute := atoiLoose(match[2])
	period := strings.ToUpper(match[3])
	if period == "" {
		period = strings.ToUpper(fallbackPeriod)
	}
	if period != "AM" && period != "PM" {
		return nil
	}
	h24 := hour % 12
	if period == "PM" {
		h24 += 12
	}
	return &timeToken{minutes: h24*60 + minute, period: period}
}

func openAt(ranges []minuteRange, nowMin int) bool {
	for _, r := range ranges {
		switch {
		case r.start == r.end:
			return true
		case r.start < r.end:
			if nowMin >= r.start && nowMin < r.end {
				return true
			}
		default:
			// Crosses midnight.
			if nowMin >= r.start || nowMin < r.end {
				return true
			}
		}
	}
	return false
}

func nowMinutes(now time.Time, loc *time.Location) int {
	local := now.In(safeLocation(loc))
	return local.Hour()*60 + local.Minute()
}

func safeLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// normalizeText collapses whitespace variants and unicode dashes that the
// upstream hours feed mixes into schedule strings.
func normalizeText(value string) string {
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', ' ':
			return ' '
		case '‐', '‑', '‒', '–', '—':
			return '-'
		}
		return r
	}, value)
	return strings.Join(strings.Fields(replaced), " ")
}

func atoiLoose(value string) int {
	n := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}
