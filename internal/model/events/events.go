// Package events classifies aggregated event records against date windows
// and joins them to venues by dataset index.
package events

import (
	"time"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

// SchedulePendingLabel is returned when an event has no parseable interval.
// Callers must not assume FormatDateRange always returns a date-like string.
const SchedulePendingLabel = "Schedule pending"

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-ish timestamp. Layouts without an offset resolve
// in loc.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	for _, layout := range isoLayouts[1:] {
		if t, err := time.ParseInLocation(layout, value, safeLocation(loc)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// interval resolves the event's [start, end] pair; an absent end falls back
// to the start.
func interval(event domain.Event, loc *time.Location) (time.Time, time.Time, bool) {
	start, ok := ParseDate(event.StartISO, loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := ParseDate(event.EndISO, loc)
	if !ok {
		end = start
	}
	return start, end, true
}

// Upcoming reports whether the event has not yet ended. An event with no
// parseable start is never upcoming.
func Upcoming(event domain.Event, now time.Time, loc *time.Location) bool {
	_, end, ok := interval(event, loc)
	if !ok {
		return false
	}
	return !end.Before(now)
}

// WithinDays reports whether the event's interval intersects
// [now, now+days*24h].
func WithinDays(event domain.Event, days int, now time.Time, loc *time.Location) bool {
	start, end, ok := interval(event, loc)
	if !ok {
		return false
	}
	max := now.Add(time.Duration(days) * 24 * time.Hour)
	return !end.Before(now) && !start.After(max)
}

// Today reports whether today's calendar date in the event's timezone falls
// within the event's [start, end] dates inclusive.
func Today(event domain.Event, now time.Time, loc *time.Location) bool {
	start, end, ok := interval(event, loc)
	if !ok {
		return false
	}
	tz := eventLocation(event, loc)
	todayKey := dateKey(now, tz)
	return todayKey >= dateKey(start, tz) && todayKey <= dateKey(end, tz)
}

// Weekend reports whether the event starts on a Saturday or Sunday in its
// timezone.
func Weekend(event domain.Event, loc *time.Location) bool {
	start, ok := ParseDate(event.StartISO, loc)
	if !ok {
		return false
	}
	weekday := start.In(eventLocation(event, loc)).Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// FormatDateRange renders "Sat, Jun 14 • 7:00 PM-9:00 PM". Both endpoints
// must parse or the schedule-pending sentinel is returned.
func FormatDateRange(event domain.Event, loc *time.Location) string {
	start, startOK := ParseDate(event.StartISO, loc)
	end, endOK := ParseDate(event.EndISO, loc)
	if !startOK || !endOK {
		return SchedulePendingLabel
	}
	tz := eventLocation(event, loc)
	localStart := start.In(tz)
	localEnd := end.In(tz)
	return localStart.Format("Mon, Jan 2") + " • " +
		localStart.Format("3:04 PM") + "-" + localEnd.Format("3:04 PM")
}

// CountForVenue counts events joined to venueIndex whose interval intersects
// the rolling window. Events with a different or absent index contribute
// nothing regardless of date proximity.
func CountForVenue(events []domain.Event, venueIndex int, days int, now time.Time, loc *time.Location) int {
	count := 0
	for _, event := range events {
		if event.MatchedAssetIndex == nil || *event.MatchedAssetIndex != venueIndex {
			continue
		}
		if WithinDays(event, days, now, loc) {
			count++
		}
	}
	return count
}

// UpcomingForVenue returns the events joined to venueIndex inside the
// rolling window, in input order.
func UpcomingForVenue(events []domain.Event, venueIndex int, days int, now time.Time, loc *time.Location) []domain.Event {
	matched := []domain.Event{}
	for _, event := range events {
		if event.MatchedAssetIndex == nil || *event.MatchedAssetIndex != venueIndex {
			continue
		}
		if WithinDays(event, days, now, loc) {
			matched = append(matched, event)
		}
	}
	return matched
}

func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// eventLocation prefers the event's own timezone over the host default.
func eventLocation(event domain.Event, fallback *time.Location) *time.Location {
	if event.Timezone != "" {
		if loc, err := time.LoadLocation(event.Timezone); err == nil {
			return loc
		}
	}
	return safeLocation(fallback)
}

func safeLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
