package events

import (
	"testing"
	"time"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

var testNow = time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)

func event(start, end string) domain.Event {
	return domain.Event{ID: "ev-1", Title: "Test Event", StartISO: start, EndISO: end}
}

func TestParseDate(t *testing.T) {
	if _, ok := ParseDate("", time.UTC); ok {
		t.Fatalf("expected empty string to fail")
	}
	if _, ok := ParseDate("not a date", time.UTC); ok {
		t.Fatalf("expected junk to fail")
	}
	parsed, ok := ParseDate("2026-06-14T19:00:00-07:00", time.UTC)
	if !ok {
		t.Fatalf("expected RFC3339 with offset to parse")
	}
	if parsed.UTC().Hour() != 2 {
		t.Fatalf("expected 19:00-07:00 to be 02:00Z next day, got %v", parsed.UTC())
	}
	if parsed, ok = ParseDate("2026-06-14", time.UTC); !ok || parsed.Day() != 14 {
		t.Fatalf("expected bare date to parse, got %v ok=%v", parsed, ok)
	}
}

func TestUpcoming(t *testing.T) {
	if !Upcoming(event("2026-06-11T10:00:00Z", ""), testNow, time.UTC) {
		t.Fatalf("expected future event to be upcoming")
	}
	// End in the future keeps an already-started event upcoming.
	if !Upcoming(event("2026-06-09T10:00:00Z", "2026-06-12T10:00:00Z"), testNow, time.UTC) {
		t.Fatalf("expected in-progress event to be upcoming")
	}
	if Upcoming(event("2026-06-01T10:00:00Z", "2026-06-02T10:00:00Z"), testNow, time.UTC) {
		t.Fatalf("expected past event to not be upcoming")
	}
	if Upcoming(event("", ""), testNow, time.UTC) {
		t.Fatalf("expected event without start to never be upcoming")
	}
}

func TestWithinDays(t *testing.T) {
	if !WithinDays(event("2026-06-20T10:00:00Z", ""), 14, testNow, time.UTC) {
		t.Fatalf("expected event inside window")
	}
	if WithinDays(event("2026-06-30T10:00:00Z", ""), 14, testNow, time.UTC) {
		t.Fatalf("expected event past window edge to be excluded")
	}
	if WithinDays(event("2026-06-01T10:00:00Z", "2026-06-05T10:00:00Z"), 14, testNow, time.UTC) {
		t.Fatalf("expected fully past event to be excluded")
	}
	// A long-running event straddling now intersects the window.
	if !WithinDays(event("2026-05-01T10:00:00Z", "2026-07-01T10:00:00Z"), 14, testNow, time.UTC) {
		t.Fatalf("expected straddling event to be included")
	}
}

func TestTodayUsesDateKeys(t *testing.T) {
	// Started yesterday, ends tomorrow: today falls inside.
	if !Today(event("2026-06-09T20:00:00Z", "2026-06-11T02:00:00Z"), testNow, time.UTC) {
		t.Fatalf("expected multi-day event to cover today")
	}
	if Today(event("2026-06-11T01:00:00Z", ""), testNow, time.UTC) {
		t.Fatalf("expected tomorrow's event to not be today")
	}
}

func TestTodayHonorsEventTimezone(t *testing.T) {
	// 2026-06-11T02:00Z is still June 10 in Los Angeles.
	e := event("2026-06-11T02:00:00Z", "")
	e.Timezone = "America/Los_Angeles"
	if !Today(e, testNow, time.UTC) {
		t.Fatalf("expected event to be today in its own timezone")
	}
}

func TestWeekend(t *testing.T) {
	if !Weekend(event("2026-06-13T10:00:00Z", ""), time.UTC) {
		t.Fatalf("expected Saturday start to be weekend")
	}
	if Weekend(event("2026-06-10T10:00:00Z", ""), time.UTC) {
		t.Fatalf("expected Wednesday start to not be weekend")
	}
}

func TestFormatDateRange(t *testing.T) {
	got := FormatDateRange(event("2026-06-13T19:00:00Z", "2026-06-13T21:00:00Z"), time.UTC)
	if got != "Sat, Jun 13 • 7:00 PM-9:00 PM" {
		t.Fatalf("unexpected range format: %q", got)
	}
	if got := FormatDateRange(event("2026-06-13T19:00:00Z", ""), time.UTC); got != SchedulePendingLabel {
		t.Fatalf("expected sentinel when end missing, got %q", got)
	}
	if got := FormatDateRange(event("", ""), time.UTC); got != SchedulePendingLabel {
		t.Fatalf("expected sentinel when both missing, got %q", got)
	}
}

func TestCountForVenueJoinsByIndexOnly(t *testing.T) {
	idx2 := 2
	idx5 := 5
	evts := []domain.Event{
		{ID: "a", StartISO: "2026-06-12T10:00:00Z", MatchedAssetIndex: &idx2},
		{ID: "b", StartISO: "2026-06-12T10:00:00Z", MatchedAssetIndex: &idx5},
		{ID: "c", StartISO: "2026-06-12T10:00:00Z"},
		{ID: "d", StartISO: "2026-09-01T10:00:00Z", MatchedAssetIndex: &idx2},
	}
	if got := CountForVenue(evts, 2, 14, testNow, time.UTC); got != 1 {
		t.Fatalf("expected 1 event for venue 2, got %d", got)
	}
	if got := CountForVenue(evts, 0, 14, testNow, time.UTC); got != 0 {
		t.Fatalf("expected 0 events for venue 0, got %d", got)
	}
}
