package events

import (
	"testing"
	"time"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

func TestInferredCategories(t *testing.T) {
	got := InferredCategories(domain.Event{Title: "Summer Concert in the Park"})
	if !got.Has("Performance Spaces") {
		t.Fatalf("expected concert to infer Performance Spaces, got %v", got.Sorted())
	}
	got = InferredCategories(domain.Event{Description: "Wine and food pairing"})
	if !got.Has("Eat, Drink & Stay") {
		t.Fatalf("expected wine to infer Eat, Drink & Stay, got %v", got.Sorted())
	}
	if got := InferredCategories(domain.Event{}); len(got) != 0 {
		t.Fatalf("expected empty text to infer nothing, got %v", got.Sorted())
	}
}

func TestCategorySetForMergesSources(t *testing.T) {
	idx := 0
	venues := []domain.Venue{{Name: "Miners Foundry", Category: "Performance Spaces"}}
	e := domain.Event{
		Title:             "Quiet Gathering",
		EventCategory:     "Fairs & Festivals",
		EventCategories:   []string{"Galleries & Museums"},
		MatchedAssetIndex: &idx,
	}
	got := CategorySetFor(e, venues)
	for _, want := range []string{"Performance Spaces", "Fairs & Festivals", "Galleries & Museums"} {
		if !got.Has(want) {
			t.Fatalf("expected %q in category set, got %v", want, got.Sorted())
		}
	}
}

func TestFilteredEventsPipeline(t *testing.T) {
	venues := []domain.Venue{{Name: "Miners Foundry", Category: "Performance Spaces"}}
	idx := 0
	all := []domain.Event{
		{ID: "past", Title: "Old Show", StartISO: "2026-06-01T10:00:00Z"},
		{ID: "sat", Title: "Saturday Concert", VenueName: "Miners Foundry", StartISO: "2026-06-13T19:00:00Z", MatchedAssetIndex: &idx},
		{ID: "wed", Title: "Quiet Lecture", StartISO: "2026-06-17T19:00:00Z"},
	}

	got := FilteredEvents(all, venues, ListOptions{DateFilter: domain.EventDateWeekend}, testNow, time.UTC)
	if len(got) != 1 || got[0].ID != "sat" {
		t.Fatalf("expected only the Saturday event, got %+v", ids(got))
	}

	got = FilteredEvents(all, venues, ListOptions{CategoryFilter: "Performance Spaces"}, testNow, time.UTC)
	if len(got) != 1 || got[0].ID != "sat" {
		t.Fatalf("expected category filter to keep the concert, got %+v", ids(got))
	}

	got = FilteredEvents(all, venues, ListOptions{}, testNow, time.UTC)
	if len(got) != 2 {
		t.Fatalf("expected past event dropped, got %+v", ids(got))
	}
}

func TestFilteredEventsAudience(t *testing.T) {
	all := []domain.Event{
		{ID: "kids", Title: "Story Time", Audience: "family", StartISO: "2026-06-12T10:00:00Z"},
		{ID: "adults", Title: "Wine Walk", Audience: "adults", StartISO: "2026-06-12T10:00:00Z"},
	}
	got := FilteredEvents(all, nil, ListOptions{AudienceFilter: "Family"}, testNow, time.UTC)
	if len(got) != 1 || got[0].ID != "kids" {
		t.Fatalf("expected case-insensitive audience match, got %+v", ids(got))
	}
}

func TestDedupeRecurring(t *testing.T) {
	all := []domain.Event{
		{ID: "y2", Title: "Yoga in the Park", VenueName: "Pioneer Park", VenueCity: "Nevada City", StartISO: "2026-06-19T09:00:00Z"},
		{ID: "y1", Title: "Yoga in the Park", VenueName: "Pioneer Park", VenueCity: "Nevada City", StartISO: "2026-06-12T09:00:00Z"},
		{ID: "solo", Title: "One Night Only", VenueName: "Nevada Theatre", VenueCity: "Nevada City", StartISO: "2026-06-15T19:00:00Z"},
	}
	got := DedupeRecurring(all, time.UTC)
	if len(got) != 2 {
		t.Fatalf("expected series collapsed to 2 rows, got %+v", ids(got))
	}
	series := got[0]
	if series.ID != "y1" {
		t.Fatalf("expected earliest occurrence kept, got %q", series.ID)
	}
	if series.SeriesCount != 2 {
		t.Fatalf("expected series count 2, got %d", series.SeriesCount)
	}
	if series.SeriesStartISO != "2026-06-12T09:00:00Z" || series.SeriesEndISO != "2026-06-19T09:00:00Z" {
		t.Fatalf("unexpected series bounds: %q-%q", series.SeriesStartISO, series.SeriesEndISO)
	}
	if got[1].SeriesCount != 1 {
		t.Fatalf("expected singleton series count 1, got %d", got[1].SeriesCount)
	}
}

func TestOptionsFromState(t *testing.T) {
	state := domain.FilterState{
		EventDateFilter:     domain.EventDateWeekend,
		EventCategoryFilter: "Galleries & Museums",
		EventAudienceFilter: "Family",
		EventWindowDays:     7,
	}
	got := OptionsFromState(state, true)
	want := ListOptions{
		DateFilter:      domain.EventDateWeekend,
		CategoryFilter:  "Galleries & Museums",
		AudienceFilter:  "Family",
		WindowDays:      7,
		DedupeRecurring: true,
	}
	if got != want {
		t.Fatalf("options mismatch: got %+v want %+v", got, want)
	}
	if OptionsFromState(domain.FilterState{}, false).DedupeRecurring {
		t.Fatal("dedupe should follow the caller, not the state")
	}
}

func ids(all []domain.Event) []string {
	out := make([]string, 0, len(all))
	for _, e := range all {
		out = append(out, e.ID)
	}
	return out
}
