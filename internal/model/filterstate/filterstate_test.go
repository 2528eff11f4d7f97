package filterstate

import (
	"testing"

	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/hours"
	"github.com/google/go-cmp/cmp"
)

func stringPtr(s string) *string { return &s }

func TestNextCategoriesToggle(t *testing.T) {
	current := domain.NewCategorySet("Public Art")

	added := NextCategories(current, stringPtr("Galleries & Museums"), false)
	if diff := cmp.Diff([]string{"Galleries & Museums", "Public Art"}, added.Sorted()); diff != "" {
		t.Fatalf("unexpected set after add (-want +got):\n%s", diff)
	}

	// Toggling again is its own inverse.
	removed := NextCategories(added, stringPtr("Galleries & Museums"), false)
	if diff := cmp.Diff(current.Sorted(), removed.Sorted()); diff != "" {
		t.Fatalf("expected toggle to invert itself (-want +got):\n%s", diff)
	}

	if !current.Has("Public Art") || len(current) != 1 {
		t.Fatalf("expected input set untouched, got %v", current.Sorted())
	}
}

func TestNextCategoriesClear(t *testing.T) {
	current := domain.NewCategorySet("Public Art", "Walks & Trails")
	next := NextCategories(current, nil, false)
	if len(next) != 0 {
		t.Fatalf("expected cleared set, got %v", next.Sorted())
	}
	if len(current) != 2 {
		t.Fatalf("expected input set untouched, got %v", current.Sorted())
	}
}

func TestNextCategoriesExclusive(t *testing.T) {
	current := domain.NewCategorySet("Public Art", "Walks & Trails")
	next := NextCategories(current, stringPtr("Historic Landmarks"), true)
	if diff := cmp.Diff([]string{"Historic Landmarks"}, next.Sorted()); diff != "" {
		t.Fatalf("expected singleton replacement (-want +got):\n%s", diff)
	}
}

func TestResultsOverlayRequiresOneCategory(t *testing.T) {
	for _, set := range []domain.CategorySet{
		domain.NewCategorySet(),
		domain.NewCategorySet("Public Art", "Walks & Trails"),
		domain.NewCategorySet("Public Art", "Walks & Trails", "Historic Landmarks"),
	} {
		if got := ResultsOverlay(set, 10, false, false); got != nil {
			t.Fatalf("expected nil overlay for %d categories, got %+v", len(set), got)
		}
	}
}

func TestResultsOverlayVisible(t *testing.T) {
	active := domain.NewCategorySet("Eat, Drink & Stay")
	got := ResultsOverlay(active, 8, false, false)
	if got == nil || got.Category != "Eat, Drink & Stay" || got.Count != 8 {
		t.Fatalf("expected visible overlay, got %+v", got)
	}

	if got := ResultsOverlay(active, 8, true, false); got != nil {
		t.Fatalf("expected nil overlay when dismissed, got %+v", got)
	}
	if got := ResultsOverlay(active, 8, false, true); got != nil {
		t.Fatalf("expected nil overlay during an experience, got %+v", got)
	}
	if got := ResultsOverlay(active, 1, false, false); got != nil {
		t.Fatalf("expected nil overlay for a single result, got %+v", got)
	}
}

func bannerFixtures() ([]domain.Venue, func(domain.Venue) hours.State, func(int) int) {
	venues := []domain.Venue{
		{Name: "Alpha", Category: "Public Art"},
		{Name: "Beta", Category: "Public Art"},
		{Name: "Gamma", Category: "Walks & Trails"},
	}
	hoursFn := func(v domain.Venue) hours.State {
		if v.Name == "Beta" {
			return hours.StateClosed
		}
		return hours.StateOpen
	}
	eventCountFn := func(idx int) int {
		if idx == 2 {
			return 3
		}
		return 0
	}
	return venues, hoursFn, eventCountFn
}

func TestBannerStateNilWhenInactive(t *testing.T) {
	venues, hoursFn, eventCountFn := bannerFixtures()
	got := BannerState(venues, domain.FilterState{}, hoursFn, eventCountFn)
	if got != nil {
		t.Fatalf("expected nil banner with no active filter, got %+v", got)
	}
}

func TestBannerStateSingleCategory(t *testing.T) {
	venues, hoursFn, eventCountFn := bannerFixtures()
	state := domain.FilterState{ActiveCategories: domain.NewCategorySet("Public Art")}
	got := BannerState(venues, state, hoursFn, eventCountFn)
	if got == nil || got.Count != 2 || got.Label != "Public Art" {
		t.Fatalf("unexpected banner: %+v", got)
	}
	if got.DotColor != domain.CategoryColor("Public Art") {
		t.Fatalf("expected category dot color, got %q", got.DotColor)
	}
}

func TestBannerStateCombinedPredicates(t *testing.T) {
	venues, hoursFn, eventCountFn := bannerFixtures()
	state := domain.FilterState{
		ActiveCategories: domain.NewCategorySet("Public Art", "Walks & Trails"),
		OpenNowMode:      true,
	}
	got := BannerState(venues, state, hoursFn, eventCountFn)
	if got == nil || got.Count != 2 || got.Label != "2 categories" {
		t.Fatalf("unexpected banner: %+v", got)
	}
	if got.DotColor != domain.NeutralDotColor {
		t.Fatalf("expected neutral dot color, got %q", got.DotColor)
	}
}

func TestBannerStateEventsOnly(t *testing.T) {
	venues, hoursFn, eventCountFn := bannerFixtures()
	state := domain.FilterState{Events14dMode: true}
	got := BannerState(venues, state, hoursFn, eventCountFn)
	if got == nil || got.Count != 1 || got.Label != "venues with events" {
		t.Fatalf("unexpected banner: %+v", got)
	}
}

func TestBannerStateOpenNowOnly(t *testing.T) {
	venues, hoursFn, eventCountFn := bannerFixtures()
	state := domain.FilterState{OpenNowMode: true}
	got := BannerState(venues, state, hoursFn, eventCountFn)
	if got == nil || got.Count != 2 || got.Label != "all venues" {
		t.Fatalf("unexpected banner: %+v", got)
	}
}
