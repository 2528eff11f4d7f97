// Package filterstate derives category-selection transitions and the
// banner/overlay visibility policies from the current filter snapshot.
package filterstate

import (
	"fmt"

	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/hours"
)

// NextCategories computes the category selection after a user action. A nil
// category clears the selection; exclusive replaces it with a singleton;
// otherwise membership toggles. The input set is never mutated.
func NextCategories(current domain.CategorySet, category *string, exclusive bool) domain.CategorySet {
	if category == nil {
		return domain.CategorySet{}
	}
	if exclusive {
		return domain.NewCategorySet(*category)
	}
	next := current.Clone()
	if next.Has(*category) {
		delete(next, *category)
	} else {
		next[*category] = struct{}{}
	}
	return next
}

// Overlay is the "N places in category X" nudge shown after filtering.
type Overlay struct {
	Category string
	Count    int
}

// ResultsOverlay returns nil unless the overlay is meaningful: exactly one
// category selected, more than one surviving result, not dismissed, and no
// guided experience owning the screen.
func ResultsOverlay(active domain.CategorySet, filteredCount int, dismissed, hasActiveExperience bool) *Overlay {
	if dismissed || hasActiveExperience {
		return nil
	}
	if len(active) != 1 {
		return nil
	}
	if filteredCount <= 1 {
		return nil
	}
	return &Overlay{Category: active.Sorted()[0], Count: filteredCount}
}

// Banner is the active-filter summary strip.
type Banner struct {
	Count    int
	Label    string
	DotColor string
}

// BannerState returns nil when no filter is active; otherwise the live count
// of venues passing every active predicate plus a summary label.
func BannerState(
	venues []domain.Venue,
	state domain.FilterState,
	hoursFn func(domain.Venue) hours.State,
	eventCountFn func(int) int,
) *Banner {
	selected := state.ActiveCategories
	if len(selected) == 0 && !state.OpenNowMode && !state.Events14dMode {
		return nil
	}

	count := 0
	for idx, venue := range venues {
		if len(selected) > 0 && !selected.Has(venue.Category) {
			continue
		}
		if state.OpenNowMode && hoursFn(venue) == hours.StateClosed {
			continue
		}
		if state.Events14dMode && eventCountFn(idx) <= 0 {
			continue
		}
		count++
	}

	banner := &Banner{Count: count, DotColor: domain.NeutralDotColor}
	switch {
	case len(selected) == 1:
		banner.Label = selected.Sorted()[0]
		banner.DotColor = domain.CategoryColor(banner.Label)
	case len(selected) > 1:
		banner.Label = fmt.Sprintf("%d categories", len(selected))
	case state.Events14dMode:
		banner.Label = "venues with events"
	default:
		banner.Label = "all venues"
	}
	return banner
}
