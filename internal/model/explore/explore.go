// Package explore composes all active filters over the venue dataset into
// one filtered and sorted result set.
package explore

import (
	"sort"
	"strings"

	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/hours"
)

// Entry pairs a surviving venue with its original dataset index so callers
// keep the positional join key through filtering and sorting.
type Entry struct {
	Index int
	Venue domain.Venue
}

// FilteredData applies filters in fixed order: category, city, free-text
// query, open-now, events window. The open-now and events sorts each reorder
// the whole working set, so when both modes are on the later one wins.
func FilteredData(
	venues []domain.Venue,
	state domain.FilterState,
	hoursFn func(domain.Venue) hours.State,
	eventCountFn func(int) int,
) []Entry {
	filtered := make([]Entry, 0, len(venues))
	for idx, venue := range venues {
		if len(state.ActiveCategories) > 0 && !state.ActiveCategories.Has(venue.Category) {
			continue
		}
		filtered = append(filtered, Entry{Index: idx, Venue: venue})
	}

	if state.CityFilter != "" {
		filtered = keep(filtered, func(e Entry) bool {
			return e.Venue.City == state.CityFilter
		})
	}

	if query := strings.ToLower(strings.TrimSpace(state.Query)); query != "" {
		filtered = keep(filtered, func(e Entry) bool {
			return matchesQuery(e.Venue, query)
		})
	}

	if state.OpenNowMode {
		filtered = keep(filtered, func(e Entry) bool {
			return hoursFn(e.Venue) != hours.StateClosed
		})
		sort.SliceStable(filtered, func(i, j int) bool {
			a := hours.Rank(hoursFn(filtered[i].Venue))
			b := hours.Rank(hoursFn(filtered[j].Venue))
			if a != b {
				return a < b
			}
			return lessName(filtered[i].Venue, filtered[j].Venue)
		})
	}

	if state.Events14dMode {
		filtered = keep(filtered, func(e Entry) bool {
			return eventCountFn(e.Index) > 0
		})
		sort.SliceStable(filtered, func(i, j int) bool {
			a := eventCountFn(filtered[i].Index)
			b := eventCountFn(filtered[j].Index)
			if a != b {
				return a > b
			}
			return lessName(filtered[i].Venue, filtered[j].Venue)
		})
	}

	return filtered
}

// AvailableCities returns cities appearing at least minCount times in the
// filtered set, most frequent first; ties order by name for determinism.
func AvailableCities(filtered []Entry, minCount int) []string {
	if minCount <= 0 {
		minCount = 5
	}
	counts := map[string]int{}
	for _, entry := range filtered {
		if entry.Venue.City != "" {
			counts[entry.Venue.City]++
		}
	}
	cities := make([]string, 0, len(counts))
	for city, count := range counts {
		if count >= minCount {
			cities = append(cities, city)
		}
	}
	sort.Slice(cities, func(i, j int) bool {
		if counts[cities[i]] != counts[cities[j]] {
			return counts[cities[i]] > counts[cities[j]]
		}
		return cities[i] < cities[j]
	})
	return cities
}

func matchesQuery(venue domain.Venue, query string) bool {
	for _, field := range []string{
		venue.Name,
		venue.City,
		venue.Description,
		venue.Category,
		venue.OriginalCategory,
	} {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func keep(entries []Entry, predicate func(Entry) bool) []Entry {
	kept := entries[:0:0]
	for _, entry := range entries {
		if predicate(entry) {
			kept = append(kept, entry)
		}
	}
	return kept
}

func lessName(a, b domain.Venue) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}
