// Package experience resolves curated itinerary stops against the venue
// dataset.
package experience

import (
	"strings"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

// ResolvedStop pairs a curated stop with the venue it matched.
type ResolvedStop struct {
	Stop  domain.ExperienceStop
	Index int
	Venue domain.Venue
}

// ResolveStops matches each stop's asset label against the venue list by
// case-insensitive name containment. Stops that match no venue are dropped;
// curation order is preserved.
func ResolveStops(exp domain.Experience, venues []domain.Venue) []ResolvedStop {
	resolved := []ResolvedStop{}
	for _, stop := range exp.Stops {
		idx, ok := matchVenue(stop.Asset, venues)
		if !ok {
			continue
		}
		resolved = append(resolved, ResolvedStop{Stop: stop, Index: idx, Venue: venues[idx]})
	}
	return resolved
}

// ByID returns the experience with the given identifier.
func ByID(experiences []domain.Experience, id string) (domain.Experience, bool) {
	for _, exp := range experiences {
		if exp.ID == id {
			return exp, true
		}
	}
	return domain.Experience{}, false
}

func matchVenue(asset string, venues []domain.Venue) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(asset))
	if needle == "" {
		return 0, false
	}
	for idx, venue := range venues {
		name := strings.ToLower(venue.Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return idx, true
		}
	}
	return 0, false
}
