// Package mapfilter translates the filter snapshot into the declarative
// predicate tree consumed by the map-rendering layer, and computes the
// candidate set used for viewport fitting.
package mapfilter

import (
	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/hours"
)

// Expr is one node of a map-layer filter expression. It marshals to the
// JSON array form the rendering library expects, e.g.
// ["!=", ["get", "hours_state"], "closed"].
type Expr []any

// Feature property names exposed to the map layer.
const (
	propCategory  = "layer"
	propHours     = "hours_state"
	propHasEvents = "has_events_14d"
)

func get(property string) Expr {
	return Expr{"get", property}
}

// Predicate builds the AND-combination of the active filter clauses, or nil
// when no filter is active. A single clause is returned bare; an all-of
// wrapper only appears with two or more clauses.
func Predicate(active domain.CategorySet, openNowMode, events14dMode bool) Expr {
	clauses := []Expr{}
	if len(active) > 0 {
		clauses = append(clauses, categoryClause(active))
	}
	if openNowMode {
		clauses = append(clauses, Expr{"!=", get(propHours), string(hours.StateClosed)})
	}
	if events14dMode {
		clauses = append(clauses, Expr{"==", get(propHasEvents), true})
	}

	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	default:
		combined := Expr{"all"}
		for _, clause := range clauses {
			combined = append(combined, clause)
		}
		return combined
	}
}

func categoryClause(active domain.CategorySet) Expr {
	selected := active.Sorted()
	if len(selected) == 1 {
		return Expr{"==", get(propCategory), selected[0]}
	}
	literal := make([]any, len(selected))
	for i, name := range selected {
		literal[i] = name
	}
	return Expr{"in", get(propCategory), Expr{"literal", literal}}
}

// FitCandidates applies the same tri-predicate in memory and additionally
// requires usable coordinates; the survivors define the viewport bounding
// region.
func FitCandidates(
	venues []domain.Venue,
	active domain.CategorySet,
	openNowMode, events14dMode bool,
	hoursFn func(domain.Venue) hours.State,
	eventCountFn func(int) int,
) []domain.Venue {
	candidates := []domain.Venue{}
	for idx, venue := range venues {
		if len(active) > 0 && !active.Has(venue.Category) {
			continue
		}
		if openNowMode && hoursFn(venue) == hours.StateClosed {
			continue
		}
		if events14dMode && eventCountFn(idx) <= 0 {
			continue
		}
		if _, ok := venue.Coordinates(); !ok {
			continue
		}
		candidates = append(candidates, venue)
	}
	return candidates
}

// Bounds returns the southwest/northeast corners covering the candidates.
func Bounds(candidates []domain.Venue) (sw, ne domain.Location, ok bool) {
	first := true
	for _, venue := range candidates {
		loc, valid := venue.Coordinates()
		if !valid {
			continue
		}
		if first {
			sw, ne = loc, loc
			first = false
			continue
		}
		if loc.Lng < sw.Lng {
			sw.Lng = loc.Lng
		}
		if loc.Lat < sw.Lat {
			sw.Lat = loc.Lat
		}
		if loc.Lng > ne.Lng {
			ne.Lng = loc.Lng
		}
		if loc.Lat > ne.Lat {
			ne.Lat = loc.Lat
		}
	}
	return sw, ne, !first
}
