package events

import (
	"sort"
	"strings"
	"time"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

// venueStopWords are tokens too generic to count as name-match evidence.
var venueStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "into": {}, "onto": {},
	"near": {}, "inside": {}, "outside": {},
	"at": {}, "in": {}, "on": {}, "of": {}, "to": {}, "by": {}, "via": {},
	"city": {}, "county": {}, "downtown": {},
	"street": {}, "st": {}, "road": {}, "rd": {}, "avenue": {}, "ave": {},
	"blvd": {}, "boulevard": {}, "way": {}, "wy": {}, "drive": {}, "dr": {},
	"center": {}, "centre": {}, "hall": {}, "plaza": {}, "park": {}, "building": {},
}

// categoryPriority breaks ties when several venues share a name or key: an
// event at "Miners Foundry" should land on the performance space, not the
// restaurant next door.
var categoryPriority = map[string]int{
	"Performance Spaces":     0,
	"Arts Organizations":     1,
	"Fairs & Festivals":      2,
	"Galleries & Museums":    3,
	"Preservation & Culture": 4,
	"Historic Landmarks":     5,
	"Cultural Resources":     6,
	"Public Art":             7,
	"Eat, Drink & Stay":      8,
	"Walks & Trails":         9,
}

// Index is the result of joining events onto the venue dataset.
type Index struct {
	// Events holds every event with join fields resolved, ordered by
	// start time then ID.
	Events []domain.Event
	// ByVenue groups mapped events by venue dataset index.
	ByVenue map[int][]domain.Event
	// Unmatched holds events no venue could be resolved for.
	Unmatched []domain.Event
}

// Join methods recorded on events.
const (
	MatchMethodNone  = "none"
	MatchMethodIndex = "index"
	MatchMethodPID   = "pid"
	MatchMethodKey   = "name_city"
	MatchMethodFuzzy = "name_city_fuzzy"
)

// BuildIndex joins events to venues. Joins are attempted in order of
// confidence: a pre-resolved dataset index, the venue PID, the normalized
// name+city key, then a city-scoped fuzzy token match.
func BuildIndex(venues []domain.Venue, events []domain.Event, loc *time.Location) Index {
	byPID := map[string][]int{}
	byKey := map[string][]int{}
	byCity := map[string][]int{}
	nameTokens := make([][]string, len(venues))
	for idx, venue := range venues {
		if pid := strings.TrimSpace(venue.PID); pid != "" {
			byPID[pid] = append(byPID[pid], idx)
		}
		if key := VenueKey(venue.Name, venue.City); key != "|" {
			byKey[key] = append(byKey[key], idx)
		}
		if cityKey := NormalizeToken(venue.City); cityKey != "" {
			byCity[cityKey] = append(byCity[cityKey], idx)
		}
		nameTokens[idx] = tokenizeVenueName(venue.Name)
	}

	normalized := make([]domain.Event, 0, len(events))
	for _, raw := range events {
		event := raw
		if event.MatchedAssetIndex != nil {
			if *event.MatchedAssetIndex < 0 || *event.MatchedAssetIndex >= len(venues) {
				event.MatchedAssetIndex = nil
			} else if event.MatchMethod == "" {
				event.MatchMethod = MatchMethodIndex
			}
		}
		if event.MatchedAssetIndex == nil {
			idx, method := resolveVenue(venues, event, byPID, byKey, byCity, nameTokens)
			event.MatchedAssetIndex = idx
			event.MatchMethod = method
		}
		normalized = append(normalized, event)
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		a := startTimestamp(normalized[i], loc)
		b := startTimestamp(normalized[j], loc)
		if a != b {
			return a < b
		}
		return normalized[i].ID < normalized[j].ID
	})

	index := Index{Events: normalized, ByVenue: map[int][]domain.Event{}}
	for _, event := range normalized {
		if event.MatchedAssetIndex != nil {
			idx := *event.MatchedAssetIndex
			index.ByVenue[idx] = append(index.ByVenue[idx], event)
		} else {
			index.Unmatched = append(index.Unmatched, event)
		}
	}
	return index
}

func resolveVenue(
	venues []domain.Venue,
	event domain.Event,
	byPID map[string][]int,
	byKey map[string][]int,
	byCity map[string][]int,
	nameTokens [][]string,
) (*int, string) {
	if pid := strings.TrimSpace(event.VenuePID); pid != "" {
		if candidates, ok := byPID[pid]; ok {
			idx := preferredVenueIndex(venues, candidates)
			return &idx, MatchMethodPID
		}
	}
	if candidates, ok := byKey[VenueKey(event.VenueName, event.VenueCity)]; ok {
		idx := preferredVenueIndex(venues, candidates)
		return &idx, MatchMethodKey
	}

	candidates := byCity[NormalizeToken(event.VenueCity)]
	eventTokens := tokenizeVenueName(event.VenueName)
	bestScore := 0
	var bestIdxs []int
	for _, idx := range candidates {
		score := scoreTokenOverlap(eventTokens, nameTokens[idx])
		if score <= 0 {
			continue
		}
		if score > bestScore {
			bestScore = score
			bestIdxs = []int{idx}
		} else if score == bestScore {
			bestIdxs = append(bestIdxs, idx)
		}
	}
	if len(bestIdxs) > 0 {
		idx := preferredVenueIndex(venues, bestIdxs)
		return &idx, MatchMethodFuzzy
	}
	return nil, MatchMethodNone
}

// preferredVenueIndex picks the candidate with the highest category
// priority, then the lowest index.
func preferredVenueIndex(venues []domain.Venue, candidates []int) int {
	best := candidates[0]
	bestPriority := venuePriority(venues, best)
	for _, idx := range candidates[1:] {
		priority := venuePriority(venues, idx)
		if priority < bestPriority || (priority == bestPriority && idx < best) {
			best = idx
			bestPriority = priority
		}
	}
	return best
}

func venuePriority(venues []domain.Venue, idx int) int {
	category := venues[idx].Category
	if venues[idx].OriginalCategory != "" {
		category = venues[idx].OriginalCategory
	}
	if priority, ok := categoryPriority[category]; ok {
		return priority
	}
	if priority, ok := categoryPriority[venues[idx].Category]; ok {
		return priority
	}
	return 99
}

// NormalizeToken lowercases and strips everything but letters and digits.
func NormalizeToken(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// VenueKey builds the normalized name|city join key.
func VenueKey(name, city string) string {
	return NormalizeToken(name) + "|" + NormalizeToken(city)
}

func tokenizeVenueName(value string) []string {
	replaced := strings.ReplaceAll(strings.ToLower(value), "&", " and ")
	fields := strings.FieldsFunc(replaced, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	tokens := make([]string, 0, len(fields))
	for _, token := range fields {
		if len(token) < 3 {
			continue
		}
		if _, stop := venueStopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// scoreTokenOverlap requires stronger evidence than a short single-token
// overlap.
func scoreTokenOverlap(eventTokens, venueTokens []string) int {
	if len(eventTokens) == 0 || len(venueTokens) == 0 {
		return 0
	}
	venueSet := make(map[string]struct{}, len(venueTokens))
	for _, token := range venueTokens {
		venueSet[token] = struct{}{}
	}
	overlap := 0
	longest := 0
	for _, token := range eventTokens {
		if _, ok := venueSet[token]; ok {
			overlap++
			if len(token) > longest {
				longest = len(token)
			}
		}
	}
	if overlap >= 2 {
		return overlap*10 + longest
	}
	if overlap == 1 && longest >= 4 {
		return overlap*10 + longest
	}
	return 0
}

func startTimestamp(event domain.Event, loc *time.Location) int64 {
	start, ok := ParseDate(event.StartISO, loc)
	if !ok {
		return 0
	}
	return start.UnixMilli()
}
