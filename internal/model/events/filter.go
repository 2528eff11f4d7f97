package events

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

// FilterAll disables a category or audience filter.
const FilterAll = "all"

// inferencePatterns map keyword hits in event text onto venue categories.
var inferencePatterns = []struct {
	pattern  *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`(^|[^a-z])(fair|festival|gala|wild\s*&\s*scenic|wsff)([^a-z]|$)`), "Fairs & Festivals"},
	{regexp.MustCompile(`(^|[^a-z])(music|concert|dance|theatre|theater|film|comedy|improv|spoken word|poetry)([^a-z]|$)`), "Performance Spaces"},
	{regexp.MustCompile(`(^|[^a-z])(art|gallery|museum|visual|craft)([^a-z]|$)`), "Galleries & Museums"},
	{regexp.MustCompile(`(^|[^a-z])(beer|wine|food|culinary)([^a-z]|$)`), "Eat, Drink & Stay"},
	{regexp.MustCompile(`(^|[^a-z])(outdoors|recreation|trail|walk|hike)([^a-z]|$)`), "Walks & Trails"},
	{regexp.MustCompile(`(^|[^a-z])(history|heritage|culture)([^a-z]|$)`), "Preservation & Culture"},
	{regexp.MustCompile(`(^|[^a-z])(organization|facilit)([^a-z]|$)`), "Arts Organizations"},
}

// InferredCategories derives venue categories from the event's free text.
func InferredCategories(event domain.Event) domain.CategorySet {
	parts := []string{
		strings.Join(event.Tags, " "),
		event.EventCategory,
		event.Title,
		event.Description,
		event.VenueName,
	}
	text := strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
	categories := domain.CategorySet{}
	if text == "" {
		return categories
	}
	for _, entry := range inferencePatterns {
		if entry.pattern.MatchString(text) {
			categories[entry.category] = struct{}{}
		}
	}
	return categories
}

// CategorySetFor collects every category the event can answer for: the
// joined venue's category, declared event categories, and keyword-inferred
// ones.
func CategorySetFor(event domain.Event, venues []domain.Venue) domain.CategorySet {
	categories := domain.CategorySet{}
	if event.MatchedAssetIndex != nil {
		idx := *event.MatchedAssetIndex
		if idx >= 0 && idx < len(venues) && venues[idx].Category != "" {
			categories[venues[idx].Category] = struct{}{}
		}
	}
	if event.EventCategory != "" {
		categories[event.EventCategory] = struct{}{}
	}
	for _, category := range event.EventCategories {
		if category != "" {
			categories[category] = struct{}{}
		}
	}
	for category := range InferredCategories(event) {
		categories[category] = struct{}{}
	}
	return categories
}

// ListOptions filter the global event listing.
type ListOptions struct {
	DateFilter      string // "", all, today, weekend, 14d
	CategoryFilter  string // "" or all disables
	AudienceFilter  string // "" or all disables
	WindowDays      int
	DedupeRecurring bool
}

// OptionsFromState maps the event-facing filter fields of the shared
// snapshot onto listing options. Recurring-series dedupe is a listing
// concern, not a filter field, so it is passed separately.
func OptionsFromState(state domain.FilterState, dedupeRecurring bool) ListOptions {
	return ListOptions{
		DateFilter:      state.EventDateFilter,
		CategoryFilter:  state.EventCategoryFilter,
		AudienceFilter:  state.EventAudienceFilter,
		WindowDays:      state.EventWindowDays,
		DedupeRecurring: dedupeRecurring,
	}
}

// FilteredEvents applies the listing pipeline: upcoming, date window,
// category, audience, then recurring-series dedupe.
func FilteredEvents(all []domain.Event, venues []domain.Venue, opts ListOptions, now time.Time, loc *time.Location) []domain.Event {
	windowDays := opts.WindowDays
	if windowDays <= 0 {
		windowDays = domain.DefaultEventWindowDays
	}

	filtered := make([]domain.Event, 0, len(all))
	for _, event := range all {
		if !Upcoming(event, now, loc) {
			continue
		}
		switch opts.DateFilter {
		case domain.EventDateToday:
			if !Today(event, now, loc) {
				continue
			}
		case domain.EventDateWeekend:
			if !Weekend(event, loc) {
				continue
			}
		case domain.EventDateWindow:
			if !WithinDays(event, windowDays, now, loc) {
				continue
			}
		}
		if active(opts.CategoryFilter) && !CategorySetFor(event, venues).Has(opts.CategoryFilter) {
			continue
		}
		if active(opts.AudienceFilter) && !strings.EqualFold(event.Audience, opts.AudienceFilter) {
			continue
		}
		filtered = append(filtered, event)
	}

	if opts.DedupeRecurring {
		filtered = DedupeRecurring(filtered, loc)
	}
	return filtered
}

// DedupeRecurring collapses occurrences of the same series (same normalized
// title, venue, and city) into the earliest occurrence, annotated with the
// series count and bounds.
func DedupeRecurring(all []domain.Event, loc *time.Location) []domain.Event {
	if len(all) <= 1 {
		return append([]domain.Event{}, all...)
	}

	order := []string{}
	groups := map[string][]domain.Event{}
	for _, event := range all {
		key := seriesKey(event)
		if key == "||" {
			key = "event:" + normalizeSeriesToken(event.ID)
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], event)
	}

	collapsed := make([]domain.Event, 0, len(order))
	for _, key := range order {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			a := startTimestamp(group[i], loc)
			b := startTimestamp(group[j], loc)
			if a != b {
				return a < b
			}
			return group[i].ID < group[j].ID
		})
		first := group[0]
		first.SeriesCount = len(group)
		if len(group) > 1 {
			first.SeriesStartISO = group[0].StartISO
			first.SeriesEndISO = group[len(group)-1].StartISO
		}
		collapsed = append(collapsed, first)
	}

	sort.SliceStable(collapsed, func(i, j int) bool {
		a := startTimestamp(collapsed[i], loc)
		b := startTimestamp(collapsed[j], loc)
		if a != b {
			return a < b
		}
		return collapsed[i].ID < collapsed[j].ID
	})
	return collapsed
}

func seriesKey(event domain.Event) string {
	return normalizeSeriesToken(event.Title) + "|" +
		normalizeSeriesToken(event.VenueName) + "|" +
		normalizeSeriesToken(event.VenueCity)
}

func normalizeSeriesToken(value string) string {
	replaced := strings.ReplaceAll(strings.ToLower(value), "&", " and ")
	fields := strings.FieldsFunc(replaced, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	return strings.Join(fields, " ")
}

func active(filter string) bool {
	return filter != "" && filter != FilterAll
}
