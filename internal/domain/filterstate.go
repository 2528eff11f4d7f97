package domain

import "sort"

// CategorySet is an unordered set of category names.
type CategorySet map[string]struct{}

// NewCategorySet builds a set from the provided names, skipping blanks.
func NewCategorySet(names ...string) CategorySet {
	set := CategorySet{}
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s CategorySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Clone returns an independent copy.
func (s CategorySet) Clone() CategorySet {
	next := make(CategorySet, len(s))
	for name := range s {
		next[name] = struct{}{}
	}
	return next
}

// Sorted returns the member names in lexical order.
func (s CategorySet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Event date filter values.
const (
	EventDateAll     = "all"
	EventDateToday   = "today"
	EventDateWeekend = "weekend"
	EventDateWindow  = "14d"
)

// FilterState is the host-owned snapshot of all active filters. It is passed
// by value into every model call; models never mutate it.
type FilterState struct {
	ActiveCategories    CategorySet
	Query               string
	CityFilter          string
	OpenNowMode         bool
	Events14dMode       bool
	EventWindowDays     int
	EventDateFilter     string
	EventCategoryFilter string
	EventAudienceFilter string
	ActiveExperienceID  string
}

// DefaultEventWindowDays is the rolling window used by the events toggle.
const DefaultEventWindowDays = 14

// WindowDays returns the configured window, defaulting when unset.
func (s FilterState) WindowDays() int {
	if s.EventWindowDays > 0 {
		return s.EventWindowDays
	}
	return DefaultEventWindowDays
}
