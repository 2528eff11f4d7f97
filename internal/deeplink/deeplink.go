// Package deeplink encodes and decodes the shareable URL query string that
// captures a full filter and selection snapshot.
package deeplink

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// State is the full set of fields a share link can carry. Zero values are
// omitted on encode.
type State struct {
	Cats          []string
	Open          string
	Events14d     string
	Experience    string
	Itinerary     string
	Muse          string
	PID           string
	Event         string
	EventDate     string
	EventCat      string
	EventAudience string
	Trip          string
	Idx           *int
}

// Query parameter names, in encode order.
const (
	keyCats          = "cats"
	keyOpen          = "open"
	keyEvents14d     = "events14d"
	keyExperience    = "experience"
	keyItinerary     = "itinerary"
	keyMuse          = "muse"
	keyPID           = "pid"
	keyEvent         = "event"
	keyEventDate     = "eventDate"
	keyEventCat      = "eventCat"
	keyEventAudience = "eventAudience"
	keyTrip          = "trip"
	keyIdx           = "idx"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Encode renders the state as a query string with a leading "?", or ""
// when no field is set. Category values are joined with a comma and the
// joined list is percent-escaped as a single parameter value.
func (s State) Encode() string {
	pairs := []string{}
	add := func(key, value string) {
		if value == "" {
			return
		}
		pairs = append(pairs, key+"="+escapeComponent(value))
	}

	if len(s.Cats) > 0 {
		add(keyCats, strings.Join(s.Cats, ","))
	}
	add(keyOpen, s.Open)
	add(keyEvents14d, s.Events14d)
	add(keyExperience, s.Experience)
	add(keyItinerary, s.Itinerary)
	add(keyMuse, s.Muse)
	add(keyPID, s.PID)
	add(keyEvent, s.Event)
	add(keyEventDate, s.EventDate)
	add(keyEventCat, s.EventCat)
	add(keyEventAudience, s.EventAudience)
	add(keyTrip, s.Trip)
	if s.Idx != nil && *s.Idx >= 0 {
		add(keyIdx, strconv.Itoa(*s.Idx))
	}

	if len(pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(pairs, "&")
}

// Decode parses a query string (with or without the leading "?") back into
// a State. Unknown parameters are ignored. Malformed input yields an empty
// state rather than an error.
func Decode(query string) State {
	query = strings.TrimPrefix(query, "?")
	values, err := url.ParseQuery(query)
	if err != nil {
		return State{}
	}

	state := State{}
	if raw := values.Get(keyCats); raw != "" {
		// The comma is the list separator, so a category containing a
		// literal comma cannot survive a round trip.
		for _, cat := range strings.Split(raw, ",") {
			cat = strings.TrimSpace(cat)
			if cat != "" {
				state.Cats = append(state.Cats, cat)
			}
		}
	}
	state.Open = values.Get(keyOpen)
	state.Events14d = values.Get(keyEvents14d)
	state.Experience = values.Get(keyExperience)
	state.Itinerary = values.Get(keyItinerary)
	state.Muse = values.Get(keyMuse)
	state.PID = values.Get(keyPID)
	state.Event = values.Get(keyEvent)
	state.EventDate = values.Get(keyEventDate)
	state.EventCat = values.Get(keyEventCat)
	state.EventAudience = values.Get(keyEventAudience)
	state.Trip = values.Get(keyTrip)
	if raw := values.Get(keyIdx); digitsOnly.MatchString(raw) {
		if idx, err := strconv.Atoi(raw); err == nil {
			state.Idx = &idx
		}
	}
	return state
}

// escapeComponent matches the encoding browsers apply to URI components:
// spaces become %20, never "+".
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
