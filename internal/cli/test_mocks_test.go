package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

type testDataProvider struct {
	venues      []domain.Venue
	events      []domain.Event
	editorials  []domain.Editorial
	experiences []domain.Experience

	venuesErr error
	eventsErr error
}

func (p *testDataProvider) Venues() ([]domain.Venue, error) {
	return p.venues, p.venuesErr
}

func (p *testDataProvider) Events() ([]domain.Event, error) {
	return p.events, p.eventsErr
}

func (p *testDataProvider) Editorials() ([]domain.Editorial, error) {
	return p.editorials, nil
}

func (p *testDataProvider) Experiences() ([]domain.Experience, error) {
	return p.experiences, nil
}

func floatPtr(v float64) *float64 { return &v }

// testNow is a Saturday noon UTC.
var testNow = time.Date(2026, time.June, 13, 12, 0, 0, 0, time.UTC)

func fixtureProvider() *testDataProvider {
	return &testDataProvider{
		venues: []domain.Venue{
			{
				Name:     "Nevada Theatre",
				Category: "Performance Spaces",
				City:     "Nevada City",
				Address:  "401 Broad St, Nevada City, CA",
				PID:      "pid-theatre",
				Lng:      floatPtr(-121.0178),
				Lat:      floatPtr(39.2616),
				Hours:    []string{"Saturday: 9 AM - 5 PM"},
			},
			{
				Name:     "Art Works Gallery",
				Category: "Galleries & Museums",
				City:     "Grass Valley",
				Address:  "113 Mill St, Grass Valley, CA",
				Lng:      floatPtr(-121.0601),
				Lat:      floatPtr(39.2191),
				Hours:    []string{"Saturday: Closed"},
			},
			{
				Name:     "Pioneer Park",
				Category: "Walks & Trails",
				City:     "Nevada City",
				Address:  "421 Nimrod St, Nevada City, CA",
			},
		},
		events: []domain.Event{
			{
				ID:        "ev-concert",
				Title:     "Summer Concert",
				VenueName: "Nevada Theatre",
				VenueCity: "Nevada City",
				VenuePID:  "pid-theatre",
				StartISO:  "2026-06-14T19:00:00",
				EndISO:    "2026-06-14T21:00:00",
				Audience:  "Family",
			},
			{
				ID:        "ev-orphan",
				Title:     "Pop-up Market",
				VenueName: "Vanished Hall",
				VenueCity: "Nowhere",
				StartISO:  "2026-06-20T10:00:00",
			},
		},
		editorials: []domain.Editorial{
			{
				ID:         "spring",
				Title:      "Spring Issue",
				HeyzineURL: "https://heyzine.com/flip-book/abc.html",
				DeepLinks: []domain.EditorialLink{
					{Label: "Gallery walk", URL: "?cats=Galleries%20%26%20Museums"},
				},
				Quotes: []domain.EditorialQuote{
					{Text: "Worth the drive.", Attribution: "A visitor", Context: "On the corridor"},
				},
			},
		},
		experiences: []domain.Experience{
			{
				ID:    "first-friday",
				Title: "First Friday Stroll",
				Stops: []domain.ExperienceStop{
					{Asset: "Nevada Theatre", Note: "Catch the early show"},
					{Asset: "Vanished Saloon"},
				},
			},
		},
	}
}

func testDependencies(provider *testDataProvider) Dependencies {
	return Dependencies{
		OpenData: func(string, string, string, string) DataProvider { return provider },
		Version:  "test",
		Now:      func() time.Time { return testNow },
	}
}

var errDatasetBroken = errors.New("dataset exploded")

func runCLI(t *testing.T, provider *testDataProvider, args ...string) (int, string, string) {
	t.Helper()
	return runCLIRaw(t, provider, append(args, "--timezone", "UTC")...)
}

func runCLIRaw(t *testing.T, provider *testDataProvider, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, testDependencies(provider), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}
