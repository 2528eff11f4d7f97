// Package dataset reads the venue, event, editorial and experience JSON
// files and normalizes records on the way in.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

const (
	defaultVenuesFile      = "data/assets.json"
	defaultEventsFile      = "data/events.json"
	defaultEditorialsFile  = "data/editorials.json"
	defaultExperiencesFile = "data/experiences.json"

	envVenuesPath      = "CULTURALMAP_DATA"
	envEventsPath      = "CULTURALMAP_EVENTS"
	envEditorialsPath  = "CULTURALMAP_EDITORIALS"
	envExperiencesPath = "CULTURALMAP_EXPERIENCES"
)

var (
	// ErrDatasetNotFound is returned when a dataset file does not exist.
	ErrDatasetNotFound = errors.New("dataset file not found")
	// ErrInvalidDataset is returned when a dataset payload is malformed.
	ErrInvalidDataset = errors.New("dataset file is invalid")
)

// Store resolves and loads the dataset files.
type Store struct {
	venuesPath      string
	eventsPath      string
	editorialsPath  string
	experiencesPath string
}

// Paths collects explicit file overrides; empty fields fall back to env
// vars and then to the bundled defaults.
type Paths struct {
	Venues      string
	Events      string
	Editorials  string
	Experiences string
}

// NewStore creates a store using explicit paths, env overrides or defaults.
func NewStore(paths Paths) *Store {
	return &Store{
		venuesPath:      resolvePath(paths.Venues, envVenuesPath, defaultVenuesFile),
		eventsPath:      resolvePath(paths.Events, envEventsPath, defaultEventsFile),
		editorialsPath:  resolvePath(paths.Editorials, envEditorialsPath, defaultEditorialsFile),
		experiencesPath: resolvePath(paths.Experiences, envExperiencesPath, defaultExperiencesFile),
	}
}

func resolvePath(explicit, envKey, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return fallback
}

// VenuesPath returns the resolved venue file path.
func (s *Store) VenuesPath() string { return s.venuesPath }

// EventsPath returns the resolved events file path.
func (s *Store) EventsPath() string { return s.eventsPath }

// Venues reads the venue file, normalizes categories and backfills blank
// city fields from the address. Records keep their file order; the slice
// index is the venue identity.
func (s *Store) Venues() ([]domain.Venue, error) {
	var venues []domain.Venue
	if err := readJSON(s.venuesPath, &venues); err != nil {
		return nil, err
	}
	for i := range venues {
		NormalizeVenue(&venues[i])
	}
	return venues, nil
}

// Events reads the events file. Events are sorted and joined downstream;
// the loader only decodes.
func (s *Store) Events() ([]domain.Event, error) {
	var events []domain.Event
	if err := readJSON(s.eventsPath, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Editorials reads and validates the editorial (muse) file. A missing file
// is not an error for this optional dataset; it yields an empty list.
func (s *Store) Editorials() ([]domain.Editorial, error) {
	var editorials []domain.Editorial
	if err := readJSON(s.editorialsPath, &editorials); err != nil {
		if errors.Is(err, ErrDatasetNotFound) {
			return nil, nil
		}
		return nil, err
	}
	for i, editorial := range editorials {
		if err := ValidateEditorial(editorial); err != nil {
			return nil, fmt.Errorf("%w: editorial %d: %v", ErrInvalidDataset, i, err)
		}
	}
	return editorials, nil
}

// Experiences reads the experiences file; missing file yields an empty
// list like Editorials.
func (s *Store) Experiences() ([]domain.Experience, error) {
	var experiences []domain.Experience
	if err := readJSON(s.experiencesPath, &experiences); err != nil {
		if errors.Is(err, ErrDatasetNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return experiences, nil
}

func readJSON(path string, out any) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return fmt.Errorf("read dataset: %w", err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDataset, path, err)
	}
	return nil
}
