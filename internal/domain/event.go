package domain

// Event stores one aggregated event record.
type Event struct {
	ID              string   `json:"event_id"`
	Title           string   `json:"title"`
	VenueName       string   `json:"venue_name"`
	VenueCity       string   `json:"venue_city"`
	VenuePID        string   `json:"venue_pid,omitempty"`
	StartISO        string   `json:"start_iso"`
	EndISO          string   `json:"end_iso,omitempty"`
	Timezone        string   `json:"timezone,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	TicketURL       string   `json:"ticket_url,omitempty"`
	Description     string   `json:"description,omitempty"`
	Audience        string   `json:"audience,omitempty"`
	EventCategory   string   `json:"event_category,omitempty"`
	EventCategories []string `json:"event_categories,omitempty"`

	// MatchedAssetIndex is the dataset index of the venue this event has
	// been joined to. Nil means unmapped: the event is excluded from
	// per-venue counts but still appears in global listings.
	MatchedAssetIndex *int   `json:"matched_asset_idx,omitempty"`
	MatchMethod       string `json:"match_method,omitempty"`

	// Series fields are populated when recurring occurrences collapse
	// into one listing row.
	SeriesCount    int    `json:"series_count,omitempty"`
	SeriesStartISO string `json:"series_start_iso,omitempty"`
	SeriesEndISO   string `json:"series_end_iso,omitempty"`
}

// Mapped reports whether the event has been joined to a venue.
func (e Event) Mapped() bool {
	return e.MatchedAssetIndex != nil
}
