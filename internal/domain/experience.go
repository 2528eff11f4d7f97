package domain

// ExperienceStop names one stop on a curated tour.
type ExperienceStop struct {
	Asset string `json:"asset"`
	Note  string `json:"note,omitempty"`
}

// Experience stores one curated corridor tour: an ordered sequence of venue
// stops with a theme.
type Experience struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Stops       []ExperienceStop `json:"stops"`
}
