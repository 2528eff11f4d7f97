package domain

// EditorialLink stores one deep link attached to an editorial.
type EditorialLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// EditorialQuote stores one pull quote attached to an editorial.
type EditorialQuote struct {
	Text        string         `json:"text"`
	Attribution string         `json:"attribution"`
	Context     string         `json:"context"`
	Target      map[string]any `json:"target,omitempty"`
}

// Editorial stores one read-only editorial record (flipbook issue plus its
// curated links and quotes).
type Editorial struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	HeyzineURL string           `json:"heyzine_url"`
	DeepLinks  []EditorialLink  `json:"deep_links,omitempty"`
	Quotes     []EditorialQuote `json:"quotes,omitempty"`
}
