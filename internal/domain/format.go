package domain

import "strings"

// FormatDescription renders a short venue description for tables.
func (v Venue) FormatDescription() string {
	desc := strings.TrimSpace(v.Description)
	if desc == "" {
		return "-"
	}
	if runes := []rune(desc); len(runes) > 60 {
		return string(runes[:60]) + "..."
	}
	return desc
}

// FormatCity renders the venue city line.
func (v Venue) FormatCity() string {
	if v.City == "" {
		return "-"
	}
	return v.City + ", CA"
}

// FormatPhone renders the venue phone number.
func (v Venue) FormatPhone() string {
	if v.Phone == "" {
		return "-"
	}
	if len(v.Phone) <= 3 {
		return v.Phone
	}
	return v.Phone[:3] + " " + v.Phone[3:]
}

// FormatTags renders event tags for tables.
func (e Event) FormatTags() string {
	if len(e.Tags) == 0 {
		return "-"
	}
	return strings.Join(e.Tags, ", ")
}

// DisplayDescription renders a plain-text event description, stripping
// markup and falling back to tags.
func (e Event) DisplayDescription() string {
	raw := stripMarkup(e.Description)
	if raw != "" {
		return raw
	}
	if len(e.Tags) > 0 {
		limit := len(e.Tags)
		if limit > 2 {
			limit = 2
		}
		return "Type: " + strings.Join(e.Tags[:limit], " • ")
	}
	return "Details available in the event link."
}

func stripMarkup(value string) string {
	var b strings.Builder
	inTag := false
	for _, r := range value {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
