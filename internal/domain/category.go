package domain

// CategoryConfig stores display settings for one consolidated category.
type CategoryConfig struct {
	Color string
	Short string
}

// Categories is the consolidated 8-category registry.
var Categories = map[string]CategoryConfig{
	"Historic Landmarks":     {Color: "#8b2500", Short: "Landmarks"},
	"Eat, Drink & Stay":      {Color: "#a67830", Short: "Eat & Drink"},
	"Cultural Organizations": {Color: "#2d4a3e", Short: "Culture & Community"},
	"Galleries & Museums":    {Color: "#6b4e71", Short: "Galleries"},
	"Fairs & Festivals":      {Color: "#a0522d", Short: "Festivals"},
	"Walks & Trails":         {Color: "#4a7c5f", Short: "Trails"},
	"Public Art":             {Color: "#c45d3e", Short: "Public Art"},
	"Performance Spaces":     {Color: "#2a6496", Short: "Performance"},
}

// categoryMap folds raw dataset categories into the consolidated system.
// Unmapped names pass through unchanged.
var categoryMap = map[string]string{
	"Arts Organizations":     "Cultural Organizations",
	"Cultural Resources":     "Cultural Organizations",
	"Preservation & Culture": "Cultural Organizations",
	"Performing Arts":        "Performance Spaces",
}

// NormalizeCategory maps a raw category name to its consolidated display
// name.
func NormalizeCategory(raw string) string {
	if mapped, ok := categoryMap[raw]; ok {
		return mapped
	}
	return raw
}

// CategoryColor returns the registry color for a category, or the neutral
// fallback used for mixed selections.
func CategoryColor(name string) string {
	if cfg, ok := Categories[name]; ok {
		return cfg.Color
	}
	return NeutralDotColor
}

// NeutralDotColor is the banner dot color when no single category owns the
// selection.
const NeutralDotColor = "rgba(26,22,18,0.55)"
