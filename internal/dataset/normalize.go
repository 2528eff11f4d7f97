package dataset

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

// knownCities lists the region's place names, scanned in order when a
// record's city field is blank.
var knownCities = []string{
	"Nevada City", "Grass Valley", "Truckee", "Penn Valley",
	"North San Juan", "Rough and Ready", "Alta Sierra", "Soda Springs",
	"Norden", "Washington", "Chicago Park", "Cedar Ridge",
	"Lake of the Pines", "Lake Wildwood", "Tahoe City",
	"Colfax", "Auburn", "Dutch Flat", "Gold Run", "Alta",
	"Donner Summit", "Smartsville", "French Corral",
}

var knownCityPatterns = compileCityPatterns()

func compileCityPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(knownCities))
	for i, city := range knownCities {
		patterns[i] = regexp.MustCompile(`(?i)(?:,\s*|\b)` + regexp.QuoteMeta(city) + `(?:\s*,|\s*$|\s+CA)`)
	}
	return patterns
}

// NormalizeVenue consolidates the category name and backfills a blank city
// from the address. The raw category is preserved so query matching can
// still see it.
func NormalizeVenue(v *domain.Venue) {
	if normalized := domain.NormalizeCategory(v.Category); normalized != v.Category {
		if v.OriginalCategory == "" {
			v.OriginalCategory = v.Category
		}
		v.Category = normalized
	}
	if strings.TrimSpace(v.City) == "" {
		v.City = ExtractCityFromAddress(v.Address)
	}
}

// ExtractCityFromAddress scans an address for a known city name appearing
// after a comma, at the end, or before "CA". Returns "" when none match.
func ExtractCityFromAddress(address string) string {
	if address == "" {
		return ""
	}
	for i, pattern := range knownCityPatterns {
		if pattern.MatchString(address) {
			return knownCities[i]
		}
	}
	return ""
}

// ValidateEditorial enforces the editorial schema: an https reader URL,
// non-empty deep-link labels and URLs with no localhost targets, and
// complete quote records.
func ValidateEditorial(e domain.Editorial) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if e.HeyzineURL != "" {
		if err := validateHTTPSURL(e.HeyzineURL); err != nil {
			return fmt.Errorf("heyzine_url: %w", err)
		}
	}
	for i, link := range e.DeepLinks {
		if strings.TrimSpace(link.Label) == "" {
			return fmt.Errorf("deep link %d: label is required", i)
		}
		if strings.TrimSpace(link.URL) == "" {
			return fmt.Errorf("deep link %d: url is required", i)
		}
		if isAbsoluteURL(link.URL) {
			if err := validateHTTPSURL(link.URL); err != nil {
				return fmt.Errorf("deep link %d: %w", i, err)
			}
		}
	}
	for i, quote := range e.Quotes {
		if strings.TrimSpace(quote.Text) == "" {
			return fmt.Errorf("quote %d: text is required", i)
		}
		if strings.TrimSpace(quote.Attribution) == "" {
			return fmt.Errorf("quote %d: attribution is required", i)
		}
		if strings.TrimSpace(quote.Context) == "" {
			return fmt.Errorf("quote %d: context is required", i)
		}
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	return strings.Contains(raw, "://")
}

func validateHTTPSURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %v", err)
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("scheme must be https, got %q", parsed.Scheme)
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return fmt.Errorf("localhost urls are not allowed")
	}
	return nil
}
