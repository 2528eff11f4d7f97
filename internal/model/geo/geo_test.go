package geo

import (
	"math"
	"testing"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

func TestDistanceMilesZeroForSamePoint(t *testing.T) {
	point := &domain.Location{Lng: -121.0, Lat: 39.2}
	got, ok := DistanceMiles(point, point)
	if !ok {
		t.Fatalf("expected known distance for identical points")
	}
	if got != 0 {
		t.Fatalf("expected 0 miles, got %v", got)
	}
}

func TestDistanceMilesKnownPair(t *testing.T) {
	// Nevada City to Grass Valley is roughly four miles.
	nevadaCity := &domain.Location{Lng: -121.0161, Lat: 39.2616}
	grassValley := &domain.Location{Lng: -121.0608, Lat: 39.2191}
	got, ok := DistanceMiles(nevadaCity, grassValley)
	if !ok {
		t.Fatalf("expected known distance")
	}
	if got < 3.5 || got > 4.5 {
		t.Fatalf("expected ~4 miles, got %v", got)
	}
}

func TestDistanceMilesUnknownInputs(t *testing.T) {
	point := &domain.Location{Lng: -121.0, Lat: 39.2}
	if _, ok := DistanceMiles(nil, point); ok {
		t.Fatalf("expected unknown distance for nil origin")
	}
	if _, ok := DistanceMiles(point, &domain.Location{Lng: math.NaN(), Lat: 39.2}); ok {
		t.Fatalf("expected unknown distance for NaN coordinate")
	}
	if _, ok := DistanceMiles(point, &domain.Location{Lng: math.Inf(1), Lat: 39.2}); ok {
		t.Fatalf("expected unknown distance for infinite coordinate")
	}
}

func TestCompare(t *testing.T) {
	near := 1.5
	far := 8.0
	if got := Compare(&near, &far); got >= 0 {
		t.Fatalf("expected near < far, got %d", got)
	}
	if got := Compare(&far, &near); got <= 0 {
		t.Fatalf("expected far > near, got %d", got)
	}
	if got := Compare(&near, nil); got != -1 {
		t.Fatalf("expected known before unknown, got %d", got)
	}
	if got := Compare(nil, &near); got != 1 {
		t.Fatalf("expected unknown after known, got %d", got)
	}
	if got := Compare(nil, nil); got != 0 {
		t.Fatalf("expected unknown pair to tie, got %d", got)
	}
}

func TestFormatMiles(t *testing.T) {
	if got := FormatMiles(3.24); got != "3.2 mi away" {
		t.Fatalf("expected one decimal under ten miles, got %q", got)
	}
	if got := FormatMiles(12.6); got != "13 mi away" {
		t.Fatalf("expected rounded whole miles, got %q", got)
	}
	if got := FormatMiles(-1); got != "" {
		t.Fatalf("expected empty string for negative distance, got %q", got)
	}
	if got := FormatMiles(math.NaN()); got != "" {
		t.Fatalf("expected empty string for NaN, got %q", got)
	}
}

func TestShouldAutoTrigger(t *testing.T) {
	cases := []struct {
		name string
		env  Env
		want bool
	}{
		{"https with capability", Env{HasGeolocation: true, Protocol: "https:", Hostname: "map.example.com"}, true},
		{"localhost http", Env{HasGeolocation: true, Protocol: "http:", Hostname: "localhost"}, true},
		{"loopback http", Env{HasGeolocation: true, Protocol: "http:", Hostname: "127.0.0.1"}, true},
		{"ipv6 loopback", Env{HasGeolocation: true, Protocol: "http:", Hostname: "[::1]"}, true},
		{"insecure origin", Env{HasGeolocation: true, Protocol: "http:", Hostname: "map.example.com"}, false},
		{"no capability", Env{HasGeolocation: false, Protocol: "https:", Hostname: "map.example.com"}, false},
	}
	for _, tc := range cases {
		if got := ShouldAutoTrigger(tc.env); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
