// Package geo provides great-circle distance math and the geolocation
// auto-trigger policy.
package geo

import (
	"fmt"
	"math"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

// earthRadiusMiles is the mean sphere radius used for haversine distances.
const earthRadiusMiles = 3958.7613

// DistanceMiles returns the great-circle distance between two points. The
// second return is false when either point is missing or non-finite.
func DistanceMiles(from, to *domain.Location) (float64, bool) {
	if !finiteLocation(from) || !finiteLocation(to) {
		return 0, false
	}
	dLat := toRadians(to.Lat - from.Lat)
	dLng := toRadians(to.Lng - from.Lng)
	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c, true
}

// Compare orders distances ascending with unknown distances last. Two
// unknowns compare equal so a stable sort preserves their original order.
func Compare(a, b *float64) int {
	aKnown := knownDistance(a)
	bKnown := knownDistance(b)
	switch {
	case aKnown && bKnown:
		switch {
		case *a < *b:
			return -1
		case *a > *b:
			return 1
		default:
			return 0
		}
	case aKnown:
		return -1
	case bKnown:
		return 1
	default:
		return 0
	}
}

// FormatMiles renders a distance for display; "" when unknown or negative.
func FormatMiles(miles float64) string {
	if math.IsNaN(miles) || math.IsInf(miles, 0) || miles < 0 {
		return ""
	}
	if miles < 10 {
		return fmt.Sprintf("%.1f mi away", miles)
	}
	return fmt.Sprintf("%.0f mi away", math.Round(miles))
}

// Env describes the browser-equivalent environment the auto-trigger policy
// inspects.
type Env struct {
	HasGeolocation bool
	Protocol       string
	Hostname       string
}

// ShouldAutoTrigger reports whether a location lookup may start without user
// interaction. Browsers silently refuse geolocation on insecure origins, so
// the policy requires a secure context up front instead of letting the call
// fail downstream.
func ShouldAutoTrigger(env Env) bool {
	if !env.HasGeolocation {
		return false
	}
	return secureContext(env.Protocol, env.Hostname)
}

func secureContext(protocol, hostname string) bool {
	if protocol == "https:" {
		return true
	}
	return hostname == "localhost" || hostname == "127.0.0.1" || hostname == "[::1]"
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func finiteLocation(loc *domain.Location) bool {
	if loc == nil {
		return false
	}
	return finite(loc.Lng) && finite(loc.Lat)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func knownDistance(v *float64) bool {
	return v != nil && finite(*v)
}
