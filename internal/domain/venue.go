package domain

import "math"

// Venue stores one point-of-interest record from the cultural dataset.
// JSON tags follow the dataset's short field names. Venue identity is the
// record's position in the dataset slice; events join onto venues by that
// index, so loaders must never reorder the slice.
type Venue struct {
	Name             string   `json:"n"`
	Category         string   `json:"l"`
	OriginalCategory string   `json:"l_original,omitempty"`
	City             string   `json:"c"`
	Address          string   `json:"a"`
	Description      string   `json:"d"`
	Phone            string   `json:"p,omitempty"`
	Website          string   `json:"w,omitempty"`
	PID              string   `json:"pid,omitempty"`
	Lng              *float64 `json:"x"`
	Lat              *float64 `json:"y"`
	Hours            []string `json:"h,omitempty"`
}

// Coordinates returns the venue location when both fields are present and
// finite.
func (v Venue) Coordinates() (Location, bool) {
	if v.Lng == nil || v.Lat == nil {
		return Location{}, false
	}
	lng, lat := *v.Lng, *v.Lat
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return Location{}, false
	}
	return Location{Lng: lng, Lat: lat}, true
}
