package domain

// Location identifies a point on earth.
type Location struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}
