package domain

// Viewport is the geographic region currently visible on the map: a center
// point plus the visible angular span.
type Viewport struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// Valid reports whether all viewport fields are finite numbers.
func (v Viewport) Valid() bool {
	return isFinite(v.Latitude) && isFinite(v.Longitude) &&
		isFinite(v.LatitudeDelta) && isFinite(v.LongitudeDelta)
}

// Bounds returns the lower-left corner and the spans of the viewport's
// bounding box. Degenerate spans are floored to minSpan so grid cell sizes
// never reach zero.
func (v Viewport) Bounds(minSpan float64) (minLat, minLon, latSpan, lonSpan float64) {
	latSpan = v.LatitudeDelta
	if latSpan < minSpan {
		latSpan = minSpan
	}
	lonSpan = v.LongitudeDelta
	if lonSpan < minSpan {
		lonSpan = minSpan
	}
	return v.Latitude - latSpan/2, v.Longitude - lonSpan/2, latSpan, lonSpan
}

// Marker is a Place prepared for rendering. When several places fell into
// one declutter grid cell, Collapsed holds how many were folded into this
// representative and the name carries a "(+N)" suffix; the ID stays the
// representative's own.
type Marker struct {
	Place
	Collapsed int `json:"collapsed,omitempty"`
}
