package domain

import (
	"math"
	"strings"
)

// UnnamedPlace is the sentinel display name for places the backend returned
// without a usable name. Such places are candidates for metadata enrichment.
const UnnamedPlace = "Unnamed Place"

// Place is a point of interest as kept in the viewport place index.
// Every Place admitted into the index has finite coordinates; the ID may be
// a synthetic "lat,lon" composite when the backend omitted a stable one.
type Place struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
}

// HasSyntheticID reports whether the ID was synthesized from coordinates.
// Synthetic ids cannot be looked up upstream and are excluded from
// enrichment.
func (p Place) HasSyntheticID() bool {
	return strings.Contains(p.ID, ",")
}

// HasFiniteCoordinates reports whether both coordinates are finite numbers.
func (p Place) HasFiniteCoordinates() bool {
	return isFinite(p.Latitude) && isFinite(p.Longitude)
}

// NeedsEnrichment reports whether the place is missing display metadata that
// a per-place detail lookup could fill in.
func (p Place) NeedsEnrichment() bool {
	return p.Name == "" || p.Name == UnnamedPlace || p.Address == ""
}

// PlacePatch is a partial update for a Place, produced by a per-place detail
// lookup. Nil fields were absent from the detail payload and must not
// overwrite existing values on merge.
type PlacePatch struct {
	ID        string   `json:"id"`
	Name      *string  `json:"name,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (pp *PlacePatch) IsEmpty() bool {
	return pp == nil || (pp.Name == nil && pp.Address == nil && pp.Rating == nil &&
		pp.Latitude == nil && pp.Longitude == nil)
}

// HasCoordinates reports whether the patch carries a finite coordinate pair.
func (pp *PlacePatch) HasCoordinates() bool {
	return pp != nil && pp.Latitude != nil && pp.Longitude != nil &&
		isFinite(*pp.Latitude) && isFinite(*pp.Longitude)
}

// Apply merges the patch into the place. Only fields present in the patch
// are written; coordinates are taken only as a finite pair.
func (p *Place) Apply(patch *PlacePatch) {
	if patch == nil {
		return
	}
	if patch.Name != nil && *patch.Name != "" {
		p.Name = *patch.Name
	}
	if patch.Address != nil && *patch.Address != "" {
		p.Address = *patch.Address
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.HasCoordinates() {
		p.Latitude = *patch.Latitude
		p.Longitude = *patch.Longitude
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
