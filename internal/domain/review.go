package domain

// Review is a user review of a place as returned by the backend.
type Review struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

// NewReview is the payload for creating a review.
type NewReview struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// Bookmark is a saved place from the caller's bookmark list.
type Bookmark struct {
	ID      string `json:"id"`
	PlaceID string `json:"place_id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Recommendation is a user-submitted suggestion for a place that is not in
// the catalogue yet.
type Recommendation struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
