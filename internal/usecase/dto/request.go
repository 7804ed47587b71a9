package dto

// ViewportRequest carries the visible map region for a refresh.
type ViewportRequest struct {
	SessionID string  `json:"session_id" validate:"required,uuid4"`
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	Lng       float64 `json:"lng" validate:"min=-180,max=180"`
	LatDelta  float64 `json:"lat_delta" validate:"min=0"`
	LngDelta  float64 `json:"lng_delta" validate:"min=0"`
}

// SuggestRequest carries a search keystroke against a session's viewport.
type SuggestRequest struct {
	SessionID string  `json:"session_id" validate:"required,uuid4"`
	Query     string  `json:"q"`
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	Lng       float64 `json:"lng" validate:"min=-180,max=180"`
	LatDelta  float64 `json:"lat_delta" validate:"min=0"`
	LngDelta  float64 `json:"lng_delta" validate:"min=0"`
}

// CreateReviewRequest - payload for posting a review to a place.
type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required,min=1,max=2000"`
}

// ListReviewsRequest - pagination for a place's review listing.
type ListReviewsRequest struct {
	Page  int `json:"page" validate:"omitempty,min=1"`
	Limit int `json:"limit" validate:"omitempty,min=1,max=100"`
}

// RecommendPlaceRequest - payload for recommending a place not yet listed.
type RecommendPlaceRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"required,min=1,max=300"`
}
