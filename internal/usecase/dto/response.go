package dto

import "github.com/greasemeter/place-index/internal/domain"

// SessionResponse - a created map session.
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// MarkersResponse - decluttered markers for the current viewport.
type MarkersResponse struct {
	Markers []domain.Marker `json:"markers"`
	Total   int             `json:"total"`
	Stale   bool            `json:"stale,omitempty"`
}

// SuggestionsResponse - suggestions for the latest applied search.
type SuggestionsResponse struct {
	Suggestions []domain.Place `json:"suggestions"`
	Applied     bool           `json:"applied"`
}

// PlaceResponse - an enriched place detail.
type PlaceResponse struct {
	Place domain.Place `json:"place"`
}

// ReviewsResponse - a page of normalized reviews.
type ReviewsResponse struct {
	Reviews []domain.Review `json:"reviews"`
	Total   int             `json:"total"`
}

// BookmarksResponse - the caller's bookmark list.
type BookmarksResponse struct {
	Bookmarks []domain.Bookmark `json:"bookmarks"`
	Total     int               `json:"total"`
}
