// Package greasemeter implements the places backend client. Responses from
// the backend vary in envelope and field naming between endpoints, so every
// list and record passes through the payload normalization rules before it
// becomes a domain value.
package greasemeter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/config"
	"github.com/greasemeter/place-index/internal/domain"
	"github.com/greasemeter/place-index/internal/domain/repository"
	"github.com/greasemeter/place-index/internal/pkg/payload"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewPlacesClient creates a client for the places backend API.
func NewPlacesClient(cfg *config.UpstreamConfig, logger *zap.Logger) repository.PlacesRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// PlacesInViewport fetches the places intersecting the viewport. Records
// without finite coordinates are dropped; records without a backend id get a
// synthetic "lat,lon" id so markers stay individually addressable.
func (c *client) PlacesInViewport(ctx context.Context, vp domain.Viewport) ([]domain.Place, error) {
	query := url.Values{}
	query.Set("lat", formatCoord(vp.Latitude))
	query.Set("lng", formatCoord(vp.Longitude))
	query.Set("latDelta", formatCoord(vp.LatitudeDelta))
	query.Set("lngDelta", formatCoord(vp.LongitudeDelta))

	body, err := c.get(ctx, "/places", query, "")
	if err != nil {
		return nil, err
	}

	records := payload.UnwrapList(body)
	places := make([]domain.Place, 0, len(records))
	for _, rec := range records {
		if p, ok := viewportPlace(rec); ok {
			places = append(places, p)
		}
	}

	c.logger.Debug("Fetched viewport places",
		zap.Int("records", len(records)),
		zap.Int("accepted", len(places)))

	return places, nil
}

// SearchPlaces runs a free-text search. Search results are id/name-primary:
// a record lacking coordinates is kept with zero coordinates so the caller
// can substitute the viewport center.
func (c *client) SearchPlaces(ctx context.Context, term string) ([]domain.Place, error) {
	query := url.Values{}
	query.Set("q", term)

	body, err := c.get(ctx, "/places/search", query, "")
	if err != nil {
		return nil, err
	}

	records := payload.UnwrapList(body)
	places := make([]domain.Place, 0, len(records))
	for _, rec := range records {
		if p, ok := searchPlace(rec); ok {
			places = append(places, p)
		}
	}
	return places, nil
}

// PlaceDetail fetches the per-place detail record. An unparsable or empty
// body yields a nil patch without an error: the backend answered, it just
// had nothing usable to say.
func (c *client) PlaceDetail(ctx context.Context, id string) (*domain.PlacePatch, error) {
	body, err := c.get(ctx, "/places/"+url.PathEscape(id), nil, "")
	if err != nil {
		return nil, err
	}
	return patchFrom(id, payload.UnwrapRecord(body)), nil
}

// PlaceInfo fetches the secondary per-place info record.
func (c *client) PlaceInfo(ctx context.Context, id string) (*domain.PlacePatch, error) {
	body, err := c.get(ctx, "/places/"+url.PathEscape(id)+"/info", nil, "")
	if err != nil {
		return nil, err
	}
	return patchFrom(id, payload.UnwrapRecord(body)), nil
}

// ListReviews fetches a page of reviews for a place. Review fields arrive
// under aliases (text|comment, rating|stars, id|review_id) and are
// normalized here.
func (c *client) ListReviews(ctx context.Context, placeID string, page, limit int) ([]domain.Review, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, "/places/"+url.PathEscape(placeID)+"/reviews", query, "")
	if err != nil {
		return nil, err
	}

	records := payload.UnwrapList(body)
	reviews := make([]domain.Review, 0, len(records))
	for _, rec := range records {
		reviews = append(reviews, reviewFrom(rec))
	}
	return reviews, nil
}

func (c *client) CreateReview(ctx context.Context, token, placeID string, review domain.NewReview) error {
	return c.send(ctx, http.MethodPost, "/places/"+url.PathEscape(placeID)+"/reviews", review, token)
}

func (c *client) AddBookmark(ctx context.Context, token, placeID string) error {
	return c.send(ctx, http.MethodPost, "/places/"+url.PathEscape(placeID)+"/bookmarks", nil, token)
}

func (c *client) ListBookmarks(ctx context.Context, token string) ([]domain.Bookmark, error) {
	body, err := c.get(ctx, "/my/bookmarks", nil, token)
	if err != nil {
		return nil, err
	}

	records := payload.UnwrapList(body)
	bookmarks := make([]domain.Bookmark, 0, len(records))
	for _, rec := range records {
		bookmarks = append(bookmarks, bookmarkFrom(rec))
	}
	return bookmarks, nil
}

func (c *client) DeleteBookmark(ctx context.Context, token, bookmarkID string) error {
	return c.send(ctx, http.MethodDelete, "/my/bookmarks/"+url.PathEscape(bookmarkID), nil, token)
}

func (c *client) RecommendPlace(ctx context.Context, token string, rec domain.Recommendation) error {
	return c.send(ctx, http.MethodPost, "/places/recommend", rec, token)
}

// get issues a GET and returns the raw body of a 2xx response.
func (c *client) get(ctx context.Context, path string, query url.Values, token string) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request",
			zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("Places backend returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("places backend error: status %d", resp.StatusCode)
	}

	return body, nil
}

// send issues a mutating request with an optional JSON body and discards the
// response body of a 2xx answer.
func (c *client) send(ctx context.Context, method, path string, data interface{}, token string) error {
	var reqBody io.Reader
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Places backend returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("places backend error: status %d", resp.StatusCode)
	}

	return nil
}

// viewportPlace builds an index-grade place from a raw record: finite
// coordinates required, sentinel name substituted, id synthesized from the
// coordinates when absent.
func viewportPlace(rec payload.Record) (domain.Place, bool) {
	lat, lon, ok := payload.Coordinates(rec)
	if !ok {
		return domain.Place{}, false
	}

	p := domain.Place{Latitude: lat, Longitude: lon}
	if id, ok := payload.ID(rec); ok {
		p.ID = id
	} else {
		p.ID = syntheticID(lat, lon)
	}
	if name, ok := payload.Name(rec); ok {
		p.Name = name
	} else {
		p.Name = domain.UnnamedPlace
	}
	if addr, ok := payload.Address(rec); ok {
		p.Address = addr
	}
	if rating, ok := payload.Rating(rec); ok {
		p.Rating = rating
	}
	return p, true
}

// searchPlace builds a suggestion from a raw record. Coordinates are
// optional here; a record with neither id nor coordinates is unaddressable
// and dropped.
func searchPlace(rec payload.Record) (domain.Place, bool) {
	var p domain.Place

	lat, lon, hasCoords := payload.Coordinates(rec)
	if hasCoords {
		p.Latitude = lat
		p.Longitude = lon
	}

	if id, ok := payload.ID(rec); ok {
		p.ID = id
	} else if hasCoords {
		p.ID = syntheticID(lat, lon)
	} else {
		return domain.Place{}, false
	}

	if name, ok := payload.Name(rec); ok {
		p.Name = name
	} else {
		p.Name = domain.UnnamedPlace
	}
	if addr, ok := payload.Address(rec); ok {
		p.Address = addr
	}
	if rating, ok := payload.Rating(rec); ok {
		p.Rating = rating
	}
	return p, true
}

// patchFrom builds a partial place patch from a detail record. Absent fields
// stay nil so a merge cannot clobber known values. A nil or empty record
// yields nil.
func patchFrom(id string, rec payload.Record) *domain.PlacePatch {
	if rec == nil {
		return nil
	}

	patch := &domain.PlacePatch{ID: id}
	if name, ok := payload.Name(rec); ok {
		patch.Name = &name
	}
	if addr, ok := payload.Address(rec); ok {
		patch.Address = &addr
	}
	if rating, ok := payload.Rating(rec); ok {
		patch.Rating = &rating
	}
	if lat, lon, ok := payload.Coordinates(rec); ok {
		patch.Latitude = &lat
		patch.Longitude = &lon
	}

	if patch.IsEmpty() {
		return nil
	}
	return patch
}

func reviewFrom(rec payload.Record) domain.Review {
	var r domain.Review
	if id, ok := payload.ID(rec); ok {
		r.ID = id
	} else if id, ok := payload.IDField(rec, "review_id"); ok {
		r.ID = id
	}
	if s, ok := rec["text"].(string); ok {
		r.Text = s
	} else if s, ok := rec["comment"].(string); ok {
		r.Text = s
	}
	if rating, ok := payload.Rating(rec); ok {
		r.Rating = rating
	}
	return r
}

func bookmarkFrom(rec payload.Record) domain.Bookmark {
	var b domain.Bookmark
	if id, ok := payload.ID(rec); ok {
		b.ID = id
	}
	if s, ok := rec["place_id"].(string); ok {
		b.PlaceID = s
	}
	if name, ok := payload.Name(rec); ok {
		b.Name = name
	}
	if addr, ok := payload.Address(rec); ok {
		b.Address = addr
	}
	return b
}

// syntheticID renders a "lat,lon" composite id for records the backend
// returned without one. The comma marks it as not upstream-addressable.
func syntheticID(lat, lon float64) string {
	return formatCoord(lat) + "," + formatCoord(lon)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
