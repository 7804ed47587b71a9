package greasemeter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/config"
	"github.com/greasemeter/place-index/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.UpstreamConfig{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}
	return NewPlacesClient(cfg, zap.NewNop()).(*client)
}

func TestClient_PlacesInViewport(t *testing.T) {
	viewport := domain.Viewport{
		Latitude:       39.95,
		Longitude:      -75.165,
		LatitudeDelta:  0.1,
		LongitudeDelta: 0.1,
	}

	t.Run("bare array with discrete coordinates", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/places", r.URL.Path)
			assert.Equal(t, "39.95", r.URL.Query().Get("lat"))
			assert.Equal(t, "-75.165", r.URL.Query().Get("lng"))
			assert.Equal(t, "0.1", r.URL.Query().Get("latDelta"))
			assert.Equal(t, "0.1", r.URL.Query().Get("lngDelta"))

			io.WriteString(w, `[{"id":"p1","name":"Pat's","lat":39.9332,"lng":-75.1593,"rating":4.2}]`)
		})

		places, err := c.PlacesInViewport(context.Background(), viewport)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "p1", places[0].ID)
		assert.Equal(t, "Pat's", places[0].Name)
		assert.Equal(t, 39.9332, places[0].Latitude)
		assert.Equal(t, 4.2, places[0].Rating)
	})

	t.Run("nested envelope is unwrapped", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"data":{"results":[
				{"place_id":"a","title":"A","point":{"coordinates":[-75.16,39.95]}},
				{"place_id":"b","title":"B","geometry":{"coordinates":[-75.17,39.96]}}
			]}}`)
		})

		places, err := c.PlacesInViewport(context.Background(), viewport)
		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, "a", places[0].ID)
		assert.Equal(t, 39.95, places[0].Latitude)
		assert.Equal(t, -75.16, places[0].Longitude)
	})

	t.Run("record without coordinates is dropped", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"id":"no-coords","name":"Ghost"},{"id":"ok","name":"Real","lat":39.95,"lng":-75.16}]`)
		})

		places, err := c.PlacesInViewport(context.Background(), viewport)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "ok", places[0].ID)
	})

	t.Run("missing id is synthesized from coordinates", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"name":"Anon","lat":39.95,"lng":-75.16}]`)
		})

		places, err := c.PlacesInViewport(context.Background(), viewport)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "39.95,-75.16", places[0].ID)
		assert.True(t, places[0].HasSyntheticID())
	})

	t.Run("missing name gets the sentinel", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"id":"x","lat":39.95,"lng":-75.16}]`)
		})

		places, err := c.PlacesInViewport(context.Background(), viewport)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, domain.UnnamedPlace, places[0].Name)
		assert.True(t, places[0].NeedsEnrichment())
	})

	t.Run("malformed body yields empty list, not error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"unexpected":"shape"}`)
		})

		places, err := c.PlacesInViewport(context.Background(), viewport)
		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("upstream error status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.PlacesInViewport(context.Background(), viewport)
		assert.Error(t, err)
	})
}

func TestClient_SearchPlaces(t *testing.T) {
	t.Run("result without coordinates keeps zero coordinates", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/places/search", r.URL.Path)
			assert.Equal(t, "cheesesteak", r.URL.Query().Get("q"))

			io.WriteString(w, `{"results":[{"id":"s1","name":"Steak Spot"}]}`)
		})

		places, err := c.SearchPlaces(context.Background(), "cheesesteak")
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "s1", places[0].ID)
		assert.Zero(t, places[0].Latitude)
		assert.Zero(t, places[0].Longitude)
	})

	t.Run("result with neither id nor coordinates is dropped", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"name":"unaddressable"},{"id":"kept","name":"Kept"}]`)
		})

		places, err := c.SearchPlaces(context.Background(), "x")
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "kept", places[0].ID)
	})
}

func TestClient_PlaceDetail(t *testing.T) {
	t.Run("data wrapper and partial fields", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/places/p1", r.URL.Path)
			io.WriteString(w, `{"data":{"name":"Pat's King of Steaks","stars":4.4}}`)
		})

		patch, err := c.PlaceDetail(context.Background(), "p1")
		require.NoError(t, err)
		require.NotNil(t, patch)
		assert.Equal(t, "p1", patch.ID)
		require.NotNil(t, patch.Name)
		assert.Equal(t, "Pat's King of Steaks", *patch.Name)
		require.NotNil(t, patch.Rating)
		assert.Equal(t, 4.4, *patch.Rating)
		assert.Nil(t, patch.Address)
		assert.False(t, patch.HasCoordinates())
	})

	t.Run("unparsable body yields nil patch without error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `not json`)
		})

		patch, err := c.PlaceDetail(context.Background(), "p1")
		require.NoError(t, err)
		assert.Nil(t, patch)
	})

	t.Run("record with no extractable fields yields nil patch", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"irrelevant":true}`)
		})

		patch, err := c.PlaceDetail(context.Background(), "p1")
		require.NoError(t, err)
		assert.Nil(t, patch)
	})
}

func TestClient_PlaceInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/p1/info", r.URL.Path)
		io.WriteString(w, `{"point":{"coordinates":[-75.16,39.95]}}`)
	})

	patch, err := c.PlaceInfo(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, patch)
	assert.True(t, patch.HasCoordinates())
	assert.Equal(t, 39.95, *patch.Latitude)
	assert.Equal(t, -75.16, *patch.Longitude)
}

func TestClient_ListReviews(t *testing.T) {
	t.Run("alias normalization", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/places/p1/reviews", r.URL.Path)
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "20", r.URL.Query().Get("limit"))

			io.WriteString(w, `{"items":[
				{"id":"r1","text":"great","rating":5},
				{"review_id":"r2","comment":"greasy","stars":3},
				{"review_id":17,"comment":"fine","stars":4}
			]}`)
		})

		reviews, err := c.ListReviews(context.Background(), "p1", 1, 20)
		require.NoError(t, err)
		require.Len(t, reviews, 3)
		assert.Equal(t, domain.Review{ID: "r1", Text: "great", Rating: 5}, reviews[0])
		assert.Equal(t, domain.Review{ID: "r2", Text: "greasy", Rating: 3}, reviews[1])
		assert.Equal(t, domain.Review{ID: "17", Text: "fine", Rating: 4}, reviews[2])
	})
}

func TestClient_CreateReview(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places/p1/reviews", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["rating"])
		assert.Equal(t, "solid", body["text"])

		w.WriteHeader(http.StatusCreated)
	})

	err := c.CreateReview(context.Background(), "tok-123", "p1", domain.NewReview{Rating: 4, Text: "solid"})
	assert.NoError(t, err)
}

func TestClient_Bookmarks(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/my/bookmarks", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			io.WriteString(w, `[{"id":"b1","place_id":"p1","name":"Pat's","address":"1237 E Passyunk Ave"}]`)
		})

		bookmarks, err := c.ListBookmarks(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, bookmarks, 1)
		assert.Equal(t, "b1", bookmarks[0].ID)
		assert.Equal(t, "p1", bookmarks[0].PlaceID)
	})

	t.Run("add", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/places/p1/bookmarks", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
		})

		assert.NoError(t, c.AddBookmark(context.Background(), "tok", "p1"))
	})

	t.Run("delete", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/my/bookmarks/b1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, c.DeleteBookmark(context.Background(), "tok", "b1"))
	})

	t.Run("unauthorized status surfaces as error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := c.ListBookmarks(context.Background(), "bad")
		assert.Error(t, err)
	})
}

func TestClient_RecommendPlace(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places/recommend", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Dalessandro's", body["name"])

		w.WriteHeader(http.StatusCreated)
	})

	err := c.RecommendPlace(context.Background(), "tok", domain.Recommendation{
		Name:    "Dalessandro's",
		Address: "600 Wendover St",
	})
	assert.NoError(t, err)
}
