package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapList(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		records := UnwrapList([]byte(`[{"id":1},{"id":2}]`))
		assert.Len(t, records, 2)
	})

	t.Run("items envelope", func(t *testing.T) {
		records := UnwrapList([]byte(`{"items":[{"id":1}]}`))
		assert.Len(t, records, 1)
	})

	t.Run("envelope priority order", func(t *testing.T) {
		// "items" wins over "data" even when both hold arrays
		records := UnwrapList([]byte(`{"data":[{"id":"d"}],"items":[{"id":"i"},{"id":"j"}]}`))
		require.Len(t, records, 2)
		assert.Equal(t, "i", records[0]["id"])
	})

	t.Run("nested envelope", func(t *testing.T) {
		records := UnwrapList([]byte(`{"data":{"results":[{"id":1},{"id":2},{"id":3}]}}`))
		assert.Len(t, records, 3)
	})

	t.Run("places envelope", func(t *testing.T) {
		records := UnwrapList([]byte(`{"places":[{"id":1}]}`))
		assert.Len(t, records, 1)
	})

	t.Run("non-object elements are skipped", func(t *testing.T) {
		records := UnwrapList([]byte(`[{"id":1},"junk",42,{"id":2}]`))
		assert.Len(t, records, 2)
	})

	t.Run("malformed body yields empty", func(t *testing.T) {
		assert.Empty(t, UnwrapList([]byte(`{"items":`)))
		assert.Empty(t, UnwrapList([]byte(`"just a string"`)))
		assert.Empty(t, UnwrapList([]byte(`{"unexpected":{"shape":true}}`)))
	})
}

func TestUnwrapRecord(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		rec := UnwrapRecord([]byte(`{"id":"p1","name":"Pat's"}`))
		require.NotNil(t, rec)
		assert.Equal(t, "Pat's", rec["name"])
	})

	t.Run("data wrapper", func(t *testing.T) {
		rec := UnwrapRecord([]byte(`{"data":{"id":"p1","name":"Geno's"}}`))
		require.NotNil(t, rec)
		assert.Equal(t, "Geno's", rec["name"])
	})

	t.Run("array is not a record", func(t *testing.T) {
		assert.Nil(t, UnwrapRecord([]byte(`[{"id":"p1"}]`)))
	})
}

func TestCoordinates(t *testing.T) {
	t.Run("point coordinates are lon lat", func(t *testing.T) {
		lat, lon, ok := Coordinates(Record{
			"point": map[string]interface{}{"coordinates": []interface{}{-75.16, 39.95}},
		})
		require.True(t, ok)
		assert.Equal(t, 39.95, lat)
		assert.Equal(t, -75.16, lon)
	})

	t.Run("geometry coordinates fallback", func(t *testing.T) {
		lat, lon, ok := Coordinates(Record{
			"geometry": map[string]interface{}{"coordinates": []interface{}{2.1734, 41.3851}},
		})
		require.True(t, ok)
		assert.Equal(t, 41.3851, lat)
		assert.Equal(t, 2.1734, lon)
	})

	t.Run("point takes priority over discrete fields", func(t *testing.T) {
		lat, _, ok := Coordinates(Record{
			"point": map[string]interface{}{"coordinates": []interface{}{-75.16, 39.95}},
			"lat":   1.0,
			"lng":   2.0,
		})
		require.True(t, ok)
		assert.Equal(t, 39.95, lat)
	})

	t.Run("discrete fields", func(t *testing.T) {
		lat, lon, ok := Coordinates(Record{"lat": 39.95, "lng": -75.16})
		require.True(t, ok)
		assert.Equal(t, 39.95, lat)
		assert.Equal(t, -75.16, lon)
	})

	t.Run("quoted numbers are tolerated", func(t *testing.T) {
		lat, lon, ok := Coordinates(Record{"latitude": "39.95", "longitude": "-75.16"})
		require.True(t, ok)
		assert.Equal(t, 39.95, lat)
		assert.Equal(t, -75.16, lon)
	})

	t.Run("missing longitude fails", func(t *testing.T) {
		_, _, ok := Coordinates(Record{"lat": 39.95})
		assert.False(t, ok)
	})

	t.Run("non-numeric values fail", func(t *testing.T) {
		_, _, ok := Coordinates(Record{"lat": "north", "lng": -75.16})
		assert.False(t, ok)
	})

	t.Run("short coordinate pair fails", func(t *testing.T) {
		_, _, ok := Coordinates(Record{
			"point": map[string]interface{}{"coordinates": []interface{}{-75.16}},
		})
		assert.False(t, ok)
	})
}

func TestID(t *testing.T) {
	t.Run("string id", func(t *testing.T) {
		id, ok := ID(Record{"id": "abc-123"})
		require.True(t, ok)
		assert.Equal(t, "abc-123", id)
	})

	t.Run("numeric id has no decimal point", func(t *testing.T) {
		id, ok := ID(Record{"id": float64(42)})
		require.True(t, ok)
		assert.Equal(t, "42", id)
	})

	t.Run("alias priority", func(t *testing.T) {
		id, ok := ID(Record{"place_id": "p9", "placeId": "ignored"})
		require.True(t, ok)
		assert.Equal(t, "p9", id)
	})

	t.Run("no id", func(t *testing.T) {
		_, ok := ID(Record{"name": "x"})
		assert.False(t, ok)
	})
}

func TestIDField(t *testing.T) {
	id, ok := IDField(Record{"review_id": float64(17)}, "review_id")
	require.True(t, ok)
	assert.Equal(t, "17", id)

	id, ok = IDField(Record{"review_id": "r2"}, "review_id")
	require.True(t, ok)
	assert.Equal(t, "r2", id)

	_, ok = IDField(Record{"review_id": ""}, "review_id")
	assert.False(t, ok)

	_, ok = IDField(Record{}, "review_id")
	assert.False(t, ok)
}

func TestFieldAliases(t *testing.T) {
	name, ok := Name(Record{"title": "Reading Terminal"})
	require.True(t, ok)
	assert.Equal(t, "Reading Terminal", name)

	addr, ok := Address(Record{"vicinity": "51 N 12th St"})
	require.True(t, ok)
	assert.Equal(t, "51 N 12th St", addr)

	rating, ok := Rating(Record{"stars": 4.5})
	require.True(t, ok)
	assert.Equal(t, 4.5, rating)

	_, ok = Rating(Record{})
	assert.False(t, ok)
}
