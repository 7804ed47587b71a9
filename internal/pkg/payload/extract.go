// Package payload normalizes the loosely shaped JSON the places backend
// returns. List envelopes, coordinate shapes and field names vary between
// endpoints and backend versions; each concern is handled by an explicit
// ordered list of extractors, first match wins.
package payload

import (
	"encoding/json"
	"math"
	"strconv"
)

// Record is a single decoded JSON object from a backend response.
type Record = map[string]interface{}

// listEnvelopeKeys are the object fields a list payload may hide under,
// in priority order.
var listEnvelopeKeys = []string{"items", "data", "results", "places"}

// idKeys are the aliases a record id may arrive under, in priority order.
var idKeys = []string{"id", "place_id", "placeId", "poi_id", "osm_id", "uuid"}

// nameKeys are the aliases a display name may arrive under.
var nameKeys = []string{"name", "title", "display_name"}

// addressKeys are the aliases an address may arrive under.
var addressKeys = []string{"address", "vicinity", "formatted_address", "street_address"}

// ratingKeys are the aliases a rating may arrive under.
var ratingKeys = []string{"rating", "stars", "avg_rating", "average_rating"}

// latKeys / lonKeys are the discrete coordinate field aliases.
var latKeys = []string{"lat", "latitude"}
var lonKeys = []string{"lng", "lon", "longitude", "long"}

// UnwrapList decodes a response body and extracts the record list from it.
// The body may be a bare JSON array or an object exposing the array under
// one of the conventional envelope fields; envelopes may nest (an object
// under "data" holding "results" is unwrapped recursively). Anything else
// yields an empty list, never an error: a malformed payload means "no data
// this round".
func UnwrapList(body []byte) []Record {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil
	}
	return recordsFrom(unwrapValue(decoded))
}

func unwrapValue(v interface{}) []interface{} {
	switch val := v.(type) {
	case []interface{}:
		return val
	case map[string]interface{}:
		for _, key := range listEnvelopeKeys {
			if inner, ok := val[key]; ok {
				if list := unwrapValue(inner); list != nil {
					return list
				}
			}
		}
	}
	return nil
}

func recordsFrom(list []interface{}) []Record {
	if list == nil {
		return nil
	}
	records := make([]Record, 0, len(list))
	for _, item := range list {
		if rec, ok := item.(map[string]interface{}); ok {
			records = append(records, rec)
		}
	}
	return records
}

// UnwrapRecord decodes a response body that should hold a single object,
// tolerating a "data" wrapper.
func UnwrapRecord(body []byte) Record {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil
	}
	rec, ok := decoded.(map[string]interface{})
	if !ok {
		return nil
	}
	if inner, ok := rec["data"].(map[string]interface{}); ok {
		return inner
	}
	return rec
}

// Coordinates extracts a (lat, lon) pair from a record, trying the nested
// GeoJSON-style shapes before discrete fields:
//
//  1. point.coordinates = [lon, lat]
//  2. geometry.coordinates = [lon, lat]
//  3. discrete lat/lng-like keys
//
// ok is false unless both values parse as finite numbers.
func Coordinates(rec Record) (lat, lon float64, ok bool) {
	for _, extract := range coordinateExtractors {
		if lat, lon, ok = extract(rec); ok {
			return lat, lon, true
		}
	}
	return 0, 0, false
}

type coordinateExtractor func(Record) (float64, float64, bool)

var coordinateExtractors = []coordinateExtractor{
	nestedPairExtractor("point"),
	nestedPairExtractor("geometry"),
	discreteCoordinates,
}

// nestedPairExtractor reads <key>.coordinates as a [lon, lat] pair.
func nestedPairExtractor(key string) coordinateExtractor {
	return func(rec Record) (float64, float64, bool) {
		obj, ok := rec[key].(map[string]interface{})
		if !ok {
			return 0, 0, false
		}
		pair, ok := obj["coordinates"].([]interface{})
		if !ok || len(pair) < 2 {
			return 0, 0, false
		}
		lon, lonOK := asFloat(pair[0])
		lat, latOK := asFloat(pair[1])
		if !lonOK || !latOK {
			return 0, 0, false
		}
		return lat, lon, true
	}
}

func discreteCoordinates(rec Record) (float64, float64, bool) {
	lat, latOK := firstFloat(rec, latKeys)
	lon, lonOK := firstFloat(rec, lonKeys)
	if !latOK || !lonOK {
		return 0, 0, false
	}
	return lat, lon, true
}

// ID extracts the record id under any of its aliases. Numeric ids are
// rendered without a decimal point.
func ID(rec Record) (string, bool) {
	for _, key := range idKeys {
		if id, ok := IDField(rec, key); ok {
			return id, true
		}
	}
	return "", false
}

// IDField extracts an id from one named field, with the same numeric
// tolerance as ID. For id-like fields outside the common alias list,
// such as a review's own id.
func IDField(rec Record, key string) (string, bool) {
	switch id := rec[key].(type) {
	case string:
		if id != "" {
			return id, true
		}
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10), true
		}
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case json.Number:
		return id.String(), true
	}
	return "", false
}

// Name extracts the display name under any of its aliases.
func Name(rec Record) (string, bool) {
	return firstString(rec, nameKeys)
}

// Address extracts the address under any of its aliases.
func Address(rec Record) (string, bool) {
	return firstString(rec, addressKeys)
}

// Rating extracts the rating under any of its aliases.
func Rating(rec Record) (float64, bool) {
	return firstFloat(rec, ratingKeys)
}

func firstString(rec Record, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func firstFloat(rec Record, keys []string) (float64, bool) {
	for _, key := range keys {
		if v, ok := rec[key]; ok {
			if f, ok := asFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// asFloat parses a JSON value as a finite float. String values are
// tolerated because some backends quote numeric fields.
func asFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if isFinite(val) {
			return val, true
		}
	case json.Number:
		if f, err := val.Float64(); err == nil && isFinite(f) {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil && isFinite(f) {
			return f, true
		}
	}
	return 0, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
