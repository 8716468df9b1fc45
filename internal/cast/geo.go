package cast

import (
	"strings"

	"github.com/reoring/tableschema/value"
)

func castGeopoint(opts Options, raw any) (any, error) {
	if g, ok := raw.(value.Geopoint); ok {
		return checkGeopoint(g, raw)
	}
	switch opts.format() {
	case "array":
		if s, ok := raw.(string); ok {
			decoded, err := decodeJSON(s)
			if err != nil {
				return nil, invalid("not a JSON array", raw)
			}
			return geopointFromArray(decoded, raw)
		}
		return geopointFromArray(raw, raw)
	case "object":
		if s, ok := raw.(string); ok {
			decoded, err := decodeJSON(s)
			if err != nil {
				return nil, invalid("not a JSON object", raw)
			}
			return geopointFromObject(decoded, raw)
		}
		return geopointFromObject(raw, raw)
	default:
		s, ok := raw.(string)
		if !ok {
			return nil, invalid("not a lon,lat string", raw)
		}
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, invalid("not a lon,lat string", raw)
		}
		return geopointFrom(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), raw)
	}
}

func geopointFromArray(v any, raw any) (any, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return nil, invalid("not a [lon, lat] pair", raw)
	}
	return geopointFrom(arr[0], arr[1], raw)
}

func geopointFromObject(v any, raw any) (any, error) {
	obj, ok := v.(map[string]any)
	if !ok || len(obj) != 2 {
		return nil, invalid("not a {lon, lat} object", raw)
	}
	lon, okLon := obj["lon"]
	lat, okLat := obj["lat"]
	if !okLon || !okLat {
		return nil, invalid("not a {lon, lat} object", raw)
	}
	return geopointFrom(lon, lat, raw)
}

func geopointFrom(lon, lat any, raw any) (any, error) {
	x, err := castNumber(Options{}, lon)
	if err != nil {
		return nil, invalid("longitude is not numeric", raw)
	}
	y, err := castNumber(Options{}, lat)
	if err != nil {
		return nil, invalid("latitude is not numeric", raw)
	}
	return checkGeopoint(value.Geopoint{Lon: x.(float64), Lat: y.(float64)}, raw)
}

func checkGeopoint(g value.Geopoint, raw any) (any, error) {
	if !g.Valid() {
		return nil, invalid("coordinates out of range", raw)
	}
	return g, nil
}

var geometryTypes = map[string]string{
	"Point":              "coordinates",
	"MultiPoint":         "coordinates",
	"LineString":         "coordinates",
	"MultiLineString":    "coordinates",
	"Polygon":            "coordinates",
	"MultiPolygon":       "coordinates",
	"GeometryCollection": "geometries",
	"Feature":            "geometry",
	"FeatureCollection":  "features",
}

func castGeojson(opts Options, raw any) (any, error) {
	obj, err := castObject(opts, raw)
	if err != nil {
		return nil, invalid("not a GeoJSON object", raw)
	}
	m := obj.(map[string]any)
	typ, _ := m["type"].(string)
	if opts.format() == "topojson" {
		if typ != "Topology" {
			return nil, invalid("not a TopoJSON topology", raw)
		}
		if _, ok := m["objects"].(map[string]any); !ok {
			return nil, invalid("topology without objects", raw)
		}
		return m, nil
	}
	member, ok := geometryTypes[typ]
	if !ok {
		return nil, invalid("unknown GeoJSON type", raw)
	}
	v, present := m[member]
	if !present {
		return nil, invalid("GeoJSON object without "+member, raw)
	}
	switch member {
	case "coordinates", "geometries", "features":
		if _, ok := v.([]any); !ok {
			return nil, invalid(member+" must be an array", raw)
		}
	case "geometry":
		if v != nil {
			if _, ok := v.(map[string]any); !ok {
				return nil, invalid("geometry must be an object or null", raw)
			}
		}
	}
	return m, nil
}
