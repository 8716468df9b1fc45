package cast

import (
	"github.com/goccy/go-json"
)

func castArray(_ Options, raw any) (any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case string:
		decoded, err := decodeJSON(v)
		if err != nil {
			return nil, invalid("not a JSON array", raw)
		}
		if arr, ok := decoded.([]any); ok {
			return arr, nil
		}
	}
	return nil, invalid("not an array", raw)
}

func castObject(_ Options, raw any) (any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case string:
		decoded, err := decodeJSON(v)
		if err != nil {
			return nil, invalid("not a JSON object", raw)
		}
		if obj, ok := decoded.(map[string]any); ok {
			return obj, nil
		}
	}
	return nil, invalid("not an object", raw)
}

// decodeJSON decodes exactly one JSON document; numbers become float64.
// Anything but whitespace after the document is an error.
func decodeJSON(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}
