package vault

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Select walks data along a dotted selector such as "db.password".
// It reports false when any segment is missing or a non-object is
// reached before the last segment.
func Select(data map[string]interface{}, selector string) (interface{}, bool) {
	var current interface{} = data
	for _, part := range strings.Split(selector, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Stringify converts a decoded JSON value to the string exported to the
// pipeline. Strings are returned as-is, other scalars in their JSON form
// and objects or arrays as compact JSON.
func Stringify(v interface{}) (string, error) {
	switch tv := v.(type) {
	case string:
		return tv, nil
	case json.Number:
		return tv.String(), nil
	case bool:
		return strconv.FormatBool(tv), nil
	case nil:
		return "null", nil
	default:
		return compactJSON(tv)
	}
}

func compactJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
