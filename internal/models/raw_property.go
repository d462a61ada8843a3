package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RawProperty is a listing exactly as the upstream API sent it, in any of
// its historical shapes.
type RawProperty map[string]interface{}

// IsNormalized reports whether the record already went through the normalizer.
func (r RawProperty) IsNormalized() bool {
	v, ok := r[NormalizedMarker].(bool)
	return ok && v
}

// Key returns the record identifier as a string, or "" if none is present.
func (r RawProperty) Key() string {
	for _, field := range []string{"id", "_id", "uuid"} {
		if s := StringifyID(r[field]); s != "" {
			return s
		}
	}
	return ""
}

// StringifyID renders an identifier of any JSON scalar type as a string.
func StringifyID(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(id), 'f', -1, 32)
	case int:
		return strconv.Itoa(id)
	case int32:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case bool:
		return ""
	default:
		return ""
	}
}

// DecodeRawProperties decodes a JSON array of records, keeping numbers as
// json.Number so integer identifiers survive unchanged.
func DecodeRawProperties(data []byte) ([]RawProperty, error) {
	var raws []RawProperty
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// DecodeRawProperty decodes a single JSON record.
func DecodeRawProperty(data []byte) (RawProperty, error) {
	var raw RawProperty
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}
