package transformers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// getValue walks a dotted path ("details.bedrooms") through nested maps.
func getValue(m map[string]interface{}, key string) (interface{}, bool) {
	keys := strings.Split(key, ".")
	current := m
	for _, k := range keys[:len(keys)-1] {
		next, ok := asMap(current[k])
		if !ok {
			return nil, false
		}
		current = next
	}
	val, ok := current[keys[len(keys)-1]]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

// firstValue returns the first present value among the given paths.
func firstValue(m map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if val, ok := getValue(m, key); ok {
			if s, isString := val.(string); isString && strings.TrimSpace(s) == "" {
				continue
			}
			return val
		}
	}
	return nil
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[string]string:
		out := make(map[string]interface{}, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

// toFloat coerces a JSON scalar to a finite float. Strings are parsed after
// trimming; anything else reports false.
func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func getFloat(m map[string]interface{}, keys ...string) float64 {
	if f, ok := toFloat(firstValue(m, keys...)); ok {
		return f
	}
	return 0
}

func getInt(m map[string]interface{}, keys ...string) int {
	return int(getFloat(m, keys...))
}

// getOptionalInt is like getInt but distinguishes "absent" from zero.
func getOptionalInt(m map[string]interface{}, keys ...string) *int {
	f, ok := toFloat(firstValue(m, keys...))
	if !ok {
		return nil
	}
	i := int(f)
	return &i
}

func getString(m map[string]interface{}, keys ...string) string {
	switch s := firstValue(m, keys...).(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}
