package listingsapi

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type pagination struct {
	current int
	last    int
}

func (p pagination) hasNext() bool {
	return p.current > 0 && p.last > p.current
}

// unwrapList accepts a bare array, {"data": [...]} with optional paginator
// fields at the top level or under "meta", and a paginator nested under
// "data" as {"data": {"data": [...], "current_page": ..}}.
func unwrapList(payload interface{}) ([]map[string]interface{}, pagination, error) {
	switch v := payload.(type) {
	case []interface{}:
		return objects(v), pagination{}, nil
	case map[string]interface{}:
		switch data := v["data"].(type) {
		case []interface{}:
			p := readPagination(v)
			if meta, ok := v["meta"].(map[string]interface{}); ok && p.current == 0 {
				p = readPagination(meta)
			}
			return objects(data), p, nil
		case map[string]interface{}:
			if inner, ok := data["data"].([]interface{}); ok {
				return objects(inner), readPagination(data), nil
			}
		}
	}
	return nil, pagination{}, fmt.Errorf("%w: no listing array found", ErrUnexpectedPayload)
}

// unwrapDetail accepts a bare object or one wrapped as {"data": {...}}. A
// top-level object carrying its own id is never unwrapped.
func unwrapDetail(payload interface{}) (map[string]interface{}, error) {
	obj, ok := payload.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: listing is not an object", ErrUnexpectedPayload)
	}
	if _, hasID := obj["id"]; !hasID {
		if inner, ok := obj["data"].(map[string]interface{}); ok {
			return inner, nil
		}
	}
	return obj, nil
}

func objects(items []interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

func readPagination(m map[string]interface{}) pagination {
	return pagination{current: asInt(m["current_page"]), last: asInt(m["last_page"])}
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
