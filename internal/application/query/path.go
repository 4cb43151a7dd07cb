package query

import (
	"strconv"
	"strings"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

// Lookup resolves a dotted path (e.g. "_source.symbol") against nested maps and
// slices. Numeric segments index slices. ok is false when any segment is missing.
func Lookup(root any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := root
	if doc, ok := root.(document.Document); ok {
		current = map[string]any(doc)
	}
	for _, key := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Assign stores value at a dotted path in dst, creating intermediate objects.
// An intermediate that exists but is not an object is replaced.
func Assign(dst map[string]any, path string, value any) {
	keys := strings.Split(path, ".")
	node := dst
	for _, key := range keys[:len(keys)-1] {
		next, ok := node[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[key] = next
		}
		node = next
	}
	node[keys[len(keys)-1]] = value
}

// clone deep-copies maps and slices so projections never alias their source.
func clone(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = clone(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = clone(item)
		}
		return out
	default:
		return v
	}
}
