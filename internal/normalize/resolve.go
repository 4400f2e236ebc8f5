package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Raw is one backend record as decoded by encoding/json. Its shape is not
// known in advance; the same logical field may live at different depths.
type Raw = map[string]any

// Resolve walks the candidate paths in order and returns the first value that
// is present, i.e. reachable, non-nil and not an empty string. Paths are
// dot-separated; numeric segments index into arrays ("items.0.name").
// A missing or mistyped intermediate segment only means "not present".
func Resolve(src Raw, candidates []string, fallback any) any {
	for _, path := range candidates {
		if v, ok := lookup(src, path); ok && present(v) {
			return v
		}
	}
	return fallback
}

// ResolveString is Resolve restricted to scalar values (strings, numbers,
// booleans), returned in string form. Objects and arrays are skipped.
func ResolveString(src Raw, candidates []string, fallback string) string {
	for _, path := range candidates {
		v, ok := lookup(src, path)
		if !ok || !present(v) {
			continue
		}
		if s, ok := scalarString(v); ok {
			return s
		}
	}
	return fallback
}

// ResolveNumber returns the first candidate holding a number or a numeric
// string ("1,250.50" is accepted, "$1,250.50" is not).
func ResolveNumber(src Raw, candidates []string) (float64, bool) {
	for _, path := range candidates {
		v, ok := lookup(src, path)
		if !ok || !present(v) {
			continue
		}
		if f, ok := toNumber(v); ok {
			return f, true
		}
	}
	return 0, false
}

func lookup(src any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	cur := src
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case json.Number:
		return x != ""
	default:
		return true
	}
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
