package normalize

import (
	"strconv"
	"strings"
)

// pick returns the first present value among keys, so callers can accept
// both camelCase and snake_case spellings of a field.
func pick(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func asString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	default:
		return ""
	}
}

func asFloat64(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

func asInt(value any) int {
	switch typed := value.(type) {
	case string:
		// "$$$" style price levels
		trimmed := strings.TrimSpace(typed)
		if trimmed != "" && strings.Trim(trimmed, "$") == "" {
			return len(trimmed)
		}
	}
	return int(asFloat64(value))
}

func asBool(value any) (bool, bool) {
	switch typed := value.(type) {
	case bool:
		return typed, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(typed))
		return b, err == nil
	case float64:
		return typed != 0, true
	}
	return false, false
}

// asStringSlice accepts a list or a comma-separated string, keeping
// non-empty trimmed entries.
func asStringSlice(value any) []string {
	var out []string
	switch typed := value.(type) {
	case []any:
		for _, v := range typed {
			if s := asString(v); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, v := range typed {
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(typed, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
