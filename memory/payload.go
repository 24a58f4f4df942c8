package memory

import (
	"fmt"
	"math"
)

// SanitizePayload copies a payload down to plain numeric/string/bool values
// safe for any backend's JSON transport. Numeric NaN/Inf become 0, nil
// becomes "N/A", nested maps are sanitized recursively, and anything else
// is stringified.
func SanitizePayload(payload map[string]any) map[string]any {
	clean := make(map[string]any, len(payload))
	for k, v := range payload {
		clean[k] = sanitizeValue(v)
	}
	return clean
}

func sanitizeValue(v any) any {
	switch n := v.(type) {
	case nil:
		return "N/A"
	case float64:
		return finiteOrZero(n)
	case float32:
		return finiteOrZero(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		return n
	case string:
		return n
	case map[string]any:
		return SanitizePayload(n)
	default:
		return fmt.Sprint(n)
	}
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
