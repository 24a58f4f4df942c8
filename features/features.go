// Package features derives the engineered feature map and the two scaled
// memory vectors (risk space, fraud space) from a raw loan application and
// its transaction history.
//
// The feature-name orders in orders.go are the binary contract between
// every writer and reader of a memory collection. Derivation is
// deterministic: the same inputs always produce bit-identical vectors.
package features

import "math"

// FeatureMap is the working feature structure for one derivation call.
// Values are float64 for numerics and string for categorical passthroughs.
// It is owned exclusively by Engine.Derive and never shared across calls.
type FeatureMap map[string]any

// Number reads a named numeric feature. Missing keys, non-numeric values,
// and NaN/Inf all read as 0 so vector construction is total.
func (m FeatureMap) Number(name string) float64 {
	v, ok := m[name]
	if !ok {
		return 0
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Clone returns a shallow copy, used when the map becomes a store payload.
func (m FeatureMap) Clone() FeatureMap {
	out := make(FeatureMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ratio builds every ratio feature in the system. The +1 denominator guard
// keeps ratios finite and comparable across applicants regardless of
// transaction volume; it must be identical at write-time and query-time.
func ratio(num, den float64) float64 {
	return num / (den + 1)
}
