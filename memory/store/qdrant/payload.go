package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// toQdrantPayload converts a sanitized payload to Qdrant protobuf values.
// Payloads arrive pre-sanitized (plain floats, strings, bools), so the
// fallback stringification should never fire in practice.
func toQdrantPayload(payload map[string]any) map[string]*qdrant.Value {
	out := make(map[string]*qdrant.Value, len(payload))
	for k, v := range payload {
		out[k] = toQdrantValue(v)
	}
	return out
}

func toQdrantValue(v any) *qdrant.Value {
	switch n := v.(type) {
	case nil:
		return &qdrant.Value{Kind: &qdrant.Value_NullValue{NullValue: qdrant.NullValue_NULL_VALUE}}
	case float64:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: n}}
	case float32:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: float64(n)}}
	case int:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(n)}}
	case int64:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: n}}
	case bool:
		return &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: n}}
	case string:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: n}}
	case map[string]any:
		return &qdrant.Value{Kind: &qdrant.Value_StructValue{
			StructValue: &qdrant.Struct{Fields: toQdrantPayload(n)},
		}}
	default:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: fmt.Sprint(n)}}
	}
}

// fromQdrantPayload converts stored protobuf values back to plain Go
// values for twin projection.
func fromQdrantPayload(payload map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = fromQdrantValue(v)
	}
	return out
}

func fromQdrantValue(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_StructValue:
		return fromQdrantPayload(kind.StructValue.GetFields())
	case *qdrant.Value_ListValue:
		values := kind.ListValue.GetValues()
		out := make([]any, len(values))
		for i, item := range values {
			out[i] = fromQdrantValue(item)
		}
		return out
	default:
		return nil
	}
}
