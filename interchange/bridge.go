package interchange

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"sort"
)

// ============================================================
// Generic Go value bridge
// ============================================================
//
// Decoders that produce plain Go values (map[string]any, []any, ...)
// go through fromAny; encoders that consume them go through toAny.

// maxSafeInteger is the largest integer a float64 holds exactly.
const maxSafeInteger = 1<<53 - 1

// fromAny converts a decoded Go value to a Value. Go maps carry no
// order, so their keys are sorted.
func fromAny(v any) (*Value, error) {
	if v == nil {
		return Null(), nil
	}

	switch val := v.(type) {
	case bool:
		return Bool(val), nil
	case float64:
		return Number(val), nil
	case int64:
		return Number(float64(val)), nil
	case uint64:
		return Number(float64(val)), nil
	case int:
		return Number(float64(val)), nil
	case big.Int:
		f, _ := new(big.Float).SetInt(&val).Float64()
		return Number(f), nil
	case string:
		return String(val), nil
	case []byte:
		return String(base64.StdEncoding.EncodeToString(val)), nil

	case []any:
		items := make([]*Value, 0, len(val))
		for i, elem := range val {
			item, err := fromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			items = append(items, item)
		}
		return List(items...), nil

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := Map()
		for _, k := range keys {
			item, err := fromAny(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			m.Set(k, item)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported decoded type: %T", v)
	}
}

// toAny converts a checked Value to plain Go values. Integral numbers
// within the exact float64 range become int64 so binary encoders pick
// integer encodings.
func toAny(v *Value) any {
	switch v.Kind() {
	case KindBool:
		return v.boolVal
	case KindNumber:
		f := v.numVal
		if f == math.Trunc(f) && math.Abs(f) <= maxSafeInteger {
			return int64(f)
		}
		return f
	case KindString:
		return v.strVal
	case KindList:
		items := make([]any, len(v.listVal))
		for i, elem := range v.listVal {
			items[i] = toAny(elem)
		}
		return items
	case KindMap:
		obj := make(map[string]any, len(v.mapVal))
		for _, e := range v.mapVal {
			obj[e.Key] = toAny(e.Value)
		}
		return obj
	default:
		return nil
	}
}
