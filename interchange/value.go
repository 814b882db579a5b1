package interchange

import (
	"fmt"
	"math"
)

// Kind represents interchange value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value represents an interchange value.
//
// Scalars are immutable. Lists and maps can be extended by their owner
// with Append and Set while they are being built.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal bool
	numVal  float64
	strVal  string

	// Container values
	listVal []*Value
	mapVal  []MapEntry
}

// MapEntry represents a key-value pair in a map.
type MapEntry struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Number creates a numeric value.
func Number(v float64) *Value {
	return &Value{kind: KindNumber, numVal: v}
}

// String creates a string value.
func String(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// List creates a list value.
func List(values ...*Value) *Value {
	return &Value{kind: KindList, listVal: values}
}

// Map creates a map value. Entries are inserted in argument order;
// a repeated key replaces the earlier value in place.
func Map(entries ...MapEntry) *Value {
	v := &Value{kind: KindMap, mapVal: make([]MapEntry, 0, len(entries))}
	for _, e := range entries {
		v.Set(e.Key, e.Value)
	}
	return v
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind. A nil value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if err := v.expect(KindBool); err != nil {
		return false, err
	}
	return v.boolVal, nil
}

// AsNumber returns the numeric value.
func (v *Value) AsNumber() (float64, error) {
	if err := v.expect(KindNumber); err != nil {
		return 0, err
	}
	return v.numVal, nil
}

// AsString returns the string value.
func (v *Value) AsString() (string, error) {
	if err := v.expect(KindString); err != nil {
		return "", err
	}
	return v.strVal, nil
}

// Items returns the list elements. The slice is shared; do not modify.
func (v *Value) Items() ([]*Value, error) {
	if err := v.expect(KindList); err != nil {
		return nil, err
	}
	return v.listVal, nil
}

// Entries returns the map entries in insertion order. The slice is
// shared; do not modify.
func (v *Value) Entries() ([]MapEntry, error) {
	if err := v.expect(KindMap); err != nil {
		return nil, err
	}
	return v.mapVal, nil
}

// Len returns the number of list elements or map entries, and 0 for
// scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindList:
		return len(v.listVal)
	case KindMap:
		return len(v.mapVal)
	default:
		return 0
	}
}

// Index returns the i-th list element, or nil when out of range or
// when v is not a list.
func (v *Value) Index(i int) *Value {
	if v.Kind() != KindList || i < 0 || i >= len(v.listVal) {
		return nil
	}
	return v.listVal[i]
}

// Get returns the value stored under key in a map.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != KindMap {
		return nil, false
	}
	for _, e := range v.mapVal {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the map keys in insertion order.
func (v *Value) Keys() []string {
	if v.Kind() != KindMap {
		return nil
	}
	keys := make([]string, len(v.mapVal))
	for i, e := range v.mapVal {
		keys[i] = e.Key
	}
	return keys
}

func (v *Value) expect(k Kind) error {
	if v == nil {
		return fmt.Errorf("interchange: nil value")
	}
	if v.kind != k {
		return fmt.Errorf("interchange: expected %s, got %s", k, v.kind)
	}
	return nil
}

// ============================================================
// Builders
// ============================================================

// Set stores val under key. An existing key keeps its position and
// takes the new value; a new key is appended. Set panics if v is not
// a map.
func (v *Value) Set(key string, val *Value) {
	if v.Kind() != KindMap {
		panic("interchange: Set on " + v.Kind().String())
	}
	if val == nil {
		val = Null()
	}
	for i := range v.mapVal {
		if v.mapVal[i].Key == key {
			v.mapVal[i].Value = val
			return
		}
	}
	v.mapVal = append(v.mapVal, MapEntry{Key: key, Value: val})
}

// Append adds elements to the end of a list. Append panics if v is not
// a list.
func (v *Value) Append(vals ...*Value) {
	if v.Kind() != KindList {
		panic("interchange: Append on " + v.Kind().String())
	}
	for _, val := range vals {
		if val == nil {
			val = Null()
		}
		v.listVal = append(v.listVal, val)
	}
}

// ============================================================
// Equality
// ============================================================

// Equal reports whether two values hold the same data. Map entries
// are compared by key, independent of order. Numbers compare with ==,
// so NaN is never equal to itself.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindNumber:
		return a.numVal == b.numVal
	case KindString:
		return a.strVal == b.strVal
	case KindList:
		if len(a.listVal) != len(b.listVal) {
			return false
		}
		for i := range a.listVal {
			if !Equal(a.listVal[i], b.listVal[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.mapVal) != len(b.mapVal) {
			return false
		}
		for _, e := range a.mapVal {
			other, ok := b.Get(e.Key)
			if !ok || !Equal(e.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// isFinite reports whether f has an interchange representation.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
