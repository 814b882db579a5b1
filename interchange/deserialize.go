package interchange

import "math"

// Descriptor names a capability set and binds parsed data to it. It is
// the Go form of a prototype: the caller picks the implementation, and
// the deserialized data never supplies methods of its own.
type Descriptor[T any] interface {
	// Name identifies the capability set (e.g. "Rectangle").
	Name() string

	// Bind returns the capabilities for the given fields. Bind must not
	// retain or modify fields beyond reading them.
	Bind(fields *Object) T
}

// Object is a read-only view over the fields of a parsed map.
type Object struct {
	entries []MapEntry
}

// NewObject returns a view over v's entries. A nil or non-map value
// yields an object with no fields.
func NewObject(v *Value) *Object {
	if v.Kind() != KindMap {
		return &Object{}
	}
	return &Object{entries: v.mapVal}
}

// Get returns the field stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	for _, e := range o.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Number returns the numeric field under key. Missing or non-numeric
// fields yield NaN and false, the way arithmetic on an absent property
// does in the interchange format's native language.
func (o *Object) Number(key string) (float64, bool) {
	v, ok := o.Get(key)
	if !ok || v.Kind() != KindNumber {
		return math.NaN(), false
	}
	return v.numVal, true
}

// Str returns the string field under key.
func (o *Object) Str(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok || v.Kind() != KindString {
		return "", false
	}
	return v.strVal, true
}

// Keys returns the field names in order of appearance.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.entries))
	for i, e := range o.entries {
		keys[i] = e.Key
	}
	return keys
}

// Fields returns a copy of the entries in order of appearance.
func (o *Object) Fields() []MapEntry {
	out := make([]MapEntry, len(o.entries))
	copy(out, o.entries)
	return out
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.entries)
}

// Instance is deserialized data bound to a capability set.
type Instance[T any] struct {
	*Object
	value      *Value
	descriptor string
	caps       T
}

// Caps returns the capabilities supplied by the descriptor.
func (i *Instance[T]) Caps() T {
	return i.caps
}

// Descriptor returns the name of the descriptor the data was bound to.
func (i *Instance[T]) Descriptor() string {
	return i.descriptor
}

// Value returns the parsed value, including non-map roots.
func (i *Instance[T]) Value() *Value {
	return i.value
}

// Deserialize parses text and binds the parsed fields to d.
//
// Every field in the text is reachable through the Instance's Object
// methods; capabilities come from d alone. A root that is not a map
// binds with no fields.
func Deserialize[T any](d Descriptor[T], text string) (*Instance[T], error) {
	return DeserializeWithOptions(d, text, ParseOptions{})
}

// DeserializeWithOptions is Deserialize with parser options.
func DeserializeWithOptions[T any](d Descriptor[T], text string, opts ParseOptions) (*Instance[T], error) {
	value, err := ParseWithOptions(text, opts)
	if err != nil {
		return nil, err
	}
	return Bind(d, value), nil
}

// Bind attaches d to an already parsed value.
func Bind[T any](d Descriptor[T], value *Value) *Instance[T] {
	obj := NewObject(value)
	return &Instance[T]{
		Object:     obj,
		value:      value,
		descriptor: d.Name(),
		caps:       d.Bind(obj),
	}
}
