package interchange

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
)

// Serialize returns the canonical interchange text of v.
//
// A *Value (or Value) is written by the canonical writer, keeping map
// entries in insertion order. Any other Go value goes through
// encoding/json: struct fields in declaration order, json tags honored,
// Go maps sorted by key. HTML characters are never escaped.
func Serialize(v any) (string, error) {
	if val, ok := asValue(v); ok {
		return emit(val)
	}
	if err := checkMapKeys(reflect.ValueOf(v), "$", make(map[visitKey]bool)); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fromJSONError(err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// SerializeIndent is like Serialize but places each list element and
// map entry on its own line, indented by indent per nesting level.
func SerializeIndent(v any, indent string) (string, error) {
	compact, err := Serialize(v)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(compact), "", indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MarshalJSON lets a *Value sit inside values handed to encoding/json.
func (v *Value) MarshalJSON() ([]byte, error) {
	s, err := emit(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func asValue(v any) (*Value, bool) {
	switch val := v.(type) {
	case *Value:
		return val, true
	case Value:
		return &val, true
	default:
		return nil, false
	}
}

// emit checks v and writes its canonical text.
func emit(v *Value) (string, error) {
	if err := checkValue(v); err != nil {
		return "", err
	}
	var b strings.Builder
	writeValue(&b, v)
	return b.String(), nil
}

// writeValue writes a value already accepted by checkValue.
func writeValue(b *strings.Builder, v *Value) {
	switch v.Kind() {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(canonBool(v.boolVal))
	case KindNumber:
		b.WriteString(canonNumber(v.numVal))
	case KindString:
		writeQuoted(b, v.strVal)
	case KindList:
		b.WriteByte('[')
		for i, elem := range v.listVal {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, elem)
		}
		b.WriteByte(']')
	case KindMap:
		b.WriteByte('{')
		for i, e := range v.mapVal {
			if i > 0 {
				b.WriteByte(',')
			}
			writeQuoted(b, e.Key)
			b.WriteByte(':')
			writeValue(b, e.Value)
		}
		b.WriteByte('}')
	}
}

// ============================================================
// Go values
// ============================================================

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// visitKey identifies a map, pointer or slice already walked.
type visitKey struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// checkMapKeys walks a Go value and rejects maps whose key type is not
// a string kind. encoding/json would quietly stringify integer keys.
// Types with their own JSON or text form are not descended into, and
// each map, pointer and slice is walked once so cycles terminate here
// and are reported by the encoder.
func checkMapKeys(rv reflect.Value, path string, seen map[visitKey]bool) error {
	if !rv.IsValid() {
		return nil
	}
	t := rv.Type()
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface &&
		(t.Implements(jsonMarshalerType) || reflect.PointerTo(t).Implements(jsonMarshalerType) || t.Implements(textMarshalerType)) {
		return nil
	}

	switch rv.Kind() {
	case reflect.Interface:
		return checkMapKeys(rv.Elem(), path, seen)

	case reflect.Pointer:
		if rv.IsNil() || t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
			return nil
		}
		key := visitKey{ptr: rv.Pointer(), typ: t}
		if seen[key] {
			return nil
		}
		seen[key] = true
		return checkMapKeys(rv.Elem(), path, seen)

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return unrepresentable(path, "map key type %s is not a string", t.Key())
		}
		if rv.IsNil() {
			return nil
		}
		key := visitKey{ptr: rv.Pointer(), typ: t}
		if seen[key] {
			return nil
		}
		seen[key] = true
		iter := rv.MapRange()
		for iter.Next() {
			if err := checkMapKeys(iter.Value(), childPath(path, iter.Key().String()), seen); err != nil {
				return err
			}
		}
		return nil

	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		key := visitKey{ptr: rv.Pointer(), len: rv.Len(), typ: t}
		if seen[key] {
			return nil
		}
		seen[key] = true
		return checkElements(rv, path, seen)

	case reflect.Array:
		return checkElements(rv, path, seen)

	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = field.Name
			}
			if err := checkMapKeys(rv.Field(i), childPath(path, name), seen); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

func checkElements(rv reflect.Value, path string, seen map[visitKey]bool) error {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil
	}
	for i := 0; i < rv.Len(); i++ {
		if err := checkMapKeys(rv.Index(i), path+"["+strconv.Itoa(i)+"]", seen); err != nil {
			return err
		}
	}
	return nil
}

// fromJSONError maps encoding/json failures onto *SerializationError.
func fromJSONError(err error) error {
	var serErr *SerializationError
	if errors.As(err, &serErr) {
		return serErr
	}

	var typeErr *json.UnsupportedTypeError
	if errors.As(err, &typeErr) {
		return unrepresentable("", "unsupported type %s", typeErr.Type)
	}

	var valueErr *json.UnsupportedValueError
	if errors.As(err, &valueErr) {
		if strings.HasPrefix(valueErr.Str, "encountered a cycle") {
			return &SerializationError{Kind: ErrCycle, Reason: valueErr.Str}
		}
		return unrepresentable("", "unsupported value %s", valueErr.Str)
	}

	return &SerializationError{Kind: ErrUnrepresentable, Reason: err.Error()}
}
