package interchange

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// ============================================================
// CBOR
// ============================================================

// cborEncMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// binary form is canonical by key order, not insertion order.
var cborEncMode cbor.EncMode

// cborDecMode decodes untyped maps as map[string]any so the result
// feeds fromAny directly.
var cborDecMode cbor.DecMode

func init() {
	var err error

	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("interchange: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("interchange: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborCodec struct{}

func (cborCodec) Name() string { return "cbor" }

func (cborCodec) Encode(v *Value) ([]byte, error) {
	if err := checkValue(v); err != nil {
		return nil, err
	}
	data, err := cborEncMode.Marshal(toAny(v))
	if err != nil {
		return nil, &SerializationError{Kind: ErrUnrepresentable, Reason: err.Error()}
	}
	return data, nil
}

func (cborCodec) Decode(data []byte) (*Value, error) {
	var decoded any
	if err := cborDecMode.Unmarshal(data, &decoded); err != nil {
		return nil, &ParseError{Message: "cbor: " + err.Error()}
	}
	v, err := fromAny(decoded)
	if err != nil {
		return nil, &ParseError{Message: "cbor: " + err.Error()}
	}
	return v, nil
}
