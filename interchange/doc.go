// Package interchange converts structured values to and from their
// canonical interchange text (JSON) and binds deserialized data to a
// caller-selected capability set.
//
// # Data Model
//
// Scalars: null, bool, number (float64), string
// Containers: list, map (ordered; insertion order is kept)
//
// # Serialization
//
// Serialize accepts either a *Value, emitted by the package's own
// canonical writer so map entries keep the order they were inserted in,
// or any other Go value, emitted with encoding/json semantics (struct
// fields in declaration order, Go maps sorted by key).
//
//	m := interchange.Map()
//	m.Set("width", interchange.Number(10))
//	m.Set("height", interchange.Number(20))
//	text, _ := interchange.Serialize(m) // {"width":10,"height":20}
//
// Values that contain a cycle, a non-finite number, or a Go type with
// no interchange form fail with a *SerializationError.
//
// # Deserialization
//
// Deserialize parses text and hands the parsed fields to a Descriptor,
// which returns the capability set the caller asked for. The returned
// Instance answers data lookups from the parsed fields only and method
// calls from the descriptor only.
//
// # Other Encodings
//
// The Codec registry carries the same data model over YAML, CBOR
// (Core Deterministic Encoding) and zstd-compressed variants.
package interchange
