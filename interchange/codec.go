package interchange

import (
	"fmt"
	"sort"
	"strings"
)

// Codec carries Values over one encoding.
type Codec interface {
	// Name is the registry key (e.g. "json", "cbor+zstd").
	Name() string

	// Encode fails with *SerializationError for values the encoding
	// cannot represent.
	Encode(v *Value) ([]byte, error)

	// Decode fails with *ParseError for malformed input.
	Decode(data []byte) (*Value, error)
}

var codecs = map[string]Codec{}

func register(c Codec) {
	codecs[c.Name()] = c
}

func init() {
	register(jsonCodec{})
	register(jsonCodec{tolerant: true})
	register(yamlCodec{})
	register(cborCodec{})
	register(Compressed(jsonCodec{}))
	register(Compressed(cborCodec{}))
}

// LookupCodec returns the codec registered under name.
func LookupCodec(name string) (Codec, error) {
	c, ok := codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (known: %s)", name, strings.Join(CodecNames(), ", "))
	}
	return c, nil
}

// CodecNames returns the registered codec names, sorted.
func CodecNames() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ============================================================
// JSON
// ============================================================

// jsonCodec is the canonical text form. The tolerant variant, "jsonc",
// additionally accepts comments and trailing commas on decode and
// writes plain canonical JSON.
type jsonCodec struct {
	tolerant bool
}

func (c jsonCodec) Name() string {
	if c.tolerant {
		return "jsonc"
	}
	return "json"
}

func (c jsonCodec) Encode(v *Value) ([]byte, error) {
	s, err := emit(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (c jsonCodec) Decode(data []byte) (*Value, error) {
	return ParseWithOptions(string(data), ParseOptions{Tolerant: c.tolerant})
}
