package interchange

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleDocument() *Value {
	doc := Map()
	doc.Set("name", String("panel"))
	doc.Set("width", Number(10))
	doc.Set("ratio", Number(0.75))
	doc.Set("visible", Bool(true))
	doc.Set("parent", Null())
	doc.Set("tags", List(String("a"), String("true"), String("12")))
	doc.Set("size", Map(
		MapEntry{Key: "w", Value: Number(-3)},
		MapEntry{Key: "h", Value: Number(1e21)},
	))
	return doc
}

func TestCodecs_RoundTrip(t *testing.T) {
	for _, name := range CodecNames() {
		t.Run(name, func(t *testing.T) {
			codec, err := LookupCodec(name)
			require.NoError(t, err)
			require.Equal(t, name, codec.Name())

			doc := sampleDocument()
			data, err := codec.Encode(doc)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			decoded, err := codec.Decode(data)
			require.NoError(t, err)
			require.True(t, Equal(doc, decoded), "round trip changed the value")
		})
	}
}

func TestCodecs_RejectUnrepresentable(t *testing.T) {
	cyclic := List()
	cyclic.Append(cyclic)

	for _, name := range CodecNames() {
		t.Run(name, func(t *testing.T) {
			codec, err := LookupCodec(name)
			require.NoError(t, err)

			_, err = codec.Encode(Number(math.NaN()))
			require.ErrorIs(t, err, ErrUnrepresentable)

			_, err = codec.Encode(cyclic)
			require.ErrorIs(t, err, ErrCycle)
		})
	}
}

func TestCodecs_RejectGarbage(t *testing.T) {
	garbage := map[string][]byte{
		"json":      []byte(`{"a":`),
		"jsonc":     []byte(`{"a": // nothing`),
		"yaml":      []byte("a: [1, 2\nb: }"),
		"cbor":      {0xff, 0x00, 0x13},
		"cbor+zstd": []byte("not zstd"),
		"json+zstd": []byte("not zstd"),
	}
	for name, data := range garbage {
		t.Run(name, func(t *testing.T) {
			codec, err := LookupCodec(name)
			require.NoError(t, err)

			_, err = codec.Decode(data)
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestLookupCodec(t *testing.T) {
	codec, err := LookupCodec("YAML")
	require.NoError(t, err)
	require.Equal(t, "yaml", codec.Name())

	_, err = LookupCodec("xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "cbor+zstd")

	require.Equal(t, []string{"cbor", "cbor+zstd", "json", "json+zstd", "jsonc", "yaml"}, CodecNames())
}

// ============================================================
// YAML
// ============================================================

func TestYAML_EncodeKeepsOrder(t *testing.T) {
	m := Map()
	m.Set("width", Number(10))
	m.Set("height", Number(2.5))
	m.Set("label", String("true"))

	data, err := yamlCodec{}.Encode(m)
	require.NoError(t, err)
	require.Equal(t, "width: 10\nheight: 2.5\nlabel: \"true\"\n", string(data))
}

func TestYAML_DecodeKeepsOrder(t *testing.T) {
	input := `
zeta: 1
alpha:
  - x
  - 2.5
  - null
mid: {b: true, a: false}
`
	v, err := yamlCodec{}.Decode([]byte(input))
	require.NoError(t, err)
	require.Equal(t, []string{"zeta", "alpha", "mid"}, v.Keys())

	mid, _ := v.Get("mid")
	require.Equal(t, []string{"b", "a"}, mid.Keys())

	text, err := Serialize(v)
	require.NoError(t, err)
	require.Equal(t, `{"zeta":1,"alpha":["x",2.5,null],"mid":{"b":true,"a":false}}`, text)
}

func TestYAML_DecodeAliasesAndEmpty(t *testing.T) {
	v, err := yamlCodec{}.Decode([]byte("base: &b {x: 1}\ncopy: *b\n"))
	require.NoError(t, err)
	base, _ := v.Get("base")
	copied, _ := v.Get("copy")
	require.True(t, Equal(base, copied))

	empty, err := yamlCodec{}.Decode(nil)
	require.NoError(t, err)
	require.True(t, empty.IsNull())
}

func TestYAML_DecodeLimitsAliasExpansion(t *testing.T) {
	// Seven levels of ten-way fan-out expand to 10^7 nodes from a few
	// hundred bytes of input.
	var b strings.Builder
	b.WriteString("a0: &a0 [x]\n")
	for level := 1; level <= 7; level++ {
		fmt.Fprintf(&b, "a%d: &a%d [", level, level)
		for i := 0; i < 10; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*a%d", level-1)
		}
		b.WriteString("]\n")
	}

	_, err := yamlCodec{}.Decode([]byte(b.String()))
	require.ErrorIs(t, err, ErrParse)
	require.ErrorContains(t, err, "alias expansion exceeds")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.NotZero(t, parseErr.Pos.Line)
}

func TestYAML_DecodeAllowsModestAliasReuse(t *testing.T) {
	// Two levels of ten-way fan-out stay well inside the budget.
	doc := "a0: &a0 [1, 2]\n" +
		"a1: &a1 [*a0, *a0, *a0, *a0, *a0, *a0, *a0, *a0, *a0, *a0]\n" +
		"a2: [*a1, *a1, *a1, *a1, *a1, *a1, *a1, *a1, *a1, *a1]\n"
	v, err := yamlCodec{}.Decode([]byte(doc))
	require.NoError(t, err)

	a2, ok := v.Get("a2")
	require.True(t, ok)
	require.Equal(t, 10, a2.Len())
	require.Equal(t, 10, a2.Index(9).Len())
}

func TestYAML_DecodeRejectsNonFinite(t *testing.T) {
	_, err := yamlCodec{}.Decode([]byte("x: .inf\n"))
	require.ErrorIs(t, err, ErrParse)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 1, parseErr.Pos.Line)
}

// ============================================================
// CBOR
// ============================================================

func TestCBOR_Deterministic(t *testing.T) {
	a := Map(
		MapEntry{Key: "b", Value: Number(1)},
		MapEntry{Key: "a", Value: Number(2)},
	)
	b := Map(
		MapEntry{Key: "a", Value: Number(2)},
		MapEntry{Key: "b", Value: Number(1)},
	)

	first, err := cborCodec{}.Encode(a)
	require.NoError(t, err)
	second, err := cborCodec{}.Encode(b)
	require.NoError(t, err)
	require.Equal(t, first, second, "core deterministic encoding sorts keys")

	decoded, err := cborCodec{}.Decode(first)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, decoded.Keys())
}

func TestCBOR_IntegersUseIntegerEncoding(t *testing.T) {
	data, err := cborCodec{}.Encode(Number(10))
	require.NoError(t, err)
	require.Equal(t, []byte{0x0a}, data)

	data, err = cborCodec{}.Encode(Number(-1))
	require.NoError(t, err)
	require.Equal(t, []byte{0x20}, data)
}

func TestCBOR_DecodeBytesAsBase64(t *testing.T) {
	// h'0102' : byte string of length 2
	v, err := cborCodec{}.Decode([]byte{0x42, 0x01, 0x02})
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, "AQI=", s)
}

// ============================================================
// zstd
// ============================================================

func TestCompressed_WrapsInner(t *testing.T) {
	codec := Compressed(jsonCodec{})
	require.Equal(t, "json+zstd", codec.Name())

	big := List()
	for i := 0; i < 200; i++ {
		big.Append(String("repeated payload"))
	}

	data, err := codec.Encode(big)
	require.NoError(t, err)

	plain, err := jsonCodec{}.Encode(big)
	require.NoError(t, err)
	require.Less(t, len(data), len(plain))

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	require.True(t, Equal(big, decoded))
}
