package interchange

import (
	"github.com/klauspost/compress/zstd"
)

// zstdEncoder and zstdDecoder are shared by every compressed codec;
// both are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("interchange: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("interchange: zstd decoder initialization failed: " + err.Error())
	}
}

// compressedCodec frames another codec's output in a zstd stream.
type compressedCodec struct {
	inner Codec
}

// Compressed wraps inner so its output is zstd-compressed. The
// wrapper is registered as "<inner>+zstd".
func Compressed(inner Codec) Codec {
	return compressedCodec{inner: inner}
}

func (c compressedCodec) Name() string { return c.inner.Name() + "+zstd" }

func (c compressedCodec) Encode(v *Value) ([]byte, error) {
	data, err := c.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

func (c compressedCodec) Decode(data []byte) (*Value, error) {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, &ParseError{Message: "zstd: " + err.Error()}
	}
	return c.inner.Decode(raw)
}
