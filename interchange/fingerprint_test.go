package interchange

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func TestFingerprint_StableForSameText(t *testing.T) {
	a := Map(MapEntry{Key: "x", Value: Number(1)})
	b, err := Parse(`{"x":1}`)
	require.NoError(t, err)

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	require.Equal(t, fa, fb)
	require.Len(t, fa.String(), 64)
}

func TestFingerprint_OrderSensitive(t *testing.T) {
	ab := Map(
		MapEntry{Key: "a", Value: Number(1)},
		MapEntry{Key: "b", Value: Number(2)},
	)
	ba := Map(
		MapEntry{Key: "b", Value: Number(2)},
		MapEntry{Key: "a", Value: Number(1)},
	)

	fab, err := Fingerprint(ab)
	require.NoError(t, err)
	fba, err := Fingerprint(ba)
	require.NoError(t, err)
	require.NotEqual(t, fab, fba)
}

func TestFingerprint_Errors(t *testing.T) {
	_, err := Fingerprint(Number(math.Inf(1)))
	require.ErrorIs(t, err, ErrUnrepresentable)
}

func TestFingerprintText(t *testing.T) {
	require.NotEqual(t, FingerprintText("1"), FingerprintText("2"))
	require.Equal(t, FingerprintText(`{"x":1}`), FingerprintText(`{"x":1}`))
}

func TestFingerprintText_Keyed(t *testing.T) {
	unkeyed := blake3.Sum256([]byte(`{"x":1}`))
	require.NotEqual(t, Digest(unkeyed), FingerprintText(`{"x":1}`))
}
