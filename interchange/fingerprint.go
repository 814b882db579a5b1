package interchange

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 fingerprint of a value's canonical text.
type Digest [32]byte

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// fingerprintKey separates value fingerprints from any other BLAKE3
// use of the same bytes. ASCII, zero-padded to 32 bytes.
var fingerprintKey = [32]byte{
	'c', 'o', 'r', 'e', 'j', 's', '.', 'i', 'n', 't', 'e', 'r', 'c', 'h', 'a', 'n',
	'g', 'e', '.', 'v', 'a', 'l', 'u', 'e', 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint hashes the canonical text of v (see Serialize). Two
// values with the same fields in the same order have the same
// fingerprint.
func Fingerprint(v any) (Digest, error) {
	text, err := Serialize(v)
	if err != nil {
		return Digest{}, err
	}
	return FingerprintText(text), nil
}

// FingerprintText hashes text that is already canonical.
func FingerprintText(text string) Digest {
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("interchange: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(text))
	var d Digest
	copy(d[:], hasher.Sum(nil))
	return d
}
