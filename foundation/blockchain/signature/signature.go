// Package signature provides helper functions for handling the blockchain
// hashing needs.
package signature

import (
	"crypto/sha256"
	"math/bits"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HashLength is the number of bytes in a hash.
const HashLength = sha256.Size

// Hash represents the 32 byte SHA-256 digest of a block encoding.
type Hash [HashLength]byte

// ZeroHash represents a hash code of zeros. It is used as the previous
// hash of the genesis block.
var ZeroHash Hash

// =============================================================================

// Digest returns the SHA-256 hash of the specified data.
func Digest(data []byte) Hash {
	return sha256.Sum256(data)
}

// LeadingZeroBits counts the zero bits at the front of the hash. Every zero
// byte counts for 8 and the first non-zero byte contributes its own leading
// zeros before the count stops.
func LeadingZeroBits(h Hash) uint {
	var zeros uint
	for _, b := range h {
		if b != 0 {
			return zeros + uint(bits.LeadingZeros8(b))
		}
		zeros += 8
	}

	return zeros
}

// IsHashSolved checks the hash to make sure it complies with the POW rules.
// The hash needs at least difficulty leading zero bits.
func IsHashSolved(difficulty uint, h Hash) bool {
	return LeadingZeroBits(h) >= difficulty
}

// =============================================================================

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Hex returns the 0x prefixed hex representation of the hash.
func (h Hash) Hex() string {
	return hexutil.Encode(h[:])
}

// String implements the fmt.Stringer interface.
func (h Hash) String() string {
	return h.Hex()
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h Hash) MarshalText() ([]byte, error) {
	return hexutil.Bytes(h[:]).MarshalText()
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// input must be a 0x prefixed hex string of exactly 32 bytes.
func (h *Hash) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Hash", input, h[:])
}
