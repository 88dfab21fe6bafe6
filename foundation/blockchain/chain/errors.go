package chain

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/hashchain/foundation/blockchain/signature"
)

// ErrNonceSpaceExhausted is returned from mining when no nonce in the
// searched range solves the puzzle. Over the full 32 bit space at a sane
// difficulty this can't happen, so callers should treat it as fatal.
var ErrNonceSpaceExhausted = errors.New("unable to find nonce despite exhaustive search")

// ErrChainFull is returned when the previous block already holds the largest
// index a block can have.
var ErrChainFull = errors.New("chain is full, no index left for a new block")

// ErrInvalidDifficulty is returned when the difficulty asks for more leading
// zero bits than a hash has.
var ErrInvalidDifficulty = fmt.Errorf("difficulty must be between 0 and %d", maxDifficulty)

// =============================================================================

// IndexMismatchError is returned from Verify when a block's stored index
// disagrees with its position in the chain.
type IndexMismatchError struct {
	Position uint64
	Index    uint64
}

// Error implements the error interface.
func (e *IndexMismatchError) Error() string {
	return fmt.Sprintf("index mismatch at %d, expected %d but found %d", e.Position, e.Position, e.Index)
}

// BrokenLinkError is returned from Verify when a block's previous hash does
// not match the hash of the block before it.
type BrokenLinkError struct {
	Index    uint64
	Expected signature.Hash
	Found    signature.Hash
}

// Error implements the error interface.
func (e *BrokenLinkError) Error() string {
	return fmt.Sprintf("link broken at %d, expected hash %s but found %s", e.Index, e.Expected, e.Found)
}

// DifficultyNotMetError is returned from Verify when a block's own hash does
// not solve the POW puzzle at the chain's difficulty.
type DifficultyNotMetError struct {
	Index      uint64
	Hash       signature.Hash
	Difficulty uint
	ZeroBits   uint
}

// Error implements the error interface.
func (e *DifficultyNotMetError) Error() string {
	return fmt.Sprintf("difficulty not met at %d, hash %s has %d leading zero bits but %d are required", e.Index, e.Hash, e.ZeroBits, e.Difficulty)
}
