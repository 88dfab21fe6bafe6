// Package chain implements an in memory, append only chain of blocks that
// are linked by hash and sealed with proof of work.
package chain

import (
	"github.com/ardanlabs/hashchain/foundation/blockchain/signature"
)

// maxDifficulty is the number of bits in a hash.
const maxDifficulty = signature.HashLength * 8

// EventHandler is the function signature used by the chain to report what
// it is doing. The application decides where those messages go.
type EventHandler func(v string, args ...any)

// orDiscard returns a usable handler for a possibly nil one.
func (ev EventHandler) orDiscard() EventHandler {
	if ev == nil {
		return func(string, ...any) {}
	}
	return ev
}

// =============================================================================

// Chain represents the ordered set of blocks and the difficulty every block
// must be mined at. Blocks is exported so the chain can be loaded and
// inspected by other packages; only Push appends to it.
type Chain struct {
	Difficulty uint
	Blocks     []Block
}

// New constructs an empty chain for the specified difficulty.
func New(difficulty uint) (*Chain, error) {
	if difficulty > maxDifficulty {
		return nil, ErrInvalidDifficulty
	}

	return &Chain{Difficulty: difficulty}, nil
}

// Push mines a new block holding the payload on top of the latest block and
// appends it to the chain.
func (c *Chain) Push(payload []byte, ev EventHandler) (Block, error) {
	ev = ev.orDiscard()

	// The chain owns its payloads. An empty payload is kept as nil.
	var data []byte
	if len(payload) > 0 {
		data = append(data, payload...)
	}

	var prevBlock *Block
	if latest, exists := c.LatestBlock(); exists {
		prevBlock = &latest
	}

	block, err := POW(prevBlock, data, c.Difficulty, ev)
	if err != nil {
		return Block{}, err
	}

	c.Blocks = append(c.Blocks, block)
	ev("chain: Push: added block to chain: blk[%d]", block.Index)

	return block, nil
}

// LatestBlock returns the last block in the chain.
func (c *Chain) LatestBlock() (Block, bool) {
	if len(c.Blocks) == 0 {
		return Block{}, false
	}

	return c.Blocks[len(c.Blocks)-1], true
}

// Verify checks every block in the chain at the chain's difficulty.
func (c *Chain) Verify(ev EventHandler) error {
	return Verify(c.Blocks, c.Difficulty, ev)
}

// Verify walks the blocks in order and checks that each block sits at its
// own index, links to the hash of the block before it and solves the POW
// puzzle. The first problem found is returned.
func Verify(blocks []Block, difficulty uint, ev EventHandler) error {
	ev = ev.orDiscard()

	prevHash := signature.ZeroHash
	for i, block := range blocks {
		position := uint64(i)

		ev("chain: Verify: validate: blk[%d]: check: block index is its position", position)

		if block.Index != position {
			return &IndexMismatchError{Position: position, Index: block.Index}
		}

		ev("chain: Verify: validate: blk[%d]: check: previous hash does match previous block", position)

		if block.PrevHash != prevHash {
			return &BrokenLinkError{Index: position, Expected: prevHash, Found: block.PrevHash}
		}

		ev("chain: Verify: validate: blk[%d]: check: block hash has been solved", position)

		hash := block.Hash()
		if !signature.IsHashSolved(difficulty, hash) {
			return &DifficultyNotMetError{
				Index:      position,
				Hash:       hash,
				Difficulty: difficulty,
				ZeroBits:   signature.LeadingZeroBits(hash),
			}
		}

		prevHash = hash
	}

	return nil
}
