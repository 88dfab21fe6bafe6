package chain

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ardanlabs/hashchain/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Sizes of the fixed width fields in a block encoding.
const (
	indexSize = 8
	nonceSize = 4
)

// Block represents one entry in the ledger. The hash of a block is never
// stored, it is recomputed from these fields when needed.
type Block struct {
	Index    uint64         // Position of the block in the chain, starting at 0.
	Nonce    uint32         // Value identified to solve the hash solution.
	Payload  []byte         // Opaque ledger content for this block.
	PrevHash signature.Hash // Hash of the previous block, ZeroHash for genesis.
}

// POW constructs a new Block on top of the previous block and performs the
// work to find a nonce that solves the cryptographic POW puzzle. A nil
// previous block means the genesis block is being mined. The block is not
// appended to any chain.
func POW(prevBlock *Block, payload []byte, difficulty uint, ev EventHandler) (Block, error) {
	if difficulty > maxDifficulty {
		return Block{}, ErrInvalidDifficulty
	}
	ev = ev.orDiscard()

	// When mining the first block, the previous block's hash will be zero.
	nb := Block{
		Payload:  payload,
		PrevHash: signature.ZeroHash,
	}
	if prevBlock != nil {
		if prevBlock.Index == math.MaxUint64 {
			return Block{}, ErrChainFull
		}
		nb.Index = prevBlock.Index + 1
		nb.PrevHash = prevBlock.Hash()
	}

	// Perform the proof of work mining operation over the whole nonce space.
	if err := nb.performPOW(difficulty, 0, math.MaxUint32, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for the block,
// trying every nonce in [first, last] in ascending order. Pointer semantics
// are being used since a nonce is being discovered.
func (b *Block) performPOW(difficulty uint, first, last uint32, ev EventHandler) error {
	ev("chain: performPOW: MINING: started: blk[%d]: difficulty[%d]", b.Index, difficulty)

	// The encoding only differs in the nonce bytes between attempts, so it
	// is built once and patched in place.
	data := b.Encode()

	// The counter is wider than the nonce so the loop can include last
	// without wrapping around.
	for n := uint64(first); n <= uint64(last); n++ {
		binary.BigEndian.PutUint32(data[indexSize:indexSize+nonceSize], uint32(n))

		hash := signature.Digest(data)
		if !signature.IsHashSolved(difficulty, hash) {
			continue
		}

		b.Nonce = uint32(n)

		ev("chain: performPOW: MINING: SOLVED: blk[%d]: prevBlk[%s]: newBlk[%s]", b.Index, b.PrevHash, hash)
		ev("chain: performPOW: MINING: attempts[%d]", n-uint64(first)+1)

		return nil
	}

	ev("chain: performPOW: MINING: EXHAUSTED: blk[%d]: nonces[%d-%d]", b.Index, first, last)

	return fmt.Errorf("blk[%d]: nonces[%d-%d]: %w", b.Index, first, last, ErrNonceSpaceExhausted)
}

// Encode returns the canonical byte encoding of the block: the index and
// nonce as big endian integers followed by the raw payload and the raw
// previous hash.
//
// NOTE: There is no length prefix between the payload and the previous
// hash, so two blocks that split the same bytes differently between those
// fields encode identically. Changing this changes the hash of every block
// ever mined and requires a new codec.Version.
func (b Block) Encode() []byte {
	data := make([]byte, 0, indexSize+nonceSize+len(b.Payload)+signature.HashLength)
	data = binary.BigEndian.AppendUint64(data, b.Index)
	data = binary.BigEndian.AppendUint32(data, b.Nonce)
	data = append(data, b.Payload...)
	data = append(data, b.PrevHash[:]...)

	return data
}

// Hash returns the unique hash for the Block.
func (b Block) Hash() signature.Hash {
	return signature.Digest(b.Encode())
}

// String renders the block for humans.
func (b Block) String() string {
	return fmt.Sprintf("Block %d: [nonce=%d, payload=%s, prev=%s, hash=%s]", b.Index, b.Nonce, hexutil.Encode(b.Payload), b.PrevHash, b.Hash())
}
