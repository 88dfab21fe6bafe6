// Package codec serializes a chain to and from its JSON document form. The
// codec is structural only: it never recomputes or verifies hashes, so call
// Verify on a loaded chain before trusting it.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/hashchain/foundation/blockchain/chain"
	"github.com/ardanlabs/hashchain/foundation/blockchain/signature"
	"github.com/ardanlabs/hashchain/foundation/validate"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Version identifies the block encoding the document's hashes were computed
// with. It must change if chain.Block.Encode ever changes.
const Version = 1

// ErrDeserialization is returned when data can't be turned back into a chain.
var ErrDeserialization = errors.New("could not deserialize chain")

// =============================================================================

// ChainFS represents what is written for a chain.
type ChainFS struct {
	Version    *uint      `json:"version" validate:"required,eq=1"`
	Difficulty *uint      `json:"difficulty" validate:"required,max=256"`
	Blocks     []*BlockFS `json:"blocks" validate:"required,dive,required"`
}

// BlockFS represents what is written for each block.
type BlockFS struct {
	Index    *uint64         `json:"index" validate:"required"`
	Nonce    *uint32         `json:"nonce" validate:"required"`
	Payload  *hexutil.Bytes  `json:"payload" validate:"required"`
	PrevHash *signature.Hash `json:"prev_hash" validate:"required"`
}

// NewChainFS constructs the value to serialize.
func NewChainFS(c *chain.Chain) ChainFS {
	version := uint(Version)
	difficulty := c.Difficulty

	blocks := make([]*BlockFS, len(c.Blocks))
	for i, block := range c.Blocks {
		blocks[i] = NewBlockFS(block)
	}

	return ChainFS{
		Version:    &version,
		Difficulty: &difficulty,
		Blocks:     blocks,
	}
}

// NewBlockFS constructs the value to serialize for a block.
func NewBlockFS(block chain.Block) *BlockFS {
	index := block.Index
	nonce := block.Nonce
	payload := hexutil.Bytes(block.Payload)
	prevHash := block.PrevHash

	return &BlockFS{
		Index:    &index,
		Nonce:    &nonce,
		Payload:  &payload,
		PrevHash: &prevHash,
	}
}

// ToChain converts a ChainFS into a Chain.
func ToChain(chainFS ChainFS) (*chain.Chain, error) {
	if err := validate.Check(chainFS); err != nil {
		return nil, err
	}

	c := chain.Chain{
		Difficulty: *chainFS.Difficulty,
	}

	for _, blockFS := range chainFS.Blocks {
		c.Blocks = append(c.Blocks, ToBlock(*blockFS))
	}

	return &c, nil
}

// ToBlock converts a validated BlockFS into a Block.
func ToBlock(blockFS BlockFS) chain.Block {

	// The chain stores an empty payload as nil.
	var payload []byte
	if len(*blockFS.Payload) > 0 {
		payload = []byte(*blockFS.Payload)
	}

	return chain.Block{
		Index:    *blockFS.Index,
		Nonce:    *blockFS.Nonce,
		Payload:  payload,
		PrevHash: *blockFS.PrevHash,
	}
}

// =============================================================================

// Marshal serializes the chain.
func Marshal(c *chain.Chain) ([]byte, error) {
	return json.Marshal(NewChainFS(c))
}

// MarshalIndent serializes the chain in a more human readable format.
func MarshalIndent(c *chain.Chain) ([]byte, error) {
	return json.MarshalIndent(NewChainFS(c), "", "  ")
}

// Unmarshal reconstructs a chain from its serialized form. Nothing is
// returned unless the whole document is well formed.
func Unmarshal(data []byte) (*chain.Chain, error) {
	var chainFS ChainFS
	if err := json.Unmarshal(data, &chainFS); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}

	c, err := ToChain(chainFS)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}

	return c, nil
}

// =============================================================================

// WriteFile takes the specified chain and stores it on disk at the path,
// replacing any chain already stored there.
func WriteFile(path string, c *chain.Chain) error {
	return writeFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, c)
}

// CreateFile stores a new chain on disk at the path. It fails with an error
// matching fs.ErrExist if a file is already there.
func CreateFile(path string, c *chain.Chain) error {
	return writeFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, c)
}

// writeFile marshals the chain and writes it to the file opened with flag.
func writeFile(path string, flag int, c *chain.Chain) error {

	// Marshal the chain for writing to disk in a more human readable format.
	data, err := MarshalIndent(c)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, flag, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	// Write the chain to disk.
	if _, err := f.Write(data); err != nil {
		return err
	}

	return f.Close()
}

// ReadFile reads the chain stored on disk at the path.
func ReadFile(path string) (*chain.Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Unmarshal(data)
}
