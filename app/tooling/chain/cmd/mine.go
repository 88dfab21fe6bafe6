package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ardanlabs/hashchain/foundation/blockchain/chain"
	"github.com/ardanlabs/hashchain/foundation/blockchain/codec"
	"github.com/ardanlabs/hashchain/foundation/blockchain/genesis"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

// ErrChainExists is returned when mining a new chain would replace the chain
// already stored in the file.
var ErrChainExists = errors.New("chain file already exists, use --append to extend it or --force to replace it")

var (
	difficulty  uint
	genesisPath string
	appendChain bool
	force       bool
)

var mineCmd = &cobra.Command{
	Use:   "mine [payload...]",
	Short: "Mine hex payloads into a chain file.",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().UintVarP(&difficulty, "difficulty", "d", 4, "Leading zero bits each block hash needs.")
	mineCmd.Flags().StringVarP(&genesisPath, "genesis", "g", "", "Genesis file with the difficulty and first payloads.")
	mineCmd.Flags().BoolVarP(&appendChain, "append", "a", false, "Append to the existing chain file.")
	mineCmd.Flags().BoolVar(&force, "force", false, "Replace an existing chain file with the new chain.")

	// An appended chain keeps the difficulty it was mined at and a genesis
	// file carries its own.
	mineCmd.MarkFlagsMutuallyExclusive("difficulty", "genesis", "append")
	mineCmd.MarkFlagsMutuallyExclusive("force", "append")
}

func mineRun(cmd *cobra.Command, args []string) error {
	var payloads [][]byte
	var ch *chain.Chain

	switch {
	case appendChain:
		var err error
		if ch, err = codec.ReadFile(chainPath); err != nil {
			return fmt.Errorf("reading chain: %w", err)
		}

		// Never build on top of a chain that can't be trusted.
		if err := ch.Verify(evHandler()); err != nil {
			return fmt.Errorf("verifying chain: %w", err)
		}

	default:

		// Check before mining so no work is wasted. The write below is
		// exclusive as well.
		if !force {
			if _, err := os.Stat(chainPath); err == nil {
				return fmt.Errorf("%s: %w", chainPath, ErrChainExists)
			}
		}

		if genesisPath != "" {
			gen, err := genesis.Load(genesisPath)
			if err != nil {
				return fmt.Errorf("loading genesis: %w", err)
			}

			if ch, err = chain.New(*gen.Difficulty); err != nil {
				return err
			}

			for _, payload := range gen.Payloads {
				payloads = append(payloads, payload)
			}
			break
		}

		var err error
		if ch, err = chain.New(difficulty); err != nil {
			return err
		}
	}

	for _, arg := range args {
		payload, err := hexutil.Decode(arg)
		if err != nil {
			return fmt.Errorf("decoding payload %q: %w", arg, err)
		}
		payloads = append(payloads, payload)
	}

	for _, payload := range payloads {
		block, err := ch.Push(payload, evHandler())
		if err != nil {
			return fmt.Errorf("mining block: %w", err)
		}
		fmt.Println(block)
	}

	if err := os.MkdirAll(filepath.Dir(chainPath), 0755); err != nil {
		return err
	}

	if err := writeChain(ch); err != nil {
		return fmt.Errorf("writing chain: %w", err)
	}

	log.Infow("mine", "status", "chain written", "path", chainPath, "blocks", len(ch.Blocks), "traceid", traceID)

	return nil
}

// writeChain stores the chain. Only an append or an explicit force may
// replace what is already in the file.
func writeChain(ch *chain.Chain) error {
	if appendChain || force {
		return codec.WriteFile(chainPath, ch)
	}

	err := codec.CreateFile(chainPath, ch)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", chainPath, ErrChainExists)
	}

	return err
}
