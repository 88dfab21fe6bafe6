package cmd

import (
	"fmt"

	"github.com/ardanlabs/hashchain/foundation/blockchain/codec"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print every block in the chain file.",
	RunE:  printRun,
}

func init() {
	rootCmd.AddCommand(printCmd)
}

func printRun(cmd *cobra.Command, args []string) error {
	ch, err := codec.ReadFile(chainPath)
	if err != nil {
		return fmt.Errorf("reading chain: %w", err)
	}

	fmt.Printf("Chain: [difficulty=%d, blocks=%d]\n", ch.Difficulty, len(ch.Blocks))
	for _, block := range ch.Blocks {
		fmt.Println(block)
	}

	return nil
}
