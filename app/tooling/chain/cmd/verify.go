package cmd

import (
	"fmt"

	"github.com/ardanlabs/hashchain/foundation/blockchain/codec"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the chain file.",
	RunE:  verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyRun(cmd *cobra.Command, args []string) error {
	ch, err := codec.ReadFile(chainPath)
	if err != nil {
		return fmt.Errorf("reading chain: %w", err)
	}

	if err := ch.Verify(evHandler()); err != nil {
		fmt.Println("Chain error:", err)
		return fmt.Errorf("verifying chain: %w", err)
	}

	fmt.Println("Chain ok")

	return nil
}
