// Package cmd contains the chain tool commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/ardanlabs/hashchain/foundation/blockchain/chain"
	"github.com/ardanlabs/hashchain/foundation/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	chainPath string
	verbose   bool
)

// log and traceID are set up before any command runs.
var (
	log     *zap.SugaredLogger
	traceID string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&chainPath, "file", "f", "zblock/chain.json", "Path to the chain file.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log mining and verification events.")
}

var rootCmd = &cobra.Command{
	Use:           "chain",
	Short:         "Mine, verify and print hash chains",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = logger.New("CHAIN", "stderr")
		if err != nil {
			return err
		}
		traceID = uuid.NewString()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

// Execute runs the requested command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Errorw("chain", "ERROR", err, "traceid", traceID)
			log.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// evHandler returns the event handler for the chain package. Events are only
// logged when verbose output was asked for.
func evHandler() chain.EventHandler {
	if !verbose {
		return nil
	}

	return func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...), "traceid", traceID)
	}
}
