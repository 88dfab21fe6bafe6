// This program mines a small demo chain, prints it, verifies it and then
// shows that changing a mined block is detected.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/hashchain/foundation/blockchain/chain"
	"github.com/ardanlabs/hashchain/foundation/blockchain/codec"
	"github.com/ardanlabs/hashchain/foundation/logger"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger. Logs go to stderr so the chain
	// output on stdout stays readable.
	log, err := logger.New("DEMO", "stderr")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Chain struct {
			Difficulty uint     `conf:"default:4"`
			Payloads   []string `conf:"default:0x00000000;0x00000001;0x00000002"`
			Tamper     bool     `conf:"default:true"`
		}
		Output struct {
			Path string `conf:"help:file to write the serialized chain to"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "hashchain demo",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "DEMO"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	traceID := uuid.NewString()

	log.Infow("starting demo", "version", build, "traceid", traceID)
	defer log.Infow("demo complete", "traceid", traceID)

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out, "traceid", traceID)

	payloads := make([][]byte, len(cfg.Chain.Payloads))
	for i, p := range cfg.Chain.Payloads {
		payload, err := hexutil.Decode(p)
		if err != nil {
			return fmt.Errorf("decoding payload %q: %w", p, err)
		}
		payloads[i] = payload
	}

	// The chain package accepts a function of this signature to allow the
	// application to log what mining and verification are doing.
	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...), "traceid", traceID)
	}

	// =========================================================================
	// Mine The Chain

	ch, err := chain.New(cfg.Chain.Difficulty)
	if err != nil {
		return err
	}

	for _, payload := range payloads {
		if _, err := ch.Push(payload, ev); err != nil {
			return fmt.Errorf("mining block: %w", err)
		}
		printChain(ch)
	}

	verifyChain(ch, ev)

	// =========================================================================
	// Serialize The Chain

	data, err := codec.Marshal(ch)
	if err != nil {
		return fmt.Errorf("serializing chain: %w", err)
	}
	fmt.Println(string(data))

	if cfg.Output.Path != "" {
		if err := codec.WriteFile(cfg.Output.Path, ch); err != nil {
			return fmt.Errorf("writing chain: %w", err)
		}
		log.Infow("chain written", "path", cfg.Output.Path, "traceid", traceID)
	}

	// =========================================================================
	// Tamper With The Chain

	if cfg.Chain.Tamper && len(ch.Blocks) > 1 {
		fmt.Println("Changing block 1")
		ch.Blocks[1].Payload = []byte{0, 0, 0, 0}
		verifyChain(ch, ev)
	}

	return nil
}

// printChain writes every block in the chain to stdout.
func printChain(ch *chain.Chain) {
	for _, block := range ch.Blocks {
		fmt.Println(block)
	}
	fmt.Print("\n")
}

// verifyChain reports the result of verifying the chain to stdout.
func verifyChain(ch *chain.Chain, ev chain.EventHandler) {
	if err := ch.Verify(ev); err != nil {
		fmt.Println("Chain error:", err)
		return
	}
	fmt.Println("Chain ok")
}
