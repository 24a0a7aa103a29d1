// threadnet-wallet is a command-line client for Threadnet wallet accounts.
// The wallet engine runs inside a threadnetd node; this tool manages local
// key material and drives the engine over JSON-RPC.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/Klingon-tech/threadnet-wallet/config"
	"github.com/Klingon-tech/threadnet-wallet/internal/log"
	"github.com/Klingon-tech/threadnet-wallet/internal/rpcclient"
	"github.com/Klingon-tech/threadnet-wallet/pkg/types"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	rpcURL := ""
	dataDir := ""
	network := ""
	configFile := ""

	// Scan for --rpc, --datadir, --network, and --config before the subcommand.
	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--rpc" && len(args) > 1:
			rpcURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--rpc="):
			rpcURL = args[0][len("--rpc="):]
			args = args[1:]
		case args[0] == "--datadir" && len(args) > 1:
			dataDir = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--datadir="):
			dataDir = args[0][len("--datadir="):]
			args = args[1:]
		case args[0] == "--network" && len(args) > 1:
			network = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			network = args[0][len("--network="):]
			args = args[1:]
		case args[0] == "--config" && len(args) > 1:
			configFile = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--config="):
			configFile = args[0][len("--config="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	cfg := loadConfig(rpcURL, dataDir, network, configFile)

	// Set address HRP based on network.
	if cfg.Network == config.Testnet {
		types.SetAddressHRP(types.TestnetHRP)
	} else {
		types.SetAddressHRP(types.MainnetHRP)
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	client := rpcclient.New(cfg.RPCURL)
	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "create":
		cmdCreate(cmdArgs, cfg)
	case "import":
		cmdImport(cmdArgs, cfg)
	case "list":
		cmdList(cfg)
	case "address":
		cmdAddress(client, cfg, cmdArgs)
	case "list-addresses":
		cmdListAddresses(client, cfg, cmdArgs)
	case "balance":
		cmdBalance(client, cfg, cmdArgs)
	case "list-transactions":
		cmdListTransactions(client, cfg, cmdArgs)
	case "send":
		cmdSend(client, cfg, cmdArgs)
	case "send-native":
		cmdSendNative(client, cfg, cmdArgs)
	case "sync":
		cmdSync(client, cfg, cmdArgs)
	case "faucet":
		cmdFaucet(client, cfg, cmdArgs)
	case "export-key":
		cmdExportKey(cmdArgs, cfg)
	case "sign":
		cmdSign(cmdArgs, cfg)
	case "verify":
		cmdVerify(cmdArgs)
	case "prompt":
		cmdPrompt(client, cfg, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration. Precedence, lowest
// first: per-network defaults, wallet.conf, command-line flags.
func loadConfig(rpcURL, dataDir, network, configFile string) *config.Config {
	baseDir := dataDir
	if baseDir == "" {
		baseDir = config.DefaultDataDir()
	}
	path := configFile
	if path == "" {
		path = filepath.Join(baseDir, "wallet.conf")
	}

	values, err := config.LoadFile(path)
	if err != nil {
		fatal("load config file %s: %v", path, err)
	}

	// The network decides the defaults, so resolve it first.
	net := network
	if net == "" {
		net = values["network"]
	}
	if net == "" {
		net = string(config.Mainnet)
	}
	if net != string(config.Mainnet) && net != string(config.Testnet) {
		fatal("unknown network %q (use mainnet or testnet)", net)
	}

	cfg := config.Default(config.NetworkType(net))
	if err := config.ApplyFileConfig(cfg, values); err != nil {
		fatal("apply config file %s: %v", path, err)
	}

	// Flags override the file.
	cfg.Network = config.NetworkType(net)
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if rpcURL != "" {
		cfg.RPCURL = rpcURL
	}
	return cfg
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: threadnet-wallet [global flags] <command> [flags]

Global flags:
  --rpc <url>         Node RPC endpoint (default: http://127.0.0.1:8545)
  --datadir <path>    Data directory (default: ~/.threadnet)
  --network <net>     mainnet (default) or testnet
  --config <path>     Config file (default: <datadir>/wallet.conf)

Account commands (need a node running the wallet engine):
  address --wallet <w>            Generate a new deposit address
  list-addresses --wallet <w>     List the account's addresses
  balance --wallet <w>            Show the account balance
  list-transactions --wallet <w>  List the account's transactions
  send --wallet <w> --to <addr> --amount <amt>
                                  Send base coins (decimal amount)
  send-native --wallet <w> --to <addr> --token <id> --amount <n>
                                  Send native tokens (raw units)
  sync --wallet <w>               Sync the account with the chain
  faucet --wallet <w> [--url <u>] Request test funds from the faucet
  prompt --wallet <w>             Interactive account session

Local commands:
  create --name <n>               Create a new wallet
  import --name <n> --mnemonic "..."
                                  Import wallet from mnemonic
  list                            List wallets
  export-key --wallet <w> [--change 0] [--index 0] [--output path]
                                  Export a private key
  sign --wallet <w> --message <m> [--change 0] [--index 0]
                                  Sign a message
  verify --message <m> --signature <hex> --pubkey <hex>
                                  Verify a message signature
`)
}

// ── Formatting helpers ─────────────────────────────────────────────────

// formatAmount converts raw units to a human-readable decimal string.
func formatAmount(units uint64) string {
	whole := units / config.Coin
	frac := units % config.Coin
	return fmt.Sprintf("%d.%06d", whole, frac)
}

// parseAmount converts a decimal string to raw units.
func parseAmount(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("negative amount")
	}

	parts := strings.SplitN(s, ".", 2)

	whole, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid whole part: %w", err)
	}

	var frac uint64
	if len(parts) == 2 {
		fracStr := parts[1]
		if len(fracStr) > config.Decimals {
			return 0, fmt.Errorf("too many decimal places (max %d)", config.Decimals)
		}
		// Pad to Decimals digits.
		fracStr = fracStr + strings.Repeat("0", config.Decimals-len(fracStr))
		frac, err = strconv.ParseUint(fracStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid fractional part: %w", err)
		}
	}

	// Check overflow.
	if whole > math.MaxUint64/config.Coin {
		return 0, fmt.Errorf("amount too large")
	}
	result := whole * config.Coin
	if result > math.MaxUint64-frac {
		return 0, fmt.Errorf("amount too large")
	}

	return result + frac, nil
}

// ── Password helper ─────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
