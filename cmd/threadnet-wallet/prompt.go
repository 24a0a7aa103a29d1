package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Klingon-tech/threadnet-wallet/config"
	"github.com/Klingon-tech/threadnet-wallet/internal/rpcclient"
	"github.com/Klingon-tech/threadnet-wallet/pkg/types"
)

// cmdPrompt runs an interactive session against one account. The
// password is asked once; commands reuse it until exit.
func cmdPrompt(client *rpcclient.Client, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)

	if *walletName == "" {
		fatal("Usage: threadnet-wallet prompt --wallet <name>")
	}

	s, err := newSession(client, cfg, *walletName)
	if err != nil {
		fatal("%v", err)
	}
	defer s.close()

	fmt.Printf("Account %s on %s. Type 'help' for commands, 'exit' to leave.\n", s.name, cfg.Network)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", s.name)
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if err := s.runPromptCommand(fields[0], fields[1:]); err != nil {
			if err == errExit {
				return
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

// errExit signals a clean exit from the prompt loop.
var errExit = fmt.Errorf("exit")

func (s *session) runPromptCommand(cmd string, args []string) error {
	switch cmd {
	case "address":
		return s.newAddress()
	case "list-addresses":
		return s.listAddresses()
	case "balance":
		return s.balance()
	case "list-transactions":
		return s.listTransactions(0, 0)
	case "send":
		if len(args) != 2 {
			return fmt.Errorf("usage: send <address> <amount>")
		}
		recipient, err := types.ParseAddress(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipient address: %w", err)
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		return s.send(recipient.String(), amount)
	case "send-native":
		if len(args) != 3 {
			return fmt.Errorf("usage: send-native <address> <token_id> <amount>")
		}
		recipient, err := types.ParseAddress(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipient address: %w", err)
		}
		token, err := types.ParseTokenID(args[1])
		if err != nil {
			return fmt.Errorf("invalid token ID: %w", err)
		}
		amount, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid token amount: %w", err)
		}
		if amount > config.MaxTokenAmount {
			return fmt.Errorf("token amount exceeds maximum %d", uint64(config.MaxTokenAmount))
		}
		return s.sendToken(recipient.String(), token.String(), amount)
	case "sync":
		return s.sync()
	case "last-sync":
		return s.lastSync()
	case "faucet":
		url := ""
		if len(args) > 0 {
			url = args[0]
		}
		return s.faucet(url)
	case "help":
		promptHelp()
		return nil
	case "exit", "quit":
		return errExit
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func promptHelp() {
	fmt.Print(`Commands:
  address                             Generate a new deposit address
  list-addresses                      List addresses
  balance                             Show balance
  list-transactions                   List transactions
  send <address> <amount>             Send base coins (decimal amount)
  send-native <address> <token> <n>   Send native tokens (raw units)
  sync                                Sync with the chain
  last-sync                           Show when the account last synced
  faucet [url]                        Request test funds
  help                                Show this help
  exit                                Leave the prompt
`)
}
