package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Klingon-tech/threadnet-wallet/config"
	"github.com/Klingon-tech/threadnet-wallet/internal/cache"
	"github.com/Klingon-tech/threadnet-wallet/internal/faucet"
	"github.com/Klingon-tech/threadnet-wallet/internal/rpc"
	"github.com/Klingon-tech/threadnet-wallet/internal/rpcclient"
	"github.com/Klingon-tech/threadnet-wallet/internal/storage"
	"github.com/Klingon-tech/threadnet-wallet/internal/wallet"
	"github.com/Klingon-tech/threadnet-wallet/pkg/types"
)

// session holds everything an account command needs: the RPC client, the
// resolved config, the account credentials, and the local cache. The
// interactive prompt reuses one session across commands.
type session struct {
	client   *rpcclient.Client
	cfg      *config.Config
	name     string
	password string
	cache    *cache.Cache
}

// newSession opens a session for the named account, prompting for the
// password. The local cache is best effort: if it cannot be opened the
// session works without it.
func newSession(client *rpcclient.Client, cfg *config.Config, name string) (*session, error) {
	password, err := readPassword("Enter password: ")
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}

	s := &session{
		client:   client,
		cfg:      cfg,
		name:     name,
		password: string(password),
	}
	c, err := cache.Open(cfg.CacheDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: account cache unavailable: %v\n", err)
	} else {
		s.cache = c
	}
	return s, nil
}

// close releases the cache database.
func (s *session) close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// acct returns the cache namespace for this account, or nil.
func (s *session) acct() *cache.AccountCache {
	if s.cache == nil {
		return nil
	}
	return s.cache.Account(string(s.cfg.Network), s.name)
}

// ── address ─────────────────────────────────────────────────────────────

func (s *session) newAddress() error {
	result, err := s.client.NewAddress(s.name, s.password)
	if err != nil {
		return fmt.Errorf("account_newAddress: %w", err)
	}
	if ac := s.acct(); ac != nil {
		if err := ac.PutAddresses([]rpc.AccountAddressEntry{{
			Index:   result.Index,
			Change:  result.Change,
			Address: result.Address,
		}}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache address: %v\n", err)
		}
	}
	s.recordAddress(result)
	fmt.Printf("New address [%d]: %s\n", result.Index, result.Address)
	return nil
}

// recordAddress mirrors an engine-generated address into the local
// wallet file so provisioning metadata stays in step. Best effort: the
// wallet may exist only on the engine side.
func (s *session) recordAddress(result *rpc.AccountAddressResult) {
	ks, err := wallet.NewKeystore(s.cfg.KeystoreDir())
	if err != nil {
		return
	}
	if !ks.Exists(s.name) {
		return
	}
	wf, err := ks.Load(s.name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to update wallet file: %v\n", err)
		return
	}
	wf.AddAccount(wallet.AccountEntry{
		Index:   result.Index,
		Change:  result.Change,
		Address: result.Address,
	})
	if err := ks.Update(wf); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to update wallet file: %v\n", err)
	}
}

// ── list-addresses ──────────────────────────────────────────────────────

func (s *session) listAddresses() error {
	entries, err := s.fetchAddresses()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No addresses found.")
		return nil
	}
	for _, e := range entries {
		if e.Change == 1 {
			fmt.Printf("  [%d] %s (change)\n", e.Index, e.Address)
		} else {
			fmt.Printf("  [%d] %s\n", e.Index, e.Address)
		}
	}
	return nil
}

// fetchAddresses asks the engine for the address list, refreshing the
// cache on success and falling back to it when the node is unreachable.
func (s *session) fetchAddresses() ([]rpc.AccountAddressEntry, error) {
	result, err := s.client.ListAddresses(s.name, s.password)
	if err == nil {
		if ac := s.acct(); ac != nil {
			if cerr := ac.PutAddresses(result.Addresses); cerr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to cache addresses: %v\n", cerr)
			}
		}
		return result.Addresses, nil
	}

	// RPC-level errors (bad password, unknown account) are not
	// connectivity problems; don't mask them with stale data.
	var rpcErr *rpcclient.RPCError
	if errors.As(err, &rpcErr) {
		return nil, fmt.Errorf("account_listAddresses: %w", err)
	}

	ac := s.acct()
	if ac == nil {
		return nil, fmt.Errorf("account_listAddresses: %w", err)
	}
	entries, cerr := ac.Addresses()
	if cerr != nil || len(entries) == 0 {
		return nil, fmt.Errorf("account_listAddresses: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Warning: node unreachable, showing cached addresses: %v\n", err)
	return entries, nil
}

// ── balance ─────────────────────────────────────────────────────────────

func (s *session) balance() error {
	result, err := s.client.GetBalance(s.name, s.password)
	if err != nil {
		return fmt.Errorf("account_getBalance: %w", err)
	}

	fmt.Printf("Spendable: %s THD\n", formatAmount(result.Spendable))
	fmt.Printf("Total:     %s THD\n", formatAmount(result.Total))
	if result.Immature > 0 {
		fmt.Printf("Immature:  %s THD\n", formatAmount(result.Immature))
	}
	if result.Locked > 0 {
		fmt.Printf("Locked:    %s THD\n", formatAmount(result.Locked))
	}
	if len(result.NativeTokens) > 0 {
		fmt.Println("Native tokens:")
		for _, t := range result.NativeTokens {
			label := t.Symbol
			if label == "" {
				label = t.TokenID
			}
			fmt.Printf("  %s: %d\n", label, t.Amount)
		}
	}
	return nil
}

// ── list-transactions ───────────────────────────────────────────────────

func (s *session) listTransactions(limit, offset int) error {
	entries, err := s.fetchTransactions(limit, offset)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No transactions found.")
		return nil
	}
	for _, e := range entries {
		dir := "sent"
		if e.Incoming {
			dir = "received"
		}
		ts := time.Unix(int64(e.Timestamp), 0).UTC().Format("2006-01-02 15:04:05")
		if e.TokenID != "" {
			fmt.Printf("  [%d] %s  %s  %s %d token %s\n", e.Height, ts, e.TxHash, dir, e.TokenAmount, e.TokenID)
			continue
		}
		fmt.Printf("  [%d] %s  %s  %s %s THD\n", e.Height, ts, e.TxHash, dir, formatAmount(e.Amount))
	}
	return nil
}

func (s *session) fetchTransactions(limit, offset int) ([]rpc.TxHistoryEntry, error) {
	result, err := s.client.ListTransactions(s.name, s.password, limit, offset)
	if err == nil {
		if ac := s.acct(); ac != nil {
			if cerr := ac.PutTransactions(result.Entries); cerr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to cache transactions: %v\n", cerr)
			}
		}
		return result.Entries, nil
	}

	var rpcErr *rpcclient.RPCError
	if errors.As(err, &rpcErr) {
		return nil, fmt.Errorf("account_listTransactions: %w", err)
	}

	ac := s.acct()
	if ac == nil {
		return nil, fmt.Errorf("account_listTransactions: %w", err)
	}
	entries, cerr := ac.Transactions()
	if cerr != nil || len(entries) == 0 {
		return nil, fmt.Errorf("account_listTransactions: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Warning: node unreachable, showing cached transactions: %v\n", err)
	return entries, nil
}

// ── send / send-native ──────────────────────────────────────────────────

func (s *session) send(to string, amount uint64) error {
	result, err := s.client.Send(s.name, s.password, to, amount)
	if err != nil {
		return fmt.Errorf("account_send: %w", err)
	}
	fmt.Printf("Submitted: %s\n", result.TxHash)
	return nil
}

func (s *session) sendToken(to, tokenID string, amount uint64) error {
	result, err := s.client.SendToken(s.name, s.password, to, tokenID, amount)
	if err != nil {
		return fmt.Errorf("account_sendToken: %w", err)
	}
	fmt.Printf("Submitted: %s\n", result.TxHash)
	return nil
}

// ── sync ────────────────────────────────────────────────────────────────

func (s *session) sync() error {
	result, err := s.client.SyncAccount(s.name, s.password)
	if err != nil {
		return fmt.Errorf("account_sync: %w", err)
	}
	if ac := s.acct(); ac != nil {
		// Refresh the local mirror while the node is known reachable.
		var addrs []rpc.AccountAddressEntry
		if listed, err := s.client.ListAddresses(s.name, s.password); err == nil {
			addrs = listed.Addresses
		}
		var txs []rpc.TxHistoryEntry
		if history, err := s.client.ListTransactions(s.name, s.password, 0, 0); err == nil {
			txs = history.Entries
		}
		ac.UpdateFromSync(result.Height, addrs, txs)
	}
	fmt.Printf("Synced to height %d\n", result.Height)
	fmt.Printf("Spendable: %s THD\n", formatAmount(result.Spendable))
	fmt.Printf("Total:     %s THD\n", formatAmount(result.Total))
	return nil
}

// ── faucet ──────────────────────────────────────────────────────────────

func (s *session) faucet(url string) error {
	if url == "" {
		url = s.cfg.FaucetURL
	}
	if url == "" {
		return fmt.Errorf("no faucet configured for %s; pass --url", s.cfg.Network)
	}

	// The faucet funds the account's latest address.
	entries, err := s.fetchAddresses()
	if err != nil {
		return err
	}
	addr := ""
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Change == 0 {
			addr = entries[i].Address
			break
		}
	}
	if addr == "" {
		return fmt.Errorf("generate an address first")
	}

	resp, err := faucet.New(url).Enqueue(addr)
	if err != nil {
		return err
	}
	fmt.Printf("Faucet request accepted for %s\n", addr)
	if resp.WaitingEntries > 0 {
		fmt.Printf("Queue position: %d\n", resp.WaitingEntries)
	}
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}
	return nil
}

// ── CLI wrappers ────────────────────────────────────────────────────────

// walletSession parses the shared --wallet flag, prompts for the
// password, and hands the session to fn. fatal on any error.
func walletSession(client *rpcclient.Client, cfg *config.Config, fsName string, args []string, extra func(fs *flag.FlagSet), fn func(s *session) error) {
	fs := flag.NewFlagSet(fsName, flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	if extra != nil {
		extra(fs)
	}
	fs.Parse(args)

	if *walletName == "" {
		fatal("Usage: threadnet-wallet %s --wallet <name>", fsName)
	}

	s, err := newSession(client, cfg, *walletName)
	if err != nil {
		fatal("%v", err)
	}
	defer s.close()

	if err := fn(s); err != nil {
		s.close()
		fatal("%v", err)
	}
}

func cmdAddress(client *rpcclient.Client, cfg *config.Config, args []string) {
	walletSession(client, cfg, "address", args, nil, func(s *session) error {
		return s.newAddress()
	})
}

func cmdListAddresses(client *rpcclient.Client, cfg *config.Config, args []string) {
	walletSession(client, cfg, "list-addresses", args, nil, func(s *session) error {
		return s.listAddresses()
	})
}

func cmdBalance(client *rpcclient.Client, cfg *config.Config, args []string) {
	walletSession(client, cfg, "balance", args, nil, func(s *session) error {
		return s.balance()
	})
}

func cmdListTransactions(client *rpcclient.Client, cfg *config.Config, args []string) {
	var limit, offset *int
	walletSession(client, cfg, "list-transactions", args, func(fs *flag.FlagSet) {
		limit = fs.Int("limit", 0, "Max entries to show (0 = all)")
		offset = fs.Int("offset", 0, "Entries to skip")
	}, func(s *session) error {
		return s.listTransactions(*limit, *offset)
	})
}

func cmdSend(client *rpcclient.Client, cfg *config.Config, args []string) {
	var toAddr, amountStr *string
	walletSession(client, cfg, "send", args, func(fs *flag.FlagSet) {
		toAddr = fs.String("to", "", "Recipient address")
		amountStr = fs.String("amount", "", "Amount to send (e.g. 1.5)")
	}, func(s *session) error {
		if *toAddr == "" || *amountStr == "" {
			fatal("Usage: threadnet-wallet send --wallet <name> --to <addr> --amount <amt>")
		}
		amount, err := parseAmount(*amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		recipient, err := types.ParseAddress(*toAddr)
		if err != nil {
			return fmt.Errorf("invalid recipient address: %w", err)
		}
		return s.send(recipient.String(), amount)
	})
}

func cmdSendNative(client *rpcclient.Client, cfg *config.Config, args []string) {
	var toAddr, tokenStr *string
	var amount *uint64
	walletSession(client, cfg, "send-native", args, func(fs *flag.FlagSet) {
		toAddr = fs.String("to", "", "Recipient address")
		tokenStr = fs.String("token", "", "Token ID (hex)")
		amount = fs.Uint64("amount", 0, "Token amount (raw units)")
	}, func(s *session) error {
		if *toAddr == "" || *tokenStr == "" || *amount == 0 {
			fatal("Usage: threadnet-wallet send-native --wallet <name> --to <addr> --token <id> --amount <n>")
		}
		if *amount > config.MaxTokenAmount {
			return fmt.Errorf("token amount exceeds maximum %d", uint64(config.MaxTokenAmount))
		}
		recipient, err := types.ParseAddress(*toAddr)
		if err != nil {
			return fmt.Errorf("invalid recipient address: %w", err)
		}
		token, err := types.ParseTokenID(*tokenStr)
		if err != nil {
			return fmt.Errorf("invalid token ID: %w", err)
		}
		return s.sendToken(recipient.String(), token.String(), *amount)
	})
}

func cmdSync(client *rpcclient.Client, cfg *config.Config, args []string) {
	walletSession(client, cfg, "sync", args, nil, func(s *session) error {
		return s.sync()
	})
}

func cmdFaucet(client *rpcclient.Client, cfg *config.Config, args []string) {
	var url *string
	walletSession(client, cfg, "faucet", args, func(fs *flag.FlagSet) {
		url = fs.String("url", "", "Faucet enqueue URL (overrides config)")
	}, func(s *session) error {
		return s.faucet(*url)
	})
}

// lastSync prints when the account was last synced, if known.
func (s *session) lastSync() error {
	ac := s.acct()
	if ac == nil {
		fmt.Println("Never synced.")
		return nil
	}
	meta, err := ac.SyncMeta()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Println("Never synced.")
			return nil
		}
		return err
	}
	fmt.Printf("Last synced: height %d at %s\n", meta.Height, meta.SyncedAt.Format("2006-01-02 15:04:05 UTC"))
	return nil
}
