package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/Klingon-tech/threadnet-wallet/config"
	"github.com/Klingon-tech/threadnet-wallet/internal/wallet"
)

// ── create ──────────────────────────────────────────────────────────────

func cmdCreate(args []string, cfg *config.Config) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: threadnet-wallet create --name <name>")
	}

	// Generate mnemonic.
	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		fatal("generate mnemonic: %v", err)
	}

	fmt.Println("Mnemonic (write this down!):")
	fmt.Printf("  %s\n\n", mnemonic)

	password := promptNewPassword()
	provisionWallet(cfg, *name, mnemonic, password, "Wallet created")
}

// ── import ──────────────────────────────────────────────────────────────

func cmdImport(args []string, cfg *config.Config) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	mnemonic := fs.String("mnemonic", "", "BIP-39 mnemonic (24 words)")
	fs.Parse(args)

	if *name == "" || *mnemonic == "" {
		fatal("Usage: threadnet-wallet import --name <name> --mnemonic \"word1 word2 ...\"")
	}

	if !wallet.ValidateMnemonic(*mnemonic) {
		fatal("invalid mnemonic")
	}

	password := promptNewPassword()
	provisionWallet(cfg, *name, *mnemonic, password, "Wallet imported")

	fmt.Println("Run 'threadnet-wallet sync --wallet " + *name + "' once the node is available.")
}

// promptNewPassword prompts for a password twice and checks they match.
func promptNewPassword() []byte {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}
	return password
}

// provisionWallet creates the wallet file and derives the first deposit
// address so the wallet is usable before the node is reachable.
func provisionWallet(cfg *config.Config, name, mnemonic string, password []byte, doneMsg string) {
	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatal("create keystore: %v", err)
	}

	wf, err := ks.Create(name, mnemonic, password, wallet.DefaultParams())
	if err != nil {
		fatal("create wallet: %v", err)
	}

	acct, err := wallet.Unlock(wf, password)
	if err != nil {
		fatal("unlock wallet: %v", err)
	}
	defer acct.Close()

	addr, _, err := acct.NextExternal("Default")
	if err != nil {
		fatal("derive address: %v", err)
	}

	if err := ks.Update(wf); err != nil {
		fatal("save wallet: %v", err)
	}

	fmt.Printf("\n%s: %s\n", doneMsg, name)
	fmt.Printf("Address: %s\n", addr.String())
}

// ── list ────────────────────────────────────────────────────────────────

func cmdList(cfg *config.Config) {
	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}

	names, err := ks.List()
	if err != nil {
		fatal("list wallets: %v", err)
	}

	if len(names) == 0 {
		fmt.Println("No wallets found.")
		return
	}

	for _, name := range names {
		fmt.Println(name)
	}
}

// ── export-key ──────────────────────────────────────────────────────────

func cmdExportKey(args []string, cfg *config.Config) {
	fs := flag.NewFlagSet("export-key", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	output := fs.String("output", "", "Output file path (default: <name>.key)")
	change := fs.Uint("change", 0, "BIP-44 change branch (0=external, 1=internal)")
	index := fs.Uint("index", 0, "BIP-44 address index")
	fs.Parse(args)

	if *walletName == "" {
		fatal("Usage: threadnet-wallet export-key --wallet <name> [--output path] [--change 0] [--index 0]")
	}

	acct, hdKey := unlockKey(cfg, *walletName, uint32(*change), uint32(*index))
	defer acct.Close()

	privBytes := hdKey.PrivateKeyBytes()
	if privBytes == nil {
		fatal("no private key available")
	}

	pubBytes := hdKey.PublicKeyBytes()
	addr := hdKey.Address()

	privHex := hex.EncodeToString(privBytes)
	// Zero private key bytes.
	for i := range privBytes {
		privBytes[i] = 0
	}

	outPath := *output
	if outPath == "" {
		outPath = *walletName + ".key"
	}

	if err := os.WriteFile(outPath, []byte(privHex+"\n"), 0600); err != nil {
		fatal("write key file: %v", err)
	}

	fmt.Printf("Exported key to: %s\n", outPath)
	fmt.Printf("  Path:    m/44'/7777'/0'/%d/%d\n", *change, *index)
	fmt.Printf("  PubKey:  %s\n", hex.EncodeToString(pubBytes))
	fmt.Printf("  Address: %s\n", addr.String())
}

// unlockKey loads and unlocks a wallet, then derives the key at the
// given change branch and index.
func unlockKey(cfg *config.Config, name string, change, index uint32) (*wallet.Account, *wallet.HDKey) {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}

	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}

	wf, err := ks.Load(name)
	if err != nil {
		fatal("load wallet: %v", err)
	}

	acct, err := wallet.Unlock(wf, password)
	if err != nil {
		fatal("unlock wallet: %v", err)
	}

	hdKey, err := acct.KeyAt(change, index)
	if err != nil {
		acct.Close()
		fatal("derive key: %v", err)
	}
	return acct, hdKey
}

// ── sign / verify ───────────────────────────────────────────────────────

func cmdSign(args []string, cfg *config.Config) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	message := fs.String("message", "", "Message to sign")
	change := fs.Uint("change", 0, "BIP-44 change branch (0=external, 1=internal)")
	index := fs.Uint("index", 0, "BIP-44 address index")
	fs.Parse(args)

	if *walletName == "" || *message == "" {
		fatal("Usage: threadnet-wallet sign --wallet <name> --message <msg> [--change 0] [--index 0]")
	}

	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}

	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}

	wf, err := ks.Load(*walletName)
	if err != nil {
		fatal("load wallet: %v", err)
	}

	acct, err := wallet.Unlock(wf, password)
	if err != nil {
		fatal("unlock wallet: %v", err)
	}
	defer acct.Close()

	sig, pubKey, err := acct.SignMessage(uint32(*change), uint32(*index), []byte(*message))
	if err != nil {
		fatal("sign: %v", err)
	}

	fmt.Printf("Signature: %s\n", hex.EncodeToString(sig))
	fmt.Printf("PubKey:    %s\n", hex.EncodeToString(pubKey))
}

func cmdVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	message := fs.String("message", "", "Message that was signed")
	sigHex := fs.String("signature", "", "Signature (hex)")
	pubHex := fs.String("pubkey", "", "Compressed public key (hex)")
	fs.Parse(args)

	if *message == "" || *sigHex == "" || *pubHex == "" {
		fatal("Usage: threadnet-wallet verify --message <msg> --signature <hex> --pubkey <hex>")
	}

	sig, err := hex.DecodeString(*sigHex)
	if err != nil {
		fatal("invalid signature hex: %v", err)
	}
	pubKey, err := hex.DecodeString(*pubHex)
	if err != nil {
		fatal("invalid pubkey hex: %v", err)
	}

	if !wallet.VerifyMessage([]byte(*message), sig, pubKey) {
		fatal("signature verification failed")
	}
	fmt.Println("Signature valid.")
}
