package wallet

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Klingon-tech/threadnet-wallet/internal/log"
)

// Keystore file constants.
const (
	KeystoreVersion = 1
	WalletFileExt   = ".wallet"
)

// AccountEntry records one derived address within a wallet file.
type AccountEntry struct {
	Index   uint32 `json:"index"`
	Change  uint32 `json:"change"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// WalletFile is the on-disk JSON wallet format.
type WalletFile struct {
	Version           int            `json:"version"`
	Name              string         `json:"name"`
	CreatedAt         time.Time      `json:"created_at"`
	EncryptedSeed     string         `json:"encrypted_seed"` // hex of Encrypt() output
	Accounts          []AccountEntry `json:"accounts"`
	NextExternalIndex uint32         `json:"next_external_index"`
	NextChangeIndex   uint32         `json:"next_change_index"`
}

// Keystore manages wallet files in a directory.
type Keystore struct {
	dir string
}

// NewKeystore creates a keystore over the given directory, creating it
// if necessary.
func NewKeystore(dir string) (*Keystore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &Keystore{dir: dir}, nil
}

// Dir returns the keystore directory.
func (ks *Keystore) Dir() string {
	return ks.dir
}

// walletPath returns the file path for a named wallet.
func (ks *Keystore) walletPath(name string) string {
	return filepath.Join(ks.dir, name+WalletFileExt)
}

// validateName rejects wallet names that would escape the keystore dir
// or collide with path syntax.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("wallet name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid wallet name %q", name)
	}
	return nil
}

// Exists reports whether a wallet with the given name exists.
func (ks *Keystore) Exists(name string) bool {
	_, err := os.Stat(ks.walletPath(name))
	return err == nil
}

// List returns the names of all wallets in the keystore, sorted.
func (ks *Keystore) List() ([]string, error) {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return nil, fmt.Errorf("read keystore dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), WalletFileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), WalletFileExt))
	}
	sort.Strings(names)
	return names, nil
}

// Create creates a new wallet file with the given mnemonic, encrypted
// under password. Fails if a wallet with the same name already exists.
func (ks *Keystore) Create(name, mnemonic string, password []byte, params EncryptionParams) (*WalletFile, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if ks.Exists(name) {
		return nil, fmt.Errorf("wallet %q already exists", name)
	}

	seed, err := SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, err
	}
	defer ZeroSeed(seed)

	encrypted, err := Encrypt(seed, password, params)
	if err != nil {
		return nil, fmt.Errorf("encrypt seed: %w", err)
	}

	wf := &WalletFile{
		Version:       KeystoreVersion,
		Name:          name,
		CreatedAt:     time.Now().UTC(),
		EncryptedSeed: hex.EncodeToString(encrypted),
	}
	if err := ks.save(wf); err != nil {
		return nil, err
	}
	log.Wallet.Info().Str("wallet", name).Msg("wallet created")
	return wf, nil
}

// Load reads a wallet file by name.
func (ks *Keystore) Load(name string) (*WalletFile, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(ks.walletPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("wallet %q not found", name)
		}
		return nil, fmt.Errorf("read wallet file: %w", err)
	}
	var wf WalletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse wallet file: %w", err)
	}
	if wf.Version != KeystoreVersion {
		return nil, fmt.Errorf("unsupported wallet version %d", wf.Version)
	}
	return &wf, nil
}

// save writes a wallet file to disk atomically.
func (ks *Keystore) save(wf *WalletFile) error {
	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode wallet file: %w", err)
	}
	path := ks.walletPath(wf.Name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write wallet file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write wallet file: %w", err)
	}
	return nil
}

// Update persists changes to an already-loaded wallet file.
func (ks *Keystore) Update(wf *WalletFile) error {
	if !ks.Exists(wf.Name) {
		return fmt.Errorf("wallet %q not found", wf.Name)
	}
	return ks.save(wf)
}

// DecryptSeed decrypts the wallet's seed with the given password.
// The caller must zero the returned seed when done.
func (wf *WalletFile) DecryptSeed(password []byte) ([]byte, error) {
	encrypted, err := hex.DecodeString(wf.EncryptedSeed)
	if err != nil {
		return nil, fmt.Errorf("decode encrypted seed: %w", err)
	}
	seed, err := Decrypt(encrypted, password)
	if err != nil {
		return nil, fmt.Errorf("invalid password")
	}
	if len(seed) != SeedSize {
		ZeroSeed(seed)
		return nil, fmt.Errorf("corrupt wallet file: bad seed length")
	}
	return seed, nil
}

// LatestAddress returns the most recently recorded external address,
// or "" if no address has been generated yet.
func (wf *WalletFile) LatestAddress() string {
	for i := len(wf.Accounts) - 1; i >= 0; i-- {
		if wf.Accounts[i].Change == ChangeExternal {
			return wf.Accounts[i].Address
		}
	}
	return ""
}

// AddAccount records a derived address and advances the matching index
// counter.
func (wf *WalletFile) AddAccount(entry AccountEntry) {
	wf.Accounts = append(wf.Accounts, entry)
	if entry.Change == ChangeExternal && entry.Index >= wf.NextExternalIndex {
		wf.NextExternalIndex = entry.Index + 1
	}
	if entry.Change == ChangeInternal && entry.Index >= wf.NextChangeIndex {
		wf.NextChangeIndex = entry.Index + 1
	}
}
