package wallet

import (
	"fmt"

	"github.com/Klingon-tech/threadnet-wallet/pkg/crypto"
	"github.com/Klingon-tech/threadnet-wallet/pkg/types"
)

// Account is an unlocked wallet: the decrypted master key plus the
// wallet file it came from. Callers must Close it when done.
type Account struct {
	File   *WalletFile
	master *HDKey
	seed   []byte
}

// Unlock decrypts the wallet seed with password and returns an unlocked
// account. The account number is fixed at 0 within the BIP-44 path.
func Unlock(wf *WalletFile, password []byte) (*Account, error) {
	seed, err := wf.DecryptSeed(password)
	if err != nil {
		return nil, err
	}
	master, err := NewMasterKey(seed)
	if err != nil {
		ZeroSeed(seed)
		return nil, err
	}
	return &Account{File: wf, master: master, seed: seed}, nil
}

// Close zeroes the decrypted seed.
func (a *Account) Close() {
	ZeroSeed(a.seed)
}

// KeyAt derives the key at the given change branch and index.
func (a *Account) KeyAt(change, index uint32) (*HDKey, error) {
	return a.master.DeriveAddress(0, change, index)
}

// NextExternal derives the next unused external address and records it
// in the wallet file. The caller is responsible for persisting the file.
func (a *Account) NextExternal(name string) (types.Address, AccountEntry, error) {
	index := a.File.NextExternalIndex
	key, err := a.KeyAt(ChangeExternal, index)
	if err != nil {
		return types.Address{}, AccountEntry{}, err
	}
	addr := key.Address()
	entry := AccountEntry{
		Index:   index,
		Change:  ChangeExternal,
		Name:    name,
		Address: addr.String(),
	}
	a.File.AddAccount(entry)
	return addr, entry, nil
}

// SignMessage signs an arbitrary message with the key at the given
// change branch and index. The message is hashed with the signed-message
// prefix before signing.
func (a *Account) SignMessage(change, index uint32, message []byte) ([]byte, []byte, error) {
	key, err := a.KeyAt(change, index)
	if err != nil {
		return nil, nil, err
	}
	signer, err := key.Signer()
	if err != nil {
		return nil, nil, err
	}
	defer signer.Zero()

	hash := crypto.HashMessage(message)
	sig, err := signer.Sign(hash[:])
	if err != nil {
		return nil, nil, fmt.Errorf("sign message: %w", err)
	}
	return sig, signer.PublicKey(), nil
}

// VerifyMessage verifies a prefixed-message signature against a
// compressed public key.
func VerifyMessage(message, sig, pubKey []byte) bool {
	hash := crypto.HashMessage(message)
	return crypto.VerifySignature(hash[:], sig, pubKey)
}

// ExportKey returns the raw private key at the given change branch and
// index as a hex-encodable byte slice. Callers must zero it when done.
func (a *Account) ExportKey(change, index uint32) ([]byte, error) {
	key, err := a.KeyAt(change, index)
	if err != nil {
		return nil, err
	}
	priv := key.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("no private key at %d/%d", change, index)
	}
	out := make([]byte, len(priv))
	copy(out, priv)
	return out, nil
}
