// Package crypto provides cryptographic primitives for the Threadnet wallet.
package crypto

import (
	"github.com/Klingon-tech/threadnet-wallet/pkg/types"
	"github.com/zeebo/blake3"
)

// messagePrefix is prepended before hashing signed messages so that a
// message signature can never be replayed as a transaction signature.
const messagePrefix = "Threadnet Signed Message:\n"

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// AddressFromPubKey derives an address from a compressed public key.
// Address = BLAKE3(compressed_pubkey)[:20].
func AddressFromPubKey(pubKey []byte) types.Address {
	h := Hash(pubKey)
	var addr types.Address
	copy(addr[:], h[:types.AddressSize])
	return addr
}

// HashMessage computes the digest signed by message attestations:
// BLAKE3(prefix || message).
func HashMessage(message []byte) types.Hash {
	buf := make([]byte, 0, len(messagePrefix)+len(message))
	buf = append(buf, messagePrefix...)
	buf = append(buf, message...)
	return Hash(buf)
}
