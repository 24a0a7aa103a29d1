package crypto

import (
	"bytes"
	"testing"

	"github.com/Klingon-tech/threadnet-wallet/pkg/types"
)

func TestHash_Deterministic(t *testing.T) {
	data := []byte("hello")

	h1 := Hash(data)
	h2 := Hash(data)
	if h1 != h2 {
		t.Error("same input should produce same hash")
	}

	h3 := Hash([]byte("hello!"))
	if h1 == h3 {
		t.Error("different input should produce different hash")
	}

	if h1.IsZero() {
		t.Error("hash of non-empty data should not be zero")
	}
}

func TestAddressFromPubKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	pub := key.PublicKey()

	addr := AddressFromPubKey(pub)
	if addr.IsZero() {
		t.Error("derived address should not be zero")
	}

	// Address is the hash prefix.
	h := Hash(pub)
	if !bytes.Equal(addr[:], h[:types.AddressSize]) {
		t.Error("address should be the first 20 bytes of the pubkey hash")
	}

	// Deterministic.
	if AddressFromPubKey(pub) != addr {
		t.Error("same pubkey should derive same address")
	}
}

func TestHashMessage_Prefixed(t *testing.T) {
	msg := []byte("attestation")

	// The signed digest must differ from the plain hash so message
	// signatures cannot be replayed against transaction digests.
	if HashMessage(msg) == Hash(msg) {
		t.Error("HashMessage() should not equal plain Hash()")
	}
	if HashMessage(msg) != HashMessage(msg) {
		t.Error("HashMessage() should be deterministic")
	}
}

func TestSignVerify(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	defer key.Zero()

	hash := Hash([]byte("payload"))
	sig, err := key.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if !VerifySignature(hash[:], sig, key.PublicKey()) {
		t.Error("valid signature should verify")
	}

	other := Hash([]byte("other payload"))
	if VerifySignature(other[:], sig, key.PublicKey()) {
		t.Error("signature should not verify against a different hash")
	}

	tampered := make([]byte, len(sig))
	copy(tampered, sig)
	tampered[0] ^= 0x01
	if VerifySignature(hash[:], tampered, key.PublicKey()) {
		t.Error("tampered signature should not verify")
	}
}

func TestSign_BadHashLength(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	defer key.Zero()

	if _, err := key.Sign([]byte("short")); err == nil {
		t.Error("Sign() with non-32-byte hash should fail")
	}
}

func TestPrivateKeyFromBytes(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	restored, err := PrivateKeyFromBytes(key.Serialize())
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	if !bytes.Equal(restored.PublicKey(), key.PublicKey()) {
		t.Error("restored key should have same public key")
	}

	if _, err := PrivateKeyFromBytes([]byte("short")); err == nil {
		t.Error("PrivateKeyFromBytes() with bad length should fail")
	}
}

func TestVerifySignature_BadInputs(t *testing.T) {
	hash := Hash([]byte("x"))
	if VerifySignature(hash[:], []byte("not a sig"), []byte("not a key")) {
		t.Error("garbage inputs should not verify")
	}
}
