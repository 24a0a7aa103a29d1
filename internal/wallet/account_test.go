package wallet

import (
	"testing"
)

func testAccount(t *testing.T) (*Keystore, *Account) {
	t.Helper()
	ks := testKeystore(t)
	password := []byte("pass")

	wf, err := ks.Create("acct", testMnemonic, password, fastParams())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	acct, err := Unlock(wf, password)
	if err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	t.Cleanup(acct.Close)
	return ks, acct
}

func TestUnlock_WrongPassword(t *testing.T) {
	ks := testKeystore(t)
	wf, err := ks.Create("w", testMnemonic, []byte("right"), fastParams())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if _, err := Unlock(wf, []byte("wrong")); err == nil {
		t.Error("Unlock() with wrong password should fail")
	}
}

func TestAccount_NextExternal(t *testing.T) {
	ks, acct := testAccount(t)

	addr0, entry0, err := acct.NextExternal("Default")
	if err != nil {
		t.Fatalf("NextExternal() error: %v", err)
	}
	if entry0.Index != 0 || entry0.Change != ChangeExternal {
		t.Errorf("entry = %+v, want index 0 external", entry0)
	}
	if entry0.Address != addr0.String() {
		t.Errorf("entry address = %q, want %q", entry0.Address, addr0.String())
	}

	addr1, entry1, err := acct.NextExternal("")
	if err != nil {
		t.Fatalf("NextExternal() error: %v", err)
	}
	if entry1.Index != 1 {
		t.Errorf("second entry index = %d, want 1", entry1.Index)
	}
	if addr0 == addr1 {
		t.Error("consecutive addresses should differ")
	}

	// Persist and reload: the index counter must survive.
	if err := ks.Update(acct.File); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	loaded, err := ks.Load("acct")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.NextExternalIndex != 2 {
		t.Errorf("NextExternalIndex = %d, want 2", loaded.NextExternalIndex)
	}
	if loaded.LatestAddress() != addr1.String() {
		t.Errorf("LatestAddress() = %q, want %q", loaded.LatestAddress(), addr1.String())
	}
}

func TestAccount_SignAndVerifyMessage(t *testing.T) {
	_, acct := testAccount(t)

	message := []byte("hello threadnet")
	sig, pubKey, err := acct.SignMessage(ChangeExternal, 0, message)
	if err != nil {
		t.Fatalf("SignMessage() error: %v", err)
	}
	if len(pubKey) != 33 {
		t.Errorf("pubkey length = %d, want 33", len(pubKey))
	}

	if !VerifyMessage(message, sig, pubKey) {
		t.Error("VerifyMessage() should accept a valid signature")
	}
	if VerifyMessage([]byte("other message"), sig, pubKey) {
		t.Error("VerifyMessage() should reject a different message")
	}

	sig[0] ^= 0x01
	if VerifyMessage(message, sig, pubKey) {
		t.Error("VerifyMessage() should reject a tampered signature")
	}
}

func TestAccount_ExportKey(t *testing.T) {
	_, acct := testAccount(t)

	key, err := acct.ExportKey(ChangeExternal, 0)
	if err != nil {
		t.Fatalf("ExportKey() error: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("key length = %d, want 32", len(key))
	}

	// Same slot exports the same key.
	key2, err := acct.ExportKey(ChangeExternal, 0)
	if err != nil {
		t.Fatalf("ExportKey() error: %v", err)
	}
	if string(key) != string(key2) {
		t.Error("same slot should export same key")
	}

	// Different slot exports a different key.
	key3, err := acct.ExportKey(ChangeInternal, 0)
	if err != nil {
		t.Fatalf("ExportKey() error: %v", err)
	}
	if string(key) == string(key3) {
		t.Error("different slot should export different key")
	}
}
