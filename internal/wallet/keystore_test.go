package wallet

import (
	"testing"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testKeystore(t *testing.T) *Keystore {
	t.Helper()
	ks, err := NewKeystore(t.TempDir())
	if err != nil {
		t.Fatalf("NewKeystore() error: %v", err)
	}
	return ks
}

func TestKeystore_CreateAndLoad(t *testing.T) {
	ks := testKeystore(t)
	password := []byte("test-password")

	wf, err := ks.Create("mywallet", testMnemonic, password, fastParams())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if wf.Version != KeystoreVersion {
		t.Errorf("version = %d, want %d", wf.Version, KeystoreVersion)
	}

	loaded, err := ks.Load("mywallet")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	seed, err := loaded.DecryptSeed(password)
	if err != nil {
		t.Fatalf("DecryptSeed() error: %v", err)
	}
	if len(seed) != SeedSize {
		t.Errorf("seed length = %d, want %d", len(seed), SeedSize)
	}
}

func TestKeystore_CreateDuplicate(t *testing.T) {
	ks := testKeystore(t)

	if _, err := ks.Create("dup", testMnemonic, []byte("pass"), fastParams()); err != nil {
		t.Fatalf("first Create() error: %v", err)
	}

	if _, err := ks.Create("dup", testMnemonic, []byte("pass"), fastParams()); err == nil {
		t.Error("second Create() should fail for duplicate name")
	}
}

func TestKeystore_CreateInvalidMnemonic(t *testing.T) {
	ks := testKeystore(t)

	if _, err := ks.Create("bad", "not a mnemonic", []byte("pass"), fastParams()); err == nil {
		t.Error("Create() with invalid mnemonic should fail")
	}
}

func TestKeystore_CreateBadName(t *testing.T) {
	ks := testKeystore(t)

	for _, name := range []string{"", "../escape", "a/b", `a\b`, ".", ".."} {
		if _, err := ks.Create(name, testMnemonic, []byte("p"), fastParams()); err == nil {
			t.Errorf("Create(%q) should fail", name)
		}
	}
}

func TestKeystore_DecryptWrongPassword(t *testing.T) {
	ks := testKeystore(t)

	wf, err := ks.Create("wallet", testMnemonic, []byte("correct"), fastParams())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if _, err := wf.DecryptSeed([]byte("wrong")); err == nil {
		t.Error("DecryptSeed() with wrong password should fail")
	}
}

func TestKeystore_LoadNonexistent(t *testing.T) {
	ks := testKeystore(t)

	if _, err := ks.Load("doesnotexist"); err == nil {
		t.Error("Load() for nonexistent wallet should fail")
	}
}

func TestKeystore_List(t *testing.T) {
	ks := testKeystore(t)

	names, err := ks.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected 0 wallets, got %d", len(names))
	}

	if _, err := ks.Create("bravo", testMnemonic, []byte("p"), fastParams()); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := ks.Create("alpha", testMnemonic, []byte("p"), fastParams()); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	names, err = ks.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "bravo" {
		t.Errorf("List() = %v, want [alpha bravo]", names)
	}
}

func TestKeystore_UpdatePersistsAccounts(t *testing.T) {
	ks := testKeystore(t)

	wf, err := ks.Create("w", testMnemonic, []byte("p"), fastParams())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	wf.AddAccount(AccountEntry{Index: 0, Change: ChangeExternal, Name: "Default", Address: "thd1qtest"})
	if err := ks.Update(wf); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	loaded, err := ks.Load("w")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded.Accounts) != 1 {
		t.Fatalf("accounts = %d, want 1", len(loaded.Accounts))
	}
	if loaded.Accounts[0].Address != "thd1qtest" {
		t.Errorf("address = %q, want %q", loaded.Accounts[0].Address, "thd1qtest")
	}
	if loaded.NextExternalIndex != 1 {
		t.Errorf("NextExternalIndex = %d, want 1", loaded.NextExternalIndex)
	}
}

func TestWalletFile_LatestAddress(t *testing.T) {
	wf := &WalletFile{}

	if addr := wf.LatestAddress(); addr != "" {
		t.Errorf("LatestAddress() on empty wallet = %q, want empty", addr)
	}

	wf.AddAccount(AccountEntry{Index: 0, Change: ChangeExternal, Address: "addr0"})
	wf.AddAccount(AccountEntry{Index: 0, Change: ChangeInternal, Address: "change0"})
	wf.AddAccount(AccountEntry{Index: 1, Change: ChangeExternal, Address: "addr1"})

	// Internal addresses never count as the deposit address.
	if addr := wf.LatestAddress(); addr != "addr1" {
		t.Errorf("LatestAddress() = %q, want addr1", addr)
	}

	if wf.NextExternalIndex != 2 {
		t.Errorf("NextExternalIndex = %d, want 2", wf.NextExternalIndex)
	}
	if wf.NextChangeIndex != 1 {
		t.Errorf("NextChangeIndex = %d, want 1", wf.NextChangeIndex)
	}
}
