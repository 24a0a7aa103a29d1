package cache

import (
	"errors"
	"testing"

	"github.com/Klingon-tech/threadnet-wallet/internal/rpc"
	"github.com/Klingon-tech/threadnet-wallet/internal/storage"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	c := NewWithDB(storage.NewMemory())
	t.Cleanup(func() { c.Close() })
	return c
}

func TestAccountCache_Addresses(t *testing.T) {
	c := testCache(t)
	ac := c.Account("testnet", "w")

	// Store out of order; reads come back sorted by change then index.
	err := ac.PutAddresses([]rpc.AccountAddressEntry{
		{Index: 2, Change: 0, Address: "a2"},
		{Index: 0, Change: 1, Address: "c0"},
		{Index: 0, Change: 0, Address: "a0"},
		{Index: 1, Change: 0, Address: "a1"},
	})
	if err != nil {
		t.Fatalf("PutAddresses() error: %v", err)
	}

	got, err := ac.Addresses()
	if err != nil {
		t.Fatalf("Addresses() error: %v", err)
	}
	want := []string{"a0", "a1", "a2", "c0"}
	if len(got) != len(want) {
		t.Fatalf("Addresses() returned %d entries, want %d", len(got), len(want))
	}
	for i, addr := range want {
		if got[i].Address != addr {
			t.Errorf("addresses[%d] = %q, want %q", i, got[i].Address, addr)
		}
	}

	// Overwriting the same slot keeps one entry.
	err = ac.PutAddresses([]rpc.AccountAddressEntry{{Index: 0, Change: 0, Address: "a0-updated"}})
	if err != nil {
		t.Fatalf("PutAddresses() error: %v", err)
	}
	got, err = ac.Addresses()
	if err != nil {
		t.Fatalf("Addresses() error: %v", err)
	}
	if len(got) != 4 || got[0].Address != "a0-updated" {
		t.Errorf("overwrite failed: %+v", got)
	}
}

func TestAccountCache_Transactions(t *testing.T) {
	c := testCache(t)
	ac := c.Account("testnet", "w")

	err := ac.PutTransactions([]rpc.TxHistoryEntry{
		{TxHash: "cc", Height: 30},
		{TxHash: "aa", Height: 10, Incoming: true},
		{TxHash: "bb", Height: 20},
	})
	if err != nil {
		t.Fatalf("PutTransactions() error: %v", err)
	}

	got, err := ac.Transactions()
	if err != nil {
		t.Fatalf("Transactions() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Transactions() returned %d entries, want 3", len(got))
	}
	for i, hash := range []string{"aa", "bb", "cc"} {
		if got[i].TxHash != hash {
			t.Errorf("transactions[%d] = %q, want %q (height ordered)", i, got[i].TxHash, hash)
		}
	}
	if !got[0].Incoming {
		t.Error("entry fields should survive the round trip")
	}
}

func TestAccountCache_SyncMeta(t *testing.T) {
	c := testCache(t)
	ac := c.Account("mainnet", "w")

	if _, err := ac.SyncMeta(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("SyncMeta() before any sync = %v, want ErrNotFound", err)
	}

	if err := ac.SetSyncMeta(77); err != nil {
		t.Fatalf("SetSyncMeta() error: %v", err)
	}

	meta, err := ac.SyncMeta()
	if err != nil {
		t.Fatalf("SyncMeta() error: %v", err)
	}
	if meta.Height != 77 {
		t.Errorf("Height = %d, want 77", meta.Height)
	}
	if meta.SyncedAt.IsZero() {
		t.Error("SyncedAt should be set")
	}
}

func TestAccountCache_Isolation(t *testing.T) {
	c := testCache(t)

	a := c.Account("testnet", "alice")
	b := c.Account("testnet", "bob")
	other := c.Account("mainnet", "alice")

	if err := a.PutAddresses([]rpc.AccountAddressEntry{{Index: 0, Address: "x"}}); err != nil {
		t.Fatalf("PutAddresses() error: %v", err)
	}

	for name, ac := range map[string]*AccountCache{"bob": b, "mainnet alice": other} {
		entries, err := ac.Addresses()
		if err != nil {
			t.Fatalf("Addresses() error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("%s should see no addresses, got %d", name, len(entries))
		}
	}
}

func TestAccountCache_Clear(t *testing.T) {
	c := testCache(t)
	ac := c.Account("testnet", "w")

	ac.PutAddresses([]rpc.AccountAddressEntry{{Index: 0, Address: "x"}})
	ac.PutTransactions([]rpc.TxHistoryEntry{{TxHash: "aa", Height: 1}})
	ac.SetSyncMeta(5)

	if err := ac.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	entries, err := ac.Addresses()
	if err != nil {
		t.Fatalf("Addresses() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("addresses after Clear() = %d, want 0", len(entries))
	}
	if _, err := ac.SyncMeta(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("SyncMeta() after Clear() = %v, want ErrNotFound", err)
	}
}

func TestAccountCache_UpdateFromSync(t *testing.T) {
	c := testCache(t)
	ac := c.Account("testnet", "w")

	ac.UpdateFromSync(12,
		[]rpc.AccountAddressEntry{{Index: 0, Address: "x"}},
		[]rpc.TxHistoryEntry{{TxHash: "aa", Height: 3}},
	)

	meta, err := ac.SyncMeta()
	if err != nil {
		t.Fatalf("SyncMeta() error: %v", err)
	}
	if meta.Height != 12 {
		t.Errorf("Height = %d, want 12", meta.Height)
	}
	entries, _ := ac.Addresses()
	if len(entries) != 1 {
		t.Errorf("addresses = %d, want 1", len(entries))
	}
	txs, _ := ac.Transactions()
	if len(txs) != 1 {
		t.Errorf("transactions = %d, want 1", len(txs))
	}
}
