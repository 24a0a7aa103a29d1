// Package cache maintains a local mirror of engine account data so that
// list commands keep working when the node is unreachable.
package cache

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Klingon-tech/threadnet-wallet/internal/log"
	"github.com/Klingon-tech/threadnet-wallet/internal/rpc"
	"github.com/Klingon-tech/threadnet-wallet/internal/storage"
)

// Key layout within an account namespace:
//
//	a/<change:1><index:4>  -> AccountAddressEntry (JSON)
//	t/<height:8><tx_hash>  -> TxHistoryEntry (JSON)
//	m/sync                 -> SyncMeta (JSON)
var (
	prefixAddr = []byte("a/")
	prefixTx   = []byte("t/")
	keySync    = []byte("m/sync")
)

// Cache wraps a key-value store holding cached account data for all
// wallets on all networks.
type Cache struct {
	db storage.DB
}

// Open opens (or creates) the cache database in dir.
func Open(dir string) (*Cache, error) {
	db, err := storage.NewBadger(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	return &Cache{db: db}, nil
}

// NewWithDB creates a cache over an existing store. Used in tests.
func NewWithDB(db storage.DB) *Cache {
	return &Cache{db: db}
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Account returns the cache namespace for one wallet on one network.
func (c *Cache) Account(network, wallet string) *AccountCache {
	prefix := []byte(network + "/" + wallet + "/")
	return &AccountCache{db: storage.NewPrefixDB(c.db, prefix)}
}

// AccountCache is the cached view of a single account.
type AccountCache struct {
	db *storage.PrefixDB
}

// SyncMeta records when the account was last synced and at what height.
type SyncMeta struct {
	Height   uint64    `json:"height"`
	SyncedAt time.Time `json:"synced_at"`
}

// addrKey orders addresses by change branch then index.
func addrKey(change uint32, index uint32) []byte {
	key := make([]byte, len(prefixAddr)+1+4)
	copy(key, prefixAddr)
	key[len(prefixAddr)] = byte(change)
	binary.BigEndian.PutUint32(key[len(prefixAddr)+1:], index)
	return key
}

// txKey orders transactions by height, disambiguated by hash.
func txKey(height uint64, txHash string) []byte {
	key := make([]byte, len(prefixTx)+8, len(prefixTx)+8+len(txHash))
	copy(key, prefixTx)
	binary.BigEndian.PutUint64(key[len(prefixTx):], height)
	return append(key, txHash...)
}

// PutAddresses stores address entries, overwriting existing ones at the
// same change/index slots.
func (a *AccountCache) PutAddresses(entries []rpc.AccountAddressEntry) error {
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode address entry: %w", err)
		}
		if err := a.db.Put(addrKey(e.Change, e.Index), data); err != nil {
			return fmt.Errorf("store address entry: %w", err)
		}
	}
	return nil
}

// Addresses returns all cached addresses ordered by change branch then
// index.
func (a *AccountCache) Addresses() ([]rpc.AccountAddressEntry, error) {
	var entries []rpc.AccountAddressEntry
	err := a.db.ForEach(prefixAddr, func(_, value []byte) error {
		var e rpc.AccountAddressEntry
		if err := json.Unmarshal(value, &e); err != nil {
			return fmt.Errorf("decode address entry: %w", err)
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// PutTransactions stores history entries keyed by height and hash.
func (a *AccountCache) PutTransactions(entries []rpc.TxHistoryEntry) error {
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode tx entry: %w", err)
		}
		if err := a.db.Put(txKey(e.Height, e.TxHash), data); err != nil {
			return fmt.Errorf("store tx entry: %w", err)
		}
	}
	return nil
}

// Transactions returns all cached history entries ordered by height.
func (a *AccountCache) Transactions() ([]rpc.TxHistoryEntry, error) {
	var entries []rpc.TxHistoryEntry
	err := a.db.ForEach(prefixTx, func(_, value []byte) error {
		var e rpc.TxHistoryEntry
		if err := json.Unmarshal(value, &e); err != nil {
			return fmt.Errorf("decode tx entry: %w", err)
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SetSyncMeta records a successful sync.
func (a *AccountCache) SetSyncMeta(height uint64) error {
	meta := SyncMeta{Height: height, SyncedAt: time.Now().UTC()}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode sync meta: %w", err)
	}
	return a.db.Put(keySync, data)
}

// SyncMeta returns the last recorded sync, or storage.ErrNotFound if the
// account was never synced.
func (a *AccountCache) SyncMeta() (*SyncMeta, error) {
	data, err := a.db.Get(keySync)
	if err != nil {
		return nil, err
	}
	var meta SyncMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode sync meta: %w", err)
	}
	return &meta, nil
}

// Clear drops everything cached for this account.
func (a *AccountCache) Clear() error {
	return a.db.DeleteAll()
}

// UpdateFromSync refreshes the cache after engine calls succeed. Errors
// are logged, not returned, since the cache is best effort.
func (a *AccountCache) UpdateFromSync(height uint64, addrs []rpc.AccountAddressEntry, txs []rpc.TxHistoryEntry) {
	if addrs != nil {
		if err := a.PutAddresses(addrs); err != nil {
			log.Cache.Warn().Err(err).Msg("failed to cache addresses")
		}
	}
	if txs != nil {
		if err := a.PutTransactions(txs); err != nil {
			log.Cache.Warn().Err(err).Msg("failed to cache transactions")
		}
	}
	if err := a.SetSyncMeta(height); err != nil {
		log.Cache.Warn().Err(err).Msg("failed to record sync meta")
	}
}
