// Package cache memoizes solve outcomes behind a BadgerDB-backed store
// (badger.DefaultOptions, a JSON-encoded value per key). It is consumed
// only by cmd/lonecli: the core solver packages never depend on it, so a
// batch sweep over many seeds/draw-steps doesn't resolve the same position
// twice across runs.
//
// Keys are derived with xxhash rather than used as raw strings (the key
// space is a (strategy, seed, drawStep) triple, not naturally a short
// string), and values are zstd-compressed before going into Badger, since a
// solved history plus its move list can run to several hundred bytes and a
// cache is expected to accumulate many thousands of entries.
package cache

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"

	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/solver"
)

// Entry is the memoized record for one (strategy, seed, drawStep) solve.
type Entry struct {
	Result  solver.SearchResult `json:"result"`
	History []move.Move         `json:"history,omitempty"`
}

// Cache wraps a BadgerDB instance plus a shared zstd encoder/decoder pair.
type Cache struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens (creating if absent) a Badger database rooted at dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", dir, err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: new zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		enc.Close()
		return nil, fmt.Errorf("cache: new zstd decoder: %w", err)
	}
	return &Cache{db: db, enc: enc, dec: dec}, nil
}

// Close releases the underlying Badger handles.
func (c *Cache) Close() error {
	c.dec.Close()
	c.enc.Close()
	return c.db.Close()
}

// Key hashes a (strategy, seed, drawStep) triple into the 8-byte lookup
// key, the same role zobrist hashing plays for a transposition table: a
// cheap, collision-resistant identity for an otherwise bulky key.
func Key(strategy string, seed uint64, drawStep int) uint64 {
	h := xxhash.New()
	h.WriteString(strategy)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(drawStep))
	h.Write(buf[:])
	return h.Sum64()
}

func keyBytes(k uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], k)
	return buf[:]
}

// Get returns the memoized Entry for k, and false if it isn't cached.
func (c *Cache) Get(k uint64) (Entry, bool, error) {
	var e Entry
	found := false
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyBytes(k))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw, err := c.dec.DecodeAll(val, nil)
			if err != nil {
				return fmt.Errorf("cache: decompress: %w", err)
			}
			if err := json.Unmarshal(raw, &e); err != nil {
				return err
			}
			found = true
			return nil
		})
	})
	return e, found, err
}

// Put memoizes e under k, overwriting any prior entry.
func (c *Cache) Put(k uint64, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	compressed := c.enc.EncodeAll(raw, nil)
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyBytes(k), compressed)
	})
}
