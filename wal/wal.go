// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package wal is a write-ahead log of chain notifications. Entries are kept until
// the blocks they commit are finalized, so a node can replay or roll back
// notifications its consumers have not yet processed.
package wal

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/execstate/cache"
	"github.com/vechain/execstate/chain"
	"github.com/vechain/execstate/kv"
	"github.com/vechain/execstate/thor"
)

var (
	ErrBlockNotFound = errors.New("block not found")
	ErrCorruptEntry  = errors.New("corrupt entry")
)

const entryBucket = kv.Bucket("e")

// Options configures the log.
type Options struct {
	// CacheSize is the number of decoded entries kept in memory.
	CacheSize int
	// DecodeWorkers bounds parallel decoding on open.
	DecodeWorkers int
}

// WAL stores chain notifications in a kv store.
type WAL struct {
	lock    sync.Mutex
	store   kv.Store
	blocks  *blockCache
	entries *cache.LRU[uint64, *Entry]
	nextID  uint64
}

// Open opens the log kept in store and indexes its blocks.
func Open(store kv.Store, opts Options) (*WAL, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}
	if opts.DecodeWorkers <= 0 {
		opts.DecodeWorkers = runtime.NumCPU()
	}
	entries, err := cache.NewLRU[uint64, *Entry](opts.CacheSize)
	if err != nil {
		return nil, err
	}
	w := &WAL{
		store:   entryBucket.NewStore(store),
		blocks:  newBlockCache(),
		entries: entries,
	}

	type rawEntry struct {
		id  uint64
		val []byte
	}
	var raws []rawEntry
	it := w.store.Iterate(kv.Range{})
	for it.Next() {
		key := it.Key()
		if len(key) != 8 {
			it.Release()
			return nil, errors.Wrapf(ErrCorruptEntry, "key %x", key)
		}
		raws = append(raws, rawEntry{
			id:  binary.BigEndian.Uint64(key),
			val: append([]byte(nil), it.Value()...),
		})
	}
	err = it.Error()
	it.Release()
	if err != nil {
		return nil, err
	}

	decoded := make([]*Entry, len(raws))
	var g errgroup.Group
	g.SetLimit(opts.DecodeWorkers)
	for i, raw := range raws {
		g.Go(func() error {
			e, err := decodeEntry(raw.id, raw.val)
			if err != nil {
				return err
			}
			decoded[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, e := range decoded {
		w.blocks.insert(e.FileID, e.Notification)
		w.nextID = e.FileID + 1
	}
	metricCachedEntries().Set(int64(w.blocks.len()))
	logger.Debug("wal opened", "entries", len(decoded), "blocks", w.blocks.len(), "next", w.nextID)
	return w, nil
}

// Commit appends a notification and returns its file id.
func (w *WAL) Commit(target Target, n *chain.Notification) (uint64, error) {
	if n == nil {
		return 0, errors.New("nil notification")
	}
	if err := n.Validate(); err != nil {
		return 0, err
	}
	data, err := encodeEntry(target, n)
	if err != nil {
		return 0, errors.Wrap(err, "encode entry")
	}

	w.lock.Lock()
	defer w.lock.Unlock()

	id := w.nextID
	if err := w.store.Put(entryKey(id), data); err != nil {
		return 0, err
	}
	w.nextID++
	w.blocks.insert(id, n)
	w.entries.Add(id, &Entry{FileID: id, Target: target, Notification: n})

	countEntries("commit", 1)
	metricCachedEntries().Set(int64(w.blocks.len()))
	logger.Debug("wal commit", "id", id, "target", target, "kind", n.Kind)
	return id, nil
}

// Finalize drops the entries made obsolete by finalizing the given block. The entry
// committing the block is dropped too unless it also commits later blocks.
// An unknown block is ignored.
func (w *WAL) Finalize(number uint64, hash thor.Bytes32) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	var (
		found    bool
		removeTo uint64
	)
	for _, b := range w.blocks.blocks() {
		if !found {
			if b.Action == ActionCommit && b.Number == number && b.Hash == hash {
				found = true
				removeTo = b.FileID + 1
			}
			continue
		}
		if b.FileID != removeTo-1 {
			break
		}
		if b.Action == ActionCommit {
			// the entry still holds an unfinalized block
			removeTo = b.FileID
			break
		}
	}
	if !found {
		logger.Debug("wal finalize: block not found", "number", number, "hash", hash)
		return nil
	}
	return w.removeRange(0, removeTo)
}

// Rollback removes every entry after the one committing the given block and
// returns their notifications, newest first.
func (w *WAL) Rollback(number uint64, hash thor.Bytes32) ([]*chain.Notification, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var (
		found bool
		keep  uint64
	)
	for _, b := range w.blocks.blocks() {
		if b.Action == ActionCommit && b.Number == number && b.Hash == hash {
			found = true
			keep = b.FileID
		}
	}
	if !found {
		return nil, errors.Wrapf(ErrBlockNotFound, "rollback #%v %v", number, hash)
	}

	var removed []*chain.Notification
	for id := w.nextID; id > keep+1; id-- {
		e, err := w.load(id - 1)
		if err != nil {
			if w.store.IsNotFound(errors.Cause(err)) {
				continue
			}
			return nil, err
		}
		removed = append(removed, e.Notification)
	}
	if err := w.removeRange(keep+1, w.nextID); err != nil {
		return nil, err
	}
	w.nextID = keep + 1
	logger.Debug("wal rollback", "number", number, "removed", len(removed))
	return removed, nil
}

// Remove deletes a single entry.
func (w *WAL) Remove(fileID uint64) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.removeRange(fileID, fileID+1)
}

// Entries returns all stored entries, oldest first.
func (w *WAL) Entries() ([]*Entry, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var ids []uint64
	it := w.store.Iterate(kv.Range{})
	for it.Next() {
		ids = append(ids, binary.BigEndian.Uint64(it.Key()))
	}
	err := it.Error()
	it.Release()
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		e, err := w.load(id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Len returns the number of stored entries.
func (w *WAL) Len() (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	n := 0
	it := w.store.Iterate(kv.Range{})
	for it.Next() {
		n++
	}
	err := it.Error()
	it.Release()
	return n, err
}

// Blocks returns the indexed blocks ordered by file id and position.
func (w *WAL) Blocks() []CachedBlock {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.blocks.blocks()
}

func (w *WAL) load(id uint64) (*Entry, error) {
	e, err := w.entries.GetOrLoad(id, func(id uint64) (*Entry, error) {
		raw, err := w.store.Get(entryKey(id))
		if err != nil {
			return nil, errors.Wrapf(err, "load entry %v", id)
		}
		return decodeEntry(id, raw)
	})
	w.reportCacheStats()
	return e, err
}

// removeRange deletes entries with ids in [from, to).
func (w *WAL) removeRange(from, to uint64) error {
	if from >= to {
		return nil
	}
	bulk := w.store.Bulk()
	it := w.store.Iterate(kv.Range{Start: entryKey(from), Limit: entryKey(to)})
	var ids []uint64
	for it.Next() {
		ids = append(ids, binary.BigEndian.Uint64(it.Key()))
	}
	err := it.Error()
	it.Release()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := bulk.Delete(entryKey(id)); err != nil {
			return err
		}
	}
	if err := bulk.Write(); err != nil {
		return err
	}
	for _, id := range ids {
		w.entries.Remove(id)
	}
	w.blocks.removeRange(from, to)

	countEntries("remove", len(ids))
	metricCachedEntries().Set(int64(w.blocks.len()))
	return nil
}

func (w *WAL) reportCacheStats() {
	if changed, hit, miss := w.entries.Stats().Stats(); changed {
		metricCacheHitMiss().SetWithLabel(hit, map[string]string{"event": "hit"})
		metricCacheHitMiss().SetWithLabel(miss, map[string]string{"event": "miss"})
	}
}
