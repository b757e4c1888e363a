// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"io"
	"maps"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/execstate/block"
	"github.com/vechain/execstate/execution"
	"github.com/vechain/execstate/state"
	"github.com/vechain/execstate/thor"
	"github.com/vechain/execstate/tx"
)

// segmentRLP is the storage encoding of a segment.
// Maps are encoded as slices sorted by key.
type segmentRLP struct {
	First    uint64
	Anchor   thor.Bytes32
	Blocks   []*block.SealedBlock
	Diffs    []*blockDiffRLP
	Receipts [][]*tx.Receipt
	Requests [][]tx.Request
	Trie     *trieUpdatesRLP `rlp:"nil"`
}

type blockDiffRLP struct {
	Number   uint64
	Accounts []*accountDeltaRLP
}

type accountDeltaRLP struct {
	Address   thor.Address
	Before    *state.Account `rlp:"nil"`
	After     *state.Account `rlp:"nil"`
	Destroyed bool
	Storage   []*storageChangeRLP
}

type storageChangeRLP struct {
	Slot   thor.Bytes32
	Before *uint256.Int
	After  *uint256.Int
}

type trieUpdatesRLP struct {
	StateRoot thor.Bytes32
	Nodes     []*trieNodeRLP
}

type trieNodeRLP struct {
	Path    string
	Removed bool
	Node    []byte
}

func encodeDiff(diff *state.BlockDiff) *blockDiffRLP {
	enc := &blockDiffRLP{Number: diff.Number}
	for _, addr := range diff.Addresses() {
		delta := diff.Accounts[addr]
		d := &accountDeltaRLP{
			Address:   addr,
			Before:    delta.Before,
			After:     delta.After,
			Destroyed: delta.Destroyed,
		}
		for _, slot := range slices.SortedFunc(maps.Keys(delta.Storage), thor.Bytes32.Compare) {
			ch := delta.Storage[slot]
			d.Storage = append(d.Storage, &storageChangeRLP{Slot: slot, Before: &ch.Before, After: &ch.After})
		}
		enc.Accounts = append(enc.Accounts, d)
	}
	return enc
}

func (d *blockDiffRLP) decode() *state.BlockDiff {
	accounts := make(map[thor.Address]*state.AccountDelta, len(d.Accounts))
	for _, a := range d.Accounts {
		delta := &state.AccountDelta{
			Before:    a.Before,
			After:     a.After,
			Destroyed: a.Destroyed,
			Storage:   make(map[thor.Bytes32]state.StorageChange, len(a.Storage)),
		}
		for _, s := range a.Storage {
			delta.Storage[s.Slot] = state.StorageChange{Before: *s.Before, After: *s.After}
		}
		accounts[a.Address] = delta
	}
	return state.NewBlockDiff(d.Number, accounts)
}

func encodeTrie(t *state.TrieUpdates) *trieUpdatesRLP {
	if t == nil {
		return nil
	}
	enc := &trieUpdatesRLP{StateRoot: t.StateRoot}
	for _, path := range slices.Sorted(maps.Keys(t.Nodes)) {
		node := t.Nodes[path]
		enc.Nodes = append(enc.Nodes, &trieNodeRLP{Path: path, Removed: node == nil, Node: node})
	}
	return enc
}

func (t *trieUpdatesRLP) decode() *state.TrieUpdates {
	if t == nil {
		return nil
	}
	dec := &state.TrieUpdates{StateRoot: t.StateRoot, Nodes: make(map[string][]byte, len(t.Nodes))}
	for _, n := range t.Nodes {
		if n.Removed {
			dec.Nodes[n.Path] = nil
		} else {
			dec.Nodes[n.Path] = n.Node
		}
	}
	return dec
}

// EncodeRLP implements rlp.Encoder.
func (s *Segment) EncodeRLP(w io.Writer) error {
	enc := segmentRLP{
		First:    s.First(),
		Anchor:   s.anchor,
		Blocks:   s.blocks,
		Receipts: s.outcome.Receipts().Blocks(),
		Requests: s.outcome.Requests().Blocks(),
		Trie:     encodeTrie(s.trie),
	}
	for _, diff := range s.outcome.Journal().Diffs() {
		enc.Diffs = append(enc.Diffs, encodeDiff(diff))
	}
	return rlp.Encode(w, &enc)
}

// DecodeRLP implements rlp.Decoder.
func (s *Segment) DecodeRLP(stream *rlp.Stream) error {
	var dec segmentRLP
	if err := stream.Decode(&dec); err != nil {
		return err
	}
	diffs := make([]*state.BlockDiff, 0, len(dec.Diffs))
	for _, d := range dec.Diffs {
		diffs = append(diffs, d.decode())
	}
	outcome, err := execution.NewOutcome(dec.First, diffs, dec.Receipts, dec.Requests)
	if err != nil {
		return errors.Wrap(err, "rlp(Segment)")
	}
	seg, err := NewSegmentFromParts(dec.Anchor, dec.Blocks, outcome, dec.Trie.decode())
	if err != nil {
		return errors.Wrap(err, "rlp(Segment)")
	}
	*s = *seg
	return nil
}

type notificationRLP struct {
	Kind NotificationKind
	Old  *Segment `rlp:"nil"`
	New  *Segment `rlp:"nil"`
}

// EncodeRLP implements rlp.Encoder.
func (n *Notification) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &notificationRLP{n.Kind, n.Old, n.New})
}

// DecodeRLP implements rlp.Decoder.
func (n *Notification) DecodeRLP(s *rlp.Stream) error {
	var dec notificationRLP
	if err := s.Decode(&dec); err != nil {
		return err
	}
	decoded := Notification(dec)
	if err := decoded.Validate(); err != nil {
		return errors.Wrap(err, "rlp(Notification)")
	}
	*n = decoded
	return nil
}
