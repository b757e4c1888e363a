// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"maps"
	"slices"

	"github.com/holiman/uint256"

	"github.com/vechain/execstate/stackedmap"
	"github.com/vechain/execstate/thor"
)

// Coalesced is the net change of every touched account over a block range.
// For each account it holds the earliest Before, the latest After and the union of
// slot changes, last write wins per slot.
//
// Each block pushes one level on a stacked map recording the raw deltas of that
// block, so popping blocks only rebuilds the accounts those blocks touched.
type Coalesced struct {
	accounts map[thor.Address]*AccountDelta
	blocks   *stackedmap.StackedMap[thor.Address, *AccountDelta]
}

func newCoalesced() *Coalesced {
	return &Coalesced{
		accounts: make(map[thor.Address]*AccountDelta),
		blocks:   stackedmap.New[thor.Address, *AccountDelta](),
	}
}

func coalesce(diffs []*BlockDiff) *Coalesced {
	c := newCoalesced()
	for _, diff := range diffs {
		c.push(diff)
	}
	metricCoalescedRebuilds().Add(1)
	return c
}

func (c *Coalesced) push(diff *BlockDiff) {
	c.blocks.Push()
	for addr, delta := range diff.Accounts {
		c.blocks.Put(addr, delta)
		if merged, ok := c.accounts[addr]; ok {
			merged.apply(delta)
		} else {
			c.accounts[addr] = delta.clone()
		}
	}
}

// popTo drops blocks until depth blocks remain.
func (c *Coalesced) popTo(depth int) {
	for _, addr := range c.blocks.PopTo(depth) {
		revs := c.blocks.Revisions(addr)
		if len(revs) == 0 {
			delete(c.accounts, addr)
			continue
		}
		merged := revs[0].clone()
		for _, delta := range revs[1:] {
			merged.apply(delta)
		}
		c.accounts[addr] = merged
	}
}

// Len returns the count of touched accounts.
func (c *Coalesced) Len() int {
	return len(c.accounts)
}

// Blocks returns the count of blocks folded in.
func (c *Coalesced) Blocks() int {
	return c.blocks.Depth()
}

// Account returns a copy of the net change of addr.
// Later appends or reverts don't affect the returned delta.
func (c *Coalesced) Account(addr thor.Address) (*AccountDelta, bool) {
	delta, ok := c.accounts[addr]
	if !ok {
		return nil, false
	}
	return delta.clone(), true
}

// After returns the latest state of addr, nil if it was destroyed.
func (c *Coalesced) After(addr thor.Address) (*Account, bool) {
	delta, ok := c.accounts[addr]
	if !ok {
		return nil, false
	}
	return delta.After, true
}

// Storage returns the latest value of a slot of addr.
// ok is false unless the slot was written or the account destroyed.
func (c *Coalesced) Storage(addr thor.Address, slot thor.Bytes32) (value uint256.Int, ok bool) {
	delta, ok := c.accounts[addr]
	if !ok {
		return
	}
	if ch, ok := delta.Storage[slot]; ok {
		return ch.After, true
	}
	// wiped by a destroy
	return value, delta.Destroyed
}

// Addresses returns touched accounts in ascending order.
func (c *Coalesced) Addresses() []thor.Address {
	return slices.SortedFunc(maps.Keys(c.accounts), thor.Address.Compare)
}

// ForEach calls fn for each touched account, in no particular order, until fn returns false.
// delta must not be modified or kept after fn returns.
func (c *Coalesced) ForEach(fn func(addr thor.Address, delta *AccountDelta) bool) {
	for addr, delta := range c.accounts {
		if !fn(addr, delta) {
			return
		}
	}
}
