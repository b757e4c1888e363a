// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"maps"
	"slices"

	"github.com/holiman/uint256"

	"github.com/vechain/execstate/thor"
)

// StorageChange is the before and after value of a storage slot.
// A zero value means the slot is absent.
type StorageChange struct {
	Before uint256.Int
	After  uint256.Int
}

// AccountDelta is the change of one account.
//
// A nil Before means the account did not exist before it was touched.
// A nil After together with Destroyed means the account was self-destructed.
type AccountDelta struct {
	Before    *Account
	After     *Account
	Storage   map[thor.Bytes32]StorageChange
	Destroyed bool
}

// IsCreated returns whether the account came into existence.
func (d *AccountDelta) IsCreated() bool {
	return d.Before == nil && d.After != nil
}

func (d *AccountDelta) clone() *AccountDelta {
	cpy := *d
	cpy.Storage = make(map[thor.Bytes32]StorageChange, len(d.Storage))
	maps.Copy(cpy.Storage, d.Storage)
	return &cpy
}

// apply merges the change of a later block into d.
// d must be exclusively owned by the caller.
func (d *AccountDelta) apply(next *AccountDelta) {
	d.After = next.After
	if next.Destroyed {
		d.Destroyed = true
		for slot, ch := range d.Storage {
			ch.After.Clear()
			d.Storage[slot] = ch
		}
	}
	for slot, ch := range next.Storage {
		if prev, ok := d.Storage[slot]; ok {
			prev.After = ch.After
			d.Storage[slot] = prev
		} else {
			d.Storage[slot] = ch
		}
	}
}

// BlockDiff is the set of account changes made by one block.
// It's immutable once built.
type BlockDiff struct {
	Number   uint64
	Accounts map[thor.Address]*AccountDelta
}

// NewBlockDiff creates a block diff. The given map and deltas are copied, so the
// caller may reuse them.
func NewBlockDiff(number uint64, accounts map[thor.Address]*AccountDelta) *BlockDiff {
	cpy := make(map[thor.Address]*AccountDelta, len(accounts))
	for addr, delta := range accounts {
		cpy[addr] = delta.clone()
	}
	return &BlockDiff{Number: number, Accounts: cpy}
}

// Len returns the count of touched accounts.
func (d *BlockDiff) Len() int {
	return len(d.Accounts)
}

// Addresses returns the touched accounts in ascending order.
func (d *BlockDiff) Addresses() []thor.Address {
	return slices.SortedFunc(maps.Keys(d.Accounts), thor.Address.Compare)
}
