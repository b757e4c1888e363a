// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/vechain/execstate/co"
	"github.com/vechain/execstate/thor"
)

const hashChunkSize = 256

// HashedStorage is the storage update of one account, keyed by hashed slot.
// Wiped means all slots present before the range are removed first.
// A zero slot value means deletion.
type HashedStorage struct {
	Wiped bool
	Slots map[thor.Bytes32]uint256.Int
}

// HashedState is the coalesced change projected for the trie builder.
// Accounts are keyed by keccak256(address), and a nil account means deletion.
type HashedState struct {
	Accounts map[thor.Bytes32]*Account
	Storages map[thor.Bytes32]*HashedStorage
}

// IsEmpty returns whether there is nothing to update.
func (h *HashedState) IsEmpty() bool {
	return len(h.Accounts) == 0 && len(h.Storages) == 0
}

// HashedStateFrom projects the coalesced view. Hashing is spread over workers.
func HashedStateFrom(c *Coalesced) *HashedState {
	addrs := c.Addresses()

	var chunks [][]thor.Address
	for len(addrs) > 0 {
		n := min(hashChunkSize, len(addrs))
		chunks = append(chunks, addrs[:n])
		addrs = addrs[n:]
	}

	partials := make([]*HashedState, len(chunks))
	<-co.Parallel(func(queue chan<- func()) {
		for i, chunk := range chunks {
			queue <- func() {
				partials[i] = hashAccounts(c, chunk)
			}
		}
	})

	hs := &HashedState{
		Accounts: make(map[thor.Bytes32]*Account, c.Len()),
		Storages: make(map[thor.Bytes32]*HashedStorage),
	}
	for _, p := range partials {
		for k, v := range p.Accounts {
			hs.Accounts[k] = v
		}
		for k, v := range p.Storages {
			hs.Storages[k] = v
		}
	}
	return hs
}

func hashAccounts(c *Coalesced, addrs []thor.Address) *HashedState {
	hs := &HashedState{
		Accounts: make(map[thor.Bytes32]*Account, len(addrs)),
		Storages: make(map[thor.Bytes32]*HashedStorage),
	}
	for _, addr := range addrs {
		delta := c.accounts[addr]
		key := thor.Keccak256(addr[:])
		hs.Accounts[key] = delta.After

		if !delta.Destroyed && len(delta.Storage) == 0 {
			continue
		}
		storage := &HashedStorage{
			Wiped: delta.Destroyed,
			Slots: make(map[thor.Bytes32]uint256.Int, len(delta.Storage)),
		}
		for slot, ch := range delta.Storage {
			storage.Slots[thor.Keccak256(slot[:])] = ch.After
		}
		hs.Storages[key] = storage
	}
	return hs
}
