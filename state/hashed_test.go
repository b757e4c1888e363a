// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/execstate/state"
	"github.com/vechain/execstate/thor"
)

func TestHashedStateFrom(t *testing.T) {
	j := state.NewJournal(0)
	require.NoError(t, j.Append(diff(0, map[thor.Address]*state.AccountDelta{
		addrA: {Before: acc(0, 1), After: acc(1, 2), Storage: slots(1, 0, 5, 2, 6, 0)},
		addrB: {Before: acc(0, 3), Destroyed: true, Storage: slots(4, 1, 0)},
		addrC: {After: acc(0, 9)},
	})))

	hs := state.HashedStateFrom(j.Coalesced())
	assert.False(t, hs.IsEmpty())
	assert.Len(t, hs.Accounts, 3)

	keyA := thor.Keccak256(addrA[:])
	keyB := thor.Keccak256(addrB[:])
	keyC := thor.Keccak256(addrC[:])

	assert.True(t, hs.Accounts[keyA].Equal(acc(1, 2)))
	assert.True(t, hs.Accounts[keyC].Equal(acc(0, 9)))
	b, ok := hs.Accounts[keyB]
	assert.True(t, ok)
	assert.Nil(t, b, "destroyed account is a deletion")

	slot := func(n byte) thor.Bytes32 { return thor.Keccak256([]byte{n}, make([]byte, 31)) }

	sa := hs.Storages[keyA]
	require.NotNil(t, sa)
	assert.False(t, sa.Wiped)
	assert.Equal(t, map[thor.Bytes32]uint256.Int{
		slot(1): *uint256.NewInt(5),
		slot(2): {},
	}, sa.Slots)

	sb := hs.Storages[keyB]
	require.NotNil(t, sb)
	assert.True(t, sb.Wiped)
	assert.True(t, func() bool { v := sb.Slots[slot(4)]; return v.IsZero() }())

	_, ok = hs.Storages[keyC]
	assert.False(t, ok)
}

func TestHashedStateManyAccounts(t *testing.T) {
	deltas := make(map[thor.Address]*state.AccountDelta)
	for i := range 1000 {
		var addr thor.Address
		addr[0], addr[1] = byte(i>>8), byte(i)
		deltas[addr] = &state.AccountDelta{After: acc(uint64(i), uint64(i))}
	}
	j := state.NewJournal(0)
	require.NoError(t, j.Append(diff(0, deltas)))

	hs := state.HashedStateFrom(j.Coalesced())
	assert.Len(t, hs.Accounts, 1000)
	assert.Empty(t, hs.Storages)
	for addr, d := range deltas {
		assert.True(t, hs.Accounts[thor.Keccak256(addr[:])].Equal(d.After))
	}
}

func TestHashedStateEmpty(t *testing.T) {
	hs := state.HashedStateFrom(state.NewJournal(0).Coalesced())
	assert.True(t, hs.IsEmpty())
}

func TestAccount(t *testing.T) {
	a := state.NewAccount(0, nil, nil)
	assert.True(t, a.IsEmpty())
	assert.Equal(t, thor.EmptyCodeHash, a.CodeHash)

	code := []byte{0x60, 0x00}
	b := state.NewAccount(0, nil, code)
	assert.False(t, b.IsEmpty())
	assert.Equal(t, thor.Keccak256(code), b.CodeHash)

	assert.True(t, (*state.Account)(nil).Equal(nil))
	assert.False(t, a.Equal(nil))
	assert.False(t, a.Equal(b))
	assert.True(t, (&state.Account{CodeHash: thor.EmptyCodeHash}).Equal(a))

	var tu *state.TrieUpdates
	assert.Equal(t, 0, tu.Len())
}
