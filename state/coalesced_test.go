// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/execstate/state"
	"github.com/vechain/execstate/thor"
)

func slots(kv ...uint64) map[thor.Bytes32]state.StorageChange {
	m := make(map[thor.Bytes32]state.StorageChange)
	for i := 0; i+2 < len(kv); i += 3 {
		m[thor.Bytes32{byte(kv[i])}] = state.StorageChange{
			Before: *uint256.NewInt(kv[i+1]),
			After:  *uint256.NewInt(kv[i+2]),
		}
	}
	return m
}

// assertSameView checks c against a view rebuilt from scratch out of j's diffs.
func assertSameView(t *testing.T, j *state.Journal, c *state.Coalesced) {
	fresh, err := state.NewJournalFromDiffs(j.First(), j.Diffs())
	require.NoError(t, err)
	want := fresh.Coalesced()

	assert.Equal(t, want.Addresses(), c.Addresses())
	for _, addr := range want.Addresses() {
		w, _ := want.Account(addr)
		g, _ := c.Account(addr)
		assert.Equal(t, w, g, addr.String())
	}
}

func TestCoalescedScenario(t *testing.T) {
	j := newJournal(t)
	c := j.Coalesced()

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.Blocks())

	a, ok := c.Account(addrA)
	require.True(t, ok)
	assert.True(t, a.Before.Equal(acc(0, 100)))
	assert.True(t, a.After.Equal(acc(2, 120)))
	assert.False(t, a.IsCreated())

	b, ok := c.Account(addrB)
	require.True(t, ok)
	assert.Nil(t, b.Before)
	assert.True(t, b.After.Equal(acc(0, 7)))
	assert.True(t, b.IsCreated())

	_, ok = c.Account(addrC)
	assert.False(t, ok)

	// cached
	assert.Same(t, c, j.Coalesced())
}

func TestCoalescedStorageMerge(t *testing.T) {
	j := state.NewJournal(0)
	require.NoError(t, j.Append(diff(0, map[thor.Address]*state.AccountDelta{
		addrA: {Before: acc(0, 1), After: acc(0, 1), Storage: slots(1, 0, 5, 2, 3, 4)},
	})))
	require.NoError(t, j.Append(diff(1, map[thor.Address]*state.AccountDelta{
		addrA: {Before: acc(0, 1), After: acc(0, 1), Storage: slots(1, 5, 7, 3, 0, 9)},
	})))
	// A->B then B->A in a later block: last write wins, earliest before kept
	require.NoError(t, j.Append(diff(2, map[thor.Address]*state.AccountDelta{
		addrA: {Before: acc(0, 1), After: acc(0, 1), Storage: slots(1, 7, 5)},
	})))

	a, _ := j.Coalesced().Account(addrA)
	assert.Equal(t, slots(1, 0, 5, 2, 3, 4, 3, 0, 9), a.Storage)
	assert.False(t, a.Destroyed)

	// destroy wipes merged storage
	require.NoError(t, j.Append(diff(3, map[thor.Address]*state.AccountDelta{
		addrA: {Before: acc(0, 1), Destroyed: true},
	})))
	a, _ = j.Coalesced().Account(addrA)
	assert.True(t, a.Destroyed)
	assert.Nil(t, a.After)
	assert.True(t, a.Before.Equal(acc(0, 1)))
	assert.Equal(t, slots(1, 0, 0, 2, 3, 0, 3, 0, 0), a.Storage)

	// re-created with fresh storage
	require.NoError(t, j.Append(diff(4, map[thor.Address]*state.AccountDelta{
		addrA: {After: acc(0, 2), Storage: slots(2, 0, 8)},
	})))
	a, _ = j.Coalesced().Account(addrA)
	assert.True(t, a.Destroyed)
	assert.True(t, a.After.Equal(acc(0, 2)))
	assert.Equal(t, slots(1, 0, 0, 2, 3, 8, 3, 0, 0), a.Storage)

	assertSameView(t, j, j.Coalesced())
}

func TestCoalescedIncremental(t *testing.T) {
	j := newJournal(t)
	c := j.Coalesced()

	require.NoError(t, j.Append(diff(13, map[thor.Address]*state.AccountDelta{
		addrA: {Before: acc(2, 120), After: acc(3, 90), Storage: slots(9, 0, 1)},
		addrC: {After: acc(0, 30)},
	})))
	assert.Same(t, c, j.Coalesced())
	assert.Equal(t, 3, c.Len())
	assertSameView(t, j, c)

	// roll back through blocks touching A and C
	require.NoError(t, j.RevertLast(2))
	assert.Same(t, c, j.Coalesced())
	assert.Equal(t, 2, c.Blocks())
	assertSameView(t, j, c)

	_, ok := c.Account(addrC)
	assert.False(t, ok)
	_, ok = c.Account(addrB)
	assert.False(t, ok)
	a, _ := c.Account(addrA)
	assert.True(t, a.After.Equal(acc(2, 120)))
	assert.Empty(t, a.Storage)

	require.NoError(t, j.RevertLast(2))
	assert.Equal(t, 0, c.Len())
}

func TestCoalescedIsolation(t *testing.T) {
	j := newJournal(t)
	c := j.Coalesced()

	s, err := j.Slice(10, 11)
	require.NoError(t, err)
	sc := s.Coalesced()
	assert.NotSame(t, c, sc)
	assert.Equal(t, 1, sc.Len())

	// merging never writes through to the shared diffs
	d10, _ := j.DiffAt(10)
	assert.True(t, d10.Accounts[addrA].After.Equal(acc(1, 150)))

	cpy := j.Copy()
	assert.NotSame(t, c, cpy.Coalesced())
	assertSameView(t, cpy, cpy.Coalesced())

	var seen []thor.Address
	c.ForEach(func(addr thor.Address, _ *state.AccountDelta) bool {
		seen = append(seen, addr)
		return false
	})
	assert.Len(t, seen, 1)
}

func TestCoalescedAccountSnapshot(t *testing.T) {
	j := newJournal(t)
	a, ok := j.Coalesced().Account(addrA)
	require.True(t, ok)

	require.NoError(t, j.Append(diff(13, map[thor.Address]*state.AccountDelta{
		addrA: {Before: acc(2, 120), After: acc(3, 7), Storage: slots(1, 0, 4)},
	})))
	assert.True(t, a.After.Equal(acc(2, 120)), "held delta unchanged by append")
	assert.Empty(t, a.Storage)

	after, ok := j.Coalesced().After(addrA)
	assert.True(t, ok)
	assert.True(t, after.Equal(acc(3, 7)))
	v, ok := j.Coalesced().Storage(addrA, thor.Bytes32{1})
	assert.True(t, ok)
	assert.Equal(t, uint64(4), v.Uint64())
	_, ok = j.Coalesced().Storage(addrA, thor.Bytes32{2})
	assert.False(t, ok)

	require.NoError(t, j.RevertLast(1))
	assert.Empty(t, a.Storage)
	after, _ = j.Coalesced().After(addrA)
	assert.True(t, after.Equal(acc(2, 120)))
}

func TestCoalescedConcurrentBuild(t *testing.T) {
	j := newJournal(t)
	shared, err := j.Slice(10, 12)
	require.NoError(t, err)

	const readers = 8
	views := make([]*state.Coalesced, readers)
	hashed := make([]*state.HashedState, readers)
	var wg sync.WaitGroup
	for i := range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			views[i] = shared.Coalesced()
			hashed[i] = state.HashedStateFrom(views[i])
		}()
	}
	wg.Wait()

	for i := range readers {
		assert.Same(t, views[0], views[i])
		assert.Equal(t, hashed[0], hashed[i])
	}
	assertSameView(t, shared, views[0])
}
