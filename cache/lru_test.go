// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU(t *testing.T) {
	_, err := NewLRU[uint64, string](0)
	assert.Error(t, err)

	c, err := NewLRU[uint64, string](2)
	require.NoError(t, err)

	c.Add(1, "a")
	c.Add(2, "b")
	c.Add(3, "c")
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get(1)
	assert.False(t, ok, "oldest entry evicted")

	v, ok := c.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	c.Remove(3)
	_, ok = c.Get(3)
	assert.False(t, ok)

	_, hit, miss := c.Stats().Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(2), miss)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestLRUGetOrLoad(t *testing.T) {
	c, err := NewLRU[uint64, string](4)
	require.NoError(t, err)

	loads := 0
	loader := func(k uint64) (string, error) {
		loads++
		if k == 0 {
			return "", errors.New("not found")
		}
		return "v", nil
	}

	for range 3 {
		v, err := c.GetOrLoad(7, loader)
		assert.NoError(t, err)
		assert.Equal(t, "v", v)
	}
	assert.Equal(t, 1, loads)

	_, err = c.GetOrLoad(0, loader)
	assert.EqualError(t, err, "not found")
	assert.Equal(t, 1, c.Len(), "failed loads are not cached")
}
