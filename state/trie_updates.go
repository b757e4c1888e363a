// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/execstate/thor"

// TrieUpdates is the output of the trie builder for a block range: the new state
// root and the changed trie nodes keyed by path. A nil node means removed.
// It's opaque to this package.
type TrieUpdates struct {
	StateRoot thor.Bytes32
	Nodes     map[string][]byte
}

// Len returns the count of changed nodes.
func (t *TrieUpdates) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}
