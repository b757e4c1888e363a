// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"bytes"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/vechain/execstate/thor"
)

// EmptyRoot is the root hash of an empty receipts trie.
var EmptyRoot = thor.Bytes32(types.EmptyReceiptsHash)

// Receipts slice of receipts.
type Receipts []*Receipt

// RootHash computes merkle root hash of receipts.
func (rs Receipts) RootHash() thor.Bytes32 {
	if len(rs) == 0 {
		// optimized
		return EmptyRoot
	}
	return thor.Bytes32(types.DeriveSha(derivableReceipts(rs), trie.NewStackTrie(nil)))
}

// Bloom returns the union of bloom filters of all receipts.
func (rs Receipts) Bloom() (bloom types.Bloom) {
	for _, r := range rs {
		b := r.Bloom()
		for i := range bloom {
			bloom[i] |= b[i]
		}
	}
	return
}

// CumulativeGasUsed returns the gas used by the whole block, which is the
// cumulative gas of the last receipt.
func (rs Receipts) CumulativeGasUsed() uint64 {
	if len(rs) == 0 {
		return 0
	}
	return rs[len(rs)-1].CumulativeGasUsed
}

// implements types.DerivableList
type derivableReceipts Receipts

func (rs derivableReceipts) Len() int {
	return len(rs)
}

func (rs derivableReceipts) EncodeIndex(i int, w *bytes.Buffer) {
	if err := rs[i].encodeConsensus(w); err != nil {
		panic(err)
	}
}
