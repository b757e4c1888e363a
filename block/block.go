// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/vechain/execstate/thor"
)

// Block is an immutable block type.
type Block struct {
	header *Header
	txs    types.Transactions
}

// New create a block instance.
// Note: This method is usually to recover a block by its portions, and the TxsRoot is not verified.
// To build up a block, use a Builder.
func New(header *Header, txs types.Transactions) *Block {
	return &Block{
		header,
		slices.Clone(txs),
	}
}

// Header returns the block header.
func (b *Block) Header() *Header {
	return b.header
}

// Transactions returns a copy of transactions.
func (b *Block) Transactions() types.Transactions {
	return slices.Clone(b.txs)
}

// Hash returns the block hash.
func (b *Block) Hash() thor.Bytes32 {
	return b.header.Hash()
}

// Number returns the block number.
func (b *Block) Number() uint64 {
	return b.header.Number()
}

// ParentHash returns the hash of parent block.
func (b *Block) ParentHash() thor.Bytes32 {
	return b.header.ParentHash()
}

// EncodeRLP implements rlp.Encoder.
func (b *Block) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{
		b.header,
		b.txs,
	})
}

// DecodeRLP implements rlp.Decoder.
func (b *Block) DecodeRLP(s *rlp.Stream) error {
	payload := struct {
		Header Header
		Txs    types.Transactions
	}{}

	if err := s.Decode(&payload); err != nil {
		return err
	}
	*b = Block{
		header: &payload.Header,
		txs:    payload.Txs,
	}
	return nil
}

// TxsRoot computes merkle root hash of txs.
func TxsRoot(txs types.Transactions) thor.Bytes32 {
	if len(txs) == 0 {
		// optimized
		return thor.Bytes32(types.EmptyTxsHash)
	}
	return thor.Bytes32(types.DeriveSha(txs, trie.NewStackTrie(nil)))
}
