// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/execstate/thor"
)

// ErrSendersMismatch is returned when the count of senders differs from the count of txs.
var ErrSendersMismatch = errors.New("senders mismatch txs")

// SealedBlock is a block together with the recovered sender of each tx.
// It's immutable.
type SealedBlock struct {
	*Block
	senders []thor.Address
}

// NewSealedBlock pairs a block with already recovered senders.
func NewSealedBlock(b *Block, senders []thor.Address) (*SealedBlock, error) {
	if len(senders) != len(b.txs) {
		return nil, errors.Wrapf(ErrSendersMismatch, "%v senders for %v txs", len(senders), len(b.txs))
	}
	return &SealedBlock{b, slices.Clone(senders)}, nil
}

// Seal recovers senders of all txs in b.
func Seal(b *Block, signer types.Signer) (*SealedBlock, error) {
	senders := make([]thor.Address, 0, len(b.txs))
	for i, tx := range b.txs {
		sender, err := types.Sender(signer, tx)
		if err != nil {
			return nil, errors.Wrapf(err, "recover sender of tx #%v", i)
		}
		senders = append(senders, thor.Address(sender))
	}
	return &SealedBlock{b, senders}, nil
}

// Senders returns a copy of senders, in tx order.
func (b *SealedBlock) Senders() []thor.Address {
	return slices.Clone(b.senders)
}

// Unseal returns the block without senders.
func (b *SealedBlock) Unseal() *Block {
	return b.Block
}

// EncodeRLP implements rlp.Encoder.
func (b *SealedBlock) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{
		b.Block,
		b.senders,
	})
}

// DecodeRLP implements rlp.Decoder.
func (b *SealedBlock) DecodeRLP(s *rlp.Stream) error {
	payload := struct {
		Block   Block
		Senders []thor.Address
	}{}

	if err := s.Decode(&payload); err != nil {
		return err
	}
	sealed, err := NewSealedBlock(&payload.Block, payload.Senders)
	if err != nil {
		return err
	}
	*b = *sealed
	return nil
}
