// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/execstate/thor"
)

// Header contains almost all information about a block, except block body.
// It's immutable.
type Header struct {
	body headerBody

	cache struct {
		hash atomic.Value
	}
}

// headerBody body of header
type headerBody struct {
	ParentHash  thor.Bytes32
	Number      uint64
	Timestamp   uint64
	GasLimit    uint64
	GasUsed     uint64
	Beneficiary thor.Address

	TxsRoot      thor.Bytes32
	StateRoot    thor.Bytes32
	ReceiptsRoot thor.Bytes32
	RequestsHash thor.Bytes32

	Extra []byte
}

// ParentHash returns hash of parent block.
func (h *Header) ParentHash() thor.Bytes32 {
	return h.body.ParentHash
}

// Number returns sequential number of this block.
func (h *Header) Number() uint64 {
	return h.body.Number
}

// Timestamp returns timestamp of this block.
func (h *Header) Timestamp() uint64 {
	return h.body.Timestamp
}

// GasLimit returns gas limit of this block.
func (h *Header) GasLimit() uint64 {
	return h.body.GasLimit
}

// GasUsed returns gas used by txs.
func (h *Header) GasUsed() uint64 {
	return h.body.GasUsed
}

// Beneficiary returns reward recipient.
func (h *Header) Beneficiary() thor.Address {
	return h.body.Beneficiary
}

// TxsRoot returns merkle root of txs contained in this block.
func (h *Header) TxsRoot() thor.Bytes32 {
	return h.body.TxsRoot
}

// StateRoot returns account state merkle root just after this block being applied.
func (h *Header) StateRoot() thor.Bytes32 {
	return h.body.StateRoot
}

// ReceiptsRoot returns merkle root of tx receipts.
func (h *Header) ReceiptsRoot() thor.Bytes32 {
	return h.body.ReceiptsRoot
}

// RequestsHash returns the commitment of requests emitted by the block.
func (h *Header) RequestsHash() thor.Bytes32 {
	return h.body.RequestsHash
}

// Extra returns a copy of the extra data.
func (h *Header) Extra() []byte {
	return append([]byte(nil), h.body.Extra...)
}

// Hash computes hash of the header, which identifies the block.
func (h *Header) Hash() (hash thor.Bytes32) {
	if cached := h.cache.hash.Load(); cached != nil {
		return cached.(thor.Bytes32)
	}
	defer func() { h.cache.hash.Store(hash) }()

	return thor.Keccak256Fn(func(w io.Writer) {
		rlp.Encode(w, &h.body)
	})
}

// EncodeRLP implements rlp.Encoder
func (h *Header) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &h.body)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var body headerBody

	if err := s.Decode(&body); err != nil {
		return err
	}
	*h = Header{body: body}
	return nil
}

func (h *Header) String() string {
	return fmt.Sprintf(`Header(%v):
	Number:			%v
	ParentHash:		%v
	Timestamp:		%v
	Beneficiary:	%v
	GasLimit:		%v
	GasUsed:		%v
	TxsRoot:		%v
	StateRoot:		%v
	ReceiptsRoot:	%v
	RequestsHash:	%v
	Extra:			0x%x`, h.Hash(), h.body.Number, h.body.ParentHash, h.body.Timestamp,
		h.body.Beneficiary, h.body.GasLimit, h.body.GasUsed,
		h.body.TxsRoot, h.body.StateRoot, h.body.ReceiptsRoot, h.body.RequestsHash, h.body.Extra)
}
