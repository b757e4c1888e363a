// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"bytes"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/execstate/thor"
)

const (
	// ReceiptStatusFailed is the status code of a transaction if execution failed.
	ReceiptStatusFailed = uint64(0)
	// ReceiptStatusSuccessful is the status code of a transaction if execution succeeded.
	ReceiptStatusSuccessful = uint64(1)
)

var (
	receiptStatusFailedRLP     = []byte{}
	receiptStatusSuccessfulRLP = []byte{0x01}
)

// Log represents a contract log event.
type Log struct {
	// address of the contract that generated the event
	Address thor.Address
	// list of topics provided by the contract.
	Topics []thor.Bytes32
	// supplied by the contract, usually ABI-encoded
	Data []byte
}

// Receipt represents the results of a transaction.
type Receipt struct {
	// type of the transaction
	Type uint8
	// status of tx execution
	Status uint64
	// gas used by the block up to and including this tx
	CumulativeGasUsed uint64
	// logs produced
	Logs []*Log
}

// receiptConsensus is the consensus encoding of a receipt.
type receiptConsensus struct {
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Bloom             types.Bloom
	Logs              []*Log
}

// Bloom returns the bloom filter of the receipt's logs.
func (r *Receipt) Bloom() (bloom types.Bloom) {
	for _, log := range r.Logs {
		bloom.Add(log.Address[:])
		for _, topic := range log.Topics {
			bloom.Add(topic[:])
		}
	}
	return
}

// encodeConsensus writes the typed consensus encoding used to derive the receipts root.
func (r *Receipt) encodeConsensus(w *bytes.Buffer) error {
	status := receiptStatusFailedRLP
	if r.Status == ReceiptStatusSuccessful {
		status = receiptStatusSuccessfulRLP
	}
	if r.Type != 0 {
		w.WriteByte(r.Type)
	}
	return rlp.Encode(w, &receiptConsensus{
		PostStateOrStatus: status,
		CumulativeGasUsed: r.CumulativeGasUsed,
		Bloom:             r.Bloom(),
		Logs:              r.Logs,
	})
}
