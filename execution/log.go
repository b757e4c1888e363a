// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package execution

import (
	"slices"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/vechain/execstate/thor"
	"github.com/vechain/execstate/tx"
)

// Log is an ordered list of per-block item lists covering [First, End).
// Like the state journal, shrinking operations cap the capacity so siblings never alias.
type Log[T any] struct {
	first  uint64
	blocks [][]T
}

func newLog[T any](first uint64, blocks [][]T) Log[T] {
	return Log[T]{first: first, blocks: blocks[:len(blocks):len(blocks)]}
}

// First returns the first block number of the range.
func (l *Log[T]) First() uint64 { return l.first }

// End returns the block number right after the range.
func (l *Log[T]) End() uint64 { return l.first + uint64(len(l.blocks)) }

// Len returns the count of blocks.
func (l *Log[T]) Len() int { return len(l.blocks) }

// IsEmpty returns whether the log covers no block.
func (l *Log[T]) IsEmpty() bool { return len(l.blocks) == 0 }

// Blocks returns the per-block lists in block order.
// The returned slices must not be modified.
func (l *Log[T]) Blocks() [][]T {
	return l.blocks[:len(l.blocks):len(l.blocks)]
}

// ByBlock returns a copy of the items of block number.
func (l *Log[T]) ByBlock(number uint64) ([]T, error) {
	if number < l.first || number >= l.End() {
		return nil, errors.Wrapf(ErrBlockNumberOutOfRange, "block %v not in [%v, %v)", number, l.first, l.End())
	}
	return slices.Clone(l.blocks[number-l.first]), nil
}

// Append adds the items of the block at End.
func (l *Log[T]) Append(items []T) {
	l.blocks = append(l.blocks, slices.Clone(items))
}

// RevertLast drops the last n blocks.
func (l *Log[T]) RevertLast(n int) error {
	if n < 0 || n > len(l.blocks) {
		return errors.Wrapf(ErrRevertBeyondRange, "revert %v of %v", n, len(l.blocks))
	}
	keep := len(l.blocks) - n
	l.blocks = l.blocks[:keep:keep]
	return nil
}

func (l *Log[T]) slice(from, to uint64) (Log[T], error) {
	if from < l.first || from > to || to > l.End() {
		return Log[T]{}, errors.Wrapf(ErrBlockNumberOutOfRange, "[%v, %v) not in [%v, %v)", from, to, l.first, l.End())
	}
	lo, hi := from-l.first, to-l.first
	return Log[T]{first: from, blocks: l.blocks[lo:hi:hi]}, nil
}

func (l *Log[T]) concat(other *Log[T]) Log[T] {
	return newLog(l.first, append(l.Blocks(), other.blocks...))
}

// ReceiptLog holds the receipts of each block in a range.
type ReceiptLog struct {
	Log[*tx.Receipt]
}

// NewReceiptLog creates a receipt log starting at block first.
func NewReceiptLog(first uint64, blocks [][]*tx.Receipt) *ReceiptLog {
	return &ReceiptLog{newLog(first, blocks)}
}

// Slice returns the receipts of blocks [from, to), sharing the underlying lists.
func (rl *ReceiptLog) Slice(from, to uint64) (*ReceiptLog, error) {
	l, err := rl.slice(from, to)
	if err != nil {
		return nil, err
	}
	return &ReceiptLog{l}, nil
}

// Copy returns a receipt log sharing all lists with rl.
func (rl *ReceiptLog) Copy() *ReceiptLog {
	return &ReceiptLog{newLog(rl.first, rl.blocks)}
}

// CumulativeGasUsed returns the gas used by all blocks in the range.
func (rl *ReceiptLog) CumulativeGasUsed() (total uint64) {
	for _, receipts := range rl.blocks {
		total += tx.Receipts(receipts).CumulativeGasUsed()
	}
	return
}

// GasUsed returns the gas used by block number.
func (rl *ReceiptLog) GasUsed(number uint64) (uint64, error) {
	receipts, err := rl.ByBlock(number)
	if err != nil {
		return 0, err
	}
	return tx.Receipts(receipts).CumulativeGasUsed(), nil
}

// LogsBloom returns the union of bloom filters of all receipts in the range.
func (rl *ReceiptLog) LogsBloom() (bloom types.Bloom) {
	for _, receipts := range rl.blocks {
		b := tx.Receipts(receipts).Bloom()
		for i := range bloom {
			bloom[i] |= b[i]
		}
	}
	return
}

// RootHash computes the receipts root of block number.
func (rl *ReceiptLog) RootHash(number uint64) (thor.Bytes32, error) {
	receipts, err := rl.ByBlock(number)
	if err != nil {
		return thor.Bytes32{}, err
	}
	return tx.Receipts(receipts).RootHash(), nil
}

// RequestLog holds the requests of each block in a range.
type RequestLog struct {
	Log[tx.Request]
}

// NewRequestLog creates a request log starting at block first.
func NewRequestLog(first uint64, blocks [][]tx.Request) *RequestLog {
	return &RequestLog{newLog(first, blocks)}
}

// Slice returns the requests of blocks [from, to), sharing the underlying lists.
func (rl *RequestLog) Slice(from, to uint64) (*RequestLog, error) {
	l, err := rl.slice(from, to)
	if err != nil {
		return nil, err
	}
	return &RequestLog{l}, nil
}

// Copy returns a request log sharing all lists with rl.
func (rl *RequestLog) Copy() *RequestLog {
	return &RequestLog{newLog(rl.first, rl.blocks)}
}

// RequestsHash computes the requests commitment of block number.
func (rl *RequestLog) RequestsHash(number uint64) (thor.Bytes32, error) {
	requests, err := rl.ByBlock(number)
	if err != nil {
		return thor.Bytes32{}, err
	}
	return tx.Requests(requests).Hash(), nil
}
