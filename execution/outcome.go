// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package execution

import (
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/execstate/state"
	"github.com/vechain/execstate/thor"
	"github.com/vechain/execstate/tx"
)

// Outcome is the result of executing the blocks [FirstBlock, End): the state
// journal, the receipts and the requests, one entry per block each.
//
// Extend, RevertTo, SplitAt and Copy never modify their receiver or arguments.
// Append modifies the outcome in place, and must only be called by its sole owner.
type Outcome struct {
	journal  *state.Journal
	receipts *ReceiptLog
	requests *RequestLog
}

// New creates an empty outcome anchored at block first.
func New(first uint64) *Outcome {
	return &Outcome{
		journal:  state.NewJournal(first),
		receipts: NewReceiptLog(first, nil),
		requests: NewRequestLog(first, nil),
	}
}

// NewOutcome creates an outcome of consecutive blocks starting at first.
// A nil requests means no block emitted any request.
func NewOutcome(first uint64, diffs []*state.BlockDiff, receipts [][]*tx.Receipt, requests [][]tx.Request) (*Outcome, error) {
	if requests == nil {
		requests = make([][]tx.Request, len(diffs))
	}
	if len(receipts) != len(diffs) || len(requests) != len(diffs) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%v diffs, %v receipts, %v requests", len(diffs), len(receipts), len(requests))
	}
	journal, err := state.NewJournalFromDiffs(first, diffs)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		journal:  journal,
		receipts: NewReceiptLog(first, receipts),
		requests: NewRequestLog(first, requests),
	}, nil
}

// FirstBlock returns the first block number of the range.
func (o *Outcome) FirstBlock() uint64 { return o.journal.First() }

// End returns the block number right after the range.
func (o *Outcome) End() uint64 { return o.journal.End() }

// Len returns the count of blocks.
func (o *Outcome) Len() int { return o.journal.Len() }

// IsEmpty returns whether the outcome covers no block.
func (o *Outcome) IsEmpty() bool { return o.journal.IsEmpty() }

// LastBlock returns the last block number of the range.
func (o *Outcome) LastBlock() (uint64, error) {
	if o.IsEmpty() {
		return 0, errors.Wrapf(ErrEmptyRange, "no last block of outcome anchored at %v", o.FirstBlock())
	}
	return o.End() - 1, nil
}

// Journal returns the state journal.
func (o *Outcome) Journal() *state.Journal { return o.journal }

// Receipts returns the receipt log.
func (o *Outcome) Receipts() *ReceiptLog { return o.receipts }

// Requests returns the request log.
func (o *Outcome) Requests() *RequestLog { return o.requests }

// Append adds the result of executing the block at End.
func (o *Outcome) Append(diff *state.BlockDiff, receipts tx.Receipts, requests tx.Requests) (err error) {
	defer func() { observe("append", err) }()

	if diff.Number != o.End() {
		return errors.Wrapf(ErrNonContiguousRange, "append block %v to [%v, %v)", diff.Number, o.FirstBlock(), o.End())
	}
	if err := o.journal.Append(diff); err != nil {
		return err
	}
	o.receipts.Append(receipts)
	o.requests.Append(requests)
	return nil
}

// Extend returns the outcome of o followed by other.
// other must start right at the end of o.
func (o *Outcome) Extend(other *Outcome) (_ *Outcome, err error) {
	defer func() { observe("extend", err) }()

	if other.FirstBlock() != o.End() {
		return nil, errors.Wrapf(ErrNonContiguousRange, "extend [%v, %v) with [%v, %v)",
			o.FirstBlock(), o.End(), other.FirstBlock(), other.End())
	}
	metricExtendedBlocks().Observe(int64(other.Len()))
	if other.IsEmpty() {
		return o.Copy(), nil
	}
	if o.IsEmpty() {
		return other.Copy(), nil
	}
	journal, err := state.NewJournalFromDiffs(o.FirstBlock(), append(o.journal.Diffs(), other.journal.Diffs()...))
	if err != nil {
		return nil, err
	}
	return &Outcome{
		journal:  journal,
		receipts: &ReceiptLog{o.receipts.concat(&other.receipts.Log)},
		requests: &RequestLog{o.requests.concat(&other.requests.Log)},
	}, nil
}

// RevertTo returns the outcome of blocks [FirstBlock, target).
func (o *Outcome) RevertTo(target uint64) (_ *Outcome, err error) {
	defer func() { observe("revert", err) }()

	if target < o.FirstBlock() || target > o.End() {
		return nil, errors.Wrapf(ErrRevertBeyondRange, "revert to %v of [%v, %v)", target, o.FirstBlock(), o.End())
	}
	metricRevertedBlocks().Observe(int64(o.End() - target))
	return o.slice(o.FirstBlock(), target), nil
}

// SplitAt returns the outcomes of blocks [FirstBlock, at) and [at, End).
// Splitting at either boundary yields an empty side.
func (o *Outcome) SplitAt(at uint64) (_, _ *Outcome, err error) {
	defer func() { observe("split", err) }()

	if at < o.FirstBlock() || at > o.End() {
		return nil, nil, errors.Wrapf(ErrSplitOutOfRange, "split at %v of [%v, %v)", at, o.FirstBlock(), o.End())
	}
	left, right := o.slice(o.FirstBlock(), at), o.slice(at, o.End())
	metricSplitOffBlocks().Observe(int64(right.Len()))
	logger.Trace("outcome split", "at", at, "left", left.Len(), "right", right.Len())
	return left, right, nil
}

// slice returns blocks [from, to) that are known to be in range.
func (o *Outcome) slice(from, to uint64) *Outcome {
	journal, err := o.journal.Slice(from, to)
	if err != nil {
		panic(err)
	}
	receipts, err := o.receipts.Slice(from, to)
	if err != nil {
		panic(err)
	}
	requests, err := o.requests.Slice(from, to)
	if err != nil {
		panic(err)
	}
	return &Outcome{journal, receipts, requests}
}

// Copy returns an outcome sharing all per-block data with o.
func (o *Outcome) Copy() *Outcome {
	return &Outcome{
		journal:  o.journal.Copy(),
		receipts: o.receipts.Copy(),
		requests: o.requests.Copy(),
	}
}

// ReceiptsFor returns the receipts of block number.
func (o *Outcome) ReceiptsFor(number uint64) (tx.Receipts, error) {
	return o.receipts.ByBlock(number)
}

// RequestsFor returns the requests of block number.
func (o *Outcome) RequestsFor(number uint64) (tx.Requests, error) {
	return o.requests.ByBlock(number)
}

// DiffFor returns the state diff of block number.
func (o *Outcome) DiffFor(number uint64) (*state.BlockDiff, error) {
	diff, ok := o.journal.DiffAt(number)
	if !ok {
		return nil, errors.Wrapf(ErrBlockNumberOutOfRange, "block %v not in [%v, %v)", number, o.FirstBlock(), o.End())
	}
	return diff, nil
}

// Coalesced returns the net state change over the range.
func (o *Outcome) Coalesced() *state.Coalesced {
	return o.journal.Coalesced()
}

// HashedStateUpdate projects the net state change for the trie builder.
// It's never computed implicitly.
func (o *Outcome) HashedStateUpdate() *state.HashedState {
	return state.HashedStateFrom(o.Coalesced())
}

// Account returns the state of addr at the end of the range.
// The returned account is nil if addr was destroyed. ok is false if the range never touched addr.
func (o *Outcome) Account(addr thor.Address) (*state.Account, bool) {
	return o.Coalesced().After(addr)
}

// Storage returns the value of a storage slot at the end of the range.
// ok is false if the range says nothing about the slot.
func (o *Outcome) Storage(addr thor.Address, slot thor.Bytes32) (uint256.Int, bool) {
	return o.Coalesced().Storage(addr, slot)
}

// CumulativeGasUsed returns the gas used by all blocks in the range.
func (o *Outcome) CumulativeGasUsed() uint64 {
	return o.receipts.CumulativeGasUsed()
}

// LogsBloom returns the bloom filter of all logs in the range.
func (o *Outcome) LogsBloom() types.Bloom {
	return o.receipts.LogsBloom()
}
