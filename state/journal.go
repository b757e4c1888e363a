// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"sync"

	"github.com/pkg/errors"
)

// Journal is an ordered list of block diffs covering [First, End).
//
// Diffs are shared by pointer between journals. Every shrinking operation caps
// the slice capacity, so an append on one journal never writes into the backing
// array another journal still reads.
//
// Read methods may be called concurrently. Append and RevertLast must only be
// called by the sole owner.
type Journal struct {
	first uint64
	diffs []*BlockDiff

	lock      sync.Mutex // guards coalesced
	coalesced *Coalesced
}

// NewJournal creates an empty journal starting at block first.
func NewJournal(first uint64) *Journal {
	return &Journal{first: first}
}

// NewJournalFromDiffs creates a journal from consecutive diffs starting at block first.
func NewJournalFromDiffs(first uint64, diffs []*BlockDiff) (*Journal, error) {
	for i, diff := range diffs {
		if diff.Number != first+uint64(i) {
			return nil, errors.Wrapf(ErrNonContiguousAppend, "diff #%v: want block %v, got %v", i, first+uint64(i), diff.Number)
		}
	}
	return &Journal{
		first: first,
		diffs: diffs[:len(diffs):len(diffs)],
	}, nil
}

// First returns the first block number of the range.
func (j *Journal) First() uint64 { return j.first }

// End returns the block number right after the range.
func (j *Journal) End() uint64 { return j.first + uint64(len(j.diffs)) }

// Len returns the count of blocks.
func (j *Journal) Len() int { return len(j.diffs) }

// IsEmpty returns whether the journal covers no block.
func (j *Journal) IsEmpty() bool { return len(j.diffs) == 0 }

// Append adds the diff of the block at End.
// A cached coalesced view is updated in place.
func (j *Journal) Append(diff *BlockDiff) error {
	if diff.Number != j.End() {
		return errors.Wrapf(ErrNonContiguousAppend, "want block %v, got %v", j.End(), diff.Number)
	}
	j.diffs = append(j.diffs, diff)

	j.lock.Lock()
	if j.coalesced != nil {
		j.coalesced.push(diff)
	}
	j.lock.Unlock()
	metricJournalOps().AddWithLabel(1, map[string]string{"op": "append"})
	return nil
}

// RevertLast drops the last n diffs.
func (j *Journal) RevertLast(n int) error {
	if n < 0 || n > len(j.diffs) {
		return errors.Wrapf(ErrRevertCountExceedsLength, "revert %v of %v", n, len(j.diffs))
	}
	if n == 0 {
		return nil
	}
	keep := len(j.diffs) - n
	j.diffs = j.diffs[:keep:keep]

	j.lock.Lock()
	if j.coalesced != nil {
		j.coalesced.popTo(keep)
	}
	j.lock.Unlock()
	metricJournalOps().AddWithLabel(1, map[string]string{"op": "revert"})
	logger.Trace("journal reverted", "n", n, "end", j.End())
	return nil
}

// Slice returns a journal of blocks [from, to).
// Diffs are shared, and the result has no cached view.
func (j *Journal) Slice(from, to uint64) (*Journal, error) {
	if from < j.first || from > to || to > j.End() {
		return nil, errors.Wrapf(ErrSliceOutOfRange, "[%v, %v) of [%v, %v)", from, to, j.first, j.End())
	}
	lo, hi := from-j.first, to-j.first
	return &Journal{
		first: from,
		diffs: j.diffs[lo:hi:hi],
	}, nil
}

// Copy returns a journal sharing all diffs with j.
// The cached view is not shared.
func (j *Journal) Copy() *Journal {
	return &Journal{
		first: j.first,
		diffs: j.diffs[:len(j.diffs):len(j.diffs)],
	}
}

// Diffs returns the diffs in block order.
// The returned slice must not be modified.
func (j *Journal) Diffs() []*BlockDiff {
	return j.diffs[:len(j.diffs):len(j.diffs)]
}

// DiffAt returns the diff of block number.
func (j *Journal) DiffAt(number uint64) (*BlockDiff, bool) {
	if number < j.first || number >= j.End() {
		return nil, false
	}
	return j.diffs[number-j.first], true
}

// Coalesced returns the net change over the whole range.
// It's computed on first call and kept in sync by Append and RevertLast.
func (j *Journal) Coalesced() *Coalesced {
	j.lock.Lock()
	defer j.lock.Unlock()

	if j.coalesced == nil {
		j.coalesced = coalesce(j.diffs)
	}
	return j.coalesced
}
