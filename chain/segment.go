// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"github.com/pkg/errors"

	"github.com/vechain/execstate/block"
	"github.com/vechain/execstate/execution"
	"github.com/vechain/execstate/state"
	"github.com/vechain/execstate/thor"
	"github.com/vechain/execstate/tx"
)

// Segment is a run of executed blocks on top of an anchor block, not yet
// committed. It pairs the sealed blocks with their execution outcome, and
// optionally with the trie updates computed for them.
//
// AppendBlock and SetTrieUpdates modify the segment in place, so a segment must
// have a single mutating owner. SplitAt, RevertTo and Extend return new segments
// sharing blocks and diffs with the receiver.
type Segment struct {
	anchor  thor.Bytes32
	blocks  []*block.SealedBlock
	outcome *execution.Outcome
	trie    *state.TrieUpdates
}

// NewSegment creates an empty segment whose first block will be first, child of
// the block anchor.
func NewSegment(first uint64, anchor thor.Bytes32) *Segment {
	return &Segment{
		anchor:  anchor,
		outcome: execution.New(first),
	}
}

// NewSegmentFromParts creates a segment from blocks and their outcome.
// trie can be nil.
func NewSegmentFromParts(anchor thor.Bytes32, blocks []*block.SealedBlock, outcome *execution.Outcome, trie *state.TrieUpdates) (*Segment, error) {
	if len(blocks) != outcome.Len() {
		return nil, errors.Wrapf(execution.ErrLengthMismatch, "%v blocks, outcome of %v", len(blocks), outcome.Len())
	}
	parent := anchor
	for i, blk := range blocks {
		if want := outcome.FirstBlock() + uint64(i); blk.Number() != want {
			return nil, errors.Wrapf(ErrBlockNotContiguous, "want block %v, got %v", want, blk.Number())
		}
		if blk.ParentHash() != parent {
			return nil, errors.Wrapf(ErrParentHashMismatch, "block %v: want parent %v, got %v", blk.Number(), parent, blk.ParentHash())
		}
		parent = blk.Hash()
	}
	return &Segment{
		anchor:  anchor,
		blocks:  blocks[:len(blocks):len(blocks)],
		outcome: outcome,
		trie:    trie,
	}, nil
}

// First returns the number of the first block.
func (s *Segment) First() uint64 { return s.outcome.FirstBlock() }

// End returns the number of the next block to append.
func (s *Segment) End() uint64 { return s.outcome.End() }

// Range returns the half-open range of block numbers.
func (s *Segment) Range() (first, end uint64) { return s.First(), s.End() }

// Len returns the count of blocks.
func (s *Segment) Len() int { return len(s.blocks) }

// IsEmpty returns whether the segment has no block.
func (s *Segment) IsEmpty() bool { return len(s.blocks) == 0 }

// Anchor returns the hash of the parent of the first block.
func (s *Segment) Anchor() thor.Bytes32 { return s.anchor }

// Blocks returns the blocks in number order.
// The returned slice must not be modified.
func (s *Segment) Blocks() []*block.SealedBlock {
	return s.blocks[:len(s.blocks):len(s.blocks)]
}

// BlockByNumber returns block number.
func (s *Segment) BlockByNumber(number uint64) (*block.SealedBlock, error) {
	if number < s.First() || number >= s.End() {
		return nil, errors.Wrapf(execution.ErrBlockNumberOutOfRange, "block %v not in [%v, %v)", number, s.First(), s.End())
	}
	return s.blocks[number-s.First()], nil
}

// Outcome returns the execution outcome of the blocks.
func (s *Segment) Outcome() *execution.Outcome { return s.outcome }

// TrieUpdates returns the trie updates of the whole segment, nil if not computed.
func (s *Segment) TrieUpdates() *state.TrieUpdates { return s.trie }

// SetTrieUpdates attaches the trie updates computed for the current blocks.
func (s *Segment) SetTrieUpdates(trie *state.TrieUpdates) { s.trie = trie }

// Tip returns the last block.
func (s *Segment) Tip() (*block.SealedBlock, error) {
	if s.IsEmpty() {
		return nil, errors.Wrapf(execution.ErrEmptyRange, "no tip of segment anchored at %v", s.anchor)
	}
	return s.blocks[len(s.blocks)-1], nil
}

// TipNumber returns the number of the last block.
func (s *Segment) TipNumber() (uint64, error) {
	return s.outcome.LastBlock()
}

// TipHash returns the hash of the last block, or the anchor if empty.
func (s *Segment) TipHash() thor.Bytes32 {
	if s.IsEmpty() {
		return s.anchor
	}
	return s.blocks[len(s.blocks)-1].Hash()
}

// ForkBlock returns the number of the anchor block.
// It returns false if the segment starts at genesis.
func (s *Segment) ForkBlock() (uint64, bool) {
	if s.First() == 0 {
		return 0, false
	}
	return s.First() - 1, true
}

// AppendBlock appends an executed block on the tip.
// The segment is left unchanged on error. Trie updates are dropped.
func (s *Segment) AppendBlock(blk *block.SealedBlock, diff *state.BlockDiff, receipts tx.Receipts, requests tx.Requests) (err error) {
	defer func() { observe("append", err) }()

	if blk.Number() != s.End() {
		return errors.Wrapf(ErrBlockNotContiguous, "want block %v, got %v", s.End(), blk.Number())
	}
	if tip := s.TipHash(); blk.ParentHash() != tip {
		return errors.Wrapf(ErrParentHashMismatch, "block %v: want parent %v, got %v", blk.Number(), tip, blk.ParentHash())
	}
	if diff.Number != blk.Number() {
		return errors.Wrapf(execution.ErrNonContiguousRange, "diff of block %v for block %v", diff.Number, blk.Number())
	}
	if err := s.outcome.Append(diff, receipts, requests); err != nil {
		return err
	}
	s.blocks = append(s.blocks, blk)
	s.trie = nil
	metricSegmentBlocks().Add(1)
	return nil
}

// SplitAt splits the segment into blocks [First, number) and [number, End).
// The right segment is anchored at the left tip. Trie updates are dropped.
func (s *Segment) SplitAt(number uint64) (_, _ *Segment, err error) {
	defer func() { observe("split", err) }()

	left, right, err := s.outcome.SplitAt(number)
	if err != nil {
		return nil, nil, err
	}
	i := int(number - s.First())
	l := &Segment{anchor: s.anchor, blocks: s.blocks[:i:i], outcome: left}
	r := &Segment{anchor: l.TipHash(), blocks: s.blocks[i:len(s.blocks):len(s.blocks)], outcome: right}

	logger.Debug("segment split", "at", number, "left", l.Len(), "right", r.Len())
	return l, r, nil
}

// RevertTo returns the segment of blocks [First, number).
// Trie updates are kept only when nothing is reverted.
func (s *Segment) RevertTo(number uint64) (_ *Segment, err error) {
	defer func() { observe("revert", err) }()

	outcome, err := s.outcome.RevertTo(number)
	if err != nil {
		return nil, err
	}
	i := int(number - s.First())
	reverted := &Segment{anchor: s.anchor, blocks: s.blocks[:i:i], outcome: outcome}
	if number == s.End() {
		reverted.trie = s.trie
	}
	return reverted, nil
}

// Extend returns the segment of s followed by other.
// other must be anchored at the tip of s. Trie updates are dropped.
func (s *Segment) Extend(other *Segment) (_ *Segment, err error) {
	defer func() { observe("extend", err) }()

	if other.First() != s.End() {
		return nil, errors.Wrapf(ErrBlockNotContiguous, "extend [%v, %v) with [%v, %v)", s.First(), s.End(), other.First(), other.End())
	}
	if tip := s.TipHash(); other.anchor != tip {
		return nil, errors.Wrapf(ErrParentHashMismatch, "extend tip %v with segment anchored at %v", tip, other.anchor)
	}
	outcome, err := s.outcome.Extend(other.outcome)
	if err != nil {
		return nil, err
	}
	return &Segment{
		anchor:  s.anchor,
		blocks:  append(s.Blocks(), other.blocks...),
		outcome: outcome,
	}, nil
}

// IntoParts hands the blocks, outcome and trie updates over to the caller.
// The segment is left empty, anchored at its former tip.
func (s *Segment) IntoParts() ([]*block.SealedBlock, *execution.Outcome, *state.TrieUpdates) {
	blocks, outcome, trie := s.Blocks(), s.outcome, s.trie
	*s = Segment{
		anchor:  s.TipHash(),
		outcome: execution.New(s.End()),
	}
	return blocks, outcome, trie
}
