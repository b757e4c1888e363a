// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wal

import (
	"fmt"

	"github.com/google/btree"

	"github.com/vechain/execstate/chain"
	"github.com/vechain/execstate/thor"
)

// Action is what a notification did to a block.
type Action uint8

const (
	ActionCommit Action = iota + 1
	ActionRevert
)

func (a Action) String() string {
	switch a {
	case ActionCommit:
		return "commit"
	case ActionRevert:
		return "revert"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// CachedBlock is a block referenced by a stored entry.
type CachedBlock struct {
	FileID uint64
	// Seq is the position of the block within its entry, reverted blocks first.
	Seq    int
	Action Action
	Number uint64
	Hash   thor.Bytes32
}

// blockCache indexes the blocks of all stored entries, ordered by file id then
// position, so finalize and rollback don't decode entries.
type blockCache struct {
	tree *btree.BTreeG[CachedBlock]
}

func newBlockCache() *blockCache {
	return &blockCache{
		tree: btree.NewG(32, func(a, b CachedBlock) bool {
			if a.FileID != b.FileID {
				return a.FileID < b.FileID
			}
			return a.Seq < b.Seq
		}),
	}
}

func (c *blockCache) insert(fileID uint64, n *chain.Notification) {
	seq := 0
	add := func(seg *chain.Segment, action Action) {
		if seg == nil {
			return
		}
		for _, blk := range seg.Blocks() {
			c.tree.ReplaceOrInsert(CachedBlock{
				FileID: fileID,
				Seq:    seq,
				Action: action,
				Number: blk.Number(),
				Hash:   blk.Hash(),
			})
			seq++
		}
	}
	add(n.RevertedChain(), ActionRevert)
	add(n.CommittedChain(), ActionCommit)
}

// removeRange removes blocks of entries in [from, to).
func (c *blockCache) removeRange(from, to uint64) {
	var doomed []CachedBlock
	c.tree.AscendRange(CachedBlock{FileID: from}, CachedBlock{FileID: to}, func(b CachedBlock) bool {
		doomed = append(doomed, b)
		return true
	})
	for _, b := range doomed {
		c.tree.Delete(b)
	}
}

func (c *blockCache) blocks() []CachedBlock {
	blocks := make([]CachedBlock, 0, c.tree.Len())
	c.tree.Ascend(func(b CachedBlock) bool {
		blocks = append(blocks, b)
		return true
	})
	return blocks
}

func (c *blockCache) len() int {
	return c.tree.Len()
}
