// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"github.com/pkg/errors"

	"github.com/vechain/execstate/thor"
)

// Fork describes two segments diverging from a common block.
type Fork struct {
	// Ancestor is the number of the last common block. When the segments diverge
	// at genesis there is none, and Trunk.ForkBlock reports false.
	Ancestor uint64
	// AncestorHash is the hash of the last common block, the anchor of Trunk and Branch.
	AncestorHash thor.Bytes32
	// Trunk and Branch are the diverging parts.
	Trunk  *Segment
	Branch *Segment
}

// FindFork locates where branch diverges from trunk. branch must either share
// the anchor of trunk or be anchored at one of its blocks.
func FindFork(trunk, branch *Segment) (*Fork, error) {
	var pos uint64
	switch {
	case branch.anchor == trunk.anchor && branch.First() == trunk.First():
		pos = trunk.First()
	case branch.First() > trunk.First() && branch.First() <= trunk.End():
		parent, err := trunk.BlockByNumber(branch.First() - 1)
		if err != nil {
			return nil, err
		}
		if parent.Hash() != branch.anchor {
			return nil, errors.Wrapf(ErrNoCommonAncestor, "branch anchored at %v", branch.anchor)
		}
		pos = branch.First()
	default:
		return nil, errors.Wrapf(ErrNoCommonAncestor, "trunk [%v, %v), branch [%v, %v)",
			trunk.First(), trunk.End(), branch.First(), branch.End())
	}

	for pos < trunk.End() && pos < branch.End() &&
		trunk.blocks[pos-trunk.First()].Hash() == branch.blocks[pos-branch.First()].Hash() {
		pos++
	}

	_, trunkTail, err := trunk.SplitAt(pos)
	if err != nil {
		return nil, err
	}
	_, branchTail, err := branch.SplitAt(pos)
	if err != nil {
		return nil, err
	}
	ancestor, _ := trunkTail.ForkBlock()
	return &Fork{
		Ancestor:     ancestor,
		AncestorHash: trunkTail.anchor,
		Trunk:        trunkTail,
		Branch:       branchTail,
	}, nil
}
