// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state keeps the per-block account changes of a range of executed blocks.
// It follows the flow as bellow:
//
//	[ block diff ] -> [ journal ] -> [ coalesced view ] -> [ hashed state ] -> trie builder
//	                      |                 |
//	                 source of truth   stacked map, one level per block
//
// The journal is the only source of truth. The coalesced view is a cache
// derived from it, and a prefix of the journal is always enough to rebuild it,
// so reverting blocks never needs the dropped diffs.
//
// Block diffs and accounts are immutable once built and may be shared by any
// number of journals.
package state
