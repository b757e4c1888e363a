// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/pkg/errors"

var (
	ErrBlockNotContiguous = errors.New("block not contiguous")
	ErrParentHashMismatch = errors.New("parent hash mismatch")
	ErrNoCommonAncestor   = errors.New("no common ancestor")
)
