// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package execution

import "github.com/pkg/errors"

var (
	ErrNonContiguousRange    = errors.New("non-contiguous range")
	ErrRevertBeyondRange     = errors.New("revert beyond range")
	ErrSplitOutOfRange       = errors.New("split out of range")
	ErrBlockNumberOutOfRange = errors.New("block number out of range")
	ErrEmptyRange            = errors.New("empty range")
	ErrLengthMismatch        = errors.New("length mismatch")
)
