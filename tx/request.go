// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/vechain/execstate/thor"
)

// Request is a protocol level side effect of block execution, such as a deposit
// or a withdrawal. Data holds all requests of Type emitted by the block.
type Request struct {
	Type byte
	Data []byte
}

// Requests slice of requests.
type Requests []Request

// Hash computes the EIP-7685 commitment of requests.
// Requests without data are skipped.
func (rs Requests) Hash() thor.Bytes32 {
	items := make([][]byte, 0, len(rs))
	for _, r := range rs {
		item := make([]byte, 0, 1+len(r.Data))
		items = append(items, append(append(item, r.Type), r.Data...))
	}
	return thor.Bytes32(types.CalcRequestsHash(items))
}
