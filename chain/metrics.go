// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"github.com/vechain/execstate/log"
	"github.com/vechain/execstate/metrics"
)

var (
	logger = log.WithContext("pkg", "chain")

	metricSegmentOps    = metrics.LazyLoadCounterVec("segment_op_count", []string{"op", "result"})
	metricSegmentBlocks = metrics.LazyLoadCounter("segment_appended_blocks_count")
)

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metricSegmentOps().AddWithLabel(1, map[string]string{"op": op, "result": result})
}
