// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package execution

import (
	"github.com/vechain/execstate/log"
	"github.com/vechain/execstate/metrics"
)

var (
	logger = log.WithContext("pkg", "execution")

	metricOutcomeOps     = metrics.LazyLoadCounterVec("outcome_op_count", []string{"op", "result"})
	metricExtendedBlocks = metrics.LazyLoadHistogram("outcome_extended_blocks", metrics.BucketBlocks)
	metricRevertedBlocks = metrics.LazyLoadHistogram("outcome_reverted_blocks", metrics.BucketBlocks)
	metricSplitOffBlocks = metrics.LazyLoadHistogram("outcome_split_off_blocks", metrics.BucketBlocks)
)

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metricOutcomeOps().AddWithLabel(1, map[string]string{"op": op, "result": result})
}
