// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/execstate/log"
	"github.com/vechain/execstate/metrics"
)

var (
	logger = log.WithContext("pkg", "state")

	metricJournalOps        = metrics.LazyLoadCounterVec("journal_op_count", []string{"op"})
	metricCoalescedRebuilds = metrics.LazyLoadCounter("coalesced_rebuild_count")
)
