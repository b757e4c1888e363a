// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wal

import (
	"github.com/vechain/execstate/log"
	"github.com/vechain/execstate/metrics"
)

var (
	logger = log.WithContext("pkg", "wal")

	metricEntries       = metrics.LazyLoadCounterVec("wal_entry_count", []string{"event"})
	metricCacheHitMiss  = metrics.LazyLoadGaugeVec("wal_cache_hit_miss", []string{"event"})
	metricCachedEntries = metrics.LazyLoadGauge("wal_cached_blocks")
)

func countEntries(event string, n int) {
	if n > 0 {
		metricEntries().AddWithLabel(int64(n), map[string]string{"event": event})
	}
}
