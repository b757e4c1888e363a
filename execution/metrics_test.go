// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package execution_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// histogram returns the sample count and sum of a histogram, zero if it was never observed.
func histogram(t *testing.T, name string) (uint64, float64) {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "execstate_"+name {
			h := mf.GetMetric()[0].GetHistogram()
			return h.GetSampleCount(), h.GetSampleSum()
		}
	}
	return 0, 0
}

func TestOutcomeBlockMetrics(t *testing.T) {
	o := newOutcome(t)

	splitCount, splitSum := histogram(t, "outcome_split_off_blocks")
	left, right, err := o.SplitAt(11)
	require.NoError(t, err)
	count, sum := histogram(t, "outcome_split_off_blocks")
	assert.Equal(t, splitCount+1, count)
	assert.Equal(t, splitSum+2, sum)

	revertCount, revertSum := histogram(t, "outcome_reverted_blocks")
	_, err = o.RevertTo(10)
	require.NoError(t, err)
	count, sum = histogram(t, "outcome_reverted_blocks")
	assert.Equal(t, revertCount+1, count)
	assert.Equal(t, revertSum+3, sum)

	extendCount, extendSum := histogram(t, "outcome_extended_blocks")
	_, err = left.Extend(right)
	require.NoError(t, err)
	count, sum = histogram(t, "outcome_extended_blocks")
	assert.Equal(t, extendCount+1, count)
	assert.Equal(t, extendSum+2, sum)
}
