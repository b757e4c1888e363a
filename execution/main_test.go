// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package execution_test

import (
	"os"
	"testing"

	"github.com/vechain/execstate/metrics"
)

func TestMain(m *testing.M) {
	// meters are bound on first use, so the backend must be set before any test runs
	metrics.InitializePrometheusMetrics()
	os.Exit(m.Run())
}
