// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
)

func TestWithContext(t *testing.T) {
	prev := ethlog.Root()
	defer ethlog.SetDefault(prev)

	// declared before the root handler is installed
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	InitTerminal(&buf, slog.LevelDebug, false)

	logger.Debug("segment appended", "number", 12)
	assert.Contains(t, buf.String(), "segment appended")
	assert.Contains(t, buf.String(), "pkg=test")
	assert.Contains(t, buf.String(), "number=12")

	buf.Reset()
	logger.With("fork", "a").Info("split")
	assert.Contains(t, buf.String(), "pkg=test")
	assert.Contains(t, buf.String(), "fork=a")

	buf.Reset()
	logger.Trace("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, logger.Enabled(context.Background(), ethlog.LevelTrace))
}

func TestFromLegacyLevel(t *testing.T) {
	tests := []struct {
		in   int
		want slog.Level
	}{
		{LegacyLevelCrit, ethlog.LevelCrit},
		{LegacyLevelError, slog.LevelError},
		{LegacyLevelWarn, slog.LevelWarn},
		{LegacyLevelInfo, slog.LevelInfo},
		{LegacyLevelDebug, slog.LevelDebug},
		{LegacyLevelTrace, ethlog.LevelTrace},
		{9, ethlog.LevelTrace},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromLegacyLevel(tt.in))
	}
}
