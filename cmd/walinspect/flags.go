// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/execstate/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "datadir",
		Value:  "wal",
		Usage:  "directory of the write-ahead log",
		EnvVar: "WALINSPECT_DATADIR",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:   "cache-size",
		Value:  64,
		Usage:  "number of decoded entries kept in memory",
		EnvVar: "WALINSPECT_CACHE_SIZE",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  log.LegacyLevelWarn,
		Usage:  "log verbosity (0-5)",
		EnvVar: "WALINSPECT_VERBOSITY",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML file overriding unset flags",
	}
	numberFlag = cli.Uint64Flag{
		Name:  "number",
		Usage: "block number",
	}
	hashFlag = cli.StringFlag{
		Name:  "hash",
		Usage: "block hash",
	}
)
