// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// walinspect lists, finalizes and rolls back a write-ahead log of chain notifications.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/execstate/chain"
	"github.com/vechain/execstate/log"
	"github.com/vechain/execstate/lvldb"
	"github.com/vechain/execstate/thor"
	"github.com/vechain/execstate/wal"
)

var (
	version   string
	gitCommit string
)

func initLogger(verbosity int) {
	fd := os.Stderr.Fd()
	useColor := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	log.InitTerminal(os.Stderr, log.FromLegacyLevel(verbosity), useColor)
}

func openWAL(ctx *cli.Context) (*wal.WAL, func(), error) {
	cfg, err := readConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	initLogger(cfg.Verbosity)

	db, err := lvldb.New(cfg.DataDir, lvldb.Options{CacheSize: 16, OpenFilesCacheCapacity: 64})
	if err != nil {
		return nil, nil, errors.Wrap(err, "open datadir")
	}
	w, err := wal.Open(db, wal.Options{CacheSize: cfg.CacheSize})
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return w, func() { db.Close() }, nil
}

func blockArgs(ctx *cli.Context) (uint64, thor.Bytes32, error) {
	if !ctx.IsSet(numberFlag.Name) {
		return 0, thor.Bytes32{}, errors.New("--number required")
	}
	hash, err := thor.ParseBytes32(ctx.String(hashFlag.Name))
	if err != nil {
		return 0, thor.Bytes32{}, errors.Wrap(err, "--hash")
	}
	return ctx.Uint64(numberFlag.Name), hash, nil
}

func listAction(ctx *cli.Context) error {
	w, closeFunc, err := openWAL(ctx)
	if err != nil {
		return err
	}
	defer closeFunc()

	printBlocks(os.Stdout, w.Blocks())
	return nil
}

func finalizeAction(ctx *cli.Context) error {
	number, hash, err := blockArgs(ctx)
	if err != nil {
		return err
	}
	w, closeFunc, err := openWAL(ctx)
	if err != nil {
		return err
	}
	defer closeFunc()

	if err := w.Finalize(number, hash); err != nil {
		return err
	}
	n, err := w.Len()
	if err != nil {
		return err
	}
	fmt.Printf("%d entries left\n", n)
	return nil
}

func rollbackAction(ctx *cli.Context) error {
	number, hash, err := blockArgs(ctx)
	if err != nil {
		return err
	}
	w, closeFunc, err := openWAL(ctx)
	if err != nil {
		return err
	}
	defer closeFunc()

	removed, err := w.Rollback(number, hash)
	if err != nil {
		return err
	}
	printNotifications(os.Stdout, removed)
	return nil
}

func printBlocks(out io.Writer, blocks []wal.CachedBlock) {
	for _, b := range blocks {
		fmt.Fprintf(out, "%6d  %-6v  #%-10d %v\n", b.FileID, b.Action, b.Number, b.Hash)
	}
}

func printNotifications(out io.Writer, ns []*chain.Notification) {
	describe := func(seg *chain.Segment) string {
		if seg == nil {
			return "-"
		}
		first, end := seg.Range()
		return fmt.Sprintf("[%d, %d) %v", first, end, seg.TipHash())
	}
	for _, n := range ns {
		fmt.Fprintf(out, "%-9v old=%v new=%v\n", n.Kind, describe(n.RevertedChain()), describe(n.CommittedChain()))
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "walinspect"
	app.Usage = "inspect a write-ahead log of chain notifications"
	app.Version = fmt.Sprintf("%s-%s", version, gitCommit)
	app.Flags = []cli.Flag{
		dataDirFlag,
		cacheSizeFlag,
		verbosityFlag,
		configFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:   "list",
			Usage:  "list blocks referenced by stored entries",
			Action: listAction,
		},
		{
			Name:   "finalize",
			Usage:  "drop entries made obsolete by a finalized block",
			Flags:  []cli.Flag{numberFlag, hashFlag},
			Action: finalizeAction,
		},
		{
			Name:   "rollback",
			Usage:  "remove entries after the one committing a block",
			Flags:  []cli.Flag{numberFlag, hashFlag},
			Action: rollbackAction,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
