// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

type config struct {
	DataDir   string `yaml:"datadir"`
	CacheSize int    `yaml:"cache-size"`
	Verbosity int    `yaml:"verbosity"`
}

// fileConfig mirrors config with optional fields.
type fileConfig struct {
	DataDir   *string `yaml:"datadir"`
	CacheSize *int    `yaml:"cache-size"`
	Verbosity *int    `yaml:"verbosity"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, errors.Wrapf(err, "parse %v", path)
	}
	return &fc, nil
}

// overlay fills cfg from fc for every setting not given explicitly.
func (fc *fileConfig) overlay(cfg *config, isSet func(name string) bool) {
	if fc.DataDir != nil && !isSet(dataDirFlag.Name) {
		cfg.DataDir = *fc.DataDir
	}
	if fc.CacheSize != nil && !isSet(cacheSizeFlag.Name) {
		cfg.CacheSize = *fc.CacheSize
	}
	if fc.Verbosity != nil && !isSet(verbosityFlag.Name) {
		cfg.Verbosity = *fc.Verbosity
	}
}

func readConfig(ctx *cli.Context) (*config, error) {
	cfg := &config{
		DataDir:   ctx.GlobalString(dataDirFlag.Name),
		CacheSize: ctx.GlobalInt(cacheSizeFlag.Name),
		Verbosity: ctx.GlobalInt(verbosityFlag.Name),
	}
	if path := ctx.GlobalString(configFlag.Name); path != "" {
		fc, err := loadFileConfig(path)
		if err != nil {
			return nil, errors.Wrap(err, "--config")
		}
		fc.overlay(cfg, ctx.GlobalIsSet)
	}
	if cfg.DataDir == "" {
		return nil, errors.New("--datadir required")
	}
	return cfg, nil
}
