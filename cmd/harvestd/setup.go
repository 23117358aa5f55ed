// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/harvestnet/harvest/config"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/log"
	"github.com/harvestnet/harvest/logdb"
	"github.com/harvestnet/harvest/lvldb"
	"github.com/harvestnet/harvest/metrics"
)

// well-known storage addresses of the ledger and the vault.
var (
	harvestAddress = harvest.BytesToAddress([]byte("harvest-ledger"))
	vaultAddress   = harvest.BytesToAddress([]byte("harvest-vault"))
)

func fatal(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) {
	if err := log.SetLevel(ctx.String(verbosityFlag.Name)); err != nil {
		fatal("init logger:", err)
	}
}

func initMetrics(ctx *cli.Context) {
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
}

func loadGenesis(ctx *cli.Context) *config.Genesis {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		fatal("the --genesis flag is required")
	}
	genesis, err := config.Load(path)
	if err != nil {
		fatal("load genesis:", err)
	}
	return genesis
}

func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "harvestd")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "harvestd")
		default:
			return filepath.Join(home, ".harvestd")
		}
	}
	return ""
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return ""
}

func openMainDB(ctx *cli.Context) (*lvldb.LevelDB, string) {
	if ctx.Bool(memFlag.Name) {
		db, err := lvldb.NewMem()
		if err != nil {
			fatal("open memory main database:", err)
		}
		return db, "Memory"
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal("unable to locate a data directory, set --data-dir")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal("create data directory:", err)
	}
	db, err := lvldb.New(filepath.Join(dataDir, "main.db"), lvldb.Options{})
	if err != nil {
		fatal("open main database:", err)
	}
	return db, dataDir
}

func openLogDB(ctx *cli.Context, instanceDir string) *logdb.LogDB {
	if ctx.Bool(memFlag.Name) {
		db, err := logdb.NewMem()
		if err != nil {
			fatal("open memory operation database:", err)
		}
		return db
	}
	db, err := logdb.New(filepath.Join(instanceDir, "operations.db"))
	if err != nil {
		fatal("open operation database:", err)
	}
	return db
}
