// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/harvestnet/harvest/api"
	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/kv"
	"github.com/harvestnet/harvest/log"
	"github.com/harvestnet/harvest/node"
	"github.com/harvestnet/harvest/params"
	"github.com/harvestnet/harvest/state"
	"github.com/harvestnet/harvest/vault"
)

var (
	version   string
	gitCommit string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%.8s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "harvestd",
		Usage:     "Multi-pool staking rewards ledger",
		Copyright: "2026 The Harvest developers",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			memFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			tickDurationFlag,
			verbosityFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	initMetrics(ctx)
	genesis := loadGenesis(ctx)

	mainDB, instanceDir := openMainDB(ctx)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	logDB := openLogDB(ctx, instanceDir)
	defer func() { logger.Info("closing operation database..."); logDB.Close() }()

	st := state.New(kv.Bucket("state/").NewGetPutter(mainDB))
	p := params.New(harvestAddress, st)
	v := vault.New(vaultAddress, st, genesis.RewardAsset, genesis.Treasury)
	f := farm.New(harvestAddress, st, p, v, logDB)

	if err := node.ApplyGenesis(st, p, v, f, genesis); err != nil {
		fatal("apply genesis:", err)
	}

	tickDuration := ctx.Uint64(tickDurationFlag.Name)
	if tickDuration == 0 {
		tickDuration = 1
	}
	nd := node.New(st, f, p, func() uint64 {
		return uint64(time.Now().Unix()) / tickDuration
	})

	handler := api.New(nd, logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	srv := &http.Server{
		Addr:    ctx.String(apiAddrFlag.Name),
		Handler: handler,
	}

	printStartupMessage(ctx, instanceDir)

	group, groupCtx := errgroup.WithContext(handleExitSignal())
	group.Go(func() error {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

// handleExitSignal returns a context canceled on SIGINT/SIGTERM.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(ctx *cli.Context, instanceDir string) {
	fmt.Printf(`Starting %v
    Version     %v
    Instance    %v
    API portal  http://%v/
`,
		"harvestd",
		fullVersion(),
		instanceDir,
		ctx.String(apiAddrFlag.Name))
}
