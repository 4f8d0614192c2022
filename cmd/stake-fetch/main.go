// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Command stake-fetch runs the fetch -> reduce -> select -> commit
// pipeline once against an L1 registry contract and
// either prints the resulting stake-table commitment or prints a
// human-readable inspection of the resulting active set.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	pb "gopkg.in/cheggaaa/pb.v1"
	urfavecli "gopkg.in/urfave/cli.v1"

	"github.com/lightstake/sequencer/activeset"
	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/commitment"
	"github.com/lightstake/sequencer/config"
	"github.com/lightstake/sequencer/fetch"
	"github.com/lightstake/sequencer/log"
	"github.com/lightstake/sequencer/metrics"
	"github.com/lightstake/sequencer/persistence"
	"github.com/lightstake/sequencer/stake"
	"github.com/lightstake/sequencer/transport"
)

var logger = log.WithContext("pkg", "stake-fetch")

var (
	configFlag = urfavecli.StringFlag{
		Name:   "config",
		Value:  "stake-fetch.yaml",
		Usage:  "path to the chain configuration YAML file",
		EnvVar: "STAKE_FETCH_CONFIG",
	}
	dbFlag = urfavecli.StringFlag{
		Name:  "db",
		Usage: "path to a SQLite database file; omit to use an in-memory store",
	}
	progressFlag = urfavecli.BoolFlag{
		Name:  "progress",
		Usage: "show a progress bar while fetching windows",
	}
	metricsFlag = urfavecli.BoolFlag{
		Name:  "metrics",
		Usage: "enable Prometheus metrics collection for this run",
	}
)

func main() {
	log.SetupTerminal(os.Stdout)

	app := urfavecli.App{
		Name:  "stake-fetch",
		Usage: "fetch and reduce an on-chain stake table registry",
		Flags: []urfavecli.Flag{configFlag, dbFlag, progressFlag, metricsFlag},
		Commands: []urfavecli.Command{
			{
				Name:   "run",
				Usage:  "fetch, reduce, select, and commit the stake table, printing the commitment",
				Action: runFetch,
			},
			{
				Name:   "inspect",
				Usage:  "fetch and print the resulting active set without committing",
				Action: runInspect,
			},
		},
		Action: runFetch,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// pipeline loads config, runs the fetcher against the latest L1
// block, and reduces the merged event log to an active set.
func pipeline(ctx *urfavecli.Context) (*config.Config, *stake.ValidatorSet, error) {
	cfg, err := config.Load(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return nil, nil, err
	}
	if ctx.GlobalBool(metricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	contract, err := cfg.ParsedContractAddress()
	if err != nil {
		return nil, nil, err
	}

	urls := make([]string, len(cfg.Endpoints))
	for i, e := range cfg.Endpoints {
		urls[i] = e.URL
	}
	pool := transport.NewPool(transport.Config{}, urls)

	store, err := openStore(ctx.GlobalString(dbFlag.Name))
	if err != nil {
		return nil, nil, err
	}

	toBlock, err := latestBlockNumber(context.Background(), urls)
	if err != nil {
		return nil, nil, err
	}

	f := fetch.New(pool, store, fetch.Config{
		Contract:   common.Address(contract),
		WindowSize: cfg.FetchWindowSize,
	})

	logger.Info("fetching stake table registry events", "toBlock", toBlock)

	var bar *pb.ProgressBar
	if ctx.GlobalBool(progressFlag.Name) {
		bar = pb.New(int(toBlock)).Prefix("fetch ")
		bar.Start()
		defer bar.Finish()
	}

	evs, err := f.FetchEvents(context.Background(), toBlock)
	if err != nil {
		return nil, nil, err
	}
	if bar != nil {
		bar.Set(int(toBlock))
	}

	set, err := stake.Reduce(evs)
	if err != nil {
		return nil, nil, err
	}
	active, err := activeset.Select(set)
	if err != nil {
		return nil, nil, err
	}
	return cfg, active, nil
}

func runFetch(ctx *urfavecli.Context) error {
	cfg, active, err := pipeline(ctx)
	if err != nil {
		return err
	}

	entries := make([]commitment.Entry, 0, active.Len())
	active.Range(func(_ chainkit.Address20, rec *stake.ValidatorRecord) bool {
		entries = append(entries, commitment.Entry{
			BlsKey:     rec.BlsKey,
			SchnorrKey: rec.SchnorrKey,
			Stake:      rec.Stake,
		})
		return true
	})

	state, err := commitment.Commit(entries, cfg.CommitmentCapacity)
	if err != nil {
		return err
	}

	logger.Info("committed stake table", "validators", active.Len())
	fields := state.ToFields()
	fmt.Printf("bls_key_comm=%s schnorr_key_comm=%s amount_comm=%s threshold=%s\n",
		fields[0].String(), fields[1].String(), fields[2].String(), fields[3].String())
	return nil
}

func runInspect(ctx *urfavecli.Context) error {
	_, active, err := pipeline(ctx)
	if err != nil {
		return err
	}

	type row struct {
		rec *stake.ValidatorRecord
	}
	var rows []row
	active.Range(func(_ chainkit.Address20, rec *stake.ValidatorRecord) bool {
		rows = append(rows, row{rec})
		return true
	})
	// Ascending by stake, smallest first.
	for i := 1; i < len(rows); i++ {
		j := i
		for j > 0 && rows[j].rec.Stake.Cmp(rows[j-1].rec.Stake) < 0 {
			rows[j], rows[j-1] = rows[j-1], rows[j]
			j--
		}
	}
	for _, r := range rows {
		fmt.Printf("validator %x: comm=%d stake=%s\n", r.rec.Account, r.rec.Commission, r.rec.Stake.Dec())
	}
	return nil
}

func openStore(path string) (persistence.Store, error) {
	if path == "" {
		return persistence.NewMemStore(), nil
	}
	return persistence.OpenSQLiteStore(path)
}

// latestBlockNumber dials the first reachable endpoint to determine
// the fetch target; the fetcher itself fails over across all
// endpoints for the actual eth_getLogs calls.
func latestBlockNumber(ctx context.Context, urls []string) (uint64, error) {
	var lastErr error
	for _, u := range urls {
		cl, err := ethclient.DialContext(ctx, u)
		if err != nil {
			lastErr = err
			continue
		}
		header, err := headerByNumber(ctx, cl)
		cl.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return header.Number.Uint64(), nil
	}
	return 0, lastErr
}

func headerByNumber(ctx context.Context, cl *ethclient.Client) (*types.Header, error) {
	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return cl.HeaderByNumber(cctx, nil)
}
