// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Command stake-relay runs the state-relay HTTP server,
// bootstrapping its genesis stake table from a sequencer node and
// serving POST/GET /api/state for downstream light clients.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lightstake/sequencer/admin"
	"github.com/lightstake/sequencer/chainkit"
	"github.com/lightstake/sequencer/log"
	"github.com/lightstake/sequencer/metrics"
	"github.com/lightstake/sequencer/relay"
	"github.com/lightstake/sequencer/relay/sequencerclient"
)

var logger = log.WithContext("pkg", "stake-relay")

var (
	portFlag = cli.IntFlag{
		Name:   "port",
		Value:  8083,
		Usage:  "port to run the relay server on",
		EnvVar: "STAKE_RELAY_PORT",
	}
	sequencerURLFlag = cli.StringFlag{
		Name:   "sequencer-url",
		Value:  "http://localhost:24000",
		Usage:  "URL of a sequencer node providing the genesis stake table",
		EnvVar: "STAKE_RELAY_SEQUENCER_URL",
	}
	metricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "expose Prometheus metrics on /metrics",
	}
)

func main() {
	log.SetupTerminal(os.Stdout)

	app := cli.App{
		Name:   "stake-relay",
		Usage:  "Relay & Signer server for the stake-table light-client subsystem",
		Flags:  []cli.Flag{portFlag, sequencerURLFlag, metricsFlag},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.Bool(metricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	client := sequencerclient.New(ctx.String(sequencerURLFlag.Name), nil)
	srv := relay.New(client, noopVerifier{})

	router := mux.NewRouter()
	handler := srv.MountWithMiddleware(router)
	admin.Mount(router, log.Verbosity())
	if ctx.Bool(metricsFlag.Name) {
		router.Path("/metrics").Handler(metrics.HTTPHandler())
	}

	addr := fmt.Sprintf("0.0.0.0:%d", ctx.Int(portFlag.Name))
	logger.Info("starting state relay server", "addr", addr, "sequencerUrl", ctx.String(sequencerURLFlag.Name))
	return http.ListenAndServe(addr, handler)
}

// noopVerifier is a placeholder relay.SignatureVerifier; the concrete
// Schnorr verification scheme is out of scope. A production
// deployment must replace this with a real verifier before accepting
// signatures from untrusted signers.
type noopVerifier struct{}

func (noopVerifier) Verify(chainkit.SchnorrPubKey, []chainkit.Field, chainkit.Signature) bool {
	return true
}
