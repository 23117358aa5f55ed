// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api is the read-only REST surface of the ledger. Mutations enter
// through the node, never through HTTP.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/harvestnet/harvest/api/accounts"
	"github.com/harvestnet/harvest/api/health"
	"github.com/harvestnet/harvest/api/operations"
	"github.com/harvestnet/harvest/api/pools"
	"github.com/harvestnet/harvest/log"
	"github.com/harvestnet/harvest/logdb"
	"github.com/harvestnet/harvest/metrics"
	"github.com/harvestnet/harvest/node"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	LogsLimit       uint64
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return the api handler.
func New(nd *node.Node, logDB *logdb.LogDB, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pools.New(nd).
		Mount(router, "/pools")
	accounts.New(nd).
		Mount(router, "/pools")
	if logDB != nil {
		operations.New(logDB, opts.LogsLimit).
			Mount(router, "/operations")
	}
	health.New(nd).
		Mount(router, "/health")

	if opts.EnableMetrics {
		router.Path("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}
