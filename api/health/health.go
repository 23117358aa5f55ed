// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/harvestnet/harvest/api/restutil"
	"github.com/harvestnet/harvest/node"
)

// Status reports whether the ledger answers state reads.
type Status struct {
	Healthy   bool   `json:"healthy"`
	Tick      uint64 `json:"tick"`
	PoolCount int    `json:"poolCount"`
}

type Health struct {
	node *node.Node
}

func New(node *node.Node) *Health {
	return &Health{node}
}

func (h *Health) handleGetHealth(w http.ResponseWriter, _ *http.Request) error {
	status := &Status{Tick: h.node.Tick()}

	infos, err := h.node.Pools()
	if err == nil {
		status.Healthy = true
		status.PoolCount = len(infos)
	}

	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return restutil.WriteJSON(w, status)
}

func (h *Health) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(h.handleGetHealth))
}
