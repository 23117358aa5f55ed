// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/harvestnet/harvest/api/restutil"
	"github.com/harvestnet/harvest/farm/reverts"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/node"
)

type Accounts struct {
	node *node.Node
}

func New(node *node.Node) *Accounts {
	return &Accounts{node}
}

// handleGetAccount returns the account's position in one pool. The optional
// "tick" query evaluates pending reward and maturity at that tick instead of
// the node's current one.
func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 32)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "index"))
	}
	addr, err := harvest.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}

	var atTick *uint64
	if raw := req.URL.Query().Get("tick"); raw != "" {
		tick, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "tick"))
		}
		atTick = &tick
	}

	summary, err := a.node.Account(uint32(index), *addr, atTick)
	if err != nil {
		if reverts.IsRevertErr(err) {
			return restutil.NotFound(err)
		}
		return err
	}
	return restutil.WriteJSON(w, convertSummary(summary))
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{index}/accounts/{address}").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(a.handleGetAccount))
}
