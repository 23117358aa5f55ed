// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/harvestnet/harvest/api/restutil"
	"github.com/harvestnet/harvest/farm/reverts"
	"github.com/harvestnet/harvest/node"
)

type Pools struct {
	node *node.Node
}

func New(node *node.Node) *Pools {
	return &Pools{node}
}

func (p *Pools) handleGetPools(w http.ResponseWriter, _ *http.Request) error {
	infos, err := p.node.Pools()
	if err != nil {
		return err
	}
	out := make([]*Pool, 0, len(infos))
	for _, info := range infos {
		out = append(out, convertPool(info))
	}
	return restutil.WriteJSON(w, out)
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	index, err := parseIndex(mux.Vars(req)["index"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "index"))
	}
	pool, err := p.node.Pool(index)
	if err != nil {
		if reverts.IsRevertErr(err) {
			return restutil.NotFound(err)
		}
		return err
	}
	return restutil.WriteJSON(w, convertPool(&node.PoolInfo{Index: index, Pool: pool}))
}

func parseIndex(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(p.handleGetPools))
	sub.Path("/{index}").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(p.handleGetPool))
}
