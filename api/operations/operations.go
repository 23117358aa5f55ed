// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package operations

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/harvestnet/harvest/api/restutil"
	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/logdb"
)

type Operations struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, limit uint64) *Operations {
	return &Operations{db, limit}
}

// handleGetOperations returns persisted operation records, newest first by
// default. Filters: kind, pool, account, from, to; pagination: offset, limit.
func (o *Operations) handleGetOperations(w http.ResponseWriter, req *http.Request) error {
	filter, err := o.parseFilter(req)
	if err != nil {
		return err
	}
	records, err := o.db.FilterOperations(req.Context(), filter)
	if err != nil {
		return err
	}
	out := make([]*Operation, 0, len(records))
	for _, record := range records {
		out = append(out, convertOperation(record))
	}
	return restutil.WriteJSON(w, out)
}

func (o *Operations) parseFilter(req *http.Request) (*logdb.OperationFilter, error) {
	query := req.URL.Query()
	filter := &logdb.OperationFilter{
		Order:   logdb.DESC,
		Options: &logdb.Options{Limit: o.limit},
	}

	if raw := query.Get("kind"); raw != "" {
		kind := farm.Kind(raw)
		switch kind {
		case farm.KindAddPool, farm.KindDeposit, farm.KindRequestUnstake, farm.KindWithdraw, farm.KindClaim:
		default:
			return nil, restutil.BadRequest(errors.Errorf("unknown kind %q", raw))
		}
		filter.Kind = &kind
	}
	if raw := query.Get("pool"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "pool"))
		}
		pool := uint32(n)
		filter.Pool = &pool
	}
	if raw := query.Get("account"); raw != "" {
		addr, err := harvest.ParseAddress(raw)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = addr
	}
	if raw := query.Get("from"); raw != "" {
		from, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "from"))
		}
		to := uint64(0)
		if rawTo := query.Get("to"); rawTo != "" {
			if to, err = strconv.ParseUint(rawTo, 10, 64); err != nil {
				return nil, restutil.BadRequest(errors.WithMessage(err, "to"))
			}
		}
		filter.Range = &logdb.Range{From: from, To: to}
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "offset"))
		}
		filter.Options.Offset = offset
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "limit"))
		}
		if limit > o.limit {
			return nil, restutil.BadRequest(errors.Errorf("limit exceeds maximum %d", o.limit))
		}
		filter.Options.Limit = limit
	}
	if query.Get("order") == string(logdb.ASC) {
		filter.Order = logdb.ASC
	}
	return filter, nil
}

func (o *Operations) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(o.handleGetOperations))
}
