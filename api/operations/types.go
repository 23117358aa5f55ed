// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package operations

import (
	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/logdb"
)

// Operation is the JSON shape of a persisted operation record.
type Operation struct {
	Seq     int64           `json:"seq"`
	Kind    farm.Kind       `json:"kind"`
	Pool    uint32          `json:"pool"`
	Account harvest.Address `json:"account"`
	Amount  string          `json:"amount"`
	Tick    uint64          `json:"tick"`
}

func convertOperation(op *logdb.Operation) *Operation {
	return &Operation{
		Seq:     op.Seq,
		Kind:    op.Kind,
		Pool:    op.Pool,
		Account: op.Account,
		Amount:  op.Amount.String(),
		Tick:    op.Tick,
	}
}
