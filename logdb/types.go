// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/harvest"
)

// Operation is a persisted ledger operation record.
type Operation struct {
	Seq     int64
	Kind    farm.Kind
	Pool    uint32
	Account harvest.Address
	Amount  *big.Int
	Tick    uint64
}

// Range limits a filter to ticks in [From, To].
type Range struct {
	From uint64
	To   uint64
}

// Options paginates filter results.
type Options struct {
	Offset uint64
	Limit  uint64
}

// Order of filter results by sequence.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// OperationFilter selects operation records. Nil members match everything.
type OperationFilter struct {
	Kind    *farm.Kind
	Pool    *uint32
	Account *harvest.Address
	Range   *Range
	Options *Options
	Order   Order
}
