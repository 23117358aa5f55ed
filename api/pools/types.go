// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"math/big"

	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/node"
)

// Pool is the JSON shape of a pool. Amounts are decimal strings.
type Pool struct {
	Index        uint32          `json:"index"`
	Asset        harvest.Address `json:"asset"`
	Native       bool            `json:"native"`
	Weight       string          `json:"weight"`
	TotalStaked  string          `json:"totalStaked"`
	AccPerShare  string          `json:"accPerShare"`
	LastTick     uint64          `json:"lastTick"`
	MinDeposit   string          `json:"minDeposit"`
	LockDuration uint64          `json:"lockDuration"`
}

func convertPool(info *node.PoolInfo) *Pool {
	return &Pool{
		Index:        info.Index,
		Asset:        info.Pool.Asset,
		Native:       info.Pool.IsNative(),
		Weight:       amountString(info.Pool.Weight),
		TotalStaked:  amountString(info.Pool.TotalStaked),
		AccPerShare:  amountString(info.Pool.AccPerShare),
		LastTick:     info.Pool.LastTick,
		MinDeposit:   amountString(info.Pool.MinDeposit),
		LockDuration: info.Pool.LockDuration,
	}
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
