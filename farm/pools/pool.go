// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"math/big"

	"github.com/harvestnet/harvest/harvest"
)

// Pool is one entry of the append-only pool registry.
// The zero asset address marks the native pool, which can only sit at index 0.
type Pool struct {
	Asset        harvest.Address
	Weight       *big.Int // relative share of global emission, > 0
	LastTick     uint64   // tick through which AccPerShare is current
	AccPerShare  *big.Int // cumulative reward per staked unit, scaled by harvest.ScaleFactor
	TotalStaked  *big.Int // sum of all participants' staked amounts
	MinDeposit   *big.Int
	LockDuration uint64 // ticks an unstake request must wait before withdrawal
}

// IsNative returns whether this is the native asset pool.
func (p *Pool) IsNative() bool {
	return p.Asset.IsZero()
}

// IsEmpty returns whether the pool entry is unset.
func (p *Pool) IsEmpty() bool {
	return p.Weight == nil || p.Weight.Sign() == 0
}

// normalize replaces nil big fields with zero values after decoding.
func (p *Pool) normalize() {
	if p.Weight == nil {
		p.Weight = new(big.Int)
	}
	if p.AccPerShare == nil {
		p.AccPerShare = new(big.Int)
	}
	if p.TotalStaked == nil {
		p.TotalStaked = new(big.Int)
	}
	if p.MinDeposit == nil {
		p.MinDeposit = new(big.Int)
	}
}
