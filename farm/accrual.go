// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farm

import (
	"math/big"

	"github.com/harvestnet/harvest/farm/pools"
	"github.com/harvestnet/harvest/fixed"
	"github.com/harvestnet/harvest/harvest"
)

// schedule is the global emission configuration.
// It is validated by the administrative caller at configuration time;
// the accrual engine only reads it.
type schedule struct {
	startTick uint64
	endTick   uint64
	rate      *big.Int // reward emitted per tick across all pools
}

func (f *Farm) emissionSchedule() (*schedule, error) {
	start, err := f.params.Get(harvest.KeyEmissionStartTick)
	if err != nil {
		return nil, err
	}
	end, err := f.params.Get(harvest.KeyEmissionEndTick)
	if err != nil {
		return nil, err
	}
	rate, err := f.params.Get(harvest.KeyEmissionRate)
	if err != nil {
		return nil, err
	}
	return &schedule{
		startTick: start.Uint64(),
		endTick:   end.Uint64(),
		rate:      rate,
	}, nil
}

// refreshPool brings the pool's accumulator current through nowTick and
// returns the emission actually attributed to stakers.
//
// The accumulator only moves for the part of [lastTick, nowTick] that
// overlaps the emission window, and only while the pool has stake. The
// checkpoint always advances, so an idle window is never re-credited later.
func (f *Farm) refreshPool(pool *pools.Pool, nowTick uint64) (*big.Int, error) {
	attributed := new(big.Int)
	if nowTick <= pool.LastTick {
		// idempotent, ordering-safe
		return attributed, nil
	}

	sch, err := f.emissionSchedule()
	if err != nil {
		return nil, err
	}

	lower := max(pool.LastTick, sch.startTick)
	upper := min(nowTick, sch.endTick)
	if lower < upper {
		elapsed := new(big.Int).SetUint64(upper - lower)

		totalWeight, err := f.pools.TotalWeight()
		if err != nil {
			return nil, err
		}

		// multiply before divide, always
		emitted, err := fixed.Mul(elapsed, sch.rate)
		if err != nil {
			return nil, err
		}
		poolEmission, err := fixed.MulDiv(emitted, pool.Weight, totalWeight)
		if err != nil {
			return nil, err
		}

		if pool.TotalStaked.Sign() > 0 {
			deltaPerShare, err := fixed.MulDiv(poolEmission, harvest.ScaleFactor, pool.TotalStaked)
			if err != nil {
				return nil, err
			}
			if pool.AccPerShare, err = fixed.Add(pool.AccPerShare, deltaPerShare); err != nil {
				return nil, err
			}
			attributed = poolEmission
		}
	}

	pool.LastTick = nowTick
	return attributed, nil
}

// refreshAll brings every pool current through nowTick. Required before any
// change to pool weights, since such a change shifts the emission split.
func (f *Farm) refreshAll(nowTick uint64) error {
	count, err := f.pools.Count()
	if err != nil {
		return err
	}
	for index := uint32(0); index < count; index++ {
		pool, err := f.pools.Get(index)
		if err != nil {
			return err
		}
		if _, err := f.refreshPool(pool, nowTick); err != nil {
			return err
		}
		if err := f.pools.Update(index, pool); err != nil {
			return err
		}
	}
	return nil
}
