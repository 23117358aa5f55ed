// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/harvestnet/harvest/fixed"
	"github.com/harvestnet/harvest/harvest"
)

// Record is the per (pool, account) ledger entry.
//
// Basis is not a reward amount: it is the value of staked * accPerShare /
// SCALE at the account's last settlement. The account's total entitlement at
// any accumulator value acc is
//
//	staked * acc / SCALE - basis + pending
//
// which never goes negative while acc is monotonic and settlements keep the
// basis current.
type Record struct {
	Staked  *big.Int
	Basis   *big.Int
	Pending *big.Int
}

// IsEmpty returns whether the record was never touched.
func (r *Record) IsEmpty() bool {
	return r.Staked.Sign() == 0 && r.Basis.Sign() == 0 && r.Pending.Sign() == 0
}

// Accrued returns staked * accPerShare / SCALE, the scaled-down cumulative
// entitlement of the record's stake at the given accumulator value.
func (r *Record) Accrued(accPerShare *big.Int) (*big.Int, error) {
	return fixed.MulDiv(r.Staked, accPerShare, harvest.ScaleFactor)
}

// normalize replaces nil big fields with zero values after decoding.
func (r *Record) normalize() {
	if r.Staked == nil {
		r.Staked = new(big.Int)
	}
	if r.Basis == nil {
		r.Basis = new(big.Int)
	}
	if r.Pending == nil {
		r.Pending = new(big.Int)
	}
}
