// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package gate exposes the administrative pause flags as boolean
// preconditions. Who may flip the flags is the administrative caller's
// concern; the ledger only consults them.
package gate

import (
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/params"
)

// Gate is a read-only view over the pause params.
type Gate struct {
	params *params.Params
}

func New(params *params.Params) *Gate {
	return &Gate{params: params}
}

func (g *Gate) flag(key harvest.Bytes32) (bool, error) {
	v, err := g.params.Get(key)
	if err != nil {
		return false, err
	}
	return v.Sign() != 0, nil
}

// Paused reports whether all operations are paused.
func (g *Gate) Paused() (bool, error) {
	return g.flag(harvest.KeyPaused)
}

// WithdrawPaused reports whether unstake requests and withdrawals are paused.
func (g *Gate) WithdrawPaused() (bool, error) {
	return g.flag(harvest.KeyWithdrawPaused)
}

// ClaimPaused reports whether reward claims are paused.
func (g *Gate) ClaimPaused() (bool, error) {
	return g.flag(harvest.KeyClaimPaused)
}
