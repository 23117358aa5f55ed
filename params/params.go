// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params provides governance parameters stored in state.
// Validation of parameter values and the permission to change them belong to
// the administrative caller, not to this package.
package params

import (
	"math/big"

	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/state"
)

// Params binder of governance params.
type Params struct {
	addr  harvest.Address
	state *state.State
}

func New(addr harvest.Address, state *state.State) *Params {
	return &Params{addr, state}
}

// Get returns the value of the param with given key, zero if unset.
func (p *Params) Get(key harvest.Bytes32) (*big.Int, error) {
	var v big.Int
	if err := p.state.GetStructuredStorage(p.addr, key, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Set sets the value of the param with given key.
func (p *Params) Set(key harvest.Bytes32, value *big.Int) error {
	return p.state.SetStructuredStorage(p.addr, key, value)
}
