// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package slots provides typed storage cells over the state, similar to
// declaring storage variables in a smart contract.
package slots

import (
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/state"
)

// Context binds cells of one ledger component to its storage address.
type Context struct {
	address harvest.Address
	state   *state.State
}

func NewContext(address harvest.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) Address() harvest.Address {
	return c.address
}
