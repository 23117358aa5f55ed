// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"math/big"

	"github.com/harvestnet/harvest/fixed"
	"github.com/harvestnet/harvest/harvest"
)

// Uint256 is a storage cell holding a single unsigned 256-bit integer.
// Add and Sub are checked; they fail instead of wrapping.
type Uint256 struct {
	context *Context
	pos     harvest.Bytes32
}

func NewUint256(context *Context, slot harvest.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: slot}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) {
	u.context.state.SetStorage(u.context.address, u.pos, harvest.BytesToBytes32(value.Bytes()))
}

func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	sum, err := fixed.Add(storage, value)
	if err != nil {
		return err
	}
	u.Set(sum)
	return nil
}

func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	diff, err := fixed.Sub(storage, value)
	if err != nil {
		return err
	}
	u.Set(diff)
	return nil
}
