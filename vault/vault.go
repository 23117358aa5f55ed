// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vault tracks asset balances held in state: the native asset, the
// staked token assets and the reward token. Balances live in the same state
// as the ledger, so a reverted operation also reverts any transfer it made.
package vault

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/harvestnet/harvest/fixed"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/state"
)

// ErrInsufficientBalance is returned when a transfer exceeds the payer's balance.
var ErrInsufficientBalance = errors.New("vault: insufficient balance")

// Vault implements the ledger's asset transfer collaborator.
// The vault's own address holds pooled stakes; the treasury address holds the
// reward token supply that claims are paid from.
type Vault struct {
	addr        harvest.Address
	state       *state.State
	rewardAsset harvest.Address
	treasury    harvest.Address
}

func New(addr harvest.Address, st *state.State, rewardAsset, treasury harvest.Address) *Vault {
	return &Vault{addr: addr, state: st, rewardAsset: rewardAsset, treasury: treasury}
}

func balanceKey(asset, owner harvest.Address) harvest.Bytes32 {
	return harvest.Blake2b([]byte("b"), asset.Bytes(), owner.Bytes())
}

type account struct {
	Balance *big.Int
}

var (
	_ state.StorageEncoder = (*account)(nil)
	_ state.StorageDecoder = (*account)(nil)
)

func (a *account) Encode() ([]byte, error) {
	if a.Balance.Sign() == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

func (a *account) Decode(data []byte) error {
	if len(data) == 0 {
		*a = account{&big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, a)
}

// Balance returns the balance of owner in the given asset.
func (v *Vault) Balance(asset, owner harvest.Address) (*big.Int, error) {
	var acc account
	if err := v.state.GetStructuredStorage(v.addr, balanceKey(asset, owner), &acc); err != nil {
		return nil, err
	}
	return acc.Balance, nil
}

func (v *Vault) setBalance(asset, owner harvest.Address, balance *big.Int) error {
	return v.state.SetStructuredStorage(v.addr, balanceKey(asset, owner), &account{balance})
}

// Credit adds amount to owner's balance of the given asset.
func (v *Vault) Credit(asset, owner harvest.Address, amount *big.Int) error {
	bal, err := v.Balance(asset, owner)
	if err != nil {
		return err
	}
	bal, err = fixed.Add(bal, amount)
	if err != nil {
		return err
	}
	return v.setBalance(asset, owner, bal)
}

func (v *Vault) transfer(asset, from, to harvest.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	fromBal, err := v.Balance(asset, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	fromBal, err = fixed.Sub(fromBal, amount)
	if err != nil {
		return err
	}
	toBal, err := v.Balance(asset, to)
	if err != nil {
		return err
	}
	toBal, err = fixed.Add(toBal, amount)
	if err != nil {
		return err
	}
	if err := v.setBalance(asset, from, fromBal); err != nil {
		return err
	}
	return v.setBalance(asset, to, toBal)
}

// Pull moves amount of asset from the given account into the vault.
func (v *Vault) Pull(asset, from harvest.Address, amount *big.Int) error {
	return v.transfer(asset, from, v.addr, amount)
}

// Push moves amount of asset from the vault to the given account.
func (v *Vault) Push(asset, to harvest.Address, amount *big.Int) error {
	return v.transfer(asset, v.addr, to, amount)
}

// RewardAvailable returns the reward token balance held by the treasury.
func (v *Vault) RewardAvailable() (*big.Int, error) {
	return v.Balance(v.rewardAsset, v.treasury)
}

// PushReward pays amount of the reward token from the treasury to the given
// account.
func (v *Vault) PushReward(to harvest.Address, amount *big.Int) error {
	return v.transfer(v.rewardAsset, v.treasury, to, amount)
}
