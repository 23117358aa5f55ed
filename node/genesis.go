// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/harvestnet/harvest/config"
	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/params"
	"github.com/harvestnet/harvest/state"
	"github.com/harvestnet/harvest/vault"
)

var keyGenesisApplied = harvest.BytesToBytes32([]byte("genesis-applied"))

// ApplyGenesis seeds a fresh state from the genesis config: emission schedule,
// initial pools and initial balances. A state that was already seeded is left
// untouched, so restarting on an existing data dir is safe.
func ApplyGenesis(st *state.State, p *params.Params, v *vault.Vault, f *farm.Farm, genesis *config.Genesis) error {
	applied, err := p.Get(keyGenesisApplied)
	if err != nil {
		return err
	}
	if applied.Sign() != 0 {
		logger.Info("genesis already applied, skipping")
		return nil
	}

	if err := p.Set(harvest.KeyEmissionStartTick, new(big.Int).SetUint64(genesis.Emission.StartTick)); err != nil {
		return err
	}
	if err := p.Set(harvest.KeyEmissionEndTick, new(big.Int).SetUint64(genesis.Emission.EndTick)); err != nil {
		return err
	}
	if err := p.Set(harvest.KeyEmissionRate, genesis.Emission.Rate); err != nil {
		return err
	}

	for i, pool := range genesis.Pools {
		index, err := f.AddPool(pool.Asset, pool.Weight, pool.MinDeposit, pool.LockDuration, genesis.Emission.StartTick)
		if err != nil {
			return errors.Wrapf(err, "genesis pool %d", i)
		}
		logger.Info("genesis pool added", "index", index, "asset", pool.Asset)
	}

	for i, balance := range genesis.Balances {
		if err := v.Credit(balance.Asset, balance.Account, balance.Amount); err != nil {
			return errors.Wrapf(err, "genesis balance %d", i)
		}
	}

	if err := p.Set(keyGenesisApplied, big.NewInt(1)); err != nil {
		return err
	}
	if err := st.Commit(); err != nil {
		return err
	}
	logger.Info("genesis applied",
		"pools", len(genesis.Pools),
		"emissionStart", genesis.Emission.StartTick,
		"emissionEnd", genesis.Emission.EndTick)
	return nil
}
