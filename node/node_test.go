// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harvestnet/harvest/config"
	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/lvldb"
	"github.com/harvestnet/harvest/node"
	"github.com/harvestnet/harvest/params"
	"github.com/harvestnet/harvest/state"
	"github.com/harvestnet/harvest/vault"
)

var (
	farmAddr    = harvest.BytesToAddress([]byte("farm"))
	vaultAddr   = harvest.BytesToAddress([]byte("vault"))
	rewardAsset = harvest.BytesToAddress([]byte("reward"))
	treasury    = harvest.BytesToAddress([]byte("treasury"))

	alice = harvest.BytesToAddress([]byte("alice"))
)

func testGenesis() *config.Genesis {
	return &config.Genesis{
		Treasury:    treasury,
		RewardAsset: rewardAsset,
		Emission:    config.Emission{StartTick: 0, EndTick: 1000, Rate: big.NewInt(10)},
		Pools: []config.Pool{
			{Asset: harvest.Address{}, Weight: big.NewInt(500), MinDeposit: big.NewInt(100), LockDuration: 20},
		},
		Balances: []config.Balance{
			{Account: treasury, Asset: rewardAsset, Amount: big.NewInt(100000)},
		},
	}
}

type env struct {
	db    *lvldb.LevelDB
	state *state.State
	vault *vault.Vault
	node  *node.Node
	tick  uint64
}

func newTestNode(t *testing.T) *env {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)

	e := &env{db: db}
	e.state = state.New(db)
	p := params.New(farmAddr, e.state)
	e.vault = vault.New(vaultAddr, e.state, rewardAsset, treasury)
	f := farm.New(farmAddr, e.state, p, e.vault, nil)

	assert.Nil(t, node.ApplyGenesis(e.state, p, e.vault, f, testGenesis()))
	e.node = node.New(e.state, f, p, func() uint64 { return e.tick })
	return e
}

func TestGenesisSeeding(t *testing.T) {
	e := newTestNode(t)

	infos, err := e.node.Pools()
	assert.Nil(t, err)
	assert.Len(t, infos, 1)
	assert.True(t, infos[0].Pool.IsNative())
	assert.Equal(t, big.NewInt(500), infos[0].Pool.Weight)

	available, err := e.vault.RewardAvailable()
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(100000), available)
}

func TestGenesisIdempotent(t *testing.T) {
	e := newTestNode(t)

	p := params.New(farmAddr, e.state)
	f := farm.New(farmAddr, e.state, p, e.vault, nil)
	assert.Nil(t, node.ApplyGenesis(e.state, p, e.vault, f, testGenesis()))

	infos, _ := e.node.Pools()
	assert.Len(t, infos, 1, "reapplying genesis must not duplicate pools")
}

func TestOperationsCommit(t *testing.T) {
	e := newTestNode(t)
	assert.Nil(t, e.vault.Credit(harvest.Address{}, alice, big.NewInt(1000)))
	assert.Nil(t, e.state.Commit())

	assert.Nil(t, e.node.DepositNative(alice, big.NewInt(1000)))

	// a fresh state over the same store sees the committed deposit
	st := state.New(e.db)
	p := params.New(farmAddr, st)
	f := farm.New(farmAddr, st, p, vault.New(vaultAddr, st, rewardAsset, treasury), nil)
	staked, err := f.StakedBalance(0, alice)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(1000), staked)
}

func TestAccountSummary(t *testing.T) {
	e := newTestNode(t)
	assert.Nil(t, e.vault.Credit(harvest.Address{}, alice, big.NewInt(1000)))
	assert.Nil(t, e.state.Commit())

	assert.Nil(t, e.node.DepositNative(alice, big.NewInt(1000)))

	e.tick = 10
	assert.Nil(t, e.node.RequestUnstake(0, alice, big.NewInt(400)))

	summary, err := e.node.Account(0, alice, nil)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(600), summary.Staked)
	assert.Equal(t, big.NewInt(400), summary.Locked)
	assert.Equal(t, 0, summary.Withdrawable.Sign())
	assert.Equal(t, uint64(10), summary.Tick)

	at := uint64(30)
	summary, err = e.node.Account(0, alice, &at)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(400), summary.Withdrawable)
	assert.Equal(t, 0, summary.Locked.Sign())

	e.tick = 30
	amount, err := e.node.Withdraw(0, alice)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(400), amount)
}

func TestRevertedOperationNotCommitted(t *testing.T) {
	e := newTestNode(t)

	// no funds: the operation fails, nothing reaches the store
	assert.Error(t, e.node.DepositNative(alice, big.NewInt(1000)))

	summary, err := e.node.Account(0, alice, nil)
	assert.Nil(t, err)
	assert.Equal(t, 0, summary.Staked.Sign())
}

func TestPauseFlags(t *testing.T) {
	e := newTestNode(t)
	assert.Nil(t, e.vault.Credit(harvest.Address{}, alice, big.NewInt(1000)))
	assert.Nil(t, e.state.Commit())

	assert.Nil(t, e.node.SetPaused(true))
	assert.Error(t, e.node.DepositNative(alice, big.NewInt(1000)))

	assert.Nil(t, e.node.SetPaused(false))
	assert.Nil(t, e.node.DepositNative(alice, big.NewInt(1000)))
}
