// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/lvldb"
	"github.com/harvestnet/harvest/state"
	"github.com/harvestnet/harvest/vault"
)

var (
	vaultAddr   = harvest.BytesToAddress([]byte("vault"))
	rewardAsset = harvest.BytesToAddress([]byte("reward"))
	treasury    = harvest.BytesToAddress([]byte("treasury"))
	tokenAsset  = harvest.BytesToAddress([]byte("token"))
	alice       = harvest.BytesToAddress([]byte("alice"))
)

func newTestVault(t *testing.T) (*vault.Vault, *state.State) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	st := state.New(db)
	return vault.New(vaultAddr, st, rewardAsset, treasury), st
}

func TestCreditAndBalance(t *testing.T) {
	v, _ := newTestVault(t)

	bal, err := v.Balance(tokenAsset, alice)
	assert.Nil(t, err)
	assert.Equal(t, 0, bal.Sign())

	assert.Nil(t, v.Credit(tokenAsset, alice, big.NewInt(1000)))
	bal, _ = v.Balance(tokenAsset, alice)
	assert.Equal(t, big.NewInt(1000), bal)

	// balances are per asset
	bal, _ = v.Balance(rewardAsset, alice)
	assert.Equal(t, 0, bal.Sign())
}

func TestPullPush(t *testing.T) {
	v, _ := newTestVault(t)

	assert.Nil(t, v.Credit(tokenAsset, alice, big.NewInt(500)))

	assert.Nil(t, v.Pull(tokenAsset, alice, big.NewInt(300)))
	bal, _ := v.Balance(tokenAsset, alice)
	assert.Equal(t, big.NewInt(200), bal)
	held, _ := v.Balance(tokenAsset, vaultAddr)
	assert.Equal(t, big.NewInt(300), held)

	assert.Nil(t, v.Push(tokenAsset, alice, big.NewInt(100)))
	bal, _ = v.Balance(tokenAsset, alice)
	assert.Equal(t, big.NewInt(300), bal)

	// zero transfers are no-ops
	assert.Nil(t, v.Push(tokenAsset, alice, new(big.Int)))
}

func TestInsufficientBalance(t *testing.T) {
	v, _ := newTestVault(t)

	assert.Nil(t, v.Credit(tokenAsset, alice, big.NewInt(10)))
	err := v.Pull(tokenAsset, alice, big.NewInt(11))
	assert.Equal(t, vault.ErrInsufficientBalance, err)

	// nothing moved
	bal, _ := v.Balance(tokenAsset, alice)
	assert.Equal(t, big.NewInt(10), bal)
}

func TestReward(t *testing.T) {
	v, _ := newTestVault(t)

	avail, err := v.RewardAvailable()
	assert.Nil(t, err)
	assert.Equal(t, 0, avail.Sign())

	assert.Nil(t, v.Credit(rewardAsset, treasury, big.NewInt(100)))
	avail, _ = v.RewardAvailable()
	assert.Equal(t, big.NewInt(100), avail)

	assert.Nil(t, v.PushReward(alice, big.NewInt(40)))
	avail, _ = v.RewardAvailable()
	assert.Equal(t, big.NewInt(60), avail)
	bal, _ := v.Balance(rewardAsset, alice)
	assert.Equal(t, big.NewInt(40), bal)

	assert.Equal(t, vault.ErrInsufficientBalance, v.PushReward(alice, big.NewInt(61)))
}
