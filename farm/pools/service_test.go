// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harvestnet/harvest/farm/pools"
	"github.com/harvestnet/harvest/farm/reverts"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/lvldb"
	"github.com/harvestnet/harvest/slots"
	"github.com/harvestnet/harvest/state"
)

var tokenAsset = harvest.BytesToAddress([]byte("token"))

func newTestService(t *testing.T) *pools.Service {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	sctx := slots.NewContext(harvest.BytesToAddress([]byte("farm")), state.New(db))
	return pools.New(sctx)
}

func TestAddAndGet(t *testing.T) {
	s := newTestService(t)

	index, err := s.Add(harvest.Address{}, big.NewInt(500), big.NewInt(100), 20, 7)
	assert.Nil(t, err)
	assert.Equal(t, harvest.NativePoolIndex, index)

	pool, err := s.Get(index)
	assert.Nil(t, err)
	assert.True(t, pool.IsNative())
	assert.Equal(t, big.NewInt(500), pool.Weight)
	assert.Equal(t, big.NewInt(100), pool.MinDeposit)
	assert.Equal(t, uint64(20), pool.LockDuration)
	assert.Equal(t, uint64(7), pool.LastTick)
	assert.Equal(t, 0, pool.TotalStaked.Sign())
	assert.Equal(t, 0, pool.AccPerShare.Sign())

	index, err = s.Add(tokenAsset, big.NewInt(300), new(big.Int), 0, 7)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), index)

	count, _ := s.Count()
	assert.Equal(t, uint32(2), count)
	total, _ := s.TotalWeight()
	assert.Equal(t, big.NewInt(800), total)
}

func TestAddRules(t *testing.T) {
	s := newTestService(t)

	_, err := s.Add(tokenAsset, new(big.Int), nil, 0, 0)
	assert.True(t, reverts.IsRevertErr(err), "zero weight must revert")

	_, err = s.Add(tokenAsset, big.NewInt(100), nil, 0, 0)
	assert.Nil(t, err)

	// the native pool may only sit at index 0
	_, err = s.Add(harvest.Address{}, big.NewInt(100), nil, 0, 0)
	assert.True(t, reverts.IsRevertErr(err))
}

func TestGetMissing(t *testing.T) {
	s := newTestService(t)

	_, err := s.Get(0)
	assert.True(t, reverts.IsRevertErr(err))
}

func TestSetWeight(t *testing.T) {
	s := newTestService(t)

	index, err := s.Add(harvest.Address{}, big.NewInt(500), nil, 0, 0)
	assert.Nil(t, err)
	_, err = s.Add(tokenAsset, big.NewInt(300), nil, 0, 0)
	assert.Nil(t, err)

	assert.Nil(t, s.SetWeight(index, big.NewInt(200)))

	pool, _ := s.Get(index)
	assert.Equal(t, big.NewInt(200), pool.Weight)
	total, _ := s.TotalWeight()
	assert.Equal(t, big.NewInt(500), total)

	err = s.SetWeight(index, new(big.Int))
	assert.True(t, reverts.IsRevertErr(err), "zero weight must revert")
	err = s.SetWeight(9, big.NewInt(1))
	assert.True(t, reverts.IsRevertErr(err))
}
