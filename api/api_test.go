// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harvestnet/harvest/api"
	"github.com/harvestnet/harvest/config"
	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/logdb"
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

func newTestServer(t *testing.T) *httptest.Server {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	logDB, err := logdb.NewMem()
	assert.Nil(t, err)
	t.Cleanup(logDB.Close)

	st := state.New(db)
	p := params.New(farmAddr, st)
	v := vault.New(vaultAddr, st, rewardAsset, treasury)
	f := farm.New(farmAddr, st, p, v, logDB)

	genesis := &config.Genesis{
		Treasury:    treasury,
		RewardAsset: rewardAsset,
		Emission:    config.Emission{StartTick: 0, EndTick: 1000, Rate: big.NewInt(10)},
		Pools: []config.Pool{
			{Asset: harvest.Address{}, Weight: big.NewInt(500), MinDeposit: big.NewInt(100), LockDuration: 20},
		},
	}
	assert.Nil(t, node.ApplyGenesis(st, p, v, f, genesis))

	assert.Nil(t, v.Credit(harvest.Address{}, alice, big.NewInt(1000)))
	assert.Nil(t, st.Commit())

	tick := uint64(10)
	nd := node.New(st, f, p, func() uint64 { return tick })
	assert.Nil(t, nd.DepositNative(alice, big.NewInt(1000)))

	srv := httptest.NewServer(api.New(nd, logDB, api.Options{LogsLimit: 100}))
	t.Cleanup(srv.Close)
	return srv
}

func httpGetJSON(t *testing.T, url string, v any) int {
	res, err := http.Get(url)
	assert.Nil(t, err)
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK {
		assert.Nil(t, json.NewDecoder(res.Body).Decode(v))
	}
	return res.StatusCode
}

func TestGetPools(t *testing.T) {
	srv := newTestServer(t)

	var pools []map[string]any
	code := httpGetJSON(t, srv.URL+"/pools", &pools)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, pools, 1)
	assert.Equal(t, true, pools[0]["native"])
	assert.Equal(t, "500", pools[0]["weight"])
	assert.Equal(t, "1000", pools[0]["totalStaked"])
}

func TestGetPool(t *testing.T) {
	srv := newTestServer(t)

	var pool map[string]any
	code := httpGetJSON(t, srv.URL+"/pools/0", &pool)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "100", pool["minDeposit"])

	code = httpGetJSON(t, srv.URL+"/pools/9", &pool)
	assert.Equal(t, http.StatusNotFound, code)

	code = httpGetJSON(t, srv.URL+"/pools/notanumber", &pool)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetAccount(t *testing.T) {
	srv := newTestServer(t)

	var summary map[string]any
	code := httpGetJSON(t, srv.URL+"/pools/0/accounts/"+alice.String(), &summary)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1000", summary["staked"])
	assert.Equal(t, float64(10), summary["tick"])

	// deposit happened at tick 10; nothing accrued yet at that tick
	assert.Equal(t, "0", summary["pending"])

	code = httpGetJSON(t, srv.URL+"/pools/0/accounts/"+alice.String()+"?tick=20", &summary)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "100", summary["pending"])

	code = httpGetJSON(t, srv.URL+"/pools/0/accounts/nothex", &summary)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetHealth(t *testing.T) {
	srv := newTestServer(t)

	var status map[string]any
	code := httpGetJSON(t, srv.URL+"/health", &status)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, status["healthy"])
	assert.Equal(t, float64(1), status["poolCount"])
	assert.Equal(t, float64(10), status["tick"])
}

func TestGetOperations(t *testing.T) {
	srv := newTestServer(t)

	var ops []map[string]any
	code := httpGetJSON(t, srv.URL+"/operations", &ops)
	assert.Equal(t, http.StatusOK, code)
	// genesis add-pool plus the deposit, newest first
	assert.Len(t, ops, 2)
	assert.Equal(t, "deposit", ops[0]["kind"])
	assert.Equal(t, "add-pool", ops[1]["kind"])

	code = httpGetJSON(t, srv.URL+"/operations?kind=deposit&account="+alice.String(), &ops)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, ops, 1)
	assert.Equal(t, "1000", ops[0]["amount"])

	code = httpGetJSON(t, srv.URL+"/operations?kind=bogus", &ops)
	assert.Equal(t, http.StatusBadRequest, code)
}
