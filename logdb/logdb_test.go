// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/logdb"
)

var (
	alice = harvest.BytesToAddress([]byte("alice"))
	bob   = harvest.BytesToAddress([]byte("bob"))
)

func newTestDB(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	assert.Nil(t, err)
	t.Cleanup(db.Close)
	return db
}

func emit(t *testing.T, db *logdb.LogDB, kind farm.Kind, pool uint32, account harvest.Address, amount int64, tick uint64) {
	assert.Nil(t, db.Emit(&farm.Event{
		Kind:    kind,
		Pool:    pool,
		Account: account,
		Amount:  big.NewInt(amount),
		Tick:    tick,
	}))
}

func TestEmitAndFilter(t *testing.T) {
	db := newTestDB(t)

	emit(t, db, farm.KindDeposit, 0, alice, 1000, 1)
	emit(t, db, farm.KindDeposit, 1, bob, 500, 2)
	emit(t, db, farm.KindRequestUnstake, 0, alice, 400, 10)
	emit(t, db, farm.KindWithdraw, 0, alice, 0, 25)

	all, err := db.FilterOperations(context.Background(), nil)
	assert.Nil(t, err)
	assert.Len(t, all, 4)

	// by account
	kind := farm.KindDeposit
	ops, err := db.FilterOperations(context.Background(), &logdb.OperationFilter{
		Account: &alice,
		Kind:    &kind,
	})
	assert.Nil(t, err)
	assert.Len(t, ops, 1)
	assert.Equal(t, big.NewInt(1000), ops[0].Amount)
	assert.Equal(t, uint64(1), ops[0].Tick)

	// by pool
	pool := uint32(1)
	ops, err = db.FilterOperations(context.Background(), &logdb.OperationFilter{Pool: &pool})
	assert.Nil(t, err)
	assert.Len(t, ops, 1)
	assert.Equal(t, bob, ops[0].Account)

	// by tick range
	ops, err = db.FilterOperations(context.Background(), &logdb.OperationFilter{
		Range: &logdb.Range{From: 2, To: 10},
	})
	assert.Nil(t, err)
	assert.Len(t, ops, 2)

	// zero amounts survive the round trip
	kind = farm.KindWithdraw
	ops, err = db.FilterOperations(context.Background(), &logdb.OperationFilter{Kind: &kind})
	assert.Nil(t, err)
	assert.Len(t, ops, 1)
	assert.Equal(t, 0, ops[0].Amount.Sign())
}

func TestFilterOrderAndPaging(t *testing.T) {
	db := newTestDB(t)

	for i := int64(0); i < 5; i++ {
		emit(t, db, farm.KindDeposit, 0, alice, i, uint64(i))
	}

	ops, err := db.FilterOperations(context.Background(), &logdb.OperationFilter{Order: logdb.DESC})
	assert.Nil(t, err)
	assert.Len(t, ops, 5)
	assert.Equal(t, big.NewInt(4), ops[0].Amount)
	assert.True(t, ops[0].Seq > ops[4].Seq)

	ops, err = db.FilterOperations(context.Background(), &logdb.OperationFilter{
		Order:   logdb.ASC,
		Options: &logdb.Options{Offset: 1, Limit: 2},
	})
	assert.Nil(t, err)
	assert.Len(t, ops, 2)
	assert.Equal(t, big.NewInt(1), ops[0].Amount)
}
