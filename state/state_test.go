// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/lvldb"
	"github.com/harvestnet/harvest/state"
)

func newTestState(t *testing.T) (*state.State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	return state.New(db), db
}

func TestStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := harvest.BytesToAddress([]byte("addr"))
	key := harvest.BytesToBytes32([]byte("key"))
	value := harvest.BytesToBytes32([]byte("value"))

	st.SetStorage(addr, key, value)
	got, err := st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, value, got)

	// unset key reads as zero
	got, err = st.GetStorage(addr, harvest.BytesToBytes32([]byte("other")))
	assert.Nil(t, err)
	assert.Equal(t, harvest.Bytes32{}, got)
}

func TestStructuredStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := harvest.BytesToAddress([]byte("addr"))
	key := harvest.BytesToBytes32([]byte("key"))

	type payload struct {
		Amount *big.Int
		Tick   uint64
	}

	assert.Nil(t, st.SetStructuredStorage(addr, key, &payload{big.NewInt(42), 7}))

	var got payload
	assert.Nil(t, st.GetStructuredStorage(addr, key, &got))
	assert.Equal(t, big.NewInt(42), got.Amount)
	assert.Equal(t, uint64(7), got.Tick)
}

func TestCheckpointRevert(t *testing.T) {
	st, _ := newTestState(t)

	addr := harvest.BytesToAddress([]byte("addr"))
	key := harvest.BytesToBytes32([]byte("key"))
	before := harvest.BytesToBytes32([]byte("before"))
	after := harvest.BytesToBytes32([]byte("after"))

	st.SetStorage(addr, key, before)

	checkpoint := st.NewCheckpoint()
	st.SetStorage(addr, key, after)

	got, _ := st.GetStorage(addr, key)
	assert.Equal(t, after, got)

	st.RevertTo(checkpoint)
	got, _ = st.GetStorage(addr, key)
	assert.Equal(t, before, got)
}

func TestCommit(t *testing.T) {
	st, db := newTestState(t)

	addr := harvest.BytesToAddress([]byte("addr"))
	key := harvest.BytesToBytes32([]byte("key"))
	value := harvest.BytesToBytes32([]byte("value"))

	st.SetStorage(addr, key, value)
	assert.Nil(t, st.Commit())

	// a fresh state over the same store sees the committed value
	st2 := state.New(db)
	got, err := st2.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, value, got)

	// the committing state keeps reading its own writes
	got, err = st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, value, got)
}

func TestCommitDeletes(t *testing.T) {
	st, db := newTestState(t)

	addr := harvest.BytesToAddress([]byte("addr"))
	key := harvest.BytesToBytes32([]byte("key"))
	value := harvest.BytesToBytes32([]byte("value"))

	st.SetStorage(addr, key, value)
	assert.Nil(t, st.Commit())

	// setting the zero value deletes the backing entry
	st.SetStorage(addr, key, harvest.Bytes32{})
	assert.Nil(t, st.Commit())

	st2 := state.New(db)
	got, err := st2.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, harvest.Bytes32{}, got)
}

func TestRevertedWritesNotCommitted(t *testing.T) {
	st, db := newTestState(t)

	addr := harvest.BytesToAddress([]byte("addr"))
	key := harvest.BytesToBytes32([]byte("key"))

	checkpoint := st.NewCheckpoint()
	st.SetStorage(addr, key, harvest.BytesToBytes32([]byte("value")))
	st.RevertTo(checkpoint)

	assert.Nil(t, st.Commit())

	st2 := state.New(db)
	got, err := st2.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, harvest.Bytes32{}, got)
}
