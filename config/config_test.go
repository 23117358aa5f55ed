// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validGenesis = `
treasury: "0x0000000000000000000000000000000000000011"
rewardAsset: "0x0000000000000000000000000000000000000022"
emission:
  startTick: 0
  endTick: 1000
  rate: "10"
pools:
  - asset: ""
    weight: "500"
    minDeposit: "100"
    lockDuration: 20
  - asset: "0x0000000000000000000000000000000000000033"
    weight: "300"
    minDeposit: "1"
    lockDuration: 10
balances:
  - account: "0x0000000000000000000000000000000000000011"
    asset: "0x0000000000000000000000000000000000000022"
    amount: "1000000"
`

func TestParse(t *testing.T) {
	genesis, err := Parse([]byte(validGenesis))
	assert.Nil(t, err)

	assert.False(t, genesis.Treasury.IsZero())
	assert.Equal(t, uint64(1000), genesis.Emission.EndTick)
	assert.Equal(t, big.NewInt(10), genesis.Emission.Rate)

	assert.Len(t, genesis.Pools, 2)
	assert.True(t, genesis.Pools[0].Asset.IsZero())
	assert.Equal(t, big.NewInt(500), genesis.Pools[0].Weight)
	assert.Equal(t, uint64(20), genesis.Pools[0].LockDuration)
	assert.False(t, genesis.Pools[1].Asset.IsZero())

	assert.Len(t, genesis.Balances, 1)
	assert.Equal(t, big.NewInt(1000000), genesis.Balances[0].Amount)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing treasury", `
emission: {startTick: 0, endTick: 10, rate: "1"}
pools: [{asset: "", weight: "1"}]
`},
		{"inverted schedule", `
treasury: "0x0000000000000000000000000000000000000011"
emission: {startTick: 10, endTick: 5, rate: "1"}
pools: [{asset: "", weight: "1"}]
`},
		{"zero rate", `
treasury: "0x0000000000000000000000000000000000000011"
emission: {startTick: 0, endTick: 10, rate: "0"}
pools: [{asset: "", weight: "1"}]
`},
		{"no pools", `
treasury: "0x0000000000000000000000000000000000000011"
emission: {startTick: 0, endTick: 10, rate: "1"}
`},
		{"first pool not native", `
treasury: "0x0000000000000000000000000000000000000011"
emission: {startTick: 0, endTick: 10, rate: "1"}
pools: [{asset: "0x0000000000000000000000000000000000000033", weight: "1"}]
`},
		{"second native pool", `
treasury: "0x0000000000000000000000000000000000000011"
emission: {startTick: 0, endTick: 10, rate: "1"}
pools: [{asset: "", weight: "1"}, {asset: "", weight: "1"}]
`},
		{"zero weight", `
treasury: "0x0000000000000000000000000000000000000011"
emission: {startTick: 0, endTick: 10, rate: "1"}
pools: [{asset: "", weight: "0"}]
`},
		{"bad amount", `
treasury: "0x0000000000000000000000000000000000000011"
emission: {startTick: 0, endTick: 10, rate: "ten"}
pools: [{asset: "", weight: "1"}]
`},
	}

	for _, test := range tests {
		_, err := Parse([]byte(test.yaml))
		assert.Error(t, err, test.name)
	}
}
