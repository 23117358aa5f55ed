// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixed

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func TestAdd(t *testing.T) {
	sum, err := Add(big.NewInt(1), big.NewInt(2))
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(3), sum)

	_, err = Add(maxUint256, big.NewInt(1))
	assert.Equal(t, ErrOverflow, err)
}

func TestSub(t *testing.T) {
	diff, err := Sub(big.NewInt(5), big.NewInt(3))
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(2), diff)

	_, err = Sub(big.NewInt(3), big.NewInt(5))
	assert.Equal(t, ErrUnderflow, err)
}

func TestMul(t *testing.T) {
	prod, err := Mul(big.NewInt(6), big.NewInt(7))
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(42), prod)

	_, err = Mul(maxUint256, big.NewInt(2))
	assert.Equal(t, ErrOverflow, err)
}

func TestDiv(t *testing.T) {
	quo, err := Div(big.NewInt(7), big.NewInt(2))
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(3), quo, "division truncates")

	_, err = Div(big.NewInt(7), new(big.Int))
	assert.Equal(t, ErrDivByZero, err)
}

func TestMulDiv(t *testing.T) {
	// the intermediate product exceeds 256 bits, the quotient does not
	quo, err := MulDiv(maxUint256, big.NewInt(100), big.NewInt(200))
	assert.Nil(t, err)
	assert.Equal(t, new(big.Int).Rsh(maxUint256, 1), quo)

	_, err = MulDiv(maxUint256, big.NewInt(2), big.NewInt(1))
	assert.Equal(t, ErrOverflow, err)

	_, err = MulDiv(big.NewInt(1), big.NewInt(1), new(big.Int))
	assert.Equal(t, ErrDivByZero, err)
}

func TestOperandRange(t *testing.T) {
	_, err := Add(big.NewInt(-1), big.NewInt(1))
	assert.Equal(t, ErrRange, err)

	_, err = Add(nil, big.NewInt(1))
	assert.Equal(t, ErrRange, err)

	tooBig := new(big.Int).Add(maxUint256, big.NewInt(1))
	_, err = Mul(tooBig, big.NewInt(1))
	assert.Equal(t, ErrRange, err)
}
