// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fixed provides checked 256-bit unsigned arithmetic for the ledger.
// Every operation either returns the exact result or an error. Nothing wraps,
// saturates or rounds up; division truncates toward zero.
package fixed

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var (
	// ErrOverflow is returned when a result exceeds 256 bits.
	ErrOverflow = errors.New("fixed: overflow")
	// ErrUnderflow is returned when a subtraction would go negative.
	ErrUnderflow = errors.New("fixed: underflow")
	// ErrDivByZero is returned on division by zero.
	ErrDivByZero = errors.New("fixed: division by zero")
	// ErrRange is returned when an operand is negative or exceeds 256 bits.
	ErrRange = errors.New("fixed: operand out of range")
)

func fromBig(v *big.Int) (*uint256.Int, error) {
	if v == nil || v.Sign() < 0 {
		return nil, ErrRange
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, ErrRange
	}
	return u, nil
}

// Add returns a + b, or ErrOverflow.
func Add(a, b *big.Int) (*big.Int, error) {
	x, err := fromBig(a)
	if err != nil {
		return nil, err
	}
	y, err := fromBig(b)
	if err != nil {
		return nil, err
	}
	sum, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return sum.ToBig(), nil
}

// Sub returns a - b, or ErrUnderflow.
func Sub(a, b *big.Int) (*big.Int, error) {
	x, err := fromBig(a)
	if err != nil {
		return nil, err
	}
	y, err := fromBig(b)
	if err != nil {
		return nil, err
	}
	diff, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, ErrUnderflow
	}
	return diff.ToBig(), nil
}

// Mul returns a * b, or ErrOverflow.
func Mul(a, b *big.Int) (*big.Int, error) {
	x, err := fromBig(a)
	if err != nil {
		return nil, err
	}
	y, err := fromBig(b)
	if err != nil {
		return nil, err
	}
	prod, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return prod.ToBig(), nil
}

// Div returns a / b truncated toward zero, or ErrDivByZero.
func Div(a, b *big.Int) (*big.Int, error) {
	x, err := fromBig(a)
	if err != nil {
		return nil, err
	}
	y, err := fromBig(b)
	if err != nil {
		return nil, err
	}
	if y.IsZero() {
		return nil, ErrDivByZero
	}
	return new(uint256.Int).Div(x, y).ToBig(), nil
}

// MulDiv returns a * b / den with a full-width intermediate product, so the
// multiplication never loses bits before the division. The final quotient
// must still fit in 256 bits.
func MulDiv(a, b, den *big.Int) (*big.Int, error) {
	x, err := fromBig(a)
	if err != nil {
		return nil, err
	}
	y, err := fromBig(b)
	if err != nil {
		return nil, err
	}
	d, err := fromBig(den)
	if err != nil {
		return nil, err
	}
	if d.IsZero() {
		return nil, ErrDivByZero
	}
	quo, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, ErrOverflow
	}
	return quo.ToBig(), nil
}
