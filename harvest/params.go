// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package harvest

import "math/big"

// Constants of the rewards ledger.
const (
	// NativePoolIndex the pool index reserved for the native asset.
	NativePoolIndex uint32 = 0
)

// ScaleFactor is the fixed-point scale applied to reward-per-share
// accumulators. All accumulator values are pre-multiplied by it so that
// integer division keeps 18 decimals of precision.
var ScaleFactor = big.NewInt(1e18)

// Keys of governance params.
var (
	KeyEmissionStartTick = BytesToBytes32([]byte("emission-start-tick"))
	KeyEmissionEndTick   = BytesToBytes32([]byte("emission-end-tick"))
	KeyEmissionRate      = BytesToBytes32([]byte("emission-rate"))

	KeyPaused         = BytesToBytes32([]byte("paused"))
	KeyWithdrawPaused = BytesToBytes32([]byte("withdraw-paused"))
	KeyClaimPaused    = BytesToBytes32([]byte("claim-paused"))

	KeyTreasury = BytesToBytes32([]byte("treasury"))
)
