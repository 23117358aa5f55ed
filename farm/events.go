// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farm

import (
	"math/big"

	"github.com/harvestnet/harvest/harvest"
)

// Kind of an operation record.
type Kind string

const (
	KindAddPool        Kind = "add-pool"
	KindDeposit        Kind = "deposit"
	KindRequestUnstake Kind = "request-unstake"
	KindWithdraw       Kind = "withdraw"
	KindClaim          Kind = "claim"
)

// Event is the record of a completed ledger operation.
type Event struct {
	Kind    Kind
	Pool    uint32
	Account harvest.Address
	Amount  *big.Int
	Tick    uint64
}

// Sink receives one event per completed operation.
// The ledger never reads events back; sink failures are surfaced to the
// operator, not to the operation that emitted the event.
type Sink interface {
	Emit(ev *Event) error
}

// NoopSink discards all events.
type NoopSink struct{}

func (NoopSink) Emit(*Event) error { return nil }
