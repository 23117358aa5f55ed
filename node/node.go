// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node drives the ledger. It owns the state and serializes every
// operation and query under a single writer lock, stamping each with the
// current tick and committing state after each successful mutation.
package node

import (
	"math/big"
	"sync"
	"time"

	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/farm/pools"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/log"
	"github.com/harvestnet/harvest/metrics"
	"github.com/harvestnet/harvest/params"
	"github.com/harvestnet/harvest/state"
)

var (
	logger = log.WithContext("pkg", "node")

	metricOpElapsed = metrics.LazyLoadHistogram("node_op_elapsed_ms", metrics.Bucket1s)
)

// Clock supplies the current tick.
type Clock func() uint64

// Node applies ledger operations.
type Node struct {
	mu     sync.Mutex
	state  *state.State
	farm   *farm.Farm
	params *params.Params
	clock  Clock
}

// New create a node over an assembled ledger.
func New(st *state.State, f *farm.Farm, p *params.Params, clock Clock) *Node {
	return &Node{
		state:  st,
		farm:   f,
		params: p,
		clock:  clock,
	}
}

// Tick returns the node's current tick.
func (n *Node) Tick() uint64 {
	return n.clock()
}

// apply runs op under the writer lock and commits state when it succeeds.
// A reverted operation leaves nothing to commit; the farm has already rolled
// its checkpoint back.
func (n *Node) apply(op func(tick uint64) error) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	startTime := time.Now()
	defer func() {
		metricOpElapsed().Observe(time.Since(startTime).Milliseconds())
	}()

	if err := op(n.clock()); err != nil {
		return err
	}
	if err := n.state.Commit(); err != nil {
		logger.Error("state commit failed", "error", err)
		return err
	}
	return nil
}

// Deposit stakes amount of a token pool's asset for the account.
func (n *Node) Deposit(index uint32, account harvest.Address, amount *big.Int) error {
	return n.apply(func(tick uint64) error {
		return n.farm.Deposit(index, account, amount, tick)
	})
}

// DepositNative stakes amount of the native asset for the account.
func (n *Node) DepositNative(account harvest.Address, amount *big.Int) error {
	return n.apply(func(tick uint64) error {
		return n.farm.DepositNative(account, amount, tick)
	})
}

// RequestUnstake queues amount of the account's stake for withdrawal.
func (n *Node) RequestUnstake(index uint32, account harvest.Address, amount *big.Int) error {
	return n.apply(func(tick uint64) error {
		return n.farm.RequestUnstake(index, account, amount, tick)
	})
}

// Withdraw transfers the account's matured unstaked funds back to it.
func (n *Node) Withdraw(index uint32, account harvest.Address) (amount *big.Int, err error) {
	err = n.apply(func(tick uint64) error {
		amount, err = n.farm.Withdraw(index, account, tick)
		return err
	})
	if err != nil {
		return nil, err
	}
	return amount, nil
}

// Claim pays out the account's pending reward.
func (n *Node) Claim(index uint32, account harvest.Address) (paid *big.Int, err error) {
	err = n.apply(func(tick uint64) error {
		paid, err = n.farm.Claim(index, account, tick)
		return err
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// AddPool registers a new pool.
func (n *Node) AddPool(asset harvest.Address, weight, minDeposit *big.Int, lockDuration uint64) (index uint32, err error) {
	err = n.apply(func(tick uint64) error {
		index, err = n.farm.AddPool(asset, weight, minDeposit, lockDuration, tick)
		return err
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}

// SetPoolWeight changes a pool's emission weight.
func (n *Node) SetPoolWeight(index uint32, weight *big.Int) error {
	return n.apply(func(tick uint64) error {
		return n.farm.SetPoolWeight(index, weight, tick)
	})
}

// SetPaused toggles the global pause flag.
func (n *Node) SetPaused(paused bool) error {
	return n.setFlag(harvest.KeyPaused, paused)
}

// SetWithdrawPaused toggles the withdraw pause flag.
func (n *Node) SetWithdrawPaused(paused bool) error {
	return n.setFlag(harvest.KeyWithdrawPaused, paused)
}

// SetClaimPaused toggles the claim pause flag.
func (n *Node) SetClaimPaused(paused bool) error {
	return n.setFlag(harvest.KeyClaimPaused, paused)
}

func (n *Node) setFlag(key harvest.Bytes32, on bool) error {
	return n.apply(func(uint64) error {
		value := new(big.Int)
		if on {
			value.SetUint64(1)
		}
		return n.params.Set(key, value)
	})
}

// PoolInfo is a pool snapshot with its index.
type PoolInfo struct {
	Index uint32
	Pool  *pools.Pool
}

// Pools returns a snapshot of every pool.
func (n *Node) Pools() ([]*PoolInfo, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	count, err := n.farm.PoolCount()
	if err != nil {
		return nil, err
	}
	infos := make([]*PoolInfo, 0, count)
	for i := uint32(0); i < count; i++ {
		pool, err := n.farm.Pool(i)
		if err != nil {
			return nil, err
		}
		infos = append(infos, &PoolInfo{Index: i, Pool: pool})
	}
	return infos, nil
}

// Pool returns the pool at the given index.
func (n *Node) Pool(index uint32) (*pools.Pool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.farm.Pool(index)
}

// AccountSummary is an account's position in one pool at a tick.
type AccountSummary struct {
	Staked       *big.Int
	Pending      *big.Int
	Withdrawable *big.Int
	Locked       *big.Int
	Tick         uint64
}

// Account returns the account's position in the given pool at the current
// tick, or at atTick when non-nil.
func (n *Node) Account(index uint32, account harvest.Address, atTick *uint64) (*AccountSummary, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	tick := n.clock()
	if atTick != nil {
		tick = *atTick
	}

	staked, err := n.farm.StakedBalance(index, account)
	if err != nil {
		return nil, err
	}
	pending, err := n.farm.PendingReward(index, account, tick)
	if err != nil {
		return nil, err
	}
	withdrawable, err := n.farm.Withdrawable(index, account, tick)
	if err != nil {
		return nil, err
	}
	return &AccountSummary{
		Staked:       staked,
		Pending:      pending,
		Withdrawable: withdrawable.Withdrawable,
		Locked:       withdrawable.Locked,
		Tick:         tick,
	}, nil
}
