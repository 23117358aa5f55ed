// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package farm implements the multi-pool staking rewards ledger.
//
// Every public operation is atomic: it runs against a state checkpoint and
// any failure, precondition, arithmetic or transfer, reverts the whole
// operation with no partial mutation observable.
package farm

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/harvestnet/harvest/farm/gate"
	"github.com/harvestnet/harvest/farm/ledger"
	"github.com/harvestnet/harvest/farm/pools"
	"github.com/harvestnet/harvest/farm/reverts"
	"github.com/harvestnet/harvest/farm/unstake"
	"github.com/harvestnet/harvest/fixed"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/log"
	"github.com/harvestnet/harvest/metrics"
	"github.com/harvestnet/harvest/params"
	"github.com/harvestnet/harvest/slots"
	"github.com/harvestnet/harvest/state"
)

var (
	logger = log.WithContext("pkg", "farm")

	metricOpCount    = metrics.LazyLoadCounterVec("ledger_op_count", []string{"kind"})
	metricOpReverted = metrics.LazyLoadCounter("ledger_op_reverted_count")
)

// Vault is the asset transfer collaborator.
// Pull moves funds from an account into the ledger, Push the other way
// around. Reward payments come from a treasury whose available balance is
// observable for the claim shortfall rule.
type Vault interface {
	Pull(asset, from harvest.Address, amount *big.Int) error
	Push(asset, to harvest.Address, amount *big.Int) error
	RewardAvailable() (*big.Int, error)
	PushReward(to harvest.Address, amount *big.Int) error
}

// Farm is the staking rewards ledger.
type Farm struct {
	state  *state.State
	params *params.Params
	vault  Vault
	gate   *gate.Gate
	sink   Sink

	pools  *pools.Service
	ledger *ledger.Service
	queue  *unstake.Service
}

// New create a new instance at the given storage address.
func New(addr harvest.Address, st *state.State, p *params.Params, vault Vault, sink Sink) *Farm {
	sctx := slots.NewContext(addr, st)
	if sink == nil {
		sink = NoopSink{}
	}
	return &Farm{
		state:  st,
		params: p,
		vault:  vault,
		gate:   gate.New(p),
		sink:   sink,

		pools:  pools.New(sctx),
		ledger: ledger.New(sctx),
		queue:  unstake.New(sctx),
	}
}

//
// Getters - no state change
//

// Pool returns the pool at the given index.
func (f *Farm) Pool(index uint32) (*pools.Pool, error) {
	return f.pools.Get(index)
}

// PoolCount returns the number of registered pools.
func (f *Farm) PoolCount() (uint32, error) {
	return f.pools.Count()
}

// TotalWeight returns the sum of all pool weights.
func (f *Farm) TotalWeight() (*big.Int, error) {
	return f.pools.TotalWeight()
}

// StakedBalance returns the account's current principal in the given pool.
func (f *Farm) StakedBalance(index uint32, account harvest.Address) (*big.Int, error) {
	record, err := f.ledger.Get(index, account)
	if err != nil {
		return nil, err
	}
	return record.Staked, nil
}

// PendingReward returns the reward the account could claim at the given tick.
// It dry-runs the same settlement a mutating call would perform, then reverts
// every write, so the result is exactly what Claim at that tick would pay
// before the treasury shortfall rule.
func (f *Farm) PendingReward(index uint32, account harvest.Address, atTick uint64) (*big.Int, error) {
	checkpoint := f.state.NewCheckpoint()
	defer f.state.RevertTo(checkpoint)

	pool, err := f.pools.Get(index)
	if err != nil {
		return nil, err
	}
	record, err := f.settle(index, pool, account, atTick, nil)
	if err != nil {
		return nil, err
	}
	return record.Pending, nil
}

// WithdrawableSummary describes an account's unstake queue at a tick.
type WithdrawableSummary struct {
	Withdrawable *big.Int // matured, transferable now
	Locked       *big.Int // still waiting for maturity
}

// Withdrawable returns the matured and still-locked unstaked amounts of the
// account in the given pool at the given tick.
func (f *Farm) Withdrawable(index uint32, account harvest.Address, atTick uint64) (*WithdrawableSummary, error) {
	if _, err := f.pools.Get(index); err != nil {
		return nil, err
	}
	queue, err := f.queue.Get(index, account)
	if err != nil {
		return nil, err
	}
	matured, _, err := queue.MaturedAmount(atTick)
	if err != nil {
		return nil, err
	}
	total, err := queue.Pending()
	if err != nil {
		return nil, err
	}
	locked, err := fixed.Sub(total, matured)
	if err != nil {
		return nil, err
	}
	return &WithdrawableSummary{Withdrawable: matured, Locked: locked}, nil
}

//
// Setters - state change
//

// AddPool appends a new pool. Every existing pool is brought current first,
// because the new weight shifts the emission split from this tick on.
func (f *Farm) AddPool(asset harvest.Address, weight, minDeposit *big.Int, lockDuration, nowTick uint64) (uint32, error) {
	logger.Debug("adding pool", "asset", asset, "weight", weight)

	var index uint32
	err := f.runOperation(func() (*Event, error) {
		if err := f.refreshAll(nowTick); err != nil {
			return nil, err
		}
		var err error
		if index, err = f.pools.Add(asset, weight, minDeposit, lockDuration, nowTick); err != nil {
			logger.Info("add pool failed", "asset", asset, "error", err)
			return nil, err
		}
		return &Event{Kind: KindAddPool, Pool: index, Amount: new(big.Int), Tick: nowTick}, nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("added pool", "index", index, "asset", asset)
	return index, nil
}

// SetPoolWeight changes a pool's weight after bringing every pool current.
func (f *Farm) SetPoolWeight(index uint32, weight *big.Int, nowTick uint64) error {
	logger.Debug("setting pool weight", "index", index, "weight", weight)

	return f.runOperation(func() (*Event, error) {
		if err := f.refreshAll(nowTick); err != nil {
			return nil, err
		}
		if err := f.pools.SetWeight(index, weight); err != nil {
			logger.Info("set pool weight failed", "index", index, "error", err)
			return nil, err
		}
		return nil, nil
	})
}

// Deposit stakes amount of a token pool's asset for the account.
// The funds are pulled from the account before the ledger is touched; a
// failed pull aborts the operation.
func (f *Farm) Deposit(index uint32, account harvest.Address, amount *big.Int, nowTick uint64) error {
	logger.Debug("deposit", "pool", index, "account", account, "amount", amount)

	return f.runOperation(func() (*Event, error) {
		ev, err := f.deposit(index, account, amount, nowTick, false)
		if err != nil {
			logger.Info("deposit failed", "pool", index, "account", account, "error", err)
			return nil, err
		}
		logger.Info("deposited", "pool", index, "account", account, "amount", amount)
		return ev, nil
	})
}

// DepositNative stakes amount of the native asset for the account, into the
// native pool at index 0.
func (f *Farm) DepositNative(account harvest.Address, amount *big.Int, nowTick uint64) error {
	logger.Debug("native deposit", "account", account, "amount", amount)

	return f.runOperation(func() (*Event, error) {
		ev, err := f.deposit(harvest.NativePoolIndex, account, amount, nowTick, true)
		if err != nil {
			logger.Info("native deposit failed", "account", account, "error", err)
			return nil, err
		}
		logger.Info("deposited native", "account", account, "amount", amount)
		return ev, nil
	})
}

func (f *Farm) deposit(index uint32, account harvest.Address, amount *big.Int, nowTick uint64, native bool) (*Event, error) {
	if err := f.requireLive(); err != nil {
		return nil, err
	}
	pool, err := f.pools.Get(index)
	if err != nil {
		return nil, err
	}
	if pool.IsNative() != native {
		if native {
			return nil, reverts.New("pool 0 is not the native pool")
		}
		return nil, reverts.New("native pool only accepts native deposits")
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, reverts.New("invalid amount")
	}
	// documented asymmetry: the native pool admits the exact minimum,
	// token pools require strictly more
	if native {
		if amount.Cmp(pool.MinDeposit) < 0 {
			return nil, reverts.New("deposit below minimum")
		}
	} else {
		if amount.Cmp(pool.MinDeposit) <= 0 {
			return nil, reverts.New("deposit below minimum")
		}
	}

	if err := f.vault.Pull(pool.Asset, account, amount); err != nil {
		return nil, errors.Wrap(err, "pull stake")
	}

	if _, err := f.settle(index, pool, account, nowTick, func(staked *big.Int) (*big.Int, error) {
		return fixed.Add(staked, amount)
	}); err != nil {
		return nil, err
	}
	if pool.TotalStaked, err = fixed.Add(pool.TotalStaked, amount); err != nil {
		return nil, err
	}
	if err := f.pools.Update(index, pool); err != nil {
		return nil, err
	}

	return &Event{Kind: KindDeposit, Pool: index, Account: account, Amount: amount, Tick: nowTick}, nil
}

// RequestUnstake removes amount from the account's productive stake and
// queues it for withdrawal after the pool's lock duration. The reward for
// the stake held before this operation is settled first.
func (f *Farm) RequestUnstake(index uint32, account harvest.Address, amount *big.Int, nowTick uint64) error {
	logger.Debug("request unstake", "pool", index, "account", account, "amount", amount)

	return f.runOperation(func() (*Event, error) {
		if err := f.requireLive(); err != nil {
			return nil, err
		}
		if err := f.requireWithdrawLive(); err != nil {
			return nil, err
		}
		pool, err := f.pools.Get(index)
		if err != nil {
			return nil, err
		}
		if amount == nil || amount.Sign() <= 0 {
			return nil, reverts.New("invalid amount")
		}

		record, err := f.ledger.Get(index, account)
		if err != nil {
			return nil, err
		}
		if record.Staked.Cmp(amount) < 0 {
			logger.Info("request unstake failed", "pool", index, "account", account, "error", "insufficient staked balance")
			return nil, reverts.New("insufficient staked balance")
		}

		if _, err := f.settle(index, pool, account, nowTick, func(staked *big.Int) (*big.Int, error) {
			return fixed.Sub(staked, amount)
		}); err != nil {
			return nil, err
		}
		if pool.TotalStaked, err = fixed.Sub(pool.TotalStaked, amount); err != nil {
			return nil, err
		}
		if err := f.pools.Update(index, pool); err != nil {
			return nil, err
		}

		if err := f.queue.Push(index, account, amount, nowTick+pool.LockDuration); err != nil {
			return nil, err
		}

		logger.Info("unstake requested", "pool", index, "account", account, "amount", amount, "maturity", nowTick+pool.LockDuration)
		return &Event{Kind: KindRequestUnstake, Pool: index, Account: account, Amount: amount, Tick: nowTick}, nil
	})
}

// Withdraw transfers the matured prefix of the account's unstake queue back
// to the account. Withdrawing zero is valid and still emits a record.
func (f *Farm) Withdraw(index uint32, account harvest.Address, nowTick uint64) (*big.Int, error) {
	logger.Debug("withdraw", "pool", index, "account", account)

	var amount *big.Int
	err := f.runOperation(func() (*Event, error) {
		if err := f.requireLive(); err != nil {
			return nil, err
		}
		if err := f.requireWithdrawLive(); err != nil {
			return nil, err
		}
		pool, err := f.pools.Get(index)
		if err != nil {
			return nil, err
		}

		queue, err := f.queue.Get(index, account)
		if err != nil {
			return nil, err
		}
		if amount, err = queue.Collect(nowTick); err != nil {
			return nil, err
		}
		if err := f.queue.Set(index, account, queue); err != nil {
			return nil, err
		}

		if err := f.vault.Push(pool.Asset, account, amount); err != nil {
			logger.Info("withdraw failed", "pool", index, "account", account, "error", err)
			return nil, errors.Wrap(err, "push stake")
		}

		logger.Info("withdrew", "pool", index, "account", account, "amount", amount)
		return &Event{Kind: KindWithdraw, Pool: index, Account: account, Amount: amount, Tick: nowTick}, nil
	})
	if err != nil {
		return nil, err
	}
	return amount, nil
}

// Claim pays out the account's pending reward in the given pool.
//
// The payout is best-effort: when the treasury holds less than the amount
// owed, the available balance is paid instead of failing the claim. The
// pending balance is zeroed either way; a truncation shortfall must never
// make claims permanently fail.
func (f *Farm) Claim(index uint32, account harvest.Address, nowTick uint64) (*big.Int, error) {
	logger.Debug("claim", "pool", index, "account", account)

	var paid *big.Int
	err := f.runOperation(func() (*Event, error) {
		if err := f.requireLive(); err != nil {
			return nil, err
		}
		if err := f.requireClaimLive(); err != nil {
			return nil, err
		}
		pool, err := f.pools.Get(index)
		if err != nil {
			return nil, err
		}

		record, err := f.settle(index, pool, account, nowTick, nil)
		if err != nil {
			return nil, err
		}
		if err := f.pools.Update(index, pool); err != nil {
			return nil, err
		}

		owed := record.Pending
		available, err := f.vault.RewardAvailable()
		if err != nil {
			return nil, err
		}
		paid = owed
		if available.Cmp(owed) < 0 {
			logger.Warn("treasury shortfall", "pool", index, "owed", owed, "available", available)
			paid = available
		}

		record.Pending = new(big.Int)
		if err := f.ledger.Set(index, account, record); err != nil {
			return nil, err
		}

		if err := f.vault.PushReward(account, paid); err != nil {
			logger.Info("claim failed", "pool", index, "account", account, "error", err)
			return nil, errors.Wrap(err, "push reward")
		}

		logger.Info("claimed", "pool", index, "account", account, "amount", paid)
		return &Event{Kind: KindClaim, Pool: index, Account: account, Amount: paid, Tick: nowTick}, nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

//
// internals
//

// settle folds the newly accrued reward into the record's pending balance,
// applies the stake mutation, then rebases the settlement basis against the
// now-current accumulator. The caller persists the refreshed pool.
func (f *Farm) settle(index uint32, pool *pools.Pool, account harvest.Address, nowTick uint64, apply func(staked *big.Int) (*big.Int, error)) (*ledger.Record, error) {
	if _, err := f.refreshPool(pool, nowTick); err != nil {
		return nil, err
	}

	record, err := f.ledger.Get(index, account)
	if err != nil {
		return nil, err
	}

	if record.Staked.Sign() > 0 {
		accrued, err := record.Accrued(pool.AccPerShare)
		if err != nil {
			return nil, err
		}
		newlyPending, err := fixed.Sub(accrued, record.Basis)
		if err != nil {
			// the accumulator is monotonic, so accrued < basis means the
			// bookkeeping is broken, not that the caller did anything wrong
			return nil, errors.Wrap(err, "settlement basis exceeds accrued reward")
		}
		if record.Pending, err = fixed.Add(record.Pending, newlyPending); err != nil {
			return nil, err
		}
	}

	if apply != nil {
		if record.Staked, err = apply(record.Staked); err != nil {
			return nil, err
		}
	}

	if record.Basis, err = record.Accrued(pool.AccPerShare); err != nil {
		return nil, err
	}

	if err := f.ledger.Set(index, account, record); err != nil {
		return nil, err
	}
	return record, nil
}

// runOperation executes op against a state checkpoint. On any error the
// checkpoint is reverted, so no partial mutation survives. The event is
// emitted only after the operation succeeded; a sink failure is an
// observability problem, not a ledger one.
func (f *Farm) runOperation(op func() (*Event, error)) error {
	checkpoint := f.state.NewCheckpoint()
	ev, err := op()
	if err != nil {
		f.state.RevertTo(checkpoint)
		if !reverts.IsRevertErr(err) {
			// arithmetic or storage failure, should be unreachable under
			// correct configuration
			logger.Error("operation aborted", "error", err)
		}
		metricOpReverted().Add(1)
		return err
	}
	if ev != nil {
		metricOpCount().AddWithLabel(1, map[string]string{"kind": string(ev.Kind)})
		if err := f.sink.Emit(ev); err != nil {
			logger.Warn("failed to emit operation record", "kind", ev.Kind, "error", err)
		}
	}
	return nil
}

func (f *Farm) requireLive() error {
	paused, err := f.gate.Paused()
	if err != nil {
		return err
	}
	if paused {
		return reverts.New("operations paused")
	}
	return nil
}

func (f *Farm) requireWithdrawLive() error {
	paused, err := f.gate.WithdrawPaused()
	if err != nil {
		return err
	}
	if paused {
		return reverts.New("withdrawals paused")
	}
	return nil
}

func (f *Farm) requireClaimLive() error {
	paused, err := f.gate.ClaimPaused()
	if err != nil {
		return err
	}
	if paused {
		return reverts.New("claims paused")
	}
	return nil
}
