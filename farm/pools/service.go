// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"math/big"

	"github.com/harvestnet/harvest/farm/reverts"
	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/slots"
)

// Service manages the append-only pool registry and the global weight total.
type Service struct {
	storage *Storage
}

func New(sctx *slots.Context) *Service {
	return &Service{storage: NewStorage(sctx)}
}

// Add appends a new pool and returns its index.
// The native pool (zero asset) may only be the first pool added.
func (s *Service) Add(asset harvest.Address, weight, minDeposit *big.Int, lockDuration, nowTick uint64) (uint32, error) {
	if weight == nil || weight.Sign() <= 0 {
		return 0, reverts.New("pool weight must be positive")
	}

	count, err := s.storage.getCount()
	if err != nil {
		return 0, err
	}
	if asset.IsZero() && count != harvest.NativePoolIndex {
		return 0, reverts.New("native pool must occupy index 0")
	}

	entry := &Pool{
		Asset:        asset,
		Weight:       weight,
		LastTick:     nowTick,
		AccPerShare:  new(big.Int),
		TotalStaked:  new(big.Int),
		MinDeposit:   minDeposit,
		LockDuration: lockDuration,
	}
	entry.normalize()

	if err := s.storage.setPool(count, entry); err != nil {
		return 0, err
	}
	s.storage.setCount(count + 1)

	if err := s.storage.addTotalWeight(weight); err != nil {
		return 0, err
	}
	return count, nil
}

// Get returns the pool at the given index.
func (s *Service) Get(index uint32) (*Pool, error) {
	count, err := s.storage.getCount()
	if err != nil {
		return nil, err
	}
	if index >= count {
		return nil, reverts.Errorf("pool %d does not exist", index)
	}
	return s.storage.getPool(index)
}

// Update persists a mutated pool entry.
func (s *Service) Update(index uint32, entry *Pool) error {
	return s.storage.setPool(index, entry)
}

// Count returns the number of registered pools.
func (s *Service) Count() (uint32, error) {
	return s.storage.getCount()
}

// TotalWeight returns the sum of all pool weights.
func (s *Service) TotalWeight() (*big.Int, error) {
	return s.storage.getTotalWeight()
}

// SetWeight changes the weight of a pool, keeping the global total in sync.
// The caller must bring every pool's accumulator current first, since the
// change shifts the emission split between pools.
func (s *Service) SetWeight(index uint32, weight *big.Int) error {
	if weight == nil || weight.Sign() <= 0 {
		return reverts.New("pool weight must be positive")
	}
	entry, err := s.Get(index)
	if err != nil {
		return err
	}
	if err := s.storage.subTotalWeight(entry.Weight); err != nil {
		return err
	}
	if err := s.storage.addTotalWeight(weight); err != nil {
		return err
	}
	entry.Weight = weight
	return s.storage.setPool(index, entry)
}
