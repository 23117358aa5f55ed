// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/slots"
)

var (
	slotPools       = harvest.BytesToBytes32([]byte("pools"))
	slotPoolCount   = harvest.BytesToBytes32([]byte("pool-count"))
	slotTotalWeight = harvest.BytesToBytes32([]byte("total-weight"))
)

type Storage struct {
	pools       *slots.Mapping[harvest.Bytes32, Pool]
	count       *slots.Uint256
	totalWeight *slots.Uint256
}

func NewStorage(sctx *slots.Context) *Storage {
	return &Storage{
		pools:       slots.NewMapping[harvest.Bytes32, Pool](sctx, slotPools),
		count:       slots.NewUint256(sctx, slotPoolCount),
		totalWeight: slots.NewUint256(sctx, slotTotalWeight),
	}
}

func indexKey(index uint32) harvest.Bytes32 {
	var key harvest.Bytes32
	binary.BigEndian.PutUint32(key[:], index)
	return key
}

func (s *Storage) getPool(index uint32) (*Pool, error) {
	p, err := s.pools.Get(indexKey(index))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	p.normalize()
	return &p, nil
}

func (s *Storage) setPool(index uint32, entry *Pool) error {
	if err := s.pools.Set(indexKey(index), *entry); err != nil {
		return errors.Wrap(err, "failed to set pool")
	}
	return nil
}

func (s *Storage) getCount() (uint32, error) {
	count, err := s.count.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get pool count")
	}
	return uint32(count.Uint64()), nil
}

func (s *Storage) setCount(count uint32) {
	s.count.Set(new(big.Int).SetUint64(uint64(count)))
}

func (s *Storage) getTotalWeight() (*big.Int, error) {
	weight, err := s.totalWeight.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total weight")
	}
	return weight, nil
}

func (s *Storage) addTotalWeight(delta *big.Int) error {
	return s.totalWeight.Add(delta)
}

func (s *Storage) subTotalWeight(delta *big.Int) error {
	return s.totalWeight.Sub(delta)
}
