// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package unstake stores the per (pool, account) withdrawal queues.
package unstake

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/slots"
)

var slotQueues = harvest.BytesToBytes32([]byte("unstake-queues"))

// Service manages unstake queue storage.
type Service struct {
	queues *slots.Mapping[harvest.Bytes32, Queue]
}

func New(sctx *slots.Context) *Service {
	return &Service{
		queues: slots.NewMapping[harvest.Bytes32, Queue](sctx, slotQueues),
	}
}

func queueKey(poolIndex uint32, account harvest.Address) harvest.Bytes32 {
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], poolIndex)
	return harvest.Blake2b(idx[:], account.Bytes())
}

// Get returns the queue of the given account in the given pool.
func (s *Service) Get(poolIndex uint32, account harvest.Address) (*Queue, error) {
	q, err := s.queues.Get(queueKey(poolIndex, account))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get unstake queue")
	}
	return &q, nil
}

// Set persists the queue of the given account in the given pool.
func (s *Service) Set(poolIndex uint32, account harvest.Address, queue *Queue) error {
	if err := s.queues.Set(queueKey(poolIndex, account), *queue); err != nil {
		return errors.Wrap(err, "failed to set unstake queue")
	}
	return nil
}

// Push appends a request with the given amount and maturity.
func (s *Service) Push(poolIndex uint32, account harvest.Address, amount *big.Int, maturity uint64) error {
	q, err := s.Get(poolIndex, account)
	if err != nil {
		return err
	}
	q.Requests = append(q.Requests, Request{Amount: amount, Maturity: maturity})
	return s.Set(poolIndex, account, q)
}
