// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger stores the per (pool, account) staking records.
// Records are created lazily on first deposit and persist after balances
// return to zero.
package ledger

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/slots"
)

var slotRecords = harvest.BytesToBytes32([]byte("user-records"))

// Service manages user record storage.
type Service struct {
	records *slots.Mapping[harvest.Bytes32, Record]
}

func New(sctx *slots.Context) *Service {
	return &Service{
		records: slots.NewMapping[harvest.Bytes32, Record](sctx, slotRecords),
	}
}

func recordKey(poolIndex uint32, account harvest.Address) harvest.Bytes32 {
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], poolIndex)
	return harvest.Blake2b(idx[:], account.Bytes())
}

// Get returns the record of the given account in the given pool.
// A never-touched record comes back zero valued.
func (s *Service) Get(poolIndex uint32, account harvest.Address) (*Record, error) {
	r, err := s.records.Get(recordKey(poolIndex, account))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user record")
	}
	r.normalize()
	return &r, nil
}

// Set persists the record of the given account in the given pool.
func (s *Service) Set(poolIndex uint32, account harvest.Address, record *Record) error {
	if err := s.records.Set(recordKey(poolIndex, account), *record); err != nil {
		return errors.Wrap(err, "failed to set user record")
	}
	return nil
}
