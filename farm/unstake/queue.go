// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unstake

import (
	"math/big"

	"github.com/harvestnet/harvest/fixed"
)

// Request is one pending withdrawal. The amount has already left the pool's
// productive stake; it becomes withdrawable at the maturity tick.
type Request struct {
	Amount   *big.Int
	Maturity uint64
}

// Queue holds an account's pending withdrawals in creation order.
//
// The matured-prefix scan below assumes maturities are non-decreasing in
// insertion order. That holds while a pool's lock duration never shrinks;
// shortening it between requests can leave a matured request stuck behind an
// immature one until the latter matures too. Known ordering hazard, kept as
// is. See Collect.
type Queue struct {
	Requests []Request
}

// MaturedAmount sums the request prefix with maturity <= now, without
// modifying the queue. It returns the sum and the prefix length.
func (q *Queue) MaturedAmount(now uint64) (*big.Int, int, error) {
	sum := new(big.Int)
	n := 0
	for _, req := range q.Requests {
		if req.Maturity > now {
			break
		}
		var err error
		if sum, err = fixed.Add(sum, req.Amount); err != nil {
			return nil, 0, err
		}
		n++
	}
	return sum, n, nil
}

// Collect removes the matured prefix and returns its summed amount.
func (q *Queue) Collect(now uint64) (*big.Int, error) {
	sum, n, err := q.MaturedAmount(now)
	if err != nil {
		return nil, err
	}
	q.Requests = q.Requests[n:]
	return sum, nil
}

// Pending sums every queued request regardless of maturity.
func (q *Queue) Pending() (*big.Int, error) {
	sum := new(big.Int)
	for _, req := range q.Requests {
		var err error
		if sum, err = fixed.Add(sum, req.Amount); err != nil {
			return nil, err
		}
	}
	return sum, nil
}
