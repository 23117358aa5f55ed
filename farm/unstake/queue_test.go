// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unstake

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaturedAmount(t *testing.T) {
	q := &Queue{Requests: []Request{
		{big.NewInt(100), 10},
		{big.NewInt(200), 20},
		{big.NewInt(300), 30},
	}}

	sum, n, err := q.MaturedAmount(5)
	assert.Nil(t, err)
	assert.Equal(t, 0, sum.Sign())
	assert.Equal(t, 0, n)

	sum, n, _ = q.MaturedAmount(20)
	assert.Equal(t, big.NewInt(300), sum)
	assert.Equal(t, 2, n)

	// boundary: a request maturing exactly now is withdrawable
	sum, n, _ = q.MaturedAmount(10)
	assert.Equal(t, big.NewInt(100), sum)
	assert.Equal(t, 1, n)

	// the queue itself is untouched
	assert.Len(t, q.Requests, 3)
}

func TestCollect(t *testing.T) {
	q := &Queue{Requests: []Request{
		{big.NewInt(100), 10},
		{big.NewInt(200), 20},
		{big.NewInt(300), 30},
	}}

	sum, err := q.Collect(25)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(300), sum)
	assert.Len(t, q.Requests, 1)
	assert.Equal(t, uint64(30), q.Requests[0].Maturity)

	// nothing matured, nothing removed
	sum, _ = q.Collect(25)
	assert.Equal(t, 0, sum.Sign())
	assert.Len(t, q.Requests, 1)
}

// The front scan stops at the first immature request. When a later request
// carries an earlier maturity, which can happen if the pool's lock duration
// was shortened between requests, the matured amount stays queued behind the
// immature head until the head matures as well.
func TestCollectOrderingHazard(t *testing.T) {
	q := &Queue{Requests: []Request{
		{big.NewInt(100), 50},
		{big.NewInt(200), 20},
	}}

	sum, err := q.Collect(30)
	assert.Nil(t, err)
	assert.Equal(t, 0, sum.Sign(), "matured request is stuck behind the immature head")
	assert.Len(t, q.Requests, 2)

	sum, _ = q.Collect(50)
	assert.Equal(t, big.NewInt(300), sum)
	assert.Len(t, q.Requests, 0)
}

func TestPending(t *testing.T) {
	q := &Queue{Requests: []Request{
		{big.NewInt(1), 10},
		{big.NewInt(2), 99},
	}}
	sum, err := q.Pending()
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(3), sum)
}
