// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import "github.com/harvestnet/harvest/node"

// Summary is the JSON shape of an account's position in one pool.
type Summary struct {
	Staked       string `json:"staked"`
	Pending      string `json:"pending"`
	Withdrawable string `json:"withdrawable"`
	Locked       string `json:"locked"`
	Tick         uint64 `json:"tick"`
}

func convertSummary(s *node.AccountSummary) *Summary {
	return &Summary{
		Staked:       s.Staked.String(),
		Pending:      s.Pending.String(),
		Withdrawable: s.Withdrawable.String(),
		Locked:       s.Locked.String(),
		Tick:         s.Tick,
	}
}
