// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config loads and validates the genesis file that seeds the ledger
// on first boot: emission schedule, treasury, initial pools and balances.
package config

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/harvestnet/harvest/harvest"
)

// Genesis is the validated boot configuration.
type Genesis struct {
	Treasury    harvest.Address
	RewardAsset harvest.Address
	Emission    Emission
	Pools       []Pool
	Balances    []Balance
}

// Emission is the global reward schedule.
type Emission struct {
	StartTick uint64
	EndTick   uint64
	Rate      *big.Int // reward units emitted per tick
}

// Pool is an initial pool definition.
type Pool struct {
	Asset        harvest.Address // zero address for the native pool
	Weight       *big.Int
	MinDeposit   *big.Int
	LockDuration uint64
}

// Balance is an initial vault balance, typically the treasury's reward fund.
type Balance struct {
	Account harvest.Address
	Asset   harvest.Address
	Amount  *big.Int
}

type fileGenesis struct {
	Treasury    string        `yaml:"treasury"`
	RewardAsset string        `yaml:"rewardAsset"`
	Emission    fileEmission  `yaml:"emission"`
	Pools       []filePool    `yaml:"pools"`
	Balances    []fileBalance `yaml:"balances"`
}

type fileEmission struct {
	StartTick uint64 `yaml:"startTick"`
	EndTick   uint64 `yaml:"endTick"`
	Rate      string `yaml:"rate"`
}

type filePool struct {
	Asset        string `yaml:"asset"`
	Weight       string `yaml:"weight"`
	MinDeposit   string `yaml:"minDeposit"`
	LockDuration uint64 `yaml:"lockDuration"`
}

type fileBalance struct {
	Account string `yaml:"account"`
	Asset   string `yaml:"asset"`
	Amount  string `yaml:"amount"`
}

// Load reads, parses and validates the genesis file at path.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return Parse(data)
}

// Parse parses and validates genesis yaml.
func Parse(data []byte) (*Genesis, error) {
	var file fileGenesis
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "parse genesis yaml")
	}
	return file.resolve()
}

func (f *fileGenesis) resolve() (*Genesis, error) {
	genesis := &Genesis{}

	treasury, err := parseAddress(f.Treasury)
	if err != nil {
		return nil, errors.Wrap(err, "treasury")
	}
	if treasury.IsZero() {
		return nil, errors.New("treasury: zero address")
	}
	genesis.Treasury = treasury

	if genesis.RewardAsset, err = parseAddress(f.RewardAsset); err != nil {
		return nil, errors.Wrap(err, "rewardAsset")
	}

	if f.Emission.EndTick < f.Emission.StartTick {
		return nil, errors.New("emission: endTick before startTick")
	}
	rate, err := parseAmount(f.Emission.Rate)
	if err != nil {
		return nil, errors.Wrap(err, "emission rate")
	}
	if rate.Sign() <= 0 {
		return nil, errors.New("emission: rate must be positive")
	}
	genesis.Emission = Emission{
		StartTick: f.Emission.StartTick,
		EndTick:   f.Emission.EndTick,
		Rate:      rate,
	}

	if len(f.Pools) == 0 {
		return nil, errors.New("pools: at least one pool required")
	}
	for i, p := range f.Pools {
		pool, err := p.resolve()
		if err != nil {
			return nil, errors.Wrapf(err, "pools[%d]", i)
		}
		if i == int(harvest.NativePoolIndex) {
			if !pool.Asset.IsZero() {
				return nil, errors.Errorf("pools[%d]: first pool must be the native pool", i)
			}
		} else if pool.Asset.IsZero() {
			return nil, errors.Errorf("pools[%d]: zero asset reserved for the native pool", i)
		}
		genesis.Pools = append(genesis.Pools, *pool)
	}

	for i, b := range f.Balances {
		balance, err := b.resolve()
		if err != nil {
			return nil, errors.Wrapf(err, "balances[%d]", i)
		}
		genesis.Balances = append(genesis.Balances, *balance)
	}
	return genesis, nil
}

func (p *filePool) resolve() (*Pool, error) {
	asset, err := parseAddress(p.Asset)
	if err != nil {
		return nil, errors.Wrap(err, "asset")
	}
	weight, err := parseAmount(p.Weight)
	if err != nil {
		return nil, errors.Wrap(err, "weight")
	}
	if weight.Sign() <= 0 {
		return nil, errors.New("weight must be positive")
	}
	minDeposit, err := parseAmount(p.MinDeposit)
	if err != nil {
		return nil, errors.Wrap(err, "minDeposit")
	}
	if minDeposit.Sign() < 0 {
		return nil, errors.New("minDeposit must not be negative")
	}
	return &Pool{
		Asset:        asset,
		Weight:       weight,
		MinDeposit:   minDeposit,
		LockDuration: p.LockDuration,
	}, nil
}

func (b *fileBalance) resolve() (*Balance, error) {
	account, err := parseAddress(b.Account)
	if err != nil {
		return nil, errors.Wrap(err, "account")
	}
	if account.IsZero() {
		return nil, errors.New("account: zero address")
	}
	asset, err := parseAddress(b.Asset)
	if err != nil {
		return nil, errors.Wrap(err, "asset")
	}
	amount, err := parseAmount(b.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "amount")
	}
	if amount.Sign() < 0 {
		return nil, errors.New("amount must not be negative")
	}
	return &Balance{Account: account, Asset: asset, Amount: amount}, nil
}

// parseAddress accepts a 0x-prefixed hex address; the empty string means the
// zero address.
func parseAddress(s string) (harvest.Address, error) {
	if s == "" {
		return harvest.Address{}, nil
	}
	addr, err := harvest.ParseAddress(s)
	if err != nil {
		return harvest.Address{}, err
	}
	return *addr, nil
}

// parseAmount accepts a decimal or 0x-prefixed hex integer; the empty string
// means zero.
func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, errors.Errorf("invalid integer %q", s)
	}
	return v, nil
}
