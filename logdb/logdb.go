// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb persists ledger operation records in sqlite, for after-the-fact
// inspection through the API. It is an observability sink, never consulted by
// the ledger itself.
package logdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/harvestnet/harvest/farm"
	"github.com/harvestnet/harvest/harvest"
)

const operationTableSchema = `
CREATE TABLE IF NOT EXISTS operation (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	pool INTEGER NOT NULL,
	account BLOB,
	amount BLOB,
	tick INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS operationAccountIndex ON operation(account);
CREATE INDEX IF NOT EXISTS operationPoolIndex ON operation(pool);
CREATE INDEX IF NOT EXISTS operationTickIndex ON operation(tick);
`

// LogDB is the operation record store.
type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open the operation db at the given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(operationTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create an operation db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the operation db.
func (db *LogDB) Close() {
	db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// Emit appends the ledger event as an operation record.
// Implements farm.Sink.
func (db *LogDB) Emit(ev *farm.Event) error {
	_, err := db.db.Exec(
		"INSERT INTO operation(kind, pool, account, amount, tick) VALUES (?, ?, ?, ?, ?);",
		string(ev.Kind),
		ev.Pool,
		ev.Account.Bytes(),
		amountValue(ev.Amount),
		ev.Tick,
	)
	return err
}

// FilterOperations returns the records matching the filter.
func (db *LogDB) FilterOperations(ctx context.Context, filter *OperationFilter) ([]*Operation, error) {
	if filter == nil {
		return db.queryOperations(ctx, "SELECT * FROM operation")
	}
	var args []interface{}
	stmt := "SELECT * FROM operation WHERE 1"
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		stmt += " AND kind = ? "
	}
	if filter.Pool != nil {
		args = append(args, *filter.Pool)
		stmt += " AND pool = ? "
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ? "
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND tick >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND tick <= ? "
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryOperations(ctx, stmt, args...)
}

func (db *LogDB) queryOperations(ctx context.Context, stmt string, args ...interface{}) ([]*Operation, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var operations []*Operation
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     int64
			kind    string
			pool    uint32
			account []byte
			amount  []byte
			tick    uint64
		)
		if err := rows.Scan(
			&seq,
			&kind,
			&pool,
			&account,
			&amount,
			&tick,
		); err != nil {
			return nil, err
		}
		operations = append(operations, &Operation{
			Seq:     seq,
			Kind:    farm.Kind(kind),
			Pool:    pool,
			Account: harvest.BytesToAddress(account),
			Amount:  new(big.Int).SetBytes(amount),
			Tick:    tick,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return operations, nil
}

func amountValue(amount *big.Int) []byte {
	if amount == nil {
		return nil
	}
	return amount.Bytes()
}
