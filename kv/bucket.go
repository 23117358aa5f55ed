// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket provides logical bucket for kv store, by prefixing all keys.
type Bucket string

// NewGetPutter creates a bucket get-putter from the source get-putter.
func (b Bucket) NewGetPutter(src GetPutter) GetPutter {
	return &bucketGetPutter{string(b), src}
}

type bucketGetPutter struct {
	prefix string
	src    GetPutter
}

func (g *bucketGetPutter) key(key []byte) []byte {
	return append([]byte(g.prefix), key...)
}

func (g *bucketGetPutter) Get(key []byte) ([]byte, error) {
	return g.src.Get(g.key(key))
}

func (g *bucketGetPutter) Has(key []byte) (bool, error) {
	return g.src.Has(g.key(key))
}

func (g *bucketGetPutter) IsNotFound(err error) bool {
	return g.src.IsNotFound(err)
}

func (g *bucketGetPutter) Put(key, value []byte) error {
	return g.src.Put(g.key(key), value)
}

func (g *bucketGetPutter) Delete(key []byte) error {
	return g.src.Delete(g.key(key))
}

func (g *bucketGetPutter) NewBatch() Batch {
	return &bucketBatch{g.prefix, g.src.NewBatch()}
}

func (g *bucketGetPutter) NewIterator(r Range) Iterator {
	start := append([]byte(g.prefix), r.Start...)
	var limit []byte
	if len(r.Limit) == 0 {
		limit = util.BytesPrefix([]byte(g.prefix)).Limit
	} else {
		limit = append([]byte(g.prefix), r.Limit...)
	}
	return &bucketIterator{len(g.prefix), g.src.NewIterator(Range{Start: start, Limit: limit})}
}

type bucketBatch struct {
	prefix string
	batch  Batch
}

func (b *bucketBatch) Put(key, value []byte) error {
	return b.batch.Put(append([]byte(b.prefix), key...), value)
}

func (b *bucketBatch) Delete(key []byte) error {
	return b.batch.Delete(append([]byte(b.prefix), key...))
}

func (b *bucketBatch) Len() int { return b.batch.Len() }

func (b *bucketBatch) Write() error { return b.batch.Write() }

type bucketIterator struct {
	prefixLen int
	iter      Iterator
}

func (i *bucketIterator) Next() bool { return i.iter.Next() }

func (i *bucketIterator) Release() { i.iter.Release() }

func (i *bucketIterator) Error() error { return i.iter.Error() }

// Key returns the key with the bucket prefix stripped.
func (i *bucketIterator) Key() []byte { return i.iter.Key()[i.prefixLen:] }

func (i *bucketIterator) Value() []byte { return i.iter.Value() }
