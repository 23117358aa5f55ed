// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/harvestnet/harvest/harvest"
	"github.com/harvestnet/harvest/kv"
	"github.com/harvestnet/harvest/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the ledger's world state.
// All reads and writes go through a stacked map, so that any range of
// mutations can be reverted to a checkpoint without touching the backing
// store. Nothing reaches the backing store until Commit.
type State struct {
	store kv.GetPutter
	sm    *stackedmap.StackedMap
}

// New create state object backed by the given store.
func New(store kv.GetPutter) *State {
	state := State{store: store}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.storeGetter(key)
	})
	// base level, so writes are legal without an explicit checkpoint
	state.sm.Push()
	return &state
}

// storeGetter implements stackedmap.MapGetter.
func (s *State) storeGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case storageKey:
		data, err := s.store.Get(storeKeyBuf(k))
		if err != nil {
			if s.store.IsNotFound(err) {
				return rlp.RawValue(nil), true, nil
			}
			return nil, false, err
		}
		return rlp.RawValue(data), true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr harvest.Address, key harvest.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr harvest.Address, key harvest.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr harvest.Address, key harvest.Bytes32) (harvest.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return harvest.Bytes32{}, err
	}
	if len(raw) == 0 {
		return harvest.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return harvest.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return harvest.Blake2b(raw), nil
	}
	return harvest.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr harvest.Address, key, value harvest.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr harvest.Address, key harvest.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr harvest.Address, key harvest.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// GetStructuredStorage get and decode storage value to a structured value.
// If val implements StorageDecoder, its Decode method is used, otherwise rlp.
func (s *State) GetStructuredStorage(addr harvest.Address, key harvest.Bytes32, val any) error {
	return s.DecodeStorage(addr, key, func(raw []byte) error {
		if dec, ok := val.(StorageDecoder); ok {
			return dec.Decode(raw)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, val)
	})
}

// SetStructuredStorage encode a structured value and set it to storage.
// If val implements StorageEncoder, its Encode method is used, otherwise rlp.
func (s *State) SetStructuredStorage(addr harvest.Address, key harvest.Bytes32, val any) error {
	return s.EncodeStorage(addr, key, func() ([]byte, error) {
		if enc, ok := val.(StorageEncoder); ok {
			return enc.Encode()
		}
		return rlp.EncodeToBytes(val)
	})
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit writes all journaled changes into the backing store and resets
// the journal, so the state keeps reading its own committed values.
// Later journal entries win for the same key.
func (s *State) Commit() error {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k, v any) bool {
		if key, ok := k.(storageKey); ok {
			changes[key] = v.(rlp.RawValue)
		}
		return true
	})

	batch := s.store.NewBatch()
	for key, raw := range changes {
		if len(raw) == 0 {
			if err := batch.Delete(storeKeyBuf(key)); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := batch.Put(storeKeyBuf(key), raw); err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		return s.storeGetter(key)
	})
	s.sm.Push()
	return nil
}

type storageKey struct {
	addr harvest.Address
	key  harvest.Bytes32
}

func storeKeyBuf(k storageKey) []byte {
	buf := make([]byte, 0, harvest.AddressLength+32)
	buf = append(buf, k.addr.Bytes()...)
	buf = append(buf, k.key.Bytes()...)
	return buf
}
