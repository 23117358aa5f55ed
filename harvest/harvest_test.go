// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package harvest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Nil(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())
	assert.False(t, addr.IsZero())
	assert.True(t, Address{}.IsZero())

	_, err = ParseAddress("0x123")
	assert.Error(t, err)

	data, err := json.Marshal(addr)
	assert.Nil(t, err)
	var decoded Address
	assert.Nil(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *addr, decoded)
}

func TestBytes32(t *testing.T) {
	b := BytesToBytes32([]byte("value"))
	assert.False(t, b.IsZero())

	parsed, err := ParseBytes32(b.String())
	assert.Nil(t, err)
	assert.Equal(t, b, parsed)
}

func TestBlake2b(t *testing.T) {
	h1 := Blake2b([]byte("a"), []byte("b"))
	h2 := Blake2b([]byte("ab"))
	assert.Equal(t, h2, h1, "hash of concatenated slices")

	h3 := Blake2b([]byte("other"))
	assert.NotEqual(t, h1, h3)
}
