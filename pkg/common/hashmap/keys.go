// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashmap

import (
	"context"
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/hashtable"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
)

// KeyTier is how element tuples become keys.
type KeyTier uint8

const (
	// FixedKeys packs the raw element bytes and a null bitmap into the key.
	FixedKeys KeyTier = iota
	// HashedKeys uses a 128-bit digest of the structural encoding.
	HashedKeys
)

func (t KeyTier) String() string {
	if t == FixedKeys {
		return "fixed"
	}
	return "hashed"
}

// fixedKeyLimit is the room available for packed keys.
var fixedKeyLimit = len(hashtable.Key{})

// KeyEncoder turns position p of N element stores into one Key. The
// stores are zipped: they share the row offsets of their arrays.
type KeyEncoder struct {
	tier    KeyTier
	offsets []uint64
	stores  []*vector.Vector

	// fixed keys
	widths      []int
	raw         [][]byte
	bitmapBytes int

	// hashed keys
	packer *types.Packer
	hasher *xxh3.Hasher
}

// NewKeyEncoder validates that arrays are flat array columns of identical
// shape and selects the key tier once for the whole call.
func NewKeyEncoder(ctx context.Context, fn string, arrays []*vector.Vector, forceHashed bool) (*KeyEncoder, error) {
	if len(arrays) == 0 {
		return nil, moerr.NewWrongArgCount(ctx, fn, "at least 1", 0)
	}
	enc := &KeyEncoder{
		offsets: arrays[0].GetArrayOffsets(),
		stores:  make([]*vector.Vector, len(arrays)),
	}
	for i, arr := range arrays {
		if arr.IsConst() || !arr.GetType().IsArray() {
			return nil, moerr.NewInternalError(ctx, "key encoder needs flat arrays, argument %d is %s", i, arr.GetType().String())
		}
		if !sameOffsets(enc.offsets, arr.GetArrayOffsets()) {
			return nil, moerr.NewArraySizeNotMatch(ctx, fn)
		}
		enc.stores[i] = arr.GetArrayElements()
	}

	if !forceHashed && enc.fitsFixed() {
		enc.tier = FixedKeys
		enc.widths = make([]int, len(enc.stores))
		enc.raw = make([][]byte, len(enc.stores))
		for i, s := range enc.stores {
			enc.widths[i] = s.GetType().TypeSize()
			enc.raw[i] = s.UnsafeGetRawData()
		}
	} else {
		enc.tier = HashedKeys
		enc.bitmapBytes = 0
		enc.packer = types.NewPacker()
		enc.hasher = xxh3.New()
	}
	return enc, nil
}

func sameOffsets(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fitsFixed decides from the static types only, never from the data.
func (enc *KeyEncoder) fitsFixed() bool {
	total := 0
	nullable := false
	for _, s := range enc.stores {
		typ := s.GetType()
		if !typ.IsFixedLen() {
			return false
		}
		total += typ.TypeSize()
		nullable = nullable || typ.Nullable
	}
	if nullable {
		enc.bitmapBytes = (len(enc.stores) + 7) / 8
	}
	return total+enc.bitmapBytes <= fixedKeyLimit
}

func (enc *KeyEncoder) Tier() KeyTier {
	return enc.tier
}

// Offsets returns the row ends shared by every input.
func (enc *KeyEncoder) Offsets() []uint64 {
	return enc.offsets
}

// Key encodes position pos of every store.
func (enc *KeyEncoder) Key(pos uint64) hashtable.Key {
	if enc.tier == FixedKeys {
		return enc.fixedKey(pos)
	}
	return enc.hashedKey(pos)
}

// fixedKey lays the element bytes out in argument order. The last
// bitmapBytes bytes hold bit i set iff store i is null at pos. The
// value bytes of a null element are left zero.
func (enc *KeyEncoder) fixedKey(pos uint64) hashtable.Key {
	var key hashtable.Key
	off := 0
	bitmapStart := len(key) - enc.bitmapBytes
	for i, s := range enc.stores {
		w := enc.widths[i]
		if enc.bitmapBytes > 0 && s.GetNulls().Contains(pos) {
			key[bitmapStart+i/8] |= 1 << (i % 8)
		} else {
			copy(key[off:off+w], enc.raw[i][int(pos)*w:(int(pos)+1)*w])
		}
		off += w
	}
	return key
}

// hashedKey digests the structural encoding of each element in argument
// order, so swapping two inputs changes the key.
func (enc *KeyEncoder) hashedKey(pos uint64) hashtable.Key {
	enc.hasher.Reset()
	for _, s := range enc.stores {
		enc.packer.Reset()
		s.PackAt(enc.packer, int(pos))
		_, _ = enc.hasher.Write(enc.packer.GetBuf())
	}
	sum := enc.hasher.Sum128()
	var key hashtable.Key
	binary.LittleEndian.PutUint64(key[:8], sum.Lo)
	binary.LittleEndian.PutUint64(key[8:], sum.Hi)
	return key
}

// NewKeyMap returns a scratch map whose bucket placement suits the tier.
func (enc *KeyEncoder) NewKeyMap(sizeDegree uint8) *hashtable.ClearableHashMap[hashtable.Key] {
	if enc.tier == FixedKeys {
		return hashtable.NewClearableHashMap[hashtable.Key](sizeDegree, hashtable.FixedKeyHash)
	}
	return hashtable.NewClearableHashMap[hashtable.Key](sizeDegree, hashtable.DigestKeyHash)
}
