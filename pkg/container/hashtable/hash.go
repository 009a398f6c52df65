// Copyright 2021 Matrix Origin
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

package hashtable

import (
	"encoding/binary"
	"math/bits"
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

var hashkey [2]uint64

func init() {
	hashkey[0] = rand.Uint64()
	hashkey[1] = rand.Uint64()
}

const (
	m1 = 0xa0761d6478bd642f
	m2 = 0xe7037ed1a0b428db
	m5 = 0x1d8e4e27c47d124f
)

func mix(a, b uint64) uint64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return hi ^ lo
}

func wyhash64(x uint64) uint64 {
	return mix(m5^8, mix(x^m2, x^hashkey[1]^hashkey[0]^m1))
}

// Int64Hash hashes a numeric key given as its bit pattern.
func Int64Hash(x uint64) uint64 {
	return wyhash64(x)
}

// StringHash hashes a text key.
func StringHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// FixedKeyHash spreads a packed Key over the buckets.
func FixedKeyHash(k Key) uint64 {
	return xxhash.Sum64(k[:])
}

// DigestKeyHash places a Key that is already a uniform digest: its low
// 64 bits are used as is.
func DigestKeyHash(k Key) uint64 {
	return binary.LittleEndian.Uint64(k[:8])
}
