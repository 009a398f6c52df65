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

package hashtable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClearableHashMapIncrement(t *testing.T) {
	ht := NewClearableHashMap[uint64](0, Int64Hash)
	require.Equal(t, uint64(1), ht.Increment(10))
	require.Equal(t, uint64(2), ht.Increment(10))
	require.Equal(t, uint64(1), ht.Increment(0))
	require.Equal(t, uint64(2), ht.Cardinality())
	require.Equal(t, uint64(2), ht.Find(10))
	require.Equal(t, uint64(0), ht.Find(11))
}

func TestClearableHashMapResize(t *testing.T) {
	ht := NewClearableHashMap[uint64](2, Int64Hash)
	const n = 10000
	for i := uint64(0); i < n; i++ {
		require.True(t, ht.Insert(i))
	}
	for i := uint64(0); i < n; i++ {
		require.False(t, ht.Insert(i))
	}
	require.Equal(t, uint64(n), ht.Cardinality())
	require.GreaterOrEqual(t, ht.BucketCnt(), uint64(2*n))
}

func TestClearableHashMapClear(t *testing.T) {
	ht := NewClearableHashMap[string](4, StringHash)
	for round := 0; round < 100; round++ {
		ht.Clear()
		require.Equal(t, uint64(0), ht.Cardinality())
		require.Equal(t, uint64(0), ht.Find("a"))
		require.Equal(t, uint64(1), ht.Increment("a"))
		require.Equal(t, uint64(1), ht.Increment("b"))
		require.Equal(t, uint64(2), ht.Increment("a"))
		require.Equal(t, uint64(2), ht.Cardinality())
	}
	buckets := ht.BucketCnt()
	ht.Clear()
	require.Equal(t, buckets, ht.BucketCnt())
}

func TestClearableHashMapVersionWrap(t *testing.T) {
	ht := NewClearableHashMap[Key](0, FixedKeyHash)
	ht.Insert(Key{1})
	ht.version = math.MaxUint32
	ht.bucketData[0].version = math.MaxUint32
	ht.Clear()
	require.Equal(t, uint32(1), ht.version)
	for i := range ht.bucketData {
		require.Equal(t, uint32(0), ht.bucketData[i].version)
	}
	require.True(t, ht.Insert(Key{1}))
}

func TestKeyHashes(t *testing.T) {
	a := Key{1, 2, 3}
	b := Key{1, 2, 4}
	require.NotEqual(t, FixedKeyHash(a), FixedKeyHash(b))
	require.Equal(t, uint64(0x030201), DigestKeyHash(a))
	require.Equal(t, Int64Hash(7), Int64Hash(7))
	require.Equal(t, StringHash("abc"), StringHash("abc"))
}
