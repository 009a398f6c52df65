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

// ClearableHashMapCell is live iff its version equals the table version.
type ClearableHashMapCell[K comparable] struct {
	version uint32
	Key     K
	Mapped  uint64
}

// ClearableHashMap is an open addressing map from K to a counter.
// Clear is O(1): it bumps the table version, which turns every cell
// stale without touching the buckets.
type ClearableHashMap[K comparable] struct {
	hash          func(K) uint64
	version       uint32
	bucketCntBits uint8
	bucketCnt     uint64
	elemCnt       uint64
	maxElemCnt    uint64
	bucketData    []ClearableHashMapCell[K]
}

// NewClearableHashMap returns a map of 2^sizeDegree initial buckets.
func NewClearableHashMap[K comparable](sizeDegree uint8, hash func(K) uint64) *ClearableHashMap[K] {
	if sizeDegree == 0 {
		sizeDegree = kInitialBucketCntBits
	}
	ht := &ClearableHashMap[K]{
		hash:          hash,
		version:       1,
		bucketCntBits: sizeDegree,
		bucketCnt:     uint64(1) << sizeDegree,
	}
	ht.maxElemCnt = ht.bucketCnt * kLoadFactorNumerator / kLoadFactorDenominator
	ht.bucketData = make([]ClearableHashMapCell[K], ht.bucketCnt)
	return ht
}

// Clear drops every key.
func (ht *ClearableHashMap[K]) Clear() {
	ht.elemCnt = 0
	ht.version++
	if ht.version == 0 {
		// wrapped around, stale cells could look live again
		for i := range ht.bucketData {
			ht.bucketData[i].version = 0
		}
		ht.version = 1
	}
}

// Insert adds key and reports whether it was absent.
func (ht *ClearableHashMap[K]) Insert(key K) bool {
	_, inserted := ht.findOrInsert(key)
	return inserted
}

// Increment bumps the counter of key and returns its new value, so the
// first occurrence of a key yields 1.
func (ht *ClearableHashMap[K]) Increment(key K) uint64 {
	cell, _ := ht.findOrInsert(key)
	cell.Mapped++
	return cell.Mapped
}

// Find returns the counter of key, 0 when absent.
func (ht *ClearableHashMap[K]) Find(key K) uint64 {
	_, cell := ht.findBucket(ht.hash(key), key)
	if cell.version != ht.version {
		return 0
	}
	return cell.Mapped
}

func (ht *ClearableHashMap[K]) findOrInsert(key K) (*ClearableHashMapCell[K], bool) {
	ht.resizeOnDemand(1)
	empty, cell := ht.findBucket(ht.hash(key), key)
	if empty {
		ht.elemCnt++
		cell.version = ht.version
		cell.Key = key
		cell.Mapped = 0
	}
	return cell, empty
}

func (ht *ClearableHashMap[K]) findBucket(hash uint64, key K) (empty bool, cell *ClearableHashMapCell[K]) {
	mask := ht.bucketCnt - 1
	for idx := hash & mask; true; idx = (idx + 1) & mask {
		cell = &ht.bucketData[idx]
		if cell.version != ht.version {
			return true, cell
		}
		if cell.Key == key {
			return false, cell
		}
	}
	return
}

func (ht *ClearableHashMap[K]) resizeOnDemand(n int) {
	targetCnt := ht.elemCnt + uint64(n)
	if targetCnt <= ht.maxElemCnt {
		return
	}

	newBucketCntBits := ht.bucketCntBits + 1
	newBucketCnt := uint64(1) << newBucketCntBits
	newMaxElemCnt := newBucketCnt * kLoadFactorNumerator / kLoadFactorDenominator
	for newMaxElemCnt < targetCnt {
		newBucketCntBits++
		newBucketCnt <<= 1
		newMaxElemCnt = newBucketCnt * kLoadFactorNumerator / kLoadFactorDenominator
	}

	oldBucketData := ht.bucketData

	ht.bucketCntBits = newBucketCntBits
	ht.bucketCnt = newBucketCnt
	ht.maxElemCnt = newMaxElemCnt
	ht.bucketData = make([]ClearableHashMapCell[K], newBucketCnt)

	for i := range oldBucketData {
		cell := &oldBucketData[i]
		if cell.version == ht.version {
			_, newCell := ht.findBucket(ht.hash(cell.Key), cell.Key)
			*newCell = *cell
		}
	}
}

// Cardinality returns the number of keys inserted since the last Clear.
func (ht *ClearableHashMap[K]) Cardinality() uint64 {
	return ht.elemCnt
}

// BucketCnt returns the current number of buckets.
func (ht *ClearableHashMap[K]) BucketCnt() uint64 {
	return ht.bucketCnt
}
