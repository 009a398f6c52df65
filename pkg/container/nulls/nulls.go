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

// Package nulls tracks the NULL rows of a column in a roaring bitmap.
// The zero value and a nil *Nulls both mean "no NULL row".
package nulls

import (
	"fmt"

	roaring "github.com/RoaringBitmap/roaring/roaring64"
)

// Build returns a Nulls with the given rows marked.
func Build(rows ...uint64) *Nulls {
	nsp := &Nulls{}
	for _, row := range rows {
		nsp.Set(row)
	}
	return nsp
}

// Set merges the rows of m into nsp.
func Set(nsp, m *Nulls) {
	if !m.Any() {
		return
	}
	nsp.bitmap().Or(m.Np)
}

// Range copies the NULL rows of nsp within [start, end) into m, shifted
// down by bias, and returns m.
func Range(nsp *Nulls, start, end, bias uint64, m *Nulls) *Nulls {
	if !nsp.Any() {
		return m
	}
	it := nsp.Np.Iterator()
	it.AdvanceIfNeeded(start)
	for it.HasNext() {
		row := it.Next()
		if row >= end {
			break
		}
		m.Set(row - bias)
	}
	return m
}

func (nsp *Nulls) bitmap() *roaring.Bitmap {
	if nsp.Np == nil {
		nsp.Np = roaring.NewBitmap()
	}
	return nsp.Np
}

func (nsp *Nulls) Any() bool {
	return nsp != nil && nsp.Np != nil && !nsp.Np.IsEmpty()
}

func (nsp *Nulls) Contains(row uint64) bool {
	return nsp != nil && nsp.Np != nil && nsp.Np.Contains(row)
}

func (nsp *Nulls) Set(row uint64) {
	nsp.bitmap().Add(row)
}

func (nsp *Nulls) Count() int {
	if !nsp.Any() {
		return 0
	}
	return int(nsp.Np.GetCardinality())
}

func (nsp *Nulls) ToArray() []uint64 {
	if !nsp.Any() {
		return []uint64{}
	}
	return nsp.Np.ToArray()
}

func (nsp *Nulls) Clone() *Nulls {
	if !nsp.Any() {
		return &Nulls{}
	}
	return &Nulls{Np: nsp.Np.Clone()}
}

// IsSame compares the marked rows, treating nil and empty alike.
func (nsp *Nulls) IsSame(m *Nulls) bool {
	if !nsp.Any() || !m.Any() {
		return nsp.Any() == m.Any()
	}
	return nsp.Np.Equals(m.Np)
}

func (nsp *Nulls) String() string {
	return fmt.Sprintf("%v", nsp.ToArray())
}
