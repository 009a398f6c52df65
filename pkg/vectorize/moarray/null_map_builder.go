// Copyright 2023 Matrix Origin
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

package moarray

import (
	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/nulls"
)

// Outcome is what an element lookup produced for one output row.
type Outcome uint8

const (
	// Present: the element exists and is not null.
	Present Outcome = iota
	// SourceNull: the element exists but its source marks it null.
	SourceNull
	// Absent: no element, the row holds the type default.
	Absent
)

func (o Outcome) String() string {
	switch o {
	case Present:
		return "present"
	case SourceNull:
		return "source-null"
	case Absent:
		return "absent"
	}
	return "unknown"
}

// NullSource tells whether the element at a source position is null.
type NullSource interface {
	IsNull(pos uint64) bool
}

type storeNullSource struct {
	nsp *nulls.Nulls
}

// NewStoreNullSource reads nulls from the bitmap of an element store.
func NewStoreNullSource(nsp *nulls.Nulls) NullSource {
	return storeNullSource{nsp: nsp}
}

func (s storeNullSource) IsNull(pos uint64) bool {
	return s.nsp.Contains(pos)
}

type literalNullSource struct {
	lit []any
}

// NewLiteralNullSource reads nulls from a constant array literal, nil
// entries are null. Positions past the end of the literal count as null.
func NewLiteralNullSource(lit []any) NullSource {
	return literalNullSource{lit: lit}
}

func (s literalNullSource) IsNull(pos uint64) bool {
	return pos >= uint64(len(s.lit)) || s.lit[pos] == nil
}

// LiteralHasNull reports whether any element of lit is null.
func LiteralHasNull(lit []any) bool {
	for _, v := range lit {
		if v == nil {
			return true
		}
	}
	return false
}

// NullMapBuilder collects the output null bitmap of an element gather.
// Every output row is recorded exactly once and in order.
type NullMapBuilder struct {
	src  NullSource
	size uint64
	idx  uint64
	nsp  *nulls.Nulls
}

func NewNullMapBuilder(src NullSource, size int) *NullMapBuilder {
	return &NullMapBuilder{
		src:  src,
		size: uint64(size),
		nsp:  &nulls.Nulls{},
	}
}

func (b *NullMapBuilder) next() uint64 {
	if b == nil || b.src == nil {
		panic(moerr.NewInternalErrorNoCtx("null map builder used before initialization"))
	}
	if b.idx >= b.size {
		panic(moerr.NewInternalErrorNoCtx("null map builder overflow, size %d", b.size))
	}
	i := b.idx
	b.idx++
	return i
}

// RecordPresent records an element taken from source position pos.
func (b *NullMapBuilder) RecordPresent(pos uint64) Outcome {
	i := b.next()
	if b.src.IsNull(pos) {
		b.nsp.Set(i)
		return SourceNull
	}
	return Present
}

// RecordAbsent records a row that found no element.
func (b *NullMapBuilder) RecordAbsent() Outcome {
	i := b.next()
	b.nsp.Set(i)
	return Absent
}

// Recorded returns how many rows have been recorded.
func (b *NullMapBuilder) Recorded() int {
	return int(b.idx)
}

func (b *NullMapBuilder) Nulls() *nulls.Nulls {
	return b.nsp
}
