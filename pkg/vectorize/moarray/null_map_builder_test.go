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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mo-arrayfn/pkg/container/nulls"
)

func TestNullMapBuilderStoreSource(t *testing.T) {
	src := NewStoreNullSource(nulls.Build(2, 5))
	b := NewNullMapBuilder(src, 4)
	require.Equal(t, Present, b.RecordPresent(1))
	require.Equal(t, SourceNull, b.RecordPresent(2))
	require.Equal(t, Absent, b.RecordAbsent())
	require.Equal(t, SourceNull, b.RecordPresent(5))
	require.Equal(t, 4, b.Recorded())
	require.Equal(t, []uint64{1, 2, 3}, b.Nulls().ToArray())

	require.Panics(t, func() { b.RecordAbsent() })
}

func TestNullMapBuilderLiteralSource(t *testing.T) {
	lit := []any{int64(1), nil}
	require.True(t, LiteralHasNull(lit))
	require.False(t, LiteralHasNull([]any{int64(1)}))

	b := NewNullMapBuilder(NewLiteralNullSource(lit), 3)
	require.Equal(t, Present, b.RecordPresent(0))
	require.Equal(t, SourceNull, b.RecordPresent(1))
	require.Equal(t, SourceNull, b.RecordPresent(7))
	require.Equal(t, []uint64{1, 2}, b.Nulls().ToArray())
}

func TestNullMapBuilderMisuse(t *testing.T) {
	var b *NullMapBuilder
	require.Panics(t, func() { b.RecordAbsent() })
	require.Panics(t, func() { NewNullMapBuilder(nil, 1).RecordPresent(0) })
	require.Equal(t, "absent", Absent.String())
}
