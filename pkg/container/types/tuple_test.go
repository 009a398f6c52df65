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

package types

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func pack(f func(p *Packer)) []byte {
	p := NewPacker()
	f(p)
	return append([]byte{}, p.GetBuf()...)
}

func TestPackerIntOrder(t *testing.T) {
	vals := []int64{math.MinInt64, -70000, -256, -255, -1, 0, 1, 255, 256, 70000, math.MaxInt64}
	var prev []byte
	for i, v := range vals {
		cur := pack(func(p *Packer) { p.EncodeInt64(v) })
		if i > 0 {
			require.Equal(t, -1, bytes.Compare(prev, cur), "%d < %d", vals[i-1], v)
		}
		prev = cur
	}
}

func TestPackerFloatOrder(t *testing.T) {
	vals := []float64{math.Inf(-1), -2.5, -0.5, 0, 0.5, 2.5, math.Inf(1)}
	var prev []byte
	for i, v := range vals {
		cur := pack(func(p *Packer) { p.EncodeFloat64(v) })
		if i > 0 {
			require.Equal(t, -1, bytes.Compare(prev, cur))
		}
		prev = cur
	}
}

func TestPackerTypesAreDistinct(t *testing.T) {
	a := pack(func(p *Packer) { p.EncodeInt8(1) })
	b := pack(func(p *Packer) { p.EncodeUint8(1) })
	require.NotEqual(t, a, b)

	s1 := pack(func(p *Packer) { p.EncodeStringType([]byte("ab")) })
	s2 := pack(func(p *Packer) { p.EncodeStringType([]byte("a")); p.EncodeStringType([]byte("b")) })
	require.NotEqual(t, s1, s2)

	// embedded zero bytes are escaped
	z := pack(func(p *Packer) { p.EncodeStringType([]byte{'a', 0, 'b'}) })
	require.Equal(t, []byte{stringTypeCode, 'a', 0, 0xff, 'b', 0}, z)
}

func TestPackerNested(t *testing.T) {
	empty := pack(func(p *Packer) { p.OpenNested(); p.CloseNested() })
	withNull := pack(func(p *Packer) { p.OpenNested(); p.EncodeNull(); p.CloseNested() })
	require.Equal(t, []byte{nestedCode, 0}, empty)
	require.Equal(t, []byte{nestedCode, 0, 0xff, 0}, withNull)
	require.Equal(t, -1, bytes.Compare(empty, withNull))

	top := pack(func(p *Packer) { p.EncodeNull() })
	require.Equal(t, []byte{nilCode}, top)
}

func TestTypes(t *testing.T) {
	require.Equal(t, 8, TypeSize(T_int64))
	require.Equal(t, -1, TypeSize(T_varchar))
	require.True(t, T_int32.ToType().IsFixedLen())

	arr := NewArrayType(T_int32.ToType().WithNullable(true))
	require.Equal(t, "ARRAY(NULLABLE(INT))", arr.String())
	require.False(t, arr.IsFixedLen())
	require.True(t, arr.Eq(NewArrayType(T_int32.ToType().WithNullable(true))))
	require.False(t, arr.Eq(NewArrayType(T_int32.ToType())))

	tup := NewTupleType(T_int8.ToType(), T_varchar.ToType())
	require.Equal(t, "TUPLE(TINYINT, VARCHAR)", tup.String())
	require.True(t, tup.IsTuple())
}
