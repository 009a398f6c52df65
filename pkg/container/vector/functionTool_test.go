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

package vector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
)

func TestFunctionParameterWrapper(t *testing.T) {
	{
		v := NewVec(types.T_int64.ToType())
		AppendFixedList(v, []int64{1, 2, 3}, []bool{false, true, false})
		w := GenerateFunctionFixedTypeParameter[int64](v)
		_, ok := w.(*FunctionParameterNormal[int64])
		require.True(t, ok)
		val, null := w.GetValue(0)
		require.Equal(t, int64(1), val)
		require.False(t, null)
		_, null = w.GetValue(1)
		require.True(t, null)
		require.False(t, w.IsScalar())
	}
	{
		v := NewVec(types.T_int64.ToType())
		AppendFixedList(v, []int64{1, 2, 3}, nil)
		w := GenerateFunctionFixedTypeParameter[int64](v)
		_, ok := w.(*FunctionParameterWithoutNull[int64])
		require.True(t, ok)
		val, _ := w.GetValue(2)
		require.Equal(t, int64(3), val)
	}
	{
		v := NewConstFixed(types.T_int64.ToType(), int64(-2), 5)
		w := GenerateFunctionFixedTypeParameter[int64](v)
		require.True(t, w.IsScalar())
		val, null := w.GetValue(4)
		require.Equal(t, int64(-2), val)
		require.False(t, null)
	}
	{
		v := NewConstNull(types.T_int64.ToType(), 5)
		w := GenerateFunctionFixedTypeParameter[int64](v)
		_, ok := w.(*FunctionParameterScalarNull[int64])
		require.True(t, ok)
		_, null := w.GetValue(3)
		require.True(t, null)
	}
}

func TestIndexParameterReinterpretsUnsigned(t *testing.T) {
	v := NewVec(types.T_uint8.ToType())
	AppendFixedList(v, []uint8{1, 255}, nil)
	w, err := GenerateFunctionIndexParameter(v)
	require.NoError(t, err)
	val, _ := w.GetValue(1)
	require.Equal(t, int64(255), val)

	u := NewVec(types.T_uint64.ToType())
	AppendFixedList(u, []uint64{^uint64(0)}, nil)
	w, err = GenerateFunctionIndexParameter(u)
	require.NoError(t, err)
	val, _ = w.GetValue(0)
	require.Equal(t, int64(-1), val)

	i16 := NewVec(types.T_int16.ToType())
	AppendFixedList(i16, []int16{-3}, []bool{true})
	w, err = GenerateFunctionIndexParameter(i16)
	require.NoError(t, err)
	_, null := w.GetValue(0)
	require.True(t, null)

	_, err = GenerateFunctionIndexParameter(NewVec(types.T_float64.ToType()))
	require.Error(t, err)
}

func TestFunctionResult(t *testing.T) {
	fr := NewFunctionResult[uint32](types.T_uint32.ToType(), 3)
	fr.Append(1, false)
	fr.Append(0, true)
	fr.Append(3, false)
	v := fr.GetResultVector()
	require.Equal(t, 3, v.Length())
	require.Equal(t, []uint32{1, 0, 3}, MustFixedCol[uint32](v))
	require.True(t, v.IsNull(1))
}
