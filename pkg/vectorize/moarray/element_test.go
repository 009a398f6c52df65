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
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/testutil"
)

func constIndex(t *testing.T, k int64, length int) vector.FunctionParameterWrapper[int64] {
	p, err := vector.GenerateFunctionIndexParameter(vector.NewConstFixed(types.T_int64.ToType(), k, length))
	require.NoError(t, err)
	return p
}

func columnIndex(t *testing.T, typ types.Type, ks ...any) vector.FunctionParameterWrapper[int64] {
	p, err := vector.GenerateFunctionIndexParameter(testutil.NewVector(typ, ks...))
	require.NoError(t, err)
	return p
}

func TestResolvePosition(t *testing.T) {
	cases := []struct {
		start, end uint64
		k          int64
		pos        uint64
		ok         bool
	}{
		{10, 13, 1, 10, true},
		{10, 13, 3, 12, true},
		{10, 13, 4, 0, false},
		{10, 13, -1, 12, true},
		{10, 13, -3, 10, true},
		{10, 13, -4, 0, false},
		{10, 13, 0, 0, false},
		{5, 5, 1, 0, false},
		{5, 5, -1, 0, false},
		{0, 3, -9223372036854775808, 0, false},
	}
	for _, c := range cases {
		pos, ok := ResolvePosition(c.start, c.end, c.k)
		require.Equal(t, c.ok, ok, "k=%d", c.k)
		if ok {
			require.Equal(t, c.pos, pos, "k=%d", c.k)
		}
	}
}

func TestElementExamples(t *testing.T) {
	ctx := context.Background()
	elem := types.T_int32.ToType().WithNullable(true)
	arr := testutil.NewArrayVector(elem, []any{10, 20, 30})

	for _, c := range []struct {
		k      int64
		want   any
		isNull bool
	}{
		{2, int32(20), false},
		{-1, int32(30), false},
		{5, int32(0), true},
	} {
		res, err := Element(ctx, arr, constIndex(t, c.k, 1), 1)
		require.NoError(t, err)
		require.True(t, res.GetType().Nullable)
		require.Equal(t, c.isNull, res.IsNull(0))
		require.Equal(t, c.want, vector.GetFixedAt[int32](res, 0))
	}
}

func TestElementNonNullableStore(t *testing.T) {
	arr := testutil.NewArrayVector(types.T_int64.ToType(), []any{1, 2, 3}, []any{}, []any{4, 5})
	res, err := Element(context.Background(), arr, constIndex(t, 2, 3), 3)
	require.NoError(t, err)
	require.False(t, res.GetType().Nullable)
	require.False(t, res.GetNulls().Any())
	require.Equal(t, []int64{2, 0, 5}, vector.MustFixedCol[int64](res))
}

func TestElementPerRowIndex(t *testing.T) {
	ctx := context.Background()
	arr := testutil.NewArrayVector(types.T_varchar.ToType().WithNullable(true),
		[]any{"a", "b", "c"}, []any{"d", nil}, []any{}, []any{"e"})

	idx := columnIndex(t, types.T_uint8.ToType(), 3, 2, 1, 0)
	res, err := Element(ctx, arr, idx, 4)
	require.NoError(t, err)
	require.Equal(t, []any{"c", nil, nil, nil}, testutil.Rows(res))
	require.Equal(t, "", res.GetStringAt(2))

	idx = columnIndex(t, types.T_int16.ToType(), -3, -2, -1, -1)
	res, err = Element(ctx, arr, idx, 4)
	require.NoError(t, err)
	require.Equal(t, []any{"a", "d", nil, "e"}, testutil.Rows(res))
}

func TestElementNullIndex(t *testing.T) {
	arr := testutil.NewArrayVector(types.T_int32.ToType(), []any{1, 2}, []any{3, 4})
	idx := columnIndex(t, types.T_int64.ToType().WithNullable(true), 1, nil)
	res, err := Element(context.Background(), arr, idx, 2)
	require.NoError(t, err)
	require.True(t, res.GetType().Nullable)
	require.Equal(t, []any{int32(1), nil}, testutil.Rows(res))
}

func TestElementZeroIndex(t *testing.T) {
	arr := testutil.NewArrayVector(types.T_int32.ToType(), []any{1})
	_, err := Element(context.Background(), arr, constIndex(t, 0, 1), 1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrZeroArrayIndex))

	// per row zero is just out of range
	res, err := Element(context.Background(), arr, columnIndex(t, types.T_int32.ToType(), 0), 1)
	require.NoError(t, err)
	require.Equal(t, []any{int32(0)}, testutil.Rows(res))
}

func TestElementIllegalType(t *testing.T) {
	notArr := testutil.NewVector(types.T_int32.ToType(), 1)
	_, err := Element(context.Background(), notArr, constIndex(t, 1, 1), 1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrIllegalType))
}

func TestElementConstArray(t *testing.T) {
	ctx := context.Background()
	arr := testutil.NewConstArrayVector(types.T_float64.ToType(), []any{1.5, 2.5}, 3)

	res, err := Element(ctx, arr, constIndex(t, -1, 3), 3)
	require.NoError(t, err)
	require.True(t, res.IsConst())
	require.Equal(t, 3, res.Length())
	require.False(t, res.GetType().Nullable)
	require.Equal(t, []any{2.5, 2.5, 2.5}, testutil.Rows(res))

	res, err = Element(ctx, arr, columnIndex(t, types.T_int8.ToType(), 1, 2, 3), 3)
	require.NoError(t, err)
	require.False(t, res.IsConst())
	require.Equal(t, []any{1.5, 2.5, 0.0}, testutil.Rows(res))

	// a null in the literal makes the result nullable
	withNull := vector.NewConstArray(testutil.NewVector(types.T_float64.ToType().WithNullable(true), nil, 2.0), 2)
	res, err = Element(ctx, withNull, constIndex(t, 1, 2), 2)
	require.NoError(t, err)
	require.True(t, res.IsConst())
	require.True(t, res.GetType().Nullable)
	require.Equal(t, []any{nil, nil}, testutil.Rows(res))
}

func TestElementGenericAndTuple(t *testing.T) {
	ctx := context.Background()
	flags := testutil.NewArrayVector(types.T_bool.ToType(), []any{true, false}, []any{true})
	res, err := Element(ctx, flags, constIndex(t, 2, 2), 2)
	require.NoError(t, err)
	require.Equal(t, []any{false, false}, testutil.Rows(res))

	tupType := types.NewTupleType(types.T_int64.ToType(), types.T_varchar.ToType().WithNullable(true))
	arr := testutil.NewArrayVector(tupType,
		[]any{[]any{1, "a"}, []any{2, nil}},
		[]any{[]any{3, "c"}})
	res, err = Element(ctx, arr, constIndex(t, 2, 2), 2)
	require.NoError(t, err)
	require.True(t, res.GetType().IsTuple())
	require.Equal(t, []any{[]any{int64(2), nil}, []any{int64(0), nil}}, testutil.Rows(res))
	fields := res.GetTupleFields()
	require.False(t, fields[0].GetType().Nullable)
	require.True(t, fields[1].GetType().Nullable)
}

func TestElementNestedArray(t *testing.T) {
	inner := types.NewArrayType(types.T_int32.ToType())
	arr := testutil.NewArrayVector(inner, []any{[]any{1, 2}, []any{3}}, []any{})
	res, err := Element(context.Background(), arr, constIndex(t, 1, 2), 2)
	require.NoError(t, err)
	require.Equal(t, []any{[]any{int32(1), int32(2)}, []any{}}, testutil.Rows(res))
}
