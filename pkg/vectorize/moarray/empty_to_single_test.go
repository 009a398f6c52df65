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

	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/testutil"
)

func TestEmptyArrayToSingle(t *testing.T) {
	ctx := context.Background()

	arr := testutil.NewArrayVector(types.T_int32.ToType(), []any{}, []any{1, 2}, []any{})
	res, err := EmptyArrayToSingle(ctx, arr)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 3, 4}, res.GetArrayOffsets())
	require.Equal(t, []any{
		[]any{int32(0)},
		[]any{int32(1), int32(2)},
		[]any{int32(0)},
	}, testutil.Rows(res))

	// nulls keep their place after the inserted defaults
	arr = testutil.NewArrayVector(types.T_varchar.ToType().WithNullable(true),
		[]any{}, []any{"a", nil}, []any{nil})
	res, err = EmptyArrayToSingle(ctx, arr)
	require.NoError(t, err)
	require.Equal(t, []any{
		[]any{nil},
		[]any{"a", nil},
		[]any{nil},
	}, testutil.Rows(res))
	require.Equal(t, []uint64{0, 2, 3}, res.GetArrayElements().GetNulls().ToArray())
}

func TestEmptyArrayToSingleGeneric(t *testing.T) {
	tup := types.NewTupleType(types.T_int8.ToType(), types.T_bool.ToType())
	arr := testutil.NewArrayVector(tup, []any{[]any{1, true}}, []any{})
	res, err := EmptyArrayToSingle(context.Background(), arr)
	require.NoError(t, err)
	require.Equal(t, []any{
		[]any{[]any{int8(1), true}},
		[]any{[]any{int8(0), false}},
	}, testutil.Rows(res))
}

func TestEmptyArrayToSingleConst(t *testing.T) {
	arr := testutil.NewConstArrayVector(types.T_float32.ToType(), []any{}, 3)
	res, err := EmptyArrayToSingle(context.Background(), arr)
	require.NoError(t, err)
	require.True(t, res.IsConst())
	require.Equal(t, 3, res.Length())
	require.Equal(t, []any{float32(0)}, res.GetAny(2))
}
