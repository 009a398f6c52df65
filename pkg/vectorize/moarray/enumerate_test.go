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
	"github.com/matrixorigin/mo-arrayfn/pkg/testutil"
)

func TestEnumerate(t *testing.T) {
	arr := testutil.NewArrayVector(types.T_varchar.ToType(), []any{"x", "y", "z"}, []any{}, []any{"w"})
	res, err := Enumerate(context.Background(), arr)
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 3, 4}, res.GetArrayOffsets())
	require.Equal(t, []any{
		[]any{uint32(1), uint32(2), uint32(3)},
		[]any{},
		[]any{uint32(1)},
	}, testutil.Rows(res))
}

func TestEnumerateConst(t *testing.T) {
	arr := testutil.NewConstArrayVector(types.T_int8.ToType(), []any{5, 5}, 2)
	res, err := Enumerate(context.Background(), arr)
	require.NoError(t, err)
	require.True(t, res.IsConst())
	require.Equal(t, []any{
		[]any{uint32(1), uint32(2)},
		[]any{uint32(1), uint32(2)},
	}, testutil.Rows(res))
}

func TestEnumerateIllegal(t *testing.T) {
	_, err := Enumerate(context.Background(), testutil.NewVector(types.T_int8.ToType(), 1))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrIllegalType))
}
