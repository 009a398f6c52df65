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

package function

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/lni/goutils/leaktest"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/concurrent"
	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/config"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/batch"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/testutil"
)

func TestMain(m *testing.M) {
	testutil.WaitPoolDaemons(time.Second)
	os.Exit(m.Run())
}

func newArrayBatch(rows ...[]any) *batch.Batch {
	bat := batch.NewWithSize(1)
	bat.SetVector(0, testutil.NewArrayVector(types.T_int64.ToType(), rows...))
	bat.SetRowCount(len(rows))
	return bat
}

func TestRunBatches(t *testing.T) {
	defer leaktest.AfterTest(t)()
	exec, err := concurrent.NewThreadPoolExecutor(2)
	require.NoError(t, err)
	defer exec.Release()

	bats := []*batch.Batch{
		newArrayBatch([]any{1, 1, 2}),
		newArrayBatch([]any{}, []any{3, 3}),
		newArrayBatch([]any{5, 6, 7}),
	}
	res, err := RunBatches(context.Background(), exec, "arrayUniq", bats, config.NewParameters())
	require.NoError(t, err)
	require.Len(t, res, 3)
	require.Equal(t, []uint32{2}, vector.MustFixedCol[uint32](res[0]))
	require.Equal(t, []uint32{0, 1}, vector.MustFixedCol[uint32](res[1]))
	require.Equal(t, []uint32{3}, vector.MustFixedCol[uint32](res[2]))
}

func TestRunBatchesErrors(t *testing.T) {
	defer leaktest.AfterTest(t)()
	exec, err := concurrent.NewThreadPoolExecutor(1)
	require.NoError(t, err)
	defer exec.Release()

	params := config.NewParameters()
	_, err = RunBatches(context.Background(), exec, "nope", []*batch.Batch{newArrayBatch([]any{1})}, params)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotSupported))

	params.Executor.MaxBatchRows = 1
	bats := []*batch.Batch{newArrayBatch([]any{1}), newArrayBatch([]any{1}, []any{2})}
	_, err = RunBatches(context.Background(), exec, "arrayEnumerateUniq", bats, params)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
}
