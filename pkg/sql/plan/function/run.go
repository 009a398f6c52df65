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
	"strconv"

	"go.uber.org/zap"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/concurrent"
	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/config"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/batch"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/logutil"
	"github.com/matrixorigin/mo-arrayfn/pkg/vm/process"
)

// RunBatches evaluates the function called name over every batch on the
// executor. Each batch gets its own Process. The first failing batch
// stops the batches not yet started and its error is returned.
func RunBatches(
	ctx context.Context,
	exec *concurrent.ThreadPoolExecutor,
	name string,
	bats []*batch.Batch,
	params *config.Parameters) ([]*vector.Vector, error) {

	fns := make([]*Function, len(bats))
	for i, bat := range bats {
		argTypes := make([]types.Type, bat.VectorCount())
		for j, vec := range bat.Vecs {
			argTypes[j] = *vec.GetType()
		}
		fn, _, err := GetFunctionByName(ctx, name, argTypes)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}

	results := make([]*vector.Vector, len(bats))
	err := exec.Execute(ctx, len(bats), func(ctx context.Context, threadID int, start, end int) error {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return moerr.NewQueryInterrupted(ctx)
			}
			bctx := logutil.WithBatchID(ctx, i)
			proc := process.NewFromParameters(bctx, name+"-"+strconv.Itoa(i), params)
			vec, err := fns[i].VecFn(bats[i].Vecs, proc)
			if err != nil {
				logutil.Error(bctx, "batch failed",
					zap.String("function", name),
					zap.Int("thread", threadID),
					zap.Error(err))
				return err
			}
			logutil.Debug(bctx, "batch done",
				zap.String("function", name),
				zap.Int("rows", bats[i].RowCount()))
			results[i] = vec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
