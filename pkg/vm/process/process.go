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

package process

import (
	"context"

	"github.com/matrixorigin/mo-arrayfn/pkg/config"
)

// New creates a Process reading its parameters from ctx.
func New(ctx context.Context, id string) *Process {
	return NewFromParameters(ctx, id, config.GetParameters(ctx))
}

// NewFromParameters creates a Process from explicit parameters.
func NewFromParameters(ctx context.Context, id string, params *config.Parameters) *Process {
	return &Process{
		Id:         id,
		Ctx:        ctx,
		Lim:        Limitation{BatchRows: params.Executor.MaxBatchRows},
		FuncParams: params.Function,
	}
}

func (proc *Process) GetContext() context.Context {
	if proc == nil || proc.Ctx == nil {
		return context.Background()
	}
	return proc.Ctx
}

// HashTableSizeDegree returns log2 of the initial scratch table size.
func (proc *Process) HashTableSizeDegree() uint8 {
	if proc == nil || proc.FuncParams.HashTableInitialSizeDegree == 0 {
		return 4
	}
	return proc.FuncParams.HashTableInitialSizeDegree
}

// ForceHashedKeys reports whether composite keys skip fixed packing.
func (proc *Process) ForceHashedKeys() bool {
	return proc != nil && proc.FuncParams.ForceHashedKeys
}
