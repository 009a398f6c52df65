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

package binary

import (
	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/vectorize/moarray"
	"github.com/matrixorigin/mo-arrayfn/pkg/vm/process"
)

// ArrayElement returns arr[index] for each row, index being 1-based and
// counting from the end when negative.
func ArrayElement(vecs []*vector.Vector, proc *process.Process) (*vector.Vector, error) {
	ctx := proc.GetContext()
	arr, idx := vecs[0], vecs[1]
	if !idx.GetType().IsIntOrUint() {
		return nil, moerr.NewIllegalType(ctx, idx.GetType().String(), 2, "arrayElement", "must be an integer")
	}
	index, err := vector.GenerateFunctionIndexParameter(idx)
	if err != nil {
		return nil, err
	}
	return moarray.Element(ctx, arr, index, arr.Length())
}
