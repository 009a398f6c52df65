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

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
)

const enumerateFnName = "arrayEnumerate"

// Enumerate returns [1, 2, ..., len] for every row of arr. The result has
// the row layout of arr, a constant input yields a constant result.
func Enumerate(ctx context.Context, arr *vector.Vector) (*vector.Vector, error) {
	if !arr.GetType().IsArray() {
		return nil, moerr.NewIllegalType(ctx, arr.GetType().String(), 1, enumerateFnName, "must be an array")
	}
	offsets := arr.GetArrayOffsets()
	rows := len(offsets)
	if arr.IsConst() {
		rows = 1
	}

	elemCnt := 0
	if rows > 0 {
		elemCnt = int(offsets[rows-1])
	}
	fr := vector.NewFunctionResult[uint32](types.T_uint32.ToType(), elemCnt)
	var prev uint64
	for i := 0; i < rows; i++ {
		for j := prev; j < offsets[i]; j++ {
			fr.Append(uint32(j-prev+1), false)
		}
		prev = offsets[i]
	}

	out := make([]uint64, rows)
	copy(out, offsets[:rows])
	res, err := vector.NewArrayVec(fr.GetResultVector(), out)
	if err != nil {
		return nil, err
	}
	res.SetNulls(arr.GetNulls().Clone())
	if arr.IsConst() {
		res.ToConst(arr.Length())
	}
	return res, nil
}
