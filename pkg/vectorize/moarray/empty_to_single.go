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
	"github.com/matrixorigin/mo-arrayfn/pkg/container/nulls"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
)

const emptyToSingleFnName = "emptyArrayToSingle"

// EmptyArrayToSingle replaces every empty row of arr by a one element
// array holding the default of the element type, null when the element
// store is nullable. Other rows are copied unchanged.
func EmptyArrayToSingle(ctx context.Context, arr *vector.Vector) (*vector.Vector, error) {
	if !arr.GetType().IsArray() {
		return nil, moerr.NewIllegalType(ctx, arr.GetType().String(), 1, emptyToSingleFnName, "must be an array")
	}
	src := arr.GetArrayElements()
	rep, ok := vector.Probe(src)
	if !ok {
		return nil, moerr.NewIllegalColumn(ctx, src.GetType().String(), emptyToSingleFnName)
	}
	offsets := arr.GetArrayOffsets()
	rows := len(offsets)
	if arr.IsConst() {
		rows = 1
	}
	defaultNull := src.GetType().Nullable

	dst := vector.NewVec(*src.GetType())
	dstNulls := &nulls.Nulls{}
	out := make([]uint64, rows)
	var start uint64
	for i := 0; i < rows; i++ {
		end := offsets[i]
		if start == end {
			if defaultNull {
				dstNulls.Set(uint64(dst.Length()))
			}
			dst.AppendDefault(false)
		} else {
			// roaring positions are unsigned, the bias may wrap
			nulls.Range(src.GetNulls(), start, end, start-uint64(dst.Length()), dstNulls)
			if err := copyRange(ctx, dst, src, rep, start, end); err != nil {
				return nil, err
			}
		}
		out[i] = uint64(dst.Length())
		start = end
	}
	dst.SetNulls(dstNulls)

	res, err := vector.NewArrayVec(dst, out)
	if err != nil {
		return nil, err
	}
	res.SetNulls(arr.GetNulls().Clone())
	if arr.IsConst() {
		res.ToConst(arr.Length())
	}
	return res, nil
}

func copyRange(ctx context.Context, dst, src *vector.Vector, rep vector.Representation, start, end uint64) error {
	switch rep.Kind {
	case vector.Numeric:
		switch rep.Oid {
		case types.T_uint8:
			copyFixedRange[uint8](dst, src, start, end)
		case types.T_uint16:
			copyFixedRange[uint16](dst, src, start, end)
		case types.T_uint32:
			copyFixedRange[uint32](dst, src, start, end)
		case types.T_uint64:
			copyFixedRange[uint64](dst, src, start, end)
		case types.T_int8:
			copyFixedRange[int8](dst, src, start, end)
		case types.T_int16:
			copyFixedRange[int16](dst, src, start, end)
		case types.T_int32:
			copyFixedRange[int32](dst, src, start, end)
		case types.T_int64:
			copyFixedRange[int64](dst, src, start, end)
		case types.T_float32:
			copyFixedRange[float32](dst, src, start, end)
		case types.T_float64:
			copyFixedRange[float64](dst, src, start, end)
		default:
			return moerr.NewInternalError(ctx, "unexpected numeric type %s", rep.Oid.ToType().String())
		}
	case vector.Text:
		for i := start; i < end; i++ {
			vector.AppendBytes(dst, src.GetBytesAt(int(i)), false)
		}
	default:
		for i := start; i < end; i++ {
			if err := dst.UnionOne(src, int64(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFixedRange[T types.Number](dst, src *vector.Vector, start, end uint64) {
	vector.AppendFixedList(dst, vector.MustFixedCol[T](src)[start:end], nil)
}
