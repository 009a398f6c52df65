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

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/sql/plan/function/builtin/binary"
	"github.com/matrixorigin/mo-arrayfn/pkg/sql/plan/function/builtin/multi"
	"github.com/matrixorigin/mo-arrayfn/pkg/sql/plan/function/builtin/unary"
)

func init() {
	register(
		&Function{
			Name:       "arrayElement",
			MinArgs:    2,
			MaxArgs:    2,
			ReturnType: arrayElementReturnType,
			Fn:         binary.ArrayElement,
			Info:       "arrayElement(arr, n): the n-th element of arr, counting from the end when n < 0",
		},
		&Function{
			Name:       "arrayUniq",
			MinArgs:    1,
			MaxArgs:    -1,
			ReturnType: arraysReturning("arrayUniq", types.T_uint32.ToType()),
			Fn:         multi.ArrayUniq,
			Info:       "arrayUniq(arr, ...): number of distinct element tuples per row",
		},
		&Function{
			Name:       "arrayEnumerateUniq",
			MinArgs:    1,
			MaxArgs:    -1,
			ReturnType: arraysReturning("arrayEnumerateUniq", types.NewArrayType(types.T_uint32.ToType())),
			Fn:         multi.ArrayEnumerateUniq,
			Info:       "arrayEnumerateUniq(arr, ...): occurrence rank of each element tuple",
		},
		&Function{
			Name:       "arrayEnumerate",
			MinArgs:    1,
			MaxArgs:    1,
			ReturnType: arraysReturning("arrayEnumerate", types.NewArrayType(types.T_uint32.ToType())),
			Fn:         unary.ArrayEnumerate,
			Info:       "arrayEnumerate(arr): [1, 2, ..., length(arr)]",
		},
		&Function{
			Name:    "emptyArrayToSingle",
			MinArgs: 1,
			MaxArgs: 1,
			ReturnType: func(ctx context.Context, args []types.Type) (types.Type, error) {
				if err := checkArrays(ctx, "emptyArrayToSingle", args); err != nil {
					return types.Type{}, err
				}
				return args[0], nil
			},
			Fn:   unary.EmptyArrayToSingle,
			Info: "emptyArrayToSingle(arr): empty arrays become one default element",
		},
	)
}

func checkArrays(ctx context.Context, name string, args []types.Type) error {
	for i, arg := range args {
		if !arg.IsArray() {
			return moerr.NewIllegalType(ctx, arg.String(), i+1, name, "must be an array")
		}
	}
	return nil
}

func arraysReturning(name string, ret types.Type) func(context.Context, []types.Type) (types.Type, error) {
	return func(ctx context.Context, args []types.Type) (types.Type, error) {
		if err := checkArrays(ctx, name, args); err != nil {
			return types.Type{}, err
		}
		return ret, nil
	}
}

// The element type becomes nullable with a nullable index. A constant
// array holding a null literal may still yield a nullable column.
func arrayElementReturnType(ctx context.Context, args []types.Type) (types.Type, error) {
	if err := checkArrays(ctx, "arrayElement", args[:1]); err != nil {
		return types.Type{}, err
	}
	if !args[1].IsIntOrUint() {
		return types.Type{}, moerr.NewIllegalType(ctx, args[1].String(), 2, "arrayElement", "must be an integer")
	}
	elem := *args[0].Elem
	return elem.WithNullable(elem.Nullable || args[1].Nullable), nil
}
