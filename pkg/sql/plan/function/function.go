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
	"strings"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/vm/process"
)

// Function is a built-in function over array columns.
type Function struct {
	Name string

	// MinArgs and MaxArgs bound the argument count, MaxArgs < 0 means
	// unbounded.
	MinArgs int
	MaxArgs int

	// ReturnType checks the argument types and resolves the result type.
	// It runs before any data is touched.
	ReturnType func(ctx context.Context, args []types.Type) (types.Type, error)

	// Fn is implementation of built-in function
	// it received vector list, and return result vector.
	Fn func(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error)

	// Info records information about the function used to print
	Info string
}

// functionRegister records all the built-in functions, keyed by lower case
// name.
//
// For use in other packages, see GetFunctionByName
var functionRegister = map[string]*Function{}

func register(fns ...*Function) {
	for _, fn := range fns {
		functionRegister[strings.ToLower(fn.Name)] = fn
	}
}

// Names returns the registered function names.
func Names() []string {
	names := make([]string, 0, len(functionRegister))
	for _, fn := range functionRegister {
		names = append(names, fn.Name)
	}
	return names
}

// GetFunctionByName finds the function called name, case insensitively,
// and resolves its result type for args.
func GetFunctionByName(ctx context.Context, name string, args []types.Type) (*Function, types.Type, error) {
	fn, ok := functionRegister[strings.ToLower(name)]
	if !ok {
		return nil, types.Type{}, moerr.NewNotSupported(ctx, "function '%s'", name)
	}
	if len(args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(args) > fn.MaxArgs) {
		return nil, types.Type{}, moerr.NewWrongArgCount(ctx, fn.Name, fn.argCountString(), len(args))
	}
	typ, err := fn.ReturnType(ctx, args)
	if err != nil {
		return nil, types.Type{}, err
	}
	return fn, typ, nil
}

func (f *Function) argCountString() string {
	switch {
	case f.MaxArgs < 0:
		return "at least " + strconv.Itoa(f.MinArgs)
	case f.MinArgs == f.MaxArgs:
		return strconv.Itoa(f.MinArgs)
	}
	return strconv.Itoa(f.MinArgs) + " to " + strconv.Itoa(f.MaxArgs)
}

// VecFn runs the function on one batch. A panic inside the function is
// returned as an error and aborts only this batch.
func (f *Function) VecFn(vs []*vector.Vector, proc *process.Process) (vec *vector.Vector, err error) {
	ctx := proc.GetContext()
	defer func() {
		if e := recover(); e != nil {
			vec, err = nil, moerr.ConvertPanicError(ctx, e)
		}
	}()
	if limit := proc.Lim.BatchRows; limit > 0 && len(vs) > 0 && int64(vs[0].Length()) > limit {
		return nil, moerr.NewInvalidInput(ctx, "batch of %d rows exceeds the limit of %d", vs[0].Length(), limit)
	}
	return f.Fn(vs, proc)
}
