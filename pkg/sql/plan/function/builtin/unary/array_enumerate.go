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

package unary

import (
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/vectorize/moarray"
	"github.com/matrixorigin/mo-arrayfn/pkg/vm/process"
)

func ArrayEnumerate(vecs []*vector.Vector, proc *process.Process) (*vector.Vector, error) {
	return moarray.Enumerate(proc.GetContext(), vecs[0])
}

func EmptyArrayToSingle(vecs []*vector.Vector, proc *process.Process) (*vector.Vector, error) {
	return moarray.EmptyArrayToSingle(proc.GetContext(), vecs[0])
}
