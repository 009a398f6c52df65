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

package testutil

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/matrixorigin/mo-arrayfn/pkg/config"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/vm/process"
)

func NewProcess() *process.Process {
	params := config.NewParameters()
	params.SetDefaultValues()
	return process.NewFromParameters(context.Background(), "test", params)
}

// NewVector builds a flat column of n rows from vals, a nil entry is a
// null. The values are converted the way AppendAny converts them.
func NewVector(typ types.Type, vals ...any) *vector.Vector {
	vec := vector.NewVec(typ)
	for _, v := range vals {
		if err := vec.AppendAny(v); err != nil {
			panic(fmt.Errorf("testutil: append %v to %s: %w", v, typ.String(), err))
		}
	}
	return vec
}

// NewArrayVector builds an array column of elem typed elements, one row
// per entry of rows. A nil row is a null array.
func NewArrayVector(elem types.Type, rows ...[]any) *vector.Vector {
	vals := make([]any, len(rows))
	for i, r := range rows {
		if r != nil {
			vals[i] = r
		}
	}
	return NewVector(types.NewArrayType(elem), vals...)
}

// NewConstArrayVector builds a constant array column of length rows.
func NewConstArrayVector(elem types.Type, val []any, length int) *vector.Vector {
	return vector.NewConstArray(NewVector(elem, val...), length)
}

// NewRandomInt64Arrays returns rows arrays of up to maxLen elements drawn
// from [0, distinct). Every nullEvery-th element is null when nullEvery > 0.
func NewRandomInt64Arrays(r *rand.Rand, rows, maxLen, distinct, nullEvery int) [][]any {
	res := make([][]any, rows)
	k := 0
	for i := range res {
		res[i] = make([]any, r.Intn(maxLen+1))
		for j := range res[i] {
			k++
			if nullEvery > 0 && k%nullEvery == 0 {
				continue
			}
			res[i][j] = int64(r.Intn(distinct))
		}
	}
	return res
}

// Rows returns every logical row of v as go values.
func Rows(v *vector.Vector) []any {
	rows := make([]any, v.Length())
	for i := range rows {
		rows[i] = v.GetAny(i)
	}
	return rows
}

// CompareVectors reports whether got holds the same type and rows as
// expected. Constant and flat columns compare equal when their rows do.
func CompareVectors(expected, got *vector.Vector) bool {
	if expected == nil || got == nil {
		return expected == got
	}
	if !expected.GetType().Eq(*got.GetType()) {
		return false
	}
	if expected.Length() != got.Length() {
		return false
	}
	return assert.ObjectsAreEqual(Rows(expected), Rows(got))
}

// WaitPoolDaemons blocks until the purge goroutine of ants' package level
// pool, started from package init, is parked in its ticker loop. Leak
// checks snapshot goroutine stacks, and one taken while that goroutine is
// still starting reports it once it settles.
func WaitPoolDaemons(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 1<<20)
	for time.Now().Before(deadline) {
		n := runtime.Stack(buf, true)
		for _, g := range strings.Split(string(buf[:n]), "\n\n") {
			if strings.Contains(g, "(*Pool).purgePeriodically") &&
				(strings.Contains(g, "[select") || strings.Contains(g, "[chan receive")) {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
}
